package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchID(t *testing.T) {
	ids := []string{
		"0190a1b2-0000-7000-8000-aaaaaaaa1111",
		"0190a1b2-0001-7000-8000-bbbbbbbb2222",
		"0190c3d4-0002-7000-8000-cccccccc1111",
		"legacy-1718000000000",
	}

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr string
	}{
		{name: "exact match", ref: ids[0], want: ids[0]},
		{name: "exact match case insensitive", ref: "LEGACY-1718000000000", want: ids[3]},
		{name: "unique suffix", ref: "bbbb2222", want: ids[1]},
		{name: "unique short suffix", ref: "2222", want: ids[1]},
		{name: "unique prefix", ref: "0190c3", want: ids[2]},
		{name: "suffix with surrounding space", ref: "  cccc1111 ", want: ids[2]},
		{name: "ambiguous suffix", ref: "1111", wantErr: "ambiguous"},
		{name: "ambiguous prefix", ref: "0190a1b2", wantErr: "ambiguous"},
		{name: "no match", ref: "zzzz", wantErr: "not found"},
		{name: "empty reference", ref: "  ", wantErr: "must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchID(tt.ref, ids)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchIDErrorTypes(t *testing.T) {
	ids := []string{"aaaa-0001", "bbbb-0001"}

	_, err := MatchID("0001", ids)
	var amb *AmbiguousIDError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, []string{"aaaa-0001", "bbbb-0001"}, amb.Matches)

	_, err = MatchID("cccc", ids)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "cccc", nf.Ref)

	_, err = MatchID("x", nil)
	assert.True(t, errors.As(err, &nf))
}

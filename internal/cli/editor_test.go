package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jacksmith/todo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEditor(t *testing.T) {
	t.Setenv("VISUAL", "code --wait")
	t.Setenv("EDITOR", "vim")
	assert.Equal(t, "code --wait", getEditor())

	t.Setenv("VISUAL", "")
	assert.Equal(t, "vim", getEditor())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "", getEditor())
}

func TestEditInEditorNoEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	_, err := EditInEditor([]byte("text: buy milk\n"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EDITOR not set")
}

func TestEditInEditorUnchanged(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	content := []byte("text: buy milk\npriority: medium\n")
	result, err := EditInEditor(content, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, content, result)
}

func TestEditInEditorNonZeroExit(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")

	_, err := EditInEditor([]byte("text: x\n"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor exited with status 1")
}

func TestEditInEditorRewritesFile(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\nprintf 'text: buy oat milk\\npriority: high\\n' > \"$1\"\n"), 0o755))

	t.Setenv("VISUAL", script)
	t.Setenv("EDITOR", "")

	result, err := EditInEditor([]byte("text: buy milk\n"), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, "text: buy oat milk\npriority: high\n", string(result))
}

func TestRunEditorEmptyCommand(t *testing.T) {
	err := runEditor("   ", filepath.Join(t.TempDir(), "task.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty editor command")
}

func TestRunEditorMissingBinary(t *testing.T) {
	err := runEditor("no-such-editor-for-todo", filepath.Join(t.TempDir(), "task.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run editor")
}

// useEditorScript installs a shell script as $EDITOR.
func useEditorScript(t *testing.T, body string) {
	t.Helper()
	script := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body), 0o755))
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)
}

func TestEditTaskDocument(t *testing.T) {
	seen := filepath.Join(t.TempDir(), "seen.yaml")
	useEditorScript(t, "cp \"$1\" "+seen+"\n")

	task := model.Task{ID: "0192f0c4-aaaa-7bbb-8ccc-0123456789ab", Text: "Buy milk", Priority: model.PriorityHigh}
	doc, err := EditTask(task)
	require.NoError(t, err)
	assert.Equal(t, TaskDocument{Text: "Buy milk", Priority: model.PriorityHigh}, doc)

	content, err := os.ReadFile(seen)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Editing task "+model.ShortID(task.ID))
	assert.Contains(t, string(content), "text: Buy milk\npriority: high\n")
}

func TestEditTaskResult(t *testing.T) {
	task := model.Task{ID: "t1", Text: "Buy milk", Priority: model.PriorityHigh}

	tests := []struct {
		name    string
		saved   string
		want    TaskDocument
		wantErr string
	}{
		{
			name:  "text and priority changed",
			saved: "text: '  Buy oat milk '\npriority: low\n",
			want:  TaskDocument{Text: "Buy oat milk", Priority: model.PriorityLow},
		},
		{
			name:  "short priority form",
			saved: "text: Buy milk\npriority: M\n",
			want:  TaskDocument{Text: "Buy milk", Priority: model.PriorityMedium},
		},
		{
			name:  "missing priority keeps the current one",
			saved: "text: Buy bread\n",
			want:  TaskDocument{Text: "Buy bread", Priority: model.PriorityHigh},
		},
		{
			name:    "blank text",
			saved:   "text: \"   \"\npriority: low\n",
			wantErr: "invalid text: task text must not be blank",
		},
		{
			name:    "unknown priority",
			saved:   "text: Buy milk\npriority: urgent\n",
			wantErr: "invalid priority",
		},
		{
			name:    "invalid yaml",
			saved:   "text: [unclosed\n",
			wantErr: "invalid YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useEditorScript(t, "cat > \"$1\" <<'DOC'\n"+tt.saved+"DOC\n")

			doc, err := EditTask(task)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc)
		})
	}
}

func TestEditTaskEditorFails(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")

	_, err := EditTask(model.Task{ID: "t1", Text: "Buy milk", Priority: model.PriorityLow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor exited with status 1")
}

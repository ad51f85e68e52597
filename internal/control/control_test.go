package control

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/storage"
	"github.com/jacksmith/todo/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	list     *ops.TaskList
	renderer *view.Renderer
	slot     *storage.MemorySlot
	ctrl     *Controller
}

func setup(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	slot := storage.NewMemorySlot()
	n := 0
	list, err := ops.Load(slot, ops.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))
	require.NoError(t, err)

	r := view.New(list, list.Tasks())
	list.Subscribe(r)
	return &fixture{list: list, renderer: r, slot: slot, ctrl: New(list, r, opts...)}
}

func (f *fixture) dispatch(t *testing.T, e Event) Outcome {
	t.Helper()
	out, err := f.ctrl.Dispatch(e)
	require.NoError(t, err)
	return out
}

func (f *fixture) add(t *testing.T, text string, p model.Priority) string {
	t.Helper()
	out := f.dispatch(t, AddRequested{Text: text, Priority: p})
	require.True(t, out.Changed)
	require.NotNil(t, out.Task)
	return out.Task.ID
}

func TestAdd(t *testing.T) {
	f := setup(t)

	out := f.dispatch(t, AddRequested{Text: "  Buy milk  ", Priority: model.PriorityHigh})
	assert.True(t, out.Changed)
	require.NotNil(t, out.Task)
	assert.Equal(t, "Buy milk", out.Task.Text)
	assert.Equal(t, model.PriorityHigh, out.Task.Priority)
	assert.False(t, out.Task.Completed)
	assert.Equal(t, 1, f.list.Len())
}

func TestAddBlankIsNoop(t *testing.T) {
	f := setup(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		out := f.dispatch(t, AddRequested{Text: text, Priority: model.PriorityHigh})
		assert.Equal(t, Outcome{}, out)
	}
	assert.Equal(t, 0, f.list.Len())
	assert.Equal(t, 0, f.slot.Writes())
}

func TestAddUsesDefaultPriority(t *testing.T) {
	f := setup(t, WithDefaultPriority(model.PriorityLow))

	out := f.dispatch(t, AddRequested{Text: "Walk dog"})
	assert.Equal(t, model.PriorityLow, out.Task.Priority)

	out = f.dispatch(t, AddRequested{Text: "Pay rent", Priority: "urgent"})
	assert.Equal(t, model.PriorityLow, out.Task.Priority)

	f = setup(t)
	out = f.dispatch(t, AddRequested{Text: "Walk dog"})
	assert.Equal(t, model.PriorityMedium, out.Task.Priority)
}

func TestToggle(t *testing.T) {
	f := setup(t)
	id := f.add(t, "Buy milk", model.PriorityHigh)

	out := f.dispatch(t, ToggleRequested{ID: id})
	assert.True(t, out.Changed)
	task, _ := f.list.Find(id)
	assert.True(t, task.Completed)

	f.dispatch(t, ToggleRequested{ID: id})
	task, _ = f.list.Find(id)
	assert.False(t, task.Completed)

	writes := f.slot.Writes()
	out = f.dispatch(t, ToggleRequested{ID: "missing"})
	assert.False(t, out.Changed)
	assert.Equal(t, writes, f.slot.Writes())
}

func TestEditSessionCommit(t *testing.T) {
	f := setup(t)
	id := f.add(t, "Buy milk", model.PriorityHigh)

	out := f.dispatch(t, EditStarted{ID: id})
	assert.True(t, out.Editing)

	out = f.dispatch(t, DraftChanged{Text: "Buy oat", Priority: model.PriorityHigh})
	assert.True(t, out.Editing)
	assert.Equal(t, "Buy oat", f.renderer.Current().Rows[0].DraftText)

	out = f.dispatch(t, EditCommitted{ID: id, Text: " Buy oat milk ", Priority: model.PriorityLow})
	assert.True(t, out.Changed)
	assert.False(t, out.Editing)

	task, _ := f.list.Find(id)
	assert.Equal(t, model.Task{ID: id, Text: "Buy oat milk", Priority: model.PriorityLow}, task)
}

func TestEditCommitBlankKeepsSessionOpen(t *testing.T) {
	f := setup(t)
	id := f.add(t, "Buy milk", model.PriorityHigh)
	f.dispatch(t, EditStarted{ID: id})
	writes := f.slot.Writes()

	out := f.dispatch(t, EditCommitted{ID: id, Text: "   ", Priority: model.PriorityLow})
	assert.False(t, out.Changed)
	assert.True(t, out.Editing)
	assert.Equal(t, writes, f.slot.Writes())

	task, _ := f.list.Find(id)
	assert.Equal(t, "Buy milk", task.Text)
}

func TestEditCommitWithoutSession(t *testing.T) {
	f := setup(t)
	id := f.add(t, "Buy milk", model.PriorityHigh)

	out := f.dispatch(t, EditCommitted{ID: id, Text: "Buy bread", Priority: model.PriorityMedium})
	assert.True(t, out.Changed)
	assert.False(t, out.Editing)
	task, _ := f.list.Find(id)
	assert.Equal(t, "Buy bread", task.Text)

	out = f.dispatch(t, EditCommitted{ID: "missing", Text: "x"})
	assert.False(t, out.Changed)
}

func TestEditCommitOtherTaskLeavesSession(t *testing.T) {
	f := setup(t)
	a := f.add(t, "Buy milk", model.PriorityHigh)
	b := f.add(t, "Walk dog", model.PriorityLow)
	f.dispatch(t, EditStarted{ID: a})

	out := f.dispatch(t, EditCommitted{ID: b, Text: "Walk the dog", Priority: model.PriorityLow})
	assert.True(t, out.Changed)
	assert.True(t, out.Editing)

	s, ok := f.renderer.Editing()
	require.True(t, ok)
	assert.Equal(t, a, s.ID)
}

func TestEditCancelled(t *testing.T) {
	f := setup(t)
	id := f.add(t, "Buy milk", model.PriorityHigh)
	writes := f.slot.Writes()

	f.dispatch(t, EditStarted{ID: id})
	f.dispatch(t, DraftChanged{Text: "Something else", Priority: model.PriorityLow})
	out := f.dispatch(t, EditCancelled{ID: id})
	assert.False(t, out.Changed)
	assert.False(t, out.Editing)

	task, _ := f.list.Find(id)
	assert.Equal(t, "Buy milk", task.Text)
	assert.Equal(t, writes, f.slot.Writes())
}

func TestEditStartedSwitchesSession(t *testing.T) {
	f := setup(t)
	a := f.add(t, "Buy milk", model.PriorityHigh)
	b := f.add(t, "Walk dog", model.PriorityLow)

	f.dispatch(t, EditStarted{ID: a})
	f.dispatch(t, DraftChanged{Text: "draft for a", Priority: model.PriorityHigh})
	f.dispatch(t, EditStarted{ID: b})

	s, ok := f.renderer.Editing()
	require.True(t, ok)
	assert.Equal(t, b, s.ID)
	assert.Equal(t, "Walk dog", s.Text)

	out := f.dispatch(t, EditStarted{ID: "missing"})
	assert.True(t, out.Editing, "unknown id leaves the open session alone")
}

func TestDelete(t *testing.T) {
	f := setup(t)
	a := f.add(t, "Buy milk", model.PriorityHigh)
	b := f.add(t, "Walk dog", model.PriorityLow)
	f.dispatch(t, EditStarted{ID: a})

	out := f.dispatch(t, DeleteRequested{ID: a})
	assert.True(t, out.Changed)
	assert.Equal(t, 1, out.Removed)
	assert.False(t, out.Editing, "deleting the edited task closes the session")
	assert.Equal(t, []string{b}, f.list.IDs())

	out = f.dispatch(t, DeleteRequested{ID: a})
	assert.False(t, out.Changed)
	assert.Equal(t, 0, out.Removed)
}

func TestClearCompleted(t *testing.T) {
	f := setup(t)
	a := f.add(t, "A", model.PriorityHigh)
	b := f.add(t, "B", model.PriorityLow)
	c := f.add(t, "C", model.PriorityMedium)
	f.dispatch(t, ToggleRequested{ID: a})
	f.dispatch(t, ToggleRequested{ID: c})

	out := f.dispatch(t, ClearCompletedRequested{})
	assert.True(t, out.Changed)
	assert.Equal(t, 2, out.Removed)
	assert.Equal(t, []string{b}, f.list.IDs())

	writes := f.slot.Writes()
	out = f.dispatch(t, ClearCompletedRequested{})
	assert.False(t, out.Changed)
	assert.Equal(t, 0, out.Removed)
	assert.Equal(t, writes+1, f.slot.Writes(), "clearing always persists")
}

func TestClearAllRequiresConfirmation(t *testing.T) {
	f := setup(t)
	f.add(t, "A", model.PriorityHigh)
	f.add(t, "B", model.PriorityLow)
	writes := f.slot.Writes()

	out := f.dispatch(t, ClearAllRequested{Confirmed: false})
	assert.Equal(t, Outcome{}, out)
	assert.Equal(t, 2, f.list.Len())
	assert.Equal(t, writes, f.slot.Writes())

	out = f.dispatch(t, ClearAllRequested{Confirmed: true})
	assert.True(t, out.Changed)
	assert.Equal(t, 2, out.Removed)
	assert.Equal(t, 0, f.list.Len())
	assert.True(t, f.renderer.Current().Empty)
	assert.Nil(t, f.renderer.Current().Stats)
}

func TestDispatchStorageFailure(t *testing.T) {
	f := setup(t)
	id := f.add(t, "Buy milk", model.PriorityHigh)
	f.slot.WriteErr = errors.New("disk full")

	events := []Event{
		AddRequested{Text: "Walk dog"},
		ToggleRequested{ID: id},
		EditCommitted{ID: id, Text: "Buy bread"},
		DeleteRequested{ID: id},
		ClearAllRequested{Confirmed: true},
	}
	for _, e := range events {
		t.Run(fmt.Sprintf("%T", e), func(t *testing.T) {
			out, err := f.ctrl.Dispatch(e)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "disk full")
			assert.False(t, out.Changed)
		})
	}

	assert.Equal(t, []model.Task{{ID: id, Text: "Buy milk", Priority: model.PriorityHigh}}, f.list.Tasks())
}

type bogusEvent struct{}

func (bogusEvent) event() {}

func TestDispatchUnknownEvent(t *testing.T) {
	f := setup(t)
	_, err := f.ctrl.Dispatch(bogusEvent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event")
}

func TestScenario(t *testing.T) {
	f := setup(t)

	a := f.add(t, "Buy milk", model.PriorityHigh)
	b := f.add(t, "Walk dog", model.PriorityLow)
	f.dispatch(t, ToggleRequested{ID: a})

	stats := f.renderer.Current().Stats
	require.NotNil(t, stats)
	assert.Equal(t, view.Stats{Pending: 1, Completed: 1}, *stats)

	f.dispatch(t, ClearCompletedRequested{})
	assert.Equal(t, []string{b}, f.list.IDs())

	// the persisted state matches memory
	reloaded, err := ops.Load(f.slot)
	require.NoError(t, err)
	assert.Equal(t, f.list.Tasks(), reloaded.Tasks())
}

// Package ops implements the task list: the single owner of the task
// collection and the only code that mutates it.
package ops

import (
	"fmt"

	"github.com/jacksmith/todo/internal/model"
	"go.uber.org/zap"
)

// TaskList owns the in-memory task collection. Every mutation writes the
// full collection to the Store and then refreshes listeners, so a listener
// only ever observes state that has been persisted.
//
// Operations that have nothing to do (blank text, unknown ID) return
// without writing or refreshing. Clearing always writes, even when nothing
// is removed. A TaskList is not safe for concurrent use.
type TaskList struct {
	store     Store
	tasks     []model.Task
	listeners []Listener
	newID     func() string
	issued    map[string]struct{} // every ID loaded or handed out, deleted or not
	logger    *zap.Logger
}

// maxIDAttempts bounds how often Add redraws from a generator that keeps
// returning empty or already issued IDs.
const maxIDAttempts = 100

// Option configures a TaskList.
type Option func(*TaskList)

// WithLogger sets the logger used for mutation diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *TaskList) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithIDGenerator replaces model.NewID as the source of task IDs.
// Empty IDs and IDs already issued by this TaskList are discarded and drawn
// again.
func WithIDGenerator(newID func() string) Option {
	return func(l *TaskList) {
		if newID != nil {
			l.newID = newID
		}
	}
}

// Load reads the collection from store once and returns a TaskList over it.
func Load(store Store, opts ...Option) (*TaskList, error) {
	l := &TaskList{
		store:  store,
		newID:  model.NewID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	tasks, err := store.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	l.tasks = model.Clone(tasks)
	l.issued = make(map[string]struct{}, len(l.tasks))
	for _, t := range l.tasks {
		l.issued[t.ID] = struct{}{}
	}
	l.logger.Debug("tasks loaded", zap.Int("count", len(l.tasks)))

	return l, nil
}

// Subscribe registers a listener for post-mutation refreshes.
func (l *TaskList) Subscribe(listener Listener) {
	l.listeners = append(l.listeners, listener)
}

// Tasks returns a copy of the collection in insertion order.
func (l *TaskList) Tasks() []model.Task {
	return model.Clone(l.tasks)
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Find returns the task with the given ID.
func (l *TaskList) Find(id string) (model.Task, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.tasks[i], true
	}
	return model.Task{}, false
}

// IDs returns the IDs of all tasks in order.
func (l *TaskList) IDs() []string {
	ids := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		ids[i] = t.ID
	}
	return ids
}

// Add appends a new open task. Blank text is a no-op and returns nil.
// An empty or unknown priority becomes model.DefaultPriority.
func (l *TaskList) Add(text string, priority model.Priority) (*model.Task, error) {
	text = model.NormalizeText(text)
	if text == "" {
		return nil, nil
	}

	id, err := l.uniqueID()
	if err != nil {
		return nil, err
	}

	task := model.Task{
		ID:        id,
		Text:      text,
		Completed: false,
		Priority:  priority.OrDefault(),
	}

	next := append(model.Clone(l.tasks), task)
	if err := l.commit(next); err != nil {
		return nil, err
	}
	l.issued[task.ID] = struct{}{}

	l.logger.Debug("task added", zap.String("id", task.ID), zap.String("priority", string(task.Priority)))
	return &task, nil
}

// Toggle flips the completed flag of the task with the given ID.
// Returns false if no such task exists.
func (l *TaskList) Toggle(id string) (bool, error) {
	i := l.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := model.Clone(l.tasks)
	next[i].Completed = !next[i].Completed
	if err := l.commit(next); err != nil {
		return false, err
	}

	l.logger.Debug("task toggled", zap.String("id", id), zap.Bool("completed", next[i].Completed))
	return true, nil
}

// Edit replaces the text and priority of a task, keeping its ID, completed
// flag and position. Blank text or an unknown ID is a no-op (false).
func (l *TaskList) Edit(id, text string, priority model.Priority) (bool, error) {
	text = model.NormalizeText(text)
	if text == "" {
		return false, nil
	}
	i := l.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := model.Clone(l.tasks)
	next[i].Text = text
	next[i].Priority = priority.OrDefault()
	if err := l.commit(next); err != nil {
		return false, err
	}

	l.logger.Debug("task edited", zap.String("id", id))
	return true, nil
}

// Delete removes the task with the given ID. Returns false if not found.
func (l *TaskList) Delete(id string) (bool, error) {
	i := l.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]model.Task, 0, len(l.tasks)-1)
	next = append(next, l.tasks[:i]...)
	next = append(next, l.tasks[i+1:]...)
	if err := l.commit(next); err != nil {
		return false, err
	}

	l.logger.Debug("task deleted", zap.String("id", id))
	return true, nil
}

// ClearCompleted removes every completed task, keeping the relative order
// of the rest. Returns the number of tasks removed.
func (l *TaskList) ClearCompleted() (int, error) {
	next := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if !t.Completed {
			next = append(next, t)
		}
	}

	removed := len(l.tasks) - len(next)
	if err := l.commit(next); err != nil {
		return 0, err
	}

	l.logger.Debug("completed tasks cleared", zap.Int("removed", removed))
	return removed, nil
}

// ClearAll removes every task and returns how many there were.
// Callers are responsible for confirming with the user first.
func (l *TaskList) ClearAll() (int, error) {
	removed := len(l.tasks)
	if err := l.commit([]model.Task{}); err != nil {
		return 0, err
	}

	l.logger.Debug("all tasks cleared", zap.Int("removed", removed))
	return removed, nil
}

// commit persists next and only then installs it and refreshes listeners.
// On a failed write the previous collection stays in place.
func (l *TaskList) commit(next []model.Task) error {
	if err := l.store.Write(next); err != nil {
		l.logger.Error("failed to persist tasks", zap.Error(err))
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	l.tasks = next
	for _, listener := range l.listeners {
		listener.Refresh(model.Clone(next))
	}
	return nil
}

func (l *TaskList) indexOf(id string) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueID draws IDs until one has never been issued, so an ID is not
// reused even after its task is deleted. With the default generator the
// first draw always succeeds.
func (l *TaskList) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := l.newID()
		if id == "" {
			continue
		}
		if _, ok := l.issued[id]; !ok {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique task ID after %d attempts", maxIDAttempts)
}

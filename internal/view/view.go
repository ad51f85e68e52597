// Package view projects the task collection into frames for display and
// holds the single in-place edit session.
package view

import (
	"fmt"
	"io"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"go.uber.org/zap"
)

// Row is one rendered task.
type Row struct {
	ID        string
	Text      string
	Completed bool
	Priority  model.Priority

	// Editing is set on the row of the open edit session; DraftText and
	// DraftPriority then hold the uncommitted values.
	Editing       bool
	DraftText     string
	DraftPriority model.Priority
}

// Stats summarizes a collection.
type Stats struct {
	Pending   int
	Completed int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d pending, %d completed", s.Pending, s.Completed)
}

// Frame is a full projection of one snapshot. Stats is nil when Empty.
type Frame struct {
	Rows  []Row
	Empty bool
	Stats *Stats
}

// Session is an open edit session.
type Session struct {
	ID       string
	Text     string
	Priority model.Priority
}

// Editor applies a committed edit. *ops.TaskList satisfies it.
type Editor interface {
	Edit(id, text string, priority model.Priority) (bool, error)
}

// Renderer turns snapshots into frames. It caches the last snapshot it was
// refreshed with and owns at most one edit session.
type Renderer struct {
	editor  Editor
	out     io.Writer
	logger  *zap.Logger
	tasks   []model.Task
	session *Session
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithOutput makes Refresh write every new frame to w.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) { r.out = w }
}

// WithLogger sets the logger for session diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns a Renderer over the initial snapshot tasks. Committed edits
// are sent to editor.
func New(editor Editor, tasks []model.Task, opts ...Option) *Renderer {
	r := &Renderer{
		editor: editor,
		logger: zap.NewNop(),
		tasks:  model.Clone(tasks),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render projects tasks in order. The open session, if it belongs to one
// of the tasks, is shown on that row.
func (r *Renderer) Render(tasks []model.Task) Frame {
	if len(tasks) == 0 {
		return Frame{Rows: []Row{}, Empty: true}
	}

	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = Row{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  t.Priority,
		}
		if r.session != nil && r.session.ID == t.ID {
			rows[i].Editing = true
			rows[i].DraftText = r.session.Text
			rows[i].DraftPriority = r.session.Priority
		}
	}

	stats := RenderStats(tasks)
	return Frame{Rows: rows, Stats: &stats}
}

// RenderStats counts pending and completed tasks.
func RenderStats(tasks []model.Task) Stats {
	completed := model.CountCompleted(tasks)
	return Stats{Pending: len(tasks) - completed, Completed: completed}
}

// RenderStats returns the counts for tasks.
func (r *Renderer) RenderStats(tasks []model.Task) Stats {
	return RenderStats(tasks)
}

// EnterEditMode opens an edit session on id, pre-filled with the task's
// current text and priority. Any other open session is dropped along with
// its draft. Returns false if id is not in the current snapshot.
func (r *Renderer) EnterEditMode(id string) bool {
	task, ok := r.find(id)
	if !ok {
		return false
	}

	if r.session != nil && r.session.ID != id {
		r.logger.Debug("edit draft abandoned", zap.String("id", r.session.ID))
	}
	r.session = &Session{ID: task.ID, Text: task.Text, Priority: task.Priority.OrDefault()}
	return true
}

// SetDraft replaces the draft of the open session. Without a session it
// does nothing.
func (r *Renderer) SetDraft(text string, priority model.Priority) {
	if r.session == nil {
		return
	}
	r.session.Text = text
	r.session.Priority = priority
}

// Editing returns the open session, if any.
func (r *Renderer) Editing() (Session, bool) {
	if r.session == nil {
		return Session{}, false
	}
	return *r.session, true
}

// ExitEditMode closes the session on id. With commit set the draft is
// passed to the Editor and its result returned; otherwise the draft is
// discarded. If id is not the open session nothing happens.
func (r *Renderer) ExitEditMode(id string, commit bool) (bool, error) {
	if r.session == nil || r.session.ID != id {
		return false, nil
	}

	draft := *r.session
	r.session = nil
	if !commit {
		return false, nil
	}
	return r.editor.Edit(draft.ID, draft.Text, draft.Priority)
}

// Refresh installs a settled snapshot. A session whose task is gone is
// closed. With an output writer configured the new frame is written.
func (r *Renderer) Refresh(tasks []model.Task) {
	r.tasks = model.Clone(tasks)
	if r.session != nil {
		if _, ok := r.find(r.session.ID); !ok {
			r.logger.Debug("edit session closed, task removed", zap.String("id", r.session.ID))
			r.session = nil
		}
	}
	if r.out != nil {
		WriteFrame(r.out, r.Render(r.tasks))
	}
}

// Current renders the last refreshed snapshot.
func (r *Renderer) Current() Frame {
	return r.Render(r.tasks)
}

func (r *Renderer) find(id string) (model.Task, bool) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// WriteFrame writes f as a plain-text list followed by the stats line.
func WriteFrame(w io.Writer, f Frame) {
	if f.Empty {
		fmt.Fprintln(w, cli.Gray("No tasks yet."))
		return
	}

	table := cli.NewTable()
	table.SetMaxWidth(3, cli.DefaultMaxTextWidth)
	for _, row := range f.Rows {
		table.AddRow(
			model.ShortID(row.ID),
			cli.Checkbox(row.Completed),
			cli.PriorityBadge(displayPriority(row)),
			displayText(row),
		)
	}
	table.Render(w)

	if f.Stats != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, f.Stats.String())
	}
}

func displayPriority(row Row) model.Priority {
	if row.Editing {
		return row.DraftPriority.OrDefault()
	}
	return row.Priority.OrDefault()
}

func displayText(row Row) string {
	if row.Editing {
		return row.DraftText + " " + cli.Gray("(editing)")
	}
	if row.Completed {
		return cli.Strike(row.Text)
	}
	return row.Text
}

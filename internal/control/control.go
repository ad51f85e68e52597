// Package control translates user gestures into task list operations.
//
// Surfaces (the CLI commands and the terminal UI) build an Event for each
// gesture and pass it to Controller.Dispatch. The controller holds no task
// data of its own: state lives in the ops.TaskList and the open edit
// session lives in the view.Renderer.
package control

import (
	"fmt"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/view"
	"go.uber.org/zap"
)

// Event is a user gesture.
type Event interface {
	event()
}

// AddRequested asks for a new task.
type AddRequested struct {
	Text     string
	Priority model.Priority
}

// ToggleRequested flips a task's completed flag.
type ToggleRequested struct {
	ID string
}

// EditStarted opens the edit session on a task.
type EditStarted struct {
	ID string
}

// DraftChanged updates the text or priority of the open edit session.
type DraftChanged struct {
	Text     string
	Priority model.Priority
}

// EditCommitted saves an edit.
type EditCommitted struct {
	ID       string
	Text     string
	Priority model.Priority
}

// EditCancelled closes the edit session without saving.
type EditCancelled struct {
	ID string
}

// DeleteRequested removes a task.
type DeleteRequested struct {
	ID string
}

// ClearCompletedRequested removes every completed task.
type ClearCompletedRequested struct{}

// ClearAllRequested removes every task. Nothing happens unless the user
// has confirmed.
type ClearAllRequested struct {
	Confirmed bool
}

func (AddRequested) event()            {}
func (ToggleRequested) event()         {}
func (EditStarted) event()             {}
func (DraftChanged) event()            {}
func (EditCommitted) event()           {}
func (EditCancelled) event()           {}
func (DeleteRequested) event()         {}
func (ClearCompletedRequested) event() {}
func (ClearAllRequested) event()       {}

// Outcome reports what a dispatched event did.
type Outcome struct {
	// Changed is true when the task collection was modified and persisted.
	Changed bool
	// Task is the created task for AddRequested.
	Task *model.Task
	// Removed counts tasks removed by delete and clear events.
	Removed int
	// Editing is true when an edit session is open after the event.
	Editing bool
}

// Controller dispatches events to the task list and the renderer.
type Controller struct {
	tasks           *ops.TaskList
	renderer        *view.Renderer
	defaultPriority model.Priority
	logger          *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithDefaultPriority sets the priority used when an add or edit event
// carries none.
func WithDefaultPriority(p model.Priority) Option {
	return func(c *Controller) {
		if p.Valid() {
			c.defaultPriority = p
		}
	}
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Controller. The renderer should already be subscribed to
// tasks so edit sessions follow deletions.
func New(tasks *ops.TaskList, renderer *view.Renderer, opts ...Option) *Controller {
	c := &Controller{
		tasks:           tasks,
		renderer:        renderer,
		defaultPriority: model.DefaultPriority,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dispatch applies e. Only storage failures are returned as errors;
// blank text and unknown IDs produce an unchanged Outcome.
func (c *Controller) Dispatch(e Event) (Outcome, error) {
	c.logger.Debug("dispatch", zap.String("event", fmt.Sprintf("%T", e)))

	switch e := e.(type) {
	case AddRequested:
		return c.add(e)
	case ToggleRequested:
		changed, err := c.tasks.Toggle(e.ID)
		return c.outcome(Outcome{Changed: changed}), err
	case EditStarted:
		c.renderer.EnterEditMode(e.ID)
		return c.outcome(Outcome{}), nil
	case DraftChanged:
		c.renderer.SetDraft(e.Text, e.Priority)
		return c.outcome(Outcome{}), nil
	case EditCommitted:
		return c.commitEdit(e)
	case EditCancelled:
		_, err := c.renderer.ExitEditMode(e.ID, false)
		return c.outcome(Outcome{}), err
	case DeleteRequested:
		removed, err := c.tasks.Delete(e.ID)
		out := Outcome{Changed: removed}
		if removed {
			out.Removed = 1
		}
		return c.outcome(out), err
	case ClearCompletedRequested:
		n, err := c.tasks.ClearCompleted()
		return c.outcome(Outcome{Changed: n > 0, Removed: n}), err
	case ClearAllRequested:
		if !e.Confirmed {
			return c.outcome(Outcome{}), nil
		}
		n, err := c.tasks.ClearAll()
		return c.outcome(Outcome{Changed: n > 0, Removed: n}), err
	default:
		return Outcome{}, fmt.Errorf("unknown event %T", e)
	}
}

func (c *Controller) add(e AddRequested) (Outcome, error) {
	text := model.NormalizeText(e.Text)
	if text == "" {
		return c.outcome(Outcome{}), nil
	}

	task, err := c.tasks.Add(text, c.priority(e.Priority))
	if err != nil {
		return c.outcome(Outcome{}), err
	}
	return c.outcome(Outcome{Changed: task != nil, Task: task}), nil
}

// commitEdit saves an edit. Blank text leaves the session open so the user
// can keep typing.
func (c *Controller) commitEdit(e EditCommitted) (Outcome, error) {
	text := model.NormalizeText(e.Text)
	if text == "" {
		return c.outcome(Outcome{}), nil
	}
	priority := c.priority(e.Priority)

	if s, ok := c.renderer.Editing(); ok && s.ID == e.ID {
		c.renderer.SetDraft(text, priority)
		changed, err := c.renderer.ExitEditMode(e.ID, true)
		return c.outcome(Outcome{Changed: changed}), err
	}

	changed, err := c.tasks.Edit(e.ID, text, priority)
	return c.outcome(Outcome{Changed: changed}), err
}

func (c *Controller) priority(p model.Priority) model.Priority {
	if p.Valid() {
		return p
	}
	return c.defaultPriority
}

func (c *Controller) outcome(o Outcome) Outcome {
	_, o.Editing = c.renderer.Editing()
	return o
}

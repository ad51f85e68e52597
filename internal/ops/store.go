package ops

import "github.com/jacksmith/todo/internal/model"

// Store defines the persistence interface required by the task list.
// The concrete implementations are the slots in package storage; the
// interface keeps the task list testable without a disk.
type Store interface {
	Read() ([]model.Task, error)
	Write(tasks []model.Task) error
}

// Listener is notified after every successful mutation with the settled,
// already persisted collection. Listeners receive their own copy.
type Listener interface {
	Refresh(tasks []model.Task)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(tasks []model.Task)

// Refresh calls f(tasks).
func (f ListenerFunc) Refresh(tasks []model.Task) {
	f(tasks)
}

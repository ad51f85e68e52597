// Package model defines the core data structures for todo.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPriority is returned when a priority string cannot be parsed.
var ErrInvalidPriority = errors.New("invalid priority")

// Priority is the fixed set of priority tags a task can carry.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when a task is created without an explicit priority.
const DefaultPriority = PriorityMedium

// Priorities lists every valid priority, lowest first.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// OrDefault returns p if it is valid, otherwise DefaultPriority.
func (p Priority) OrDefault() Priority {
	if p.Valid() {
		return p
	}
	return DefaultPriority
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// ParsePriority parses a priority name. It is case-insensitive and also
// accepts the single-letter forms l, m and h.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return PriorityLow, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "high", "h":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("%w %q: must be one of low, medium, high", ErrInvalidPriority, s)
}

// Task is a single to-do item.
type Task struct {
	ID        string   `json:"id" yaml:"id"`
	Text      string   `json:"text" yaml:"text"`
	Completed bool     `json:"completed" yaml:"completed"`
	Priority  Priority `json:"priority" yaml:"priority"`
}

// Clone returns a copy of tasks that shares no backing array with it.
// A nil input yields an empty, non-nil slice.
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// CountCompleted returns the number of completed tasks.
func CountCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

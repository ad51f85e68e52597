package ops

import (
	"strings"

	"github.com/jacksmith/todo/internal/model"
)

// TaskFilter specifies filtering criteria for listing tasks.
// Filtering never reorders; results keep collection order.
type TaskFilter struct {
	Completed *bool          // Filter by completion. Nil = both.
	Priority  model.Priority // Filter by priority. Empty = any.
	Query     string         // Case-insensitive substring of the text. Empty = any.
}

// TaskResult is a task together with its position in the collection.
type TaskResult struct {
	Task  model.Task
	Index int // 0-based position in the full collection
}

// ListTasks returns the tasks in l that match filter.
func ListTasks(l *TaskList, filter TaskFilter) []TaskResult {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var results []TaskResult
	for i, t := range l.tasks {
		if !matchesTaskFilter(&t, filter, query) {
			continue
		}
		results = append(results, TaskResult{Task: t, Index: i})
	}
	return results
}

func matchesTaskFilter(t *model.Task, f TaskFilter, query string) bool {
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if query != "" && !strings.Contains(strings.ToLower(t.Text), query) {
		return false
	}
	return true
}

// Summary holds the derived counts shown alongside the list.
type Summary struct {
	Total      int
	Pending    int
	Completed  int
	ByPriority map[model.Priority]int // pending tasks per priority
}

// Summarize computes counts for the current collection.
func Summarize(l *TaskList) Summary {
	s := Summary{
		Total:      len(l.tasks),
		ByPriority: make(map[model.Priority]int, len(model.Priorities)),
	}
	for _, t := range l.tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		s.ByPriority[t.Priority]++
	}
	return s
}

package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeSnapshot serializes the full task collection.
// The format is a JSON array of {id, text, completed, priority} records.
// A nil collection is encoded as an empty array, never as null.
func EncodeSnapshot(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot and normalizes
// the result (see Normalize). Empty input decodes to an empty collection.
func DecodeSnapshot(data []byte) ([]Task, error) {
	if len(data) == 0 {
		return []Task{}, nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	return Normalize(tasks, NewID), nil
}

// Normalize repairs a decoded collection so that it satisfies the
// collection invariants:
//   - tasks with blank text are dropped; other text is kept as stored
//   - unknown or missing priorities become DefaultPriority
//   - tasks without an ID get one from newID
//   - later tasks reusing an ID already seen are dropped
//
// Order is preserved.
func Normalize(tasks []Task, newID func() string) []Task {
	out := make([]Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))

	for _, t := range tasks {
		if NormalizeText(t.Text) == "" {
			continue
		}
		t.Priority = t.Priority.OrDefault()
		if t.ID == "" {
			t.ID = newID()
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}

	return out
}

// ExportYAML renders the collection as a YAML document for reading.
// Completed is always emitted so the document shows every field.
func ExportYAML(tasks []Task) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	addIntField(doc, "pending", len(tasks)-CountCompleted(tasks))
	addIntField(doc, "completed", CountCompleted(tasks))

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for i := range tasks {
		seq.Content = append(seq.Content, buildTaskNode(&tasks[i]))
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "tasks"},
		seq,
	)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

// buildTaskNode creates a yaml.Node for a Task.
func buildTaskNode(t *Task) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	addStringField(node, "id", t.ID)
	addStringField(node, "text", t.Text)
	addStringField(node, "priority", string(t.Priority))
	addBoolField(node, "completed", t.Completed)

	return node
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	// The explicit !!str tag makes the encoder quote values such as "yes" or "42".
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}

func addIntField(node *yaml.Node, key string, value int) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", value), Tag: "!!int"},
	)
}

func addBoolField(node *yaml.Node, key string, value bool) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%t", value), Tag: "!!bool"},
	)
}

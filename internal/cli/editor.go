package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jacksmith/todo/internal/model"
	"gopkg.in/yaml.v3"
)

// TaskDocument is the part of a task that can be changed in the editor.
type TaskDocument struct {
	Text     string         `yaml:"text"`
	Priority model.Priority `yaml:"priority"`
}

// taskDocument is the raw YAML form; priority is parsed separately so the
// short forms accepted by --priority work here too.
type taskDocument struct {
	Text     string `yaml:"text"`
	Priority string `yaml:"priority"`
}

const taskDocumentHeader = "# Editing task %s\n" +
	"# Priority is low, medium or high. Save and close the editor to apply.\n\n"

// EditTask opens task in the editor as a YAML document and returns the
// edited text and priority. The text comes back normalized. A missing
// priority keeps the task's own; blank text or an unknown priority is a
// ValidationError.
func EditTask(task model.Task) (TaskDocument, error) {
	body, err := yaml.Marshal(&taskDocument{Text: task.Text, Priority: string(task.Priority)})
	if err != nil {
		return TaskDocument{}, fmt.Errorf("failed to marshal task: %w", err)
	}
	content := append([]byte(fmt.Sprintf(taskDocumentHeader, model.ShortID(task.ID))), body...)

	edited, err := EditInEditor(content, ".yaml")
	if err != nil {
		return TaskDocument{}, err
	}
	return parseTaskDocument(edited, task.Priority)
}

func parseTaskDocument(data []byte, current model.Priority) (TaskDocument, error) {
	var raw taskDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return TaskDocument{}, fmt.Errorf("invalid YAML: %w", err)
	}

	doc := TaskDocument{Text: model.NormalizeText(raw.Text), Priority: current}
	if doc.Text == "" {
		return TaskDocument{}, &ValidationError{Field: "text", Message: "task text must not be blank"}
	}
	if strings.TrimSpace(raw.Priority) != "" {
		p, err := model.ParsePriority(raw.Priority)
		if err != nil {
			return TaskDocument{}, &ValidationError{
				Field:   "priority",
				Message: fmt.Sprintf("%q (expected low, medium or high)", raw.Priority),
			}
		}
		doc.Priority = p
	}
	return doc, nil
}

// EditInEditor opens content in $VISUAL or $EDITOR and returns what the
// user saved. The suffix names the temporary file type (e.g. ".yaml").
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or use --text/--priority instead of -i")
	}

	tmpFile, err := os.CreateTemp("", "todo-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := runEditor(editor, tmpPath); err != nil {
		return nil, err
	}

	result, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return result, nil
}

// getEditor returns the editor command from environment.
// VISUAL takes precedence over EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// runEditor executes the editor with the given file path.
// The editor value may carry arguments, e.g. "code --wait".
func runEditor(editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	args := append(parts[1:], path)
	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacksmith/todo/internal/model"
	"go.uber.org/zap"
)

// FileSlot stores the snapshot as a JSON file. Writes go to a temporary
// file in the same directory which is then renamed over the target.
type FileSlot struct {
	path   string
	logger *zap.Logger
}

// NewFileSlot returns a slot backed by the file at path.
// The file is created on first Write.
func NewFileSlot(path string, logger *zap.Logger) *FileSlot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSlot{path: path, logger: logger}
}

// Path returns the snapshot file path.
func (f *FileSlot) Path() string {
	return f.path
}

// Read returns the stored collection, or an empty one if the file is
// missing or does not parse.
func (f *FileSlot) Read() ([]model.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", f.path, err)
	}
	return decodeOrEmpty(data, f.logger, f.path), nil
}

// Write replaces the snapshot file.
func (f *FileSlot) Write(tasks []model.Task) error {
	data, err := model.EncodeSnapshot(tasks)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace snapshot %s: %w", f.path, err)
	}

	f.logger.Debug("snapshot written", zap.String("path", f.path), zap.Int("tasks", len(tasks)))
	return nil
}

// Close is a no-op; FileSlot holds no open handles.
func (f *FileSlot) Close() error {
	return nil
}

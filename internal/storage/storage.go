// Package storage provides the persistence adapter for todo: the .todo/
// directory and the slot that holds the serialized task collection.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacksmith/todo/internal/model"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// todoDir is the name of the todo directory.
	todoDir = ".todo"
	// configFile is the name of the storage config file within .todo/.
	configFile = "config.yaml"
	// boltFile holds the bbolt database for BackendBolt.
	boltFile = "todo.db"
	// jsonFile holds the snapshot for BackendFile.
	jsonFile = "tasks.json"
)

// Supported slot backends.
const (
	BackendBolt = "bolt"
	BackendFile = "file"
)

// Slot is a single durable location holding the task snapshot.
type Slot interface {
	// Read returns the last written collection. A missing or unparsable
	// snapshot yields an empty collection; only I/O failures are errors.
	Read() ([]model.Task, error)
	// Write replaces the snapshot with tasks.
	Write(tasks []model.Task) error
	Close() error
}

// StorageConfig contains settings stored in .todo/config.yaml.
type StorageConfig struct {
	Version int `yaml:"version"`
}

// Storage provides access to a .todo/ directory.
type Storage struct {
	root string // path to directory containing .todo/
}

// Open returns a Storage for the given directory.
// Returns error if .todo/ does not exist.
func Open(dir string) (*Storage, error) {
	path := filepath.Join(dir, todoDir)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".todo/ directory not found in %s (run `todo init`)", dir)
		}
		return nil, fmt.Errorf("failed to access .todo/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".todo is not a directory")
	}

	return &Storage{root: dir}, nil
}

// Init creates the .todo/ directory.
// Returns error if .todo/ already exists.
func Init(dir string) (*Storage, error) {
	path := filepath.Join(dir, todoDir)

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf(".todo/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .todo/: %w", err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .todo/: %w", err)
	}

	cfg := StorageConfig{Version: 1}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, configFile), cfgData, 0644); err != nil {
		os.RemoveAll(path)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir}, nil
}

// Root returns the root directory containing .todo/.
func (s *Storage) Root() string {
	return s.root
}

// TodoPath returns the path to the .todo/ directory.
func (s *Storage) TodoPath() string {
	return filepath.Join(s.root, todoDir)
}

// OpenSlot opens the snapshot slot for the given backend.
// An empty backend selects BackendBolt. The caller must Close the slot.
func (s *Storage) OpenSlot(backend string, logger *zap.Logger) (Slot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch backend {
	case "", BackendBolt:
		return OpenBolt(filepath.Join(s.TodoPath(), boltFile), logger)
	case BackendFile:
		return NewFileSlot(filepath.Join(s.TodoPath(), jsonFile), logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected %s or %s)", backend, BackendBolt, BackendFile)
	}
}

// decodeOrEmpty decodes a raw snapshot, degrading to an empty collection
// when it cannot be parsed.
func decodeOrEmpty(data []byte, logger *zap.Logger, source string) []model.Task {
	tasks, err := model.DecodeSnapshot(data)
	if err != nil {
		logger.Warn("discarding unreadable snapshot",
			zap.String("source", source),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return []model.Task{}
	}
	return tasks
}

package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/control"
	"github.com/jacksmith/todo/internal/logging"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/storage"
	"github.com/jacksmith/todo/internal/view"
	"go.uber.org/zap"
)

// app wires the task list, renderer and controller over the slot selected
// in .todoconfig.yaml. Callers must Close it.
type app struct {
	cfg      *storage.Config
	logger   *zap.Logger
	slot     storage.Slot
	tasks    *ops.TaskList
	renderer *view.Renderer
	ctrl     *control.Controller
}

func openApp() (*app, error) {
	s, err := storage.Open(".")
	if err != nil {
		return nil, err
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger, err := logging.New(level, os.Stderr)
	if err != nil {
		return nil, err
	}

	slot, err := s.OpenSlot(cfg.Backend, logger)
	if err != nil {
		return nil, err
	}

	tasks, err := ops.Load(slot, ops.WithLogger(logger))
	if err != nil {
		slot.Close()
		return nil, err
	}

	renderer := view.New(tasks, tasks.Tasks(), view.WithLogger(logger))
	tasks.Subscribe(renderer)

	ctrl := control.New(tasks, renderer,
		control.WithDefaultPriority(cfg.DefaultPriority),
		control.WithLogger(logger),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		slot:     slot,
		tasks:    tasks,
		renderer: renderer,
		ctrl:     ctrl,
	}, nil
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.slot.Close()
}

// resolve turns a user-typed reference into a task ID.
func (a *app) resolve(ref string) (string, error) {
	return cli.MatchID(ref, a.tasks.IDs())
}

// parsePriorityFlag validates a --priority value. Empty means unset.
func parsePriorityFlag(value string) (model.Priority, error) {
	if value == "" {
		return "", nil
	}
	p, err := model.ParsePriority(value)
	if err != nil {
		return "", &cli.ValidationError{
			Field:   "priority",
			Message: fmt.Sprintf("%q (expected low, medium or high)", value),
		}
	}
	return p, nil
}

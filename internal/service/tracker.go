package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlowery/punchin/internal/domain"
	"github.com/mlowery/punchin/internal/repository"
)

// Tracker orchestrates the session lifecycle for the status surface. It
// owns the open-session cache the repository deliberately does not know
// about: every mutation invalidates, every read goes through it.
type Tracker struct {
	sessions repository.SessionRepo
	tasks    repository.TaskRepo
	cache    *OpenSessionCache
}

// NewTracker creates a Tracker. A nil cache gets a default-TTL one.
func NewTracker(sessions repository.SessionRepo, tasks repository.TaskRepo, cache *OpenSessionCache) *Tracker {
	if cache == nil {
		cache = NewOpenSessionCache(0)
	}
	return &Tracker{sessions: sessions, tasks: tasks, cache: cache}
}

// Start begins timing the given task, closing whatever was running.
func (t *Tracker) Start(ctx context.Context, taskID int64) (bool, error) {
	ok, err := t.sessions.Start(ctx, taskID)
	if err != nil {
		return false, err
	}
	t.cache.Invalidate()
	return ok, nil
}

// StartByName resolves an active task by its trimmed name (newest match
// wins) and starts it. Returns the resolved task.
func (t *Tracker) StartByName(ctx context.Context, name string) (*domain.Task, error) {
	task, err := t.FindTask(ctx, name)
	if err != nil {
		return nil, err
	}
	if _, err := t.Start(ctx, task.ID); err != nil {
		return nil, err
	}
	return task, nil
}

// FindTask resolves an active task by trimmed name across all projects.
// Task listing is newest-first, so the most recent duplicate wins.
func (t *Tracker) FindTask(ctx context.Context, name string) (*domain.Task, error) {
	name = strings.TrimSpace(name)
	tasks, err := t.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].Name == name {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %q: %w", name, repository.ErrNotFound)
}

// Stop closes the running session, if any.
func (t *Tracker) Stop(ctx context.Context) (bool, error) {
	ok, err := t.sessions.Stop(ctx)
	if err != nil {
		return false, err
	}
	t.cache.Invalidate()
	return ok, nil
}

// Remove soft-deletes a session by id.
func (t *Tracker) Remove(ctx context.Context, id int64) (bool, error) {
	ok, err := t.sessions.Remove(ctx, id)
	if err != nil {
		return false, err
	}
	t.cache.Invalidate()
	return ok, nil
}

// Current returns the running session through the cache; nil when idle.
func (t *Tracker) Current(ctx context.Context) (*domain.Session, error) {
	return t.cache.Get(ctx, t.sessions.Open)
}

package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kadai/internal/storage"
	"kadai/internal/task"
)

// Store owns the task collection. All mutations write the full collection
// back through the persistor; the collection keeps insertion order.
type Store struct {
	persist storage.Persistor
	log     *zap.Logger
	tasks   []task.Task
}

// Load builds a store from whatever the persistor holds. The persistor treats
// corrupt data as an empty collection, so only real I/O failures surface here.
func Load(p storage.Persistor, log *zap.Logger) (*Store, error) {
	tasks, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	log.Info("loaded tasks", zap.Int("count", len(tasks)))
	return &Store{persist: p, log: log, tasks: tasks}, nil
}

// List returns all tasks in insertion order.
func (s *Store) List() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ListByCategory returns the tasks whose category equals filter, in insertion
// order. The "all" sentinel disables filtering.
func (s *Store) ListByCategory(filter string) []task.Task {
	if filter == task.FilterAll {
		return s.List()
	}
	var out []task.Task
	for _, t := range s.tasks {
		if string(t.Category) == filter {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) FindByID(id string) (task.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

func (s *Store) Create(in task.Input) (task.Task, error) {
	in.Sanitize()
	if err := in.Validate(); err != nil {
		return task.Task{}, err
	}
	t := task.Task{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Reminder:     in.Reminder,
		ReminderTime: reminderTime(in),
		CreatedAt:    time.Now().UTC(),
	}
	s.tasks = append(s.tasks, t)
	if err := s.save(); err != nil {
		return task.Task{}, err
	}
	s.log.Debug("created task", zap.String("id", t.ID), zap.String("category", string(t.Category)))
	return t, nil
}

// Update replaces the mutable fields of the task with id, preserving its id,
// creation time and completion state.
func (s *Store) Update(id string, in task.Input) (task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, task.ErrNotFound
	}
	in.Sanitize()
	if err := in.Validate(); err != nil {
		return task.Task{}, err
	}
	t := s.tasks[i]
	t.Title = in.Title
	t.Description = in.Description
	t.Category = in.Category
	t.Reminder = in.Reminder
	t.ReminderTime = reminderTime(in)
	s.tasks[i] = t
	if err := s.save(); err != nil {
		return task.Task{}, err
	}
	s.log.Debug("updated task", zap.String("id", id))
	return t, nil
}

// Delete removes the task with id. Deleting an absent id is a no-op.
func (s *Store) Delete(id string) error {
	i := s.index(id)
	if i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	if err := s.save(); err != nil {
		return err
	}
	s.log.Debug("deleted task", zap.String("id", id), zap.Bool("existed", i >= 0))
	return nil
}

func (s *Store) ToggleComplete(id string) (task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, task.ErrNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	if err := s.save(); err != nil {
		return task.Task{}, err
	}
	t := s.tasks[i]
	s.log.Debug("toggled task", zap.String("id", id), zap.Bool("completed", t.Completed))
	return t, nil
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) save() error {
	if err := s.persist.Save(s.tasks); err != nil {
		s.log.Error("persist failed", zap.Error(err))
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// reminderTime drops the instant when the reminder flag is off, so a stale
// time never survives an edit that unchecked the reminder. Times are stored
// in UTC so the serialized form round-trips exactly.
func reminderTime(in task.Input) *time.Time {
	if !in.Reminder || in.ReminderTime == nil {
		return nil
	}
	v := in.ReminderTime.UTC()
	return &v
}

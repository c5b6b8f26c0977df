package reminder

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"go.uber.org/zap"

	"kadai/internal/task"
)

var now = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func armed(id string, at time.Time) task.Task {
	return task.Task{ID: id, Title: id, Reminder: true, ReminderTime: &at}
}

func TestScheduler_Check(t *testing.T) {
	t.Run("fires inside the window", func(t *testing.T) {
		is := is.New(t)
		s := New(time.Minute, zap.NewNop())
		due := s.Check([]task.Task{armed("a", now.Add(30*time.Second))}, now)
		is.Equal(len(due), 1)
		is.Equal(due[0].ID, "a")
	})

	t.Run("does not fire after the instant", func(t *testing.T) {
		is := is.New(t)
		s := New(time.Minute, zap.NewNop())
		due := s.Check([]task.Task{armed("a", now.Add(-time.Second))}, now)
		is.Equal(len(due), 0)
	})

	t.Run("does not fire for completed tasks", func(t *testing.T) {
		is := is.New(t)
		s := New(time.Minute, zap.NewNop())
		tk := armed("a", now.Add(30*time.Second))
		tk.Completed = true
		is.Equal(len(s.Check([]task.Task{tk}, now)), 0)
	})

	t.Run("does not fire with the reminder flag off", func(t *testing.T) {
		is := is.New(t)
		s := New(time.Minute, zap.NewNop())
		tk := armed("a", now.Add(30*time.Second))
		tk.Reminder = false
		is.Equal(len(s.Check([]task.Task{tk}, now)), 0)
	})

	t.Run("an instant straddling two ticks fires once", func(t *testing.T) {
		is := is.New(t)
		s := New(time.Minute, zap.NewNop())
		tasks := []task.Task{armed("a", now.Add(50*time.Second))}
		is.Equal(len(s.Check(tasks, now)), 1)
		// next tick arrives a little early; the instant is still ahead
		is.Equal(len(s.Check(tasks, now.Add(55*time.Second))), 0)
	})

	t.Run("editing the reminder time re-arms it", func(t *testing.T) {
		is := is.New(t)
		s := New(time.Minute, zap.NewNop())
		is.Equal(len(s.Check([]task.Task{armed("a", now.Add(30*time.Second))}, now)), 1)

		moved := []task.Task{armed("a", now.Add(90*time.Second))}
		is.Equal(len(s.Check(moved, now)), 0) // outside this window
		is.Equal(len(s.Check(moved, now.Add(time.Minute))), 1)
	})

	t.Run("a deleted task clears its fired mark", func(t *testing.T) {
		is := is.New(t)
		s := New(time.Minute, zap.NewNop())
		at := now.Add(30 * time.Second)
		is.Equal(len(s.Check([]task.Task{armed("a", at)}, now)), 1)

		s.Check(nil, now) // collection emptied
		is.Equal(len(s.fired), 0)

		// a new task reusing the id starts clean
		is.Equal(len(s.Check([]task.Task{armed("a", at)}, now)), 1)
	})

	t.Run("fires each qualifying task per tick", func(t *testing.T) {
		is := is.New(t)
		s := New(time.Minute, zap.NewNop())
		tasks := []task.Task{
			armed("a", now.Add(10*time.Second)),
			armed("b", now.Add(20*time.Second)),
			armed("c", now.Add(2*time.Minute)),
		}
		due := s.Check(tasks, now)
		is.Equal(len(due), 2)
	})
}

func TestNew_DefaultInterval(t *testing.T) {
	is := is.New(t)
	is.Equal(New(0, zap.NewNop()).Interval(), DefaultInterval)
	is.Equal(New(30*time.Second, zap.NewNop()).Interval(), 30*time.Second)
}

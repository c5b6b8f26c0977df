package reminder

import (
	"time"

	"go.uber.org/zap"

	"kadai/internal/task"
)

// DefaultInterval is the polling cadence for due reminders.
const DefaultInterval = time.Minute

// Scheduler scans the collection on each tick and reports the tasks whose
// reminder instant falls inside the next polling window. Each armed instant
// fires at most once: a fired mark is kept per task and keyed to the instant,
// so editing the reminder time re-arms it while overlapping tick windows do
// not double-fire.
type Scheduler struct {
	interval time.Duration
	fired    map[string]time.Time
	log      *zap.Logger
}

func New(interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		fired:    map[string]time.Time{},
		log:      log,
	}
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Check runs one tick against the given collection and returns the tasks due
// for notification. Tasks that are completed, have no reminder armed, or
// whose instant is outside the open window (now, now+interval) are skipped.
func (s *Scheduler) Check(tasks []task.Task, now time.Time) []task.Task {
	s.prune(tasks)

	var due []task.Task
	for _, t := range tasks {
		if !t.ReminderDue(now, s.interval) {
			continue
		}
		if at, ok := s.fired[t.ID]; ok && at.Equal(*t.ReminderTime) {
			continue
		}
		s.fired[t.ID] = *t.ReminderTime
		due = append(due, t)
		s.log.Info("reminder due",
			zap.String("id", t.ID),
			zap.Time("at", *t.ReminderTime))
	}
	return due
}

// prune drops fired marks for tasks that no longer exist or whose reminder
// was disarmed, keeping the mark set bounded by the collection size.
func (s *Scheduler) prune(tasks []task.Task) {
	if len(s.fired) == 0 {
		return
	}
	armed := map[string]bool{}
	for _, t := range tasks {
		if t.Reminder && t.ReminderTime != nil {
			armed[t.ID] = true
		}
	}
	for id := range s.fired {
		if !armed[id] {
			delete(s.fired, id)
		}
	}
}

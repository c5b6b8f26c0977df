package task

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("task not found")

// Category groups tasks for filtering. The set is fixed.
type Category string

const (
	CategoryToday     Category = "today"
	CategoryThisWeek  Category = "this-week"
	CategoryThisMonth Category = "this-month"
	CategoryImportant Category = "important"
	CategoryGeneral   Category = "general"
)

// FilterAll is the list-filter sentinel meaning "no filtering". It is not a
// storable category.
const FilterAll = "all"

func Categories() []Category {
	return []Category{
		CategoryToday,
		CategoryThisWeek,
		CategoryThisMonth,
		CategoryImportant,
		CategoryGeneral,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryToday, CategoryThisWeek, CategoryThisMonth, CategoryImportant, CategoryGeneral:
		return true
	default:
		return false
	}
}

func (c Category) Label() string {
	switch c {
	case CategoryToday:
		return "Today"
	case CategoryThisWeek:
		return "This Week"
	case CategoryThisMonth:
		return "This Month"
	case CategoryImportant:
		return "Important"
	case CategoryGeneral:
		return "General"
	default:
		return string(c)
	}
}

// ValidFilter reports whether s is a category or the "all" sentinel.
func ValidFilter(s string) bool {
	return s == FilterAll || Category(s).Valid()
}

type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     Category   `json:"category"`
	Reminder     bool       `json:"reminder"`
	ReminderTime *time.Time `json:"reminderTime"`
	Completed    bool       `json:"completed"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ReminderDue reports whether the task's reminder instant falls inside the
// open window (now, now+window). Completed tasks and tasks without an armed
// reminder are never due.
func (t Task) ReminderDue(now time.Time, window time.Duration) bool {
	if !t.Reminder || t.Completed || t.ReminderTime == nil {
		return false
	}
	delta := t.ReminderTime.Sub(now)
	return delta > 0 && delta < window
}

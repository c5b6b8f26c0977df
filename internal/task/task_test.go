package task

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestInput_Validate(t *testing.T) {
	t.Run("accepts a minimal valid input", func(t *testing.T) {
		is := is.New(t)
		in := Input{Title: "Drink water", Category: CategoryToday}
		is.NoErr(in.Validate())
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		is := is.New(t)
		in := Input{Title: "", Category: CategoryToday}
		err := in.Validate()
		var verr *ValidationError
		is.True(errors.As(err, &verr))
		is.Equal(verr.Fields, []string{"title is required"})
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		is := is.New(t)
		in := Input{Title: "Drink water", Category: Category("someday")}
		err := in.Validate()
		var verr *ValidationError
		is.True(errors.As(err, &verr))
		is.Equal(len(verr.Fields), 1)
	})

	t.Run("a reminder time without the flag is not an error", func(t *testing.T) {
		is := is.New(t)
		at := time.Now()
		in := Input{Title: "x", Category: CategoryGeneral, Reminder: false, ReminderTime: &at}
		is.NoErr(in.Validate())
	})
}

func TestInput_Sanitize(t *testing.T) {
	is := is.New(t)
	in := Input{Title: "  Drink\x00 water \x1b", Description: "a\tb\nc\x07"}
	in.Sanitize()
	is.Equal(in.Title, "Drink water")
	is.Equal(in.Description, "a\tb\nc")
}

func TestCategory(t *testing.T) {
	is := is.New(t)
	for _, c := range Categories() {
		is.True(c.Valid())
	}
	is.True(!Category("all").Valid()) // "all" is a filter, not a category
	is.True(ValidFilter("all"))
	is.True(ValidFilter("this-week"))
	is.True(!ValidFilter("someday"))
	is.Equal(CategoryThisWeek.Label(), "This Week")
	is.Equal(CategoryToday.Label(), "Today")
}

func TestTask_ReminderDue(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	window := time.Minute
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	t.Run("due inside the window", func(t *testing.T) {
		is := is.New(t)
		tk := Task{Reminder: true, ReminderTime: at(30 * time.Second)}
		is.True(tk.ReminderDue(now, window))
	})

	t.Run("not due once the instant has passed", func(t *testing.T) {
		is := is.New(t)
		tk := Task{Reminder: true, ReminderTime: at(-time.Second)}
		is.True(!tk.ReminderDue(now, window))
	})

	t.Run("not due at or beyond the window edge", func(t *testing.T) {
		is := is.New(t)
		tk := Task{Reminder: true, ReminderTime: at(window)}
		is.True(!tk.ReminderDue(now, window))
	})

	t.Run("completed tasks never fire", func(t *testing.T) {
		is := is.New(t)
		tk := Task{Reminder: true, ReminderTime: at(30 * time.Second), Completed: true}
		is.True(!tk.ReminderDue(now, window))
	})

	t.Run("a disarmed reminder never fires", func(t *testing.T) {
		is := is.New(t)
		tk := Task{Reminder: false, ReminderTime: at(30 * time.Second)}
		is.True(!tk.ReminderDue(now, window))
		tk = Task{Reminder: true, ReminderTime: nil}
		is.True(!tk.ReminderDue(now, window))
	})
}

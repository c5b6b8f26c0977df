package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kadai/internal/task"
)

const reminderTimeLayout = "2006-01-02 15:04"

// formState holds the task entry form: a blank create form, or an edit form
// pre-filled from an existing task (editingID set). Field values stay strings
// until submit.
type formState struct {
	editingID    string
	title        string
	description  string
	category     string
	reminder     string
	reminderTime string
	index        int
}

func formFields() []string {
	return []string{
		"title",
		"description",
		"category (today/this-week/this-month/important/general)",
		"reminder (y/n)",
		"reminder time (YYYY-MM-DD HH:MM)",
	}
}

func (f formState) currentLabel() string {
	return formFields()[f.index]
}

func (f formState) currentValue() string {
	switch f.index {
	case 0:
		return f.title
	case 1:
		return f.description
	case 2:
		return f.category
	case 3:
		return f.reminder
	case 4:
		return f.reminderTime
	default:
		return ""
	}
}

func (f *formState) setCurrentValue(v string) {
	switch f.index {
	case 0:
		f.title = v
	case 1:
		f.description = v
	case 2:
		f.category = v
	case 3:
		f.reminder = v
	case 4:
		f.reminderTime = v
	}
}

// taskInput parses the form fields. Category and title problems are left for
// the store's validation; only the time format is parsed here.
func (f formState) taskInput() (task.Input, error) {
	in := task.Input{
		Title:       f.title,
		Description: f.description,
		Category:    task.Category(strings.TrimSpace(strings.ToLower(f.category))),
		Reminder:    parseYN(f.reminder),
	}
	if in.Reminder {
		v := strings.TrimSpace(f.reminderTime)
		if v != "" {
			t, err := time.ParseInLocation(reminderTimeLayout, v, time.Local)
			if err != nil {
				return in, fmt.Errorf("reminder time must look like %s", reminderTimeLayout)
			}
			in.ReminderTime = &t
		}
	}
	return in, nil
}

func (m Model) openCreateForm() (tea.Model, tea.Cmd) {
	m.form = &formState{category: string(task.CategoryGeneral), reminder: "n"}
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.status = "Add task: enter to save/next field, esc to cancel"
	return m, nil
}

func (m Model) openEditForm(t task.Task) (tea.Model, tea.Cmd) {
	f := &formState{
		editingID:   t.ID,
		title:       t.Title,
		description: t.Description,
		category:    string(t.Category),
		reminder:    boolToYN(t.Reminder),
	}
	if t.Reminder && t.ReminderTime != nil {
		f.reminderTime = t.ReminderTime.Local().Format(reminderTimeLayout)
	}
	m.form = f
	m.input.SetValue(f.currentValue())
	m.input.Placeholder = f.currentLabel()
	m.input.Focus()
	m.status = "Edit task: enter to save/next field, esc to cancel"
	return m, nil
}

func (m Model) closeForm(status string) Model {
	m.form = nil
	m.input.SetValue("")
	m.input.Blur()
	m.status = status
	return m
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		return m.closeForm("Cancelled"), nil
	case m.cfg.Keys.NextField, "tab":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(formFields()))
		m.syncFormInput()
		return m, nil
	case m.cfg.Keys.PrevField, "shift+tab":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(formFields()))
		m.syncFormInput()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(formFields())-1 {
			return m.submitForm()
		}
		m.form.index++
		m.syncFormInput()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) syncFormInput() {
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.input.CursorEnd()
}

// submitForm routes to create or update. Validation failures keep the form
// open with the message on the status line; nothing is written to the store.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	in, err := m.form.taskInput()
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	if m.form.editingID != "" {
		_, err = m.store.Update(m.form.editingID, in)
	} else {
		_, err = m.store.Create(in)
	}
	if err != nil {
		var verr *task.ValidationError
		if errors.As(err, &verr) {
			m.status = verr.Error()
			return m, nil
		}
		if errors.Is(err, task.ErrNotFound) {
			return m.closeForm("Task no longer exists"), nil
		}
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}

	if m.form.editingID != "" {
		return m.closeForm("Task updated"), nil
	}
	m.cursor = clampCursor(len(m.visible())-1, len(m.visible()))
	return m.closeForm("Task added"), nil
}

func parseYN(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes" || v == "true" || v == "1"
}

func boolToYN(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

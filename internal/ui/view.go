package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kadai/internal/config"
	"kadai/internal/task"
)

const (
	primary   = lipgloss.Color("#fff")
	secondary = lipgloss.Color("#888")
	faded     = lipgloss.Color("#555")

	green  = lipgloss.Color("#00a352")
	red    = lipgloss.Color("#c42912")
	yellow = lipgloss.Color("#c4b810")
)

var (
	activeTabStyle   = lipgloss.NewStyle().Foreground(primary).Bold(true)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(secondary)
	dividerStyle     = lipgloss.NewStyle().Foreground(faded)

	activeFilterStyle = lipgloss.NewStyle().Foreground(yellow).Bold(true)
	doneStyle         = lipgloss.NewStyle().Foreground(green)
	alertStyle        = lipgloss.NewStyle().
				Foreground(red).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1)
	badgeStyle = lipgloss.NewStyle().Foreground(secondary)
	descStyle  = lipgloss.NewStyle().Foreground(faded)
)

// TaskCard is the render-ready projection of a task, decoupled from the
// storage shape.
type TaskCard struct {
	ID            string
	Title         string
	Description   string
	CategoryLabel string
	ReminderLabel string
	Completed     bool
}

func newCards(tasks []task.Task) []TaskCard {
	cards := make([]TaskCard, len(tasks))
	for i, t := range tasks {
		cards[i] = TaskCard{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			CategoryLabel: t.Category.Label(),
			ReminderLabel: reminderLabel(t),
			Completed:     t.Completed,
		}
	}
	return cards
}

func reminderLabel(t task.Task) string {
	if !t.Reminder || t.ReminderTime == nil {
		return ""
	}
	return t.ReminderTime.Local().Format("Jan 2, 3:04 PM")
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if len(m.alerts) > 0 {
		b.WriteString(alertStyle.Render("⏰ " + m.alerts[0]))
		b.WriteString("\npress any key to dismiss")
		b.WriteString("\n\n")
		b.WriteString(m.status)
		return b.String()
	}

	if m.form != nil {
		b.WriteString(m.renderForm())
	} else if m.tab == tabTasks {
		b.WriteString(m.renderFilterBar())
		b.WriteString("\n\n")
		b.WriteString(m.renderTaskCards())
	} else {
		b.WriteString(m.renderManageList())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))
	return b.String()
}

func (m Model) renderTabs() string {
	names := []string{"Tasks", "Manage"}
	rendered := make([]string, len(names))
	for i, name := range names {
		style := inactiveTabStyle
		if tab(i) == m.tab {
			style = activeTabStyle
		}
		rendered[i] = style.Render(name)
	}
	return strings.Join(rendered, dividerStyle.Render(" | "))
}

func (m Model) renderFilterBar() string {
	filters := []string{task.FilterAll}
	for _, c := range task.Categories() {
		filters = append(filters, string(c))
	}
	parts := make([]string, len(filters))
	for i, f := range filters {
		label := fmt.Sprintf("%d:%s", i+1, filterLabel(f))
		if f == m.filter {
			label = activeFilterStyle.Render(label)
		} else {
			label = inactiveTabStyle.Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTaskCards() string {
	cards := newCards(m.visible())
	if len(cards) == 0 {
		return "No tasks here. Press 'a' to add one."
	}
	var b strings.Builder
	for i, c := range cards {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		checkbox := "[ ]"
		title := c.Title
		if c.Completed {
			checkbox = doneStyle.Render("[x]")
			title = doneStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor, checkbox, title, badgeStyle.Render(c.CategoryLabel)))
		if c.Description != "" {
			b.WriteString("      " + descStyle.Render(c.Description) + "\n")
		}
		if c.ReminderLabel != "" {
			b.WriteString("      " + badgeStyle.Render("⏰ "+c.ReminderLabel) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderManageList() string {
	cards := newCards(m.visible())
	if len(cards) == 0 {
		return "No tasks yet. Press 'a' to add one."
	}
	var b strings.Builder
	for i, c := range cards {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		title := c.Title
		if c.Completed {
			title += " " + doneStyle.Render("✓")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, title))
		meta := []string{c.CategoryLabel}
		if c.ReminderLabel != "" {
			meta = append(meta, "reminder set")
		}
		if c.Completed {
			meta = append(meta, "completed")
		}
		b.WriteString("   " + badgeStyle.Render(strings.Join(meta, " • ")) + "\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	if m.form.editingID != "" {
		b.WriteString("Edit Task")
	} else {
		b.WriteString("Add New Task")
	}
	b.WriteString("\n\n")

	values := []string{
		m.form.title,
		m.form.description,
		m.form.category,
		m.form.reminder,
		m.form.reminderTime,
	}
	for i, name := range formFields() {
		prefix := " "
		if i == m.form.index {
			prefix = ">"
		}
		val := values[i]
		if i == m.form.index {
			val = m.input.View()
		} else if strings.TrimSpace(val) == "" {
			val = descStyle.Render("(empty)")
		}
		b.WriteString(fmt.Sprintf("%s %-48s : %s\n", prefix, name, val))
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return dividerStyle.Render(fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s tab • 1-6 filter • %s quit",
		k.Up, k.Down, k.Add, k.Toggle, k.Edit, k.Delete, k.SwitchTab, k.Quit))
}

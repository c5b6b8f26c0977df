package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kadai/internal/config"
	"kadai/internal/notify"
	"kadai/internal/reminder"
	"kadai/internal/store"
	"kadai/internal/task"
)

type tab int

const (
	tabTasks tab = iota
	tabManage
)

// tickMsg is one execution of the reminder poll, delivered through the event
// loop so the store is only ever touched from one place.
type tickMsg time.Time

type Model struct {
	store    *store.Store
	sched    *reminder.Scheduler
	notifier notify.Notifier
	cfg      config.Config
	log      *zap.Logger

	tab    tab
	filter string
	cursor int
	width  int

	form       *formState
	input      textinput.Model
	confirmDel bool
	pendingDel *task.Task
	alerts     []string
	status     string
}

// Run starts the interactive program. All collaborators are injected; the ui
// package holds no globals.
func Run(st *store.Store, sched *reminder.Scheduler, n notify.Notifier, cfg config.Config, log *zap.Logger) error {
	program := tea.NewProgram(NewModel(st, sched, n, cfg, log))
	_, err := program.Run()
	return err
}

func NewModel(st *store.Store, sched *reminder.Scheduler, n notify.Notifier, cfg config.Config, log *zap.Logger) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	filter := strings.ToLower(cfg.DefaultFilter)
	if !task.ValidFilter(filter) {
		filter = task.FilterAll
	}

	return Model{
		store:    st,
		sched:    sched,
		notifier: n,
		cfg:      cfg,
		log:      log,
		filter:   filter,
		input:    ti,
		status:   "Press 'a' to add a task, 1-6 to filter, tab to switch views.",
	}
}

// Init fires the first reminder check immediately; every handled tick
// schedules the next one.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m = m.checkReminders(time.Time(msg))
		return m, m.nextTick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 10
	case tea.KeyMsg:
		if len(m.alerts) > 0 {
			m.alerts = m.alerts[1:]
			return m, nil
		}
		if m.form != nil {
			return m.updateFormMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateListMode(msg.String())
	}
	return m, nil
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.sched.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// checkReminders runs one scheduler tick. The bell is best-effort; the
// blocking alert overlay is always queued so a reminder is never silent.
func (m Model) checkReminders(now time.Time) Model {
	due := m.sched.Check(m.store.List(), now)
	for _, t := range due {
		if err := m.notifier.Notify("Kadai Reminder", "Time for: "+t.Title); err != nil {
			m.log.Warn("notification channel unavailable", zap.Error(err))
		}
		m.alerts = append(m.alerts, "Reminder: "+t.Title)
	}
	return m
}

// visible is the task list the cursor moves over: the management tab always
// shows everything, the tasks tab respects the current filter.
func (m Model) visible() []task.Task {
	if m.tab == tabManage {
		return m.store.List()
	}
	return m.store.ListByCategory(m.filter)
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	visible := m.visible()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(visible) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(visible))
		}
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(visible))
		}
	case m.cfg.Keys.SwitchTab:
		if m.tab == tabTasks {
			m.tab = tabManage
		} else {
			m.tab = tabTasks
		}
		m.cursor = 0
	case "1", "2", "3", "4", "5", "6":
		if m.tab != tabTasks {
			return m, nil
		}
		m.filter = filterForKey(key)
		m.cursor = 0
		m.status = "Filter: " + filterLabel(m.filter)
	case m.cfg.Keys.Add:
		return m.openCreateForm()
	case m.cfg.Keys.Toggle:
		if m.tab != tabTasks {
			m.status = "Switch to the Tasks tab to complete tasks"
			return m, nil
		}
		if len(visible) == 0 {
			return m, nil
		}
		return m.toggleTask(visible[clampCursor(m.cursor, len(visible))].ID)
	case m.cfg.Keys.Edit:
		if m.tab != tabManage {
			m.status = "Switch to the Manage tab to edit tasks"
			return m, nil
		}
		if len(visible) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.openEditForm(visible[clampCursor(m.cursor, len(visible))])
	case m.cfg.Keys.Delete:
		if m.tab != tabManage {
			m.status = "Switch to the Manage tab to delete tasks"
			return m, nil
		}
		if len(visible) == 0 {
			return m, nil
		}
		t := visible[clampCursor(m.cursor, len(visible))]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
	}
	return m, nil
}

func (m Model) toggleTask(id string) (tea.Model, tea.Cmd) {
	t, err := m.store.ToggleComplete(id)
	if err != nil {
		// stale cursor; refresh the view rather than crash
		m.status = "Task no longer exists"
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		return m, nil
	}
	if t.Completed {
		m.status = "Completed: " + t.Title
	} else {
		m.status = "Reopened: " + t.Title
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if err := m.store.Delete(m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.status = "Deleted: " + m.pendingDel.Title
		}
		m.confirmDel = false
		m.pendingDel = nil
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		return m, nil
	default:
		return m, nil
	}
}

func filterForKey(key string) string {
	switch key {
	case "2":
		return string(task.CategoryToday)
	case "3":
		return string(task.CategoryThisWeek)
	case "4":
		return string(task.CategoryThisMonth)
	case "5":
		return string(task.CategoryImportant)
	case "6":
		return string(task.CategoryGeneral)
	default:
		return task.FilterAll
	}
}

func filterLabel(filter string) string {
	if filter == task.FilterAll {
		return "All"
	}
	return task.Category(filter).Label()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

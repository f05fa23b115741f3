package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daywise/internal/export"
	"daywise/internal/state"
	"daywise/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	mgr    *state.Manager
	store  *store.Store
	width  int
	height int

	activeView   viewState
	showHelp     bool
	backupPick   bool
	backupCursor int

	today    todayModel
	habits   habitsModel
	tasks    tasksModel
	finance  financeModel
	focus    focusModel
	notes    notesModel
	reports  reportsModel
	settings settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(mgr *state.Manager, s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		mgr:        mgr,
		store:      s,
		activeView: viewToday,
		today:      newTodayModel(mgr),
		habits:     newHabitsModel(mgr),
		tasks:      newTasksModel(mgr),
		finance:    newFinanceModel(mgr),
		focus:      newFocusModel(mgr),
		notes:      newNotesModel(mgr),
		reports:    newReportsModel(mgr),
		settings:   newSettingsModel(mgr),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.habits.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.finance.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.backupPick {
			return a.updateBackupPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.backupPick = true
			a.backupCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewToday)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewHabits)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewTasks)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewFinance)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewFocus)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewNotes)
		case key.Matches(msg, keys.Tab7):
			return a.switchView(viewReports)
		case key.Matches(msg, keys.Tab8):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.NextTab):
			return a.switchView((a.activeView + 1) % viewCount)
		}

	case tickMsg:
		// Ticks always reach the focus timer, whichever tab is shown.
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Saved to " + msg.path
		a.statusError = false
		return a, nil

	case importDoneMsg:
		a.status = "Imported " + msg.path
		a.statusError = false
		a.today.rebuild()
		a.tasks.rebuild()
		a.reports.buildChart()
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewToday:
		a.today.rebuild()
	case viewTasks:
		a.tasks.rebuild()
	case viewReports:
		a.reports.buildChart()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewHabits:
		a.habits, cmd = a.habits.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewFinance:
		a.finance, cmd = a.finance.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewToday:
		return a.today.formActive
	case viewHabits:
		return a.habits.formActive
	case viewTasks:
		return a.tasks.formActive
	case viewFinance:
		return a.finance.formActive
	case viewNotes:
		return a.notes.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewHabits:
		content = a.habits.view()
	case viewTasks:
		content = a.tasks.view()
	case viewFinance:
		content = a.finance.view()
	case viewFocus:
		content = a.focus.view()
	case viewNotes:
		content = a.notes.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.backupPick {
		content = a.renderBackupPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("daywise")
	if name := a.mgr.State().Profile.Name; name != "" {
		title += mutedStyle.Render(" · " + name)
	}

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = warningStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Focus timer indicator stays visible on every tab.
	timerInfo := ""
	if a.focus.running() {
		timerInfo = successStyle.Render(" ◔ " + formatCountdown(a.focus.remaining))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var backupChoices = []string{"Backup to JSON", "Export transactions to CSV", "Restore from JSON"}

func (a App) renderBackupPicker() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Backup"))
	rows = append(rows, "")
	for i, c := range backupChoices {
		cursor := "  "
		style := normalItemStyle
		if i == a.backupCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+c))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: run  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateBackupPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.backupCursor > 0 {
			a.backupCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.backupCursor < len(backupChoices)-1 {
			a.backupCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.backupPick = false
		return a, a.runBackup(a.backupCursor)
	case key.Matches(msg, keys.Back):
		a.backupPick = false
	}
	return a, nil
}

func (a App) backupDir() string {
	if dir, err := a.store.GetSetting("export_dir"); err == nil && dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return home
}

func (a App) runBackup(choice int) tea.Cmd {
	mgr := a.mgr
	dir := a.backupDir()
	dateStr := time.Now().Format("2006-01-02")

	return func() tea.Msg {
		switch choice {
		case 0:
			path := filepath.Join(dir, fmt.Sprintf("daywise-backup-%s.json", dateStr))
			if err := export.ToJSON(mgr.State(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("Backup error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}

		case 1:
			path := filepath.Join(dir, fmt.Sprintf("daywise-transactions-%s.csv", dateStr))
			if err := export.TransactionsToCSV(mgr.State(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}

		case 2:
			path := filepath.Join(dir, fmt.Sprintf("daywise-backup-%s.json", dateStr))
			restored, err := export.FromJSON(path)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Restore error: %v", err), isError: true}
			}
			mgr.Replace(restored)
			return importDoneMsg{path: path}
		}
		return nil
	}
}

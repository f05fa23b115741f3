package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"daywise/internal/dateutil"
	"daywise/internal/state"
)

var habitColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#9B59B6", "#3498DB"}
var habitIcons = []string{"book", "run", "water", "meditate", "write", "sleep", "code"}

type habitsModel struct {
	mgr    *state.Manager
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form
	formTitle  *string
	formIcon   *string
	formColor  *string
	editingID  string
}

func newHabitsModel(mgr *state.Manager) habitsModel {
	title, icon, color := "", habitIcons[0], habitColors[0]
	return habitsModel{
		mgr:       mgr,
		formTitle: &title,
		formIcon:  &icon,
		formColor: &color,
	}
}

func (m *habitsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m habitsModel) habits() []state.Habit {
	return m.mgr.State().Habits
}

func (m habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	habits := m.habits()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(habits)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Enter):
		if m.cursor < len(habits) {
			m.mgr.Dispatch(state.ToggleHabit{
				ID:   habits[m.cursor].ID,
				Date: dateutil.FormatDate(time.Now()),
			})
		}
	case key.Matches(keyMsg, keys.New):
		return m.showForm("")
	case key.Matches(keyMsg, keys.Edit):
		if m.cursor < len(habits) {
			return m.showForm(habits[m.cursor].ID)
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(habits) {
			m.mgr.Dispatch(state.DeleteHabit{ID: habits[m.cursor].ID})
			if m.cursor >= len(m.habits()) {
				m.cursor = max(0, len(m.habits())-1)
			}
			return m, status("Habit deleted")
		}
	}
	return m, nil
}

func (m habitsModel) showForm(editID string) (habitsModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formIcon = habitIcons[0]
	*m.formColor = habitColors[0]
	m.editingID = editID

	if editID != "" {
		for _, h := range m.habits() {
			if h.ID == editID {
				*m.formTitle = h.Title
				*m.formIcon = h.Icon
				*m.formColor = h.Color
			}
		}
	}

	iconOptions := make([]huh.Option[string], len(habitIcons))
	for i, ic := range habitIcons {
		iconOptions[i] = huh.NewOption(ic, ic)
	}
	colorOptions := make([]huh.Option[string], len(habitColors))
	for i, c := range habitColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit").Value(m.formTitle),
			huh.NewSelect[string]().Title("Icon").Options(iconOptions...).Value(m.formIcon),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if *m.formTitle == "" {
			return m, nil
		}
		h := state.Habit{
			ID:        m.editingID,
			Title:     *m.formTitle,
			Icon:      *m.formIcon,
			Color:     *m.formColor,
			CreatedAt: time.Now(),
		}
		if m.editingID == "" {
			h.ID = uuid.NewString()
			h.Records = []string{}
			m.mgr.Dispatch(state.AddHabit{Habit: h})
		} else {
			m.mgr.Dispatch(state.UpdateHabit{Habit: h})
		}
		return m, nil
	}
	return m, cmd
}

func (m habitsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Habit")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Habit")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	habits := m.habits()
	title := titleStyle.Render("Habits")

	if len(habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	today := dateutil.FormatDate(time.Now())

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, h := range habits {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := "○"
		if doneToday(h, today) {
			mark = successStyle.Render("●")
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
		streak := streakStyle.Render(fmt.Sprintf("🔥%d", h.Streak))
		best := mutedStyle.Render(fmt.Sprintf("best %d", h.BestStreak))
		rows = append(rows, fmt.Sprintf("%s%s %s %-24s %s  %s", cursor, mark, dot, style.Render(h.Title), streak, best))
		rows = append(rows, "      "+renderHistory(h, 14))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle today  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func doneToday(h state.Habit, today string) bool {
	for _, r := range h.Records {
		if r == today {
			return true
		}
	}
	return false
}

// renderHistory draws the last n days as a mini completion strip,
// oldest first.
func renderHistory(h state.Habit, n int) string {
	set := make(map[string]struct{}, len(h.Records))
	for _, r := range h.Records {
		set[r] = struct{}{}
	}
	var b strings.Builder
	for i := n - 1; i >= 0; i-- {
		d := dateutil.FormatDate(dateutil.AddDays(time.Now(), -i))
		if _, ok := set[d]; ok {
			b.WriteString(successStyle.Render("▪"))
		} else {
			b.WriteString(mutedStyle.Render("·"))
		}
	}
	return b.String()
}

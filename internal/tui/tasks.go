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

	"daywise/internal/state"
)

type tasksModel struct {
	mgr    *state.Manager
	width  int
	height int

	cursor int
	rows   []state.Task // flattened: parents followed by their subtasks

	formActive bool
	form       *huh.Form
	formTitle  *string
	formParent *string
}

func newTasksModel(mgr *state.Manager) tasksModel {
	title, parent := "", ""
	return tasksModel{
		mgr:        mgr,
		formTitle:  &title,
		formParent: &parent,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// rebuild flattens the task tree into display order: each top-level
// task followed by its direct subtasks.
func (m *tasksModel) rebuild() {
	tasks := m.mgr.State().Tasks
	m.rows = m.rows[:0]
	for _, t := range tasks {
		if t.ParentID != "" {
			continue
		}
		m.rows = append(m.rows, t)
		for _, sub := range tasks {
			if sub.ParentID == t.ID {
				m.rows = append(m.rows, sub)
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Enter):
		if m.cursor < len(m.rows) {
			m.mgr.Dispatch(state.ToggleTask{ID: m.rows[m.cursor].ID, At: time.Now()})
			m.rebuild()
		}
	case key.Matches(keyMsg, keys.New):
		return m.showForm()
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(m.rows) {
			m.mgr.Dispatch(state.DeleteTask{ID: m.rows[m.cursor].ID})
			m.rebuild()
			return m, status("Task deleted")
		}
	}
	return m, nil
}

func (m tasksModel) showForm() (tasksModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formParent = ""

	parentOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, t := range m.mgr.State().Tasks {
		if t.ParentID == "" {
			parentOptions = append(parentOptions, huh.NewOption(t.Title, t.ID))
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formTitle),
			huh.NewSelect[string]().Title("Subtask of").Options(parentOptions...).Value(m.formParent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
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
		if *m.formTitle != "" {
			m.mgr.Dispatch(state.AddTask{Task: state.Task{
				ID:        uuid.NewString(),
				ParentID:  *m.formParent,
				Title:     *m.formTitle,
				CreatedAt: time.Now(),
			}})
			m.rebuild()
		}
		return m, nil
	}
	return m, cmd
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Task"), "", m.form.View()),
		)
	}

	title := titleStyle.Render("Tasks")
	if len(m.rows) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, t := range m.rows {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		indent := ""
		if t.ParentID != "" {
			indent = "    "
		}
		mark := "☐"
		text := style.Render(t.Title)
		if t.Done() {
			mark = successStyle.Render("☑")
			text = doneItemStyle.Render(t.Title)
		}
		row := fmt.Sprintf("%s%s%s %s", cursor, indent, mark, text)
		if t.Done() && t.CompletedAt != nil {
			row += mutedStyle.Render("  " + t.CompletedAt.Format("Jan 02 15:04"))
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  n: new  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

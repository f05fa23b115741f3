package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"daywise/internal/dateutil"
	"daywise/internal/schedule"
	"daywise/internal/state"
)

// rowKind discriminates the mixed list on the Today screen.
type rowKind int

const (
	rowEvent rowKind = iota
	rowDayTask
	rowHabit
)

type todayRow struct {
	kind  rowKind
	event state.Event
	task  state.DayTask
	habit state.Habit
}

type todayModel struct {
	mgr    *state.Manager
	width  int
	height int

	offset int // days from today, 0 = today
	cursor int
	rows   []todayRow

	formActive bool
	form       *huh.Form
	formKind   *string

	formTitle *string
	formTime  *string
	formDays  *[]dateutil.Weekday
}

func newTodayModel(mgr *state.Manager) todayModel {
	kind, title, timeSpec := "task", "", ""
	days := []dateutil.Weekday{}
	return todayModel{
		mgr:       mgr,
		formKind:  &kind,
		formTitle: &title,
		formTime:  &timeSpec,
		formDays:  &days,
	}
}

func (m *todayModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m todayModel) day() time.Time {
	return dateutil.AddDays(dateutil.Midnight(time.Now()), m.offset)
}

// rebuild projects the selected day fresh from state: routine events are
// generated on the fly, user events filtered by day, day tasks appended.
func (m *todayModel) rebuild() {
	s := m.mgr.State()
	day := m.day()
	dateStr := dateutil.FormatDate(day)

	var events []state.Event
	for _, r := range s.Routines {
		events = append(events, schedule.Generate(r, day, day, s.Events)...)
	}
	for _, e := range s.Events {
		if dateutil.SameDay(e.Start, day) {
			events = append(events, e)
		}
	}
	// Stable chronological order; generator output is already sorted
	// per routine, user events slot in by start time.
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].Start.Before(events[j-1].Start); j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}

	m.rows = m.rows[:0]
	for _, e := range events {
		m.rows = append(m.rows, todayRow{kind: rowEvent, event: e})
	}
	for _, t := range s.DayTasks[dateStr] {
		m.rows = append(m.rows, todayRow{kind: rowDayTask, task: t})
	}
	// Habits ride along for quick toggling without switching tabs.
	for _, h := range s.Habits {
		m.rows = append(m.rows, todayRow{kind: rowHabit, habit: h})
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

func (m todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
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
	case key.Matches(keyMsg, keys.Left):
		m.offset--
		m.cursor = 0
		m.rebuild()
	case key.Matches(keyMsg, keys.Right):
		m.offset++
		m.cursor = 0
		m.rebuild()
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Enter):
		return m.toggleSelected()
	case key.Matches(keyMsg, keys.New):
		return m.showNewForm()
	case key.Matches(keyMsg, keys.Delete):
		return m.deleteSelected()
	}
	return m, nil
}

func (m todayModel) toggleSelected() (todayModel, tea.Cmd) {
	if m.cursor >= len(m.rows) {
		return m, nil
	}
	dateStr := dateutil.FormatDate(m.day())
	switch row := m.rows[m.cursor]; row.kind {
	case rowEvent:
		if row.event.RoutineID != "" {
			m.mgr.Dispatch(state.ToggleRoutineDay{ID: row.event.RoutineID, Date: dateStr})
		} else {
			m.mgr.Dispatch(state.ToggleEvent{ID: row.event.ID})
		}
	case rowDayTask:
		m.mgr.Dispatch(state.ToggleDayTask{Date: dateStr, ID: row.task.ID})
	case rowHabit:
		m.mgr.Dispatch(state.ToggleHabit{ID: row.habit.ID, Date: dateStr})
	}
	m.rebuild()
	return m, nil
}

func (m todayModel) deleteSelected() (todayModel, tea.Cmd) {
	if m.cursor >= len(m.rows) {
		return m, nil
	}
	var cmd tea.Cmd
	switch row := m.rows[m.cursor]; row.kind {
	case rowEvent:
		if row.event.RoutineID != "" {
			m.mgr.Dispatch(state.DeleteRoutine{ID: row.event.RoutineID})
			cmd = status("Routine deleted")
		} else {
			m.mgr.Dispatch(state.DeleteEvent{ID: row.event.ID})
			cmd = status("Event deleted")
		}
	case rowDayTask:
		m.mgr.Dispatch(state.DeleteDayTask{Date: dateutil.FormatDate(m.day()), ID: row.task.ID})
	}
	m.rebuild()
	return m, cmd
}

var weekdayOptions = []huh.Option[dateutil.Weekday]{
	huh.NewOption("Monday", dateutil.Monday),
	huh.NewOption("Tuesday", dateutil.Tuesday),
	huh.NewOption("Wednesday", dateutil.Wednesday),
	huh.NewOption("Thursday", dateutil.Thursday),
	huh.NewOption("Friday", dateutil.Friday),
	huh.NewOption("Saturday", dateutil.Saturday),
	huh.NewOption("Sunday", dateutil.Sunday),
}

func (m todayModel) showNewForm() (todayModel, tea.Cmd) {
	*m.formKind = "task"
	*m.formTitle = ""
	*m.formTime = ""
	*m.formDays = nil

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Add").
				Options(
					huh.NewOption("Day task", "task"),
					huh.NewOption("Event", "event"),
					huh.NewOption("Routine", "routine"),
				).Value(m.formKind),
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewInput().Title("Time (HH:MM or HH:MM-HH:MM, optional)").Value(m.formTime),
			huh.NewMultiSelect[dateutil.Weekday]().Title("Weekdays (routines only)").
				Options(weekdayOptions...).Value(m.formDays),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
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
		cmd := m.submitNew()
		m.rebuild()
		return m, cmd
	}
	return m, cmd
}

func (m *todayModel) submitNew() tea.Cmd {
	dateStr := dateutil.FormatDate(m.day())
	switch *m.formKind {
	case "task":
		m.mgr.Dispatch(state.AddDayTask{
			Date: dateStr,
			Task: state.DayTask{ID: uuid.NewString(), Text: *m.formTitle},
		})
		return nil

	case "event":
		start, end, err := state.ParseTimeSpan(*m.formTime)
		if err != nil {
			return errorStatus(err)
		}
		startMin := state.TimeOfDay(9 * 60)
		if start != nil {
			startMin = *start
		}
		endMin := startMin + 60
		if end != nil {
			endMin = *end
		}
		day := m.day()
		m.mgr.Dispatch(state.AddEvent{Event: state.Event{
			ID:    uuid.NewString(),
			Title: *m.formTitle,
			Start: day.Add(time.Duration(startMin) * time.Minute),
			End:   day.Add(time.Duration(endMin) * time.Minute),
			Color: "#FF6B6B",
		}})
		return status("Event added")

	case "routine":
		start, end, err := state.ParseTimeSpan(*m.formTime)
		if err != nil {
			return errorStatus(err)
		}
		m.mgr.Dispatch(state.AddRoutine{Routine: state.Routine{
			ID:        uuid.NewString(),
			Title:     *m.formTitle,
			Start:     start,
			End:       end,
			Days:      *m.formDays,
			CreatedAt: dateutil.FormatDate(time.Now()),
		}})
		return status("Routine added")
	}
	return nil
}

func (m todayModel) view() string {
	w := m.width - 4
	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	day := m.day()
	label := day.Format("Monday, Jan 02")
	switch m.offset {
	case 0:
		label = "Today — " + label
	case 1:
		label = "Tomorrow — " + label
	case -1:
		label = "Yesterday — " + label
	}
	title := titleStyle.Render(label)

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if len(m.rows) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing scheduled. Press n to add something."))
	}

	for i, row := range m.rows {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, m.renderRow(cursor, style, row))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  n: new  d: delete  ←/→: day"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m todayModel) renderRow(cursor string, style lipgloss.Style, row todayRow) string {
	switch row.kind {
	case rowEvent:
		e := row.event
		mark := "○"
		if e.Completed {
			mark = successStyle.Render("●")
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("▍")
		span := mutedStyle.Render(fmt.Sprintf("%s–%s", e.Start.Format("15:04"), e.End.Format("15:04")))
		title := style.Render(e.Title)
		if e.Completed {
			title = doneItemStyle.Render(e.Title)
		}
		return fmt.Sprintf("%s%s %s %s  %s", cursor, mark, dot, span, title)
	case rowHabit:
		h := row.habit
		mark := "○"
		text := style.Render(h.Title)
		if slices.Contains(h.Records, dateutil.FormatDate(m.day())) {
			mark = successStyle.Render("●")
			text = doneItemStyle.Render(h.Title)
		}
		streak := streakStyle.Render(fmt.Sprintf("🔥%d", h.Streak))
		return fmt.Sprintf("%s%s %s  %s", cursor, mark, text, streak)
	default:
		t := row.task
		mark := "☐"
		text := style.Render(t.Text)
		if t.Done {
			mark = successStyle.Render("☑")
			text = doneItemStyle.Render(t.Text)
		}
		return fmt.Sprintf("%s%s %s", cursor, mark, text)
	}
}

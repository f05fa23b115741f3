package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"daywise/internal/state"
)

type settingsModel struct {
	mgr    *state.Manager
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	profileName  *string
	profileMotto *string
	theme        *string
	currency     *string
	dailyGoal    *string
	focusWork    *string
	focusBreak   *string
	focusLong    *string
	focusRounds  *string
}

func newSettingsModel(mgr *state.Manager) settingsModel {
	pn, pm, th, cur, dg := "", "", "", "", ""
	fw, fb, fl, fr := "", "", "", ""
	return settingsModel{
		mgr:          mgr,
		profileName:  &pn,
		profileMotto: &pm,
		theme:        &th,
		currency:     &cur,
		dailyGoal:    &dg,
		focusWork:    &fw,
		focusBreak:   &fb,
		focusLong:    &fl,
		focusRounds:  &fr,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Enter), key.Matches(keyMsg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	st := s.mgr.State()

	*s.profileName = st.Profile.Name
	*s.profileMotto = st.Profile.Motto
	*s.theme = st.Settings.Theme
	*s.currency = st.Settings.Currency
	*s.dailyGoal = strconv.Itoa(st.Settings.DailyGoalMinutes)
	*s.focusWork = strconv.Itoa(st.Timer.WorkSeconds / 60)
	*s.focusBreak = strconv.Itoa(st.Timer.BreakSeconds / 60)
	*s.focusLong = strconv.Itoa(st.Timer.LongBreakSeconds / 60)
	*s.focusRounds = strconv.Itoa(st.Timer.TargetRounds)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(s.profileName),
			huh.NewInput().Title("Motto").Value(s.profileMotto),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).Value(s.theme),
			huh.NewInput().Title("Currency").Placeholder("USD").Value(s.currency),
			huh.NewInput().Title("Daily goal (min)").Value(s.dailyGoal),
		).Title("General"),
		huh.NewGroup(
			huh.NewInput().Title("Focus work (min)").Value(s.focusWork),
			huh.NewInput().Title("Short break (min)").Value(s.focusBreak),
			huh.NewInput().Title("Long break (min)").Value(s.focusLong),
			huh.NewInput().Title("Rounds per session").Value(s.focusRounds),
		).Title("Focus timer"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.save()
		return s, status("Settings saved")
	}
	return s, cmd
}

func (s settingsModel) save() {
	st := s.mgr.State()

	s.mgr.Dispatch(state.UpdateProfile{Profile: state.Profile{
		Name:  *s.profileName,
		Motto: *s.profileMotto,
	}})

	settings := st.Settings
	settings.Theme = *s.theme
	settings.Currency = *s.currency
	if n, err := strconv.Atoi(*s.dailyGoal); err == nil && n > 0 {
		settings.DailyGoalMinutes = n
	}
	s.mgr.Dispatch(state.UpdateSettings{Settings: settings})

	timer := st.Timer
	if n, err := strconv.Atoi(*s.focusWork); err == nil && n > 0 {
		timer.WorkSeconds = n * 60
	}
	if n, err := strconv.Atoi(*s.focusBreak); err == nil && n > 0 {
		timer.BreakSeconds = n * 60
	}
	if n, err := strconv.Atoi(*s.focusLong); err == nil && n > 0 {
		timer.LongBreakSeconds = n * 60
	}
	if n, err := strconv.Atoi(*s.focusRounds); err == nil && n > 0 {
		timer.TargetRounds = n
	}
	s.mgr.Dispatch(state.UpdateTimer{Timer: timer})
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", s.form.View()),
		)
	}

	st := s.mgr.State()

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s",
			lipgloss.NewStyle().Width(24).Render(label),
			highlightStyle.Render(value))
	}

	name := st.Profile.Name
	if name == "" {
		name = mutedStyle.Render("(not set)")
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		row("Name", name),
		row("Motto", st.Profile.Motto),
		row("Theme", st.Settings.Theme),
		row("Currency", st.Settings.Currency),
		row("Daily goal", fmt.Sprintf("%d min", st.Settings.DailyGoalMinutes)),
		"",
		row("Focus work", fmt.Sprintf("%d min", st.Timer.WorkSeconds/60)),
		row("Short break", fmt.Sprintf("%d min", st.Timer.BreakSeconds/60)),
		row("Long break", fmt.Sprintf("%d min", st.Timer.LongBreakSeconds/60)),
		row("Rounds", strconv.Itoa(st.Timer.TargetRounds)),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

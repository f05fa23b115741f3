package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"daywise/internal/state"
)

type notesSection int

const (
	sectionIdeas notesSection = iota
	sectionNotes
)

// notesModel covers quick idea capture and longer notes, both
// optionally filed in folders. Left/right switches section.
type notesModel struct {
	mgr    *state.Manager
	width  int
	height int

	section notesSection
	cursor  int

	formActive bool
	form       *huh.Form
	formKind   string // "idea", "note", "folder"
	editingID  string

	formText   *string
	formTitle  *string
	formBody   *string
	formFolder *string
	folderName *string
}

func newNotesModel(mgr *state.Manager) notesModel {
	text, title, body, folder, fname := "", "", "", "", ""
	return notesModel{
		mgr:        mgr,
		formText:   &text,
		formTitle:  &title,
		formBody:   &body,
		formFolder: &folder,
		folderName: &fname,
	}
}

func (m *notesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m notesModel) sectionLen() int {
	s := m.mgr.State()
	if m.section == sectionIdeas {
		return len(s.Ideas)
	}
	return len(s.Notes)
}

func (m notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		m.section = sectionIdeas
		m.cursor = 0
	case key.Matches(keyMsg, keys.Right):
		m.section = sectionNotes
		m.cursor = 0
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < m.sectionLen()-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		if m.section == sectionIdeas {
			return m.showIdeaForm()
		}
		return m.showNoteForm("")
	case key.Matches(keyMsg, keys.Edit):
		if m.section == sectionNotes {
			notes := m.mgr.State().Notes
			if m.cursor < len(notes) {
				return m.showNoteForm(notes[m.cursor].ID)
			}
		}
	case keyMsg.String() == "f":
		return m.showFolderForm()
	case key.Matches(keyMsg, keys.Delete):
		return m.deleteSelected()
	}
	return m, nil
}

func (m notesModel) deleteSelected() (notesModel, tea.Cmd) {
	s := m.mgr.State()
	if m.section == sectionIdeas {
		if m.cursor < len(s.Ideas) {
			m.mgr.Dispatch(state.DeleteIdea{ID: s.Ideas[m.cursor].ID})
		}
	} else {
		if m.cursor < len(s.Notes) {
			m.mgr.Dispatch(state.DeleteNote{ID: s.Notes[m.cursor].ID})
		}
	}
	if m.cursor > 0 {
		m.cursor--
	}
	return m, status("Deleted")
}

func (m notesModel) folderOptions() []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("(unfiled)", "")}
	for _, f := range m.mgr.State().Folders {
		options = append(options, huh.NewOption(f.Name, f.ID))
	}
	return options
}

func (m notesModel) showIdeaForm() (notesModel, tea.Cmd) {
	*m.formText = ""
	*m.formFolder = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Idea").Value(m.formText),
			huh.NewSelect[string]().Title("Folder").Options(m.folderOptions()...).Value(m.formFolder),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formKind = "idea"
	m.formActive = true
	return m, m.form.Init()
}

func (m notesModel) showNoteForm(editID string) (notesModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formBody = ""
	*m.formFolder = ""
	m.editingID = editID

	if editID != "" {
		for _, n := range m.mgr.State().Notes {
			if n.ID == editID {
				*m.formTitle = n.Title
				*m.formBody = n.Body
				*m.formFolder = n.FolderID
				break
			}
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewText().Title("Body").Value(m.formBody),
			huh.NewSelect[string]().Title("Folder").Options(m.folderOptions()...).Value(m.formFolder),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formKind = "note"
	m.formActive = true
	return m, m.form.Init()
}

func (m notesModel) showFolderForm() (notesModel, tea.Cmd) {
	*m.folderName = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Folder name").Value(m.folderName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formKind = "folder"
	m.formActive = true
	return m, m.form.Init()
}

func (m notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
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
		return m.submitForm()
	}
	return m, cmd
}

func (m notesModel) submitForm() (notesModel, tea.Cmd) {
	switch m.formKind {
	case "idea":
		if *m.formText == "" {
			return m, nil
		}
		m.mgr.Dispatch(state.AddIdea{Idea: state.Idea{
			ID:        uuid.NewString(),
			Text:      *m.formText,
			FolderID:  *m.formFolder,
			CreatedAt: time.Now(),
		}})
		return m, status("Idea captured")

	case "note":
		if *m.formTitle == "" {
			return m, nil
		}
		note := state.Note{
			ID:        m.editingID,
			Title:     *m.formTitle,
			Body:      *m.formBody,
			FolderID:  *m.formFolder,
			UpdatedAt: time.Now(),
		}
		if m.editingID == "" {
			note.ID = uuid.NewString()
			m.mgr.Dispatch(state.AddNote{Note: note})
			return m, status("Note added")
		}
		m.mgr.Dispatch(state.UpdateNote{Note: note})
		return m, status("Note updated")

	case "folder":
		if *m.folderName == "" {
			return m, nil
		}
		m.mgr.Dispatch(state.AddFolder{Folder: state.Folder{
			ID:   uuid.NewString(),
			Name: *m.folderName,
		}})
		return m, status("Folder created")
	}
	return m, nil
}

func (m notesModel) folderLabel(id string) string {
	if id == "" {
		return ""
	}
	for _, f := range m.mgr.State().Folders {
		if f.ID == id {
			return f.Name
		}
	}
	return ""
}

func (m notesModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		titles := map[string]string{"idea": "New Idea", "note": "Note", "folder": "New Folder"}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(titles[m.formKind]), "", m.form.View()),
		)
	}

	leftW := w / 2
	rightW := w - leftW - 2

	ideasPanel := panelStyle
	notesPanel := panelStyle
	if m.section == sectionIdeas {
		ideasPanel = activePanelStyle
	} else {
		notesPanel = activePanelStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		ideasPanel.Width(leftW).Render(m.viewIdeas()),
		notesPanel.Width(rightW).Render(m.viewNotes()),
	)
}

func (m notesModel) viewIdeas() string {
	s := m.mgr.State()

	var rows []string
	rows = append(rows, titleStyle.Render("Ideas"))
	rows = append(rows, "")

	if len(s.Ideas) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing captured. Press n."))
	}

	for i, idea := range s.Ideas {
		cursor := "  "
		style := normalItemStyle
		if m.section == sectionIdeas && i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := cursor + style.Render(idea.Text)
		if name := m.folderLabel(idea.FolderID); name != "" {
			row += mutedStyle.Render("  [" + name + "]")
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  f: folder  d: delete"))
	return strings.Join(rows, "\n")
}

func (m notesModel) viewNotes() string {
	s := m.mgr.State()

	var rows []string
	rows = append(rows, titleStyle.Render("Notes"))
	rows = append(rows, "")

	if len(s.Notes) == 0 {
		rows = append(rows, mutedStyle.Render("No notes. Press n."))
	}

	for i, note := range s.Notes {
		cursor := "  "
		style := normalItemStyle
		if m.section == sectionNotes && i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := cursor + style.Render(note.Title)
		if name := m.folderLabel(note.FolderID); name != "" {
			row += mutedStyle.Render("  [" + name + "]")
		}
		rows = append(rows, row)
		if m.section == sectionNotes && i == m.cursor && note.Body != "" {
			preview := note.Body
			if len(preview) > 120 {
				preview = preview[:120] + "…"
			}
			rows = append(rows, mutedStyle.Render("    "+strings.ReplaceAll(preview, "\n", " ")))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))
	return strings.Join(rows, "\n")
}

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hivecastapp/hivecast/internal/state"
	"github.com/hivecastapp/hivecast/pkg/domain"
)

// projectState is the state machine for project CRUD interactions.
type projectState int

const (
	projNormal   projectState = iota
	projDetail                // detail panel for selected project
	projAdding                // new project form
	projEditing               // edit form for selected project
	projDeleting              // delete confirmation
)

// -- messages --

type projectCreatedMsg struct {
	project domain.Project
	err     error
}

type projectUpdatedMsg struct{ err error }

type projectDeletedMsg struct{ err error }

// -- model --

type projectsModel struct {
	app  *state.AppState
	auth *state.AuthSession

	items     []domain.Project
	cursor    int
	pState    projectState
	statusMsg string
	width     int
	height    int

	// form fields (adding/editing)
	fTitle       string
	fDescription string
	fCategory    int // index into domain.ValidCategories
	fBudget      string
	fPublic      bool
	fFocus       int
}

const projectFormFields = 5 // title, description, category, budget, public

func newProjectsModel(app *state.AppState, auth *state.AuthSession) projectsModel {
	return projectsModel{app: app, auth: auth}
}

func (m projectsModel) editing() bool {
	return m.pState == projAdding || m.pState == projEditing || m.pState == projDeleting
}

func (m *projectsModel) resetForm() {
	m.fTitle = ""
	m.fDescription = ""
	m.fCategory = 0
	m.fBudget = ""
	m.fPublic = false
	m.fFocus = 0
}

func (m projectsModel) Update(msg tea.Msg) (projectsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dataRefreshedMsg:
		if msg.err == nil {
			m.items = m.app.Projects()
			if m.cursor >= len(m.items) {
				m.cursor = 0
			}
		}
		return m, nil

	case projectCreatedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("create failed: %v", msg.err)
		} else {
			m.items = m.app.Projects()
			for i, p := range m.items {
				if p.ID == msg.project.ID {
					m.cursor = i
					break
				}
			}
			m.statusMsg = "project added"
		}
		m.pState = projNormal
		m.resetForm()
		return m, nil

	case projectUpdatedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("update failed: %v", msg.err)
		} else {
			m.items = m.app.Projects()
			m.statusMsg = "saved"
		}
		m.pState = projNormal
		m.resetForm()
		return m, nil

	case projectDeletedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("delete failed: %v", msg.err)
		} else {
			m.items = m.app.Projects()
			if m.cursor >= len(m.items) && m.cursor > 0 {
				m.cursor = len(m.items) - 1
			}
			m.statusMsg = "project removed"
		}
		m.pState = projNormal
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		return m.handleKey(msg)
	}
	return m, nil
}

func (m projectsModel) handleKey(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch m.pState {
	case projAdding, projEditing:
		return m.handleKeyForm(msg)
	case projDeleting:
		return m.handleKeyDeleting(msg)
	case projDetail:
		return m.handleKeyDetail(msg)
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.items) {
			m.pState = projDetail
		}
	case "a", "n":
		m.pState = projAdding
		m.resetForm()
	case "e":
		if m.cursor < len(m.items) {
			m.pState = projEditing
			m.loadForm(m.items[m.cursor])
		}
	case "d":
		if m.cursor < len(m.items) {
			m.pState = projDeleting
		}
	case "s":
		// Advance the lifecycle status of the selected project
		if m.cursor < len(m.items) {
			return m.advanceStatus()
		}
	case "+":
		if m.cursor < len(m.items) {
			return m.bumpProgress(10)
		}
	case "-":
		if m.cursor < len(m.items) {
			return m.bumpProgress(-10)
		}
	}
	return m, nil
}

func (m *projectsModel) loadForm(p domain.Project) {
	m.fTitle = p.Title
	m.fDescription = p.Description
	m.fCategory = 0
	for i, c := range domain.ValidCategories {
		if c == p.Category {
			m.fCategory = i
			break
		}
	}
	m.fBudget = p.Budget
	m.fPublic = p.IsPublic
	m.fFocus = 0
}

func (m projectsModel) advanceStatus() (projectsModel, tea.Cmd) {
	p := m.items[m.cursor]
	next := domain.ProjectStatuses[0]
	for i, s := range domain.ProjectStatuses {
		if s == p.Status && i < len(domain.ProjectStatuses)-1 {
			next = domain.ProjectStatuses[i+1]
			break
		}
	}
	if next == p.Status {
		return m, nil
	}
	app := m.app
	id := p.ID
	return m, func() tea.Msg {
		err := app.UpdateProject(context.Background(), id, domain.ProjectPatch{Status: &next})
		return projectUpdatedMsg{err: err}
	}
}

func (m projectsModel) bumpProgress(delta int) (projectsModel, tea.Cmd) {
	p := m.items[m.cursor]
	progress := p.Progress + delta
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if progress == p.Progress {
		return m, nil
	}
	app := m.app
	id := p.ID
	return m, func() tea.Msg {
		err := app.UpdateProject(context.Background(), id, domain.ProjectPatch{Progress: &progress})
		return projectUpdatedMsg{err: err}
	}
}

func (m projectsModel) handleKeyDetail(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.pState = projNormal
	case "e":
		if m.cursor < len(m.items) {
			m.pState = projEditing
			m.loadForm(m.items[m.cursor])
		}
	case "d":
		if m.cursor < len(m.items) {
			m.pState = projDeleting
		}
	}
	return m, nil
}

func (m projectsModel) handleKeyForm(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.fFocus = (m.fFocus + 1) % projectFormFields
	case "shift+tab":
		m.fFocus = (m.fFocus + projectFormFields - 1) % projectFormFields
	case "left", "right":
		switch m.fFocus {
		case 2:
			n := len(domain.ValidCategories)
			if msg.String() == "right" {
				m.fCategory = (m.fCategory + 1) % n
			} else {
				m.fCategory = (m.fCategory + n - 1) % n
			}
		case 4:
			m.fPublic = !m.fPublic
		}
	case "enter":
		return m.submitForm()
	case "esc":
		m.pState = projNormal
		m.resetForm()
	default:
		switch m.fFocus {
		case 0:
			m.fTitle = editRune(m.fTitle, msg.String())
		case 1:
			m.fDescription = editRune(m.fDescription, msg.String())
		case 3:
			m.fBudget = editRune(m.fBudget, msg.String())
		case 4:
			if msg.String() == " " || msg.String() == "space" {
				m.fPublic = !m.fPublic
			}
		}
	}
	return m, nil
}

func (m projectsModel) submitForm() (projectsModel, tea.Cmd) {
	title := strings.TrimSpace(m.fTitle)
	if title == "" {
		m.statusMsg = "title required"
		return m, nil
	}
	description := strings.TrimSpace(m.fDescription)
	category := domain.ValidCategories[m.fCategory]
	budget := strings.TrimSpace(m.fBudget)
	isPublic := m.fPublic
	app := m.app

	if m.pState == projEditing && m.cursor < len(m.items) {
		id := m.items[m.cursor].ID
		patch := domain.ProjectPatch{
			Title:       &title,
			Description: &description,
			Category:    &category,
			Budget:      &budget,
			IsPublic:    &isPublic,
		}
		return m, func() tea.Msg {
			return projectUpdatedMsg{err: app.UpdateProject(context.Background(), id, patch)}
		}
	}

	draft := domain.ProjectDraft{
		Title:       title,
		Description: description,
		Category:    category,
		Budget:      budget,
		IsPublic:    isPublic,
	}
	if user := m.auth.User(); user != nil {
		draft.CreatorID = user.UID
		draft.CreatorName = user.DisplayName
	}
	return m, func() tea.Msg {
		created, err := app.AddProject(context.Background(), draft)
		return projectCreatedMsg{project: created, err: err}
	}
}

func (m projectsModel) handleKeyDeleting(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.cursor < len(m.items) {
			id := m.items[m.cursor].ID
			app := m.app
			return m, func() tea.Msg {
				return projectDeletedMsg{err: app.DeleteProject(context.Background(), id)}
			}
		}
		m.pState = projNormal
	case "n", "N", "esc":
		m.pState = projNormal
	}
	return m, nil
}

func (m projectsModel) helpKeys() string {
	switch m.pState {
	case projAdding, projEditing:
		return helpEntry("tab", "next") + "  " + helpEntry("←/→", "pick") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case projDeleting:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	case projDetail:
		return helpEntry("e", "edit") + "  " + helpEntry("d", "remove") + "  " + helpEntry("esc", "back")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " + helpEntry("s", "status") + "  " + helpEntry("+/-", "progress") + "  " + helpEntry("d", "remove") + "  " + helpEntry("q", "quit")
	}
}

func (m projectsModel) View() string {
	var sb strings.Builder

	sb.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("── PROJECTS %d ──", len(m.items))) + "\n")

	if m.statusMsg != "" {
		sb.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}

	switch m.pState {
	case projAdding, projEditing:
		sb.WriteString(m.renderForm())
		return sb.String()
	case projDetail:
		if m.cursor < len(m.items) {
			sb.WriteString(m.renderDetail(m.items[m.cursor]))
			return sb.String()
		}
	}

	if len(m.items) == 0 {
		sb.WriteString("   " + dimStyle.Render("no projects yet · press a to add one") + "\n")
		return sb.String()
	}

	maxRows := m.height - 3
	if maxRows < 4 {
		maxRows = 8
	}
	for i, p := range m.items {
		if i >= maxRows {
			break
		}
		isActive := i == m.cursor

		cursor := "  "
		if isActive {
			cursor = accentStyle.Render("▸") + " "
		}
		titleStr := normalStyle.Render(truncStr(p.Title, 28))
		if isActive {
			titleStr = selectedStyle.Render(truncStr(p.Title, 28))
		}

		chip := CategoryStyle(p.Category).Render(p.Category)
		status := StatusStyle(p.Status).Render(p.Status)
		bar := renderProgressBar(p.Progress, 10)

		if isActive && m.pState == projDeleting {
			fmt.Fprintf(&sb, " %s%s  %s  %s\n", cursor, titleStr, chip, status)
			sb.WriteString("   " + dangerStyle.Render("delete this project? ") +
				accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
			continue
		}

		fmt.Fprintf(&sb, " %s%s  %s  %s  %s %s  %s\n",
			cursor, titleStr, chip, status, bar,
			metaStyle.Render(fmt.Sprintf("%d%%", p.Progress)),
			metaStyle.Render(formatTime(p.CreatedAt.Time)))
	}

	return sb.String()
}

// renderProgressBar renders a fixed-width block progress bar.
func renderProgressBar(progress, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * width / 100
	return accentStyle.Render(strings.Repeat("█", filled)) + metaStyle.Render(strings.Repeat("░", width-filled))
}

func (m projectsModel) renderDetail(p domain.Project) string {
	var sb strings.Builder

	sb.WriteString("\n   " + selectedStyle.Render(p.Title) + "\n")
	parts := []string{
		CategoryStyle(p.Category).Render(p.Category),
		StatusStyle(p.Status).Render(p.Status),
	}
	if p.Budget != "" {
		parts = append(parts, metaStyle.Render(p.Budget))
	}
	if p.IsPublic {
		parts = append(parts, okStyle.Render("public"))
	} else {
		parts = append(parts, dimStyle.Render("private"))
	}
	sb.WriteString("   " + strings.Join(parts, dimStyle.Render(" · ")) + "\n\n")

	if p.Description != "" {
		sb.WriteString("   " + normalStyle.Render(p.Description) + "\n\n")
	}

	sb.WriteString("   " + dimStyle.Render("progress") + "  " + renderProgressBar(p.Progress, 20) + " " + metaStyle.Render(strconv.Itoa(p.Progress)+"%") + "\n")
	sb.WriteString("   " + dimStyle.Render("team    ") + "  " + normalStyle.Render(fmt.Sprintf("%d collaborator(s)", p.Collaborators)) + "\n")
	if p.CreatorName != "" {
		sb.WriteString("   " + dimStyle.Render("creator ") + "  " + normalStyle.Render(p.CreatorName) + "\n")
	}
	sb.WriteString("   " + dimStyle.Render("created ") + "  " + metaStyle.Render(formatTime(p.CreatedAt.Time)) + "\n")
	if len(p.Tags) > 0 {
		sb.WriteString("   " + dimStyle.Render("tags    ") + "  " + dimStyle.Render(strings.Join(p.Tags, ", ")) + "\n")
	}
	return sb.String()
}

func (m projectsModel) renderForm() string {
	var sb strings.Builder
	sb.WriteString("\n")

	row := func(idx int, label, value string) string {
		labelStr := inputPromptStyle.Render(fmt.Sprintf("%-12s", label))
		if m.fFocus == idx {
			return "   " + accentStyle.Render(">") + " " + labelStr + " " + value + accentStyle.Render("_") + "\n"
		}
		return "     " + labelStr + " " + dimStyle.Render(value) + "\n"
	}

	sb.WriteString(row(0, "title:", m.fTitle))
	sb.WriteString(row(1, "description:", m.fDescription))

	category := domain.ValidCategories[m.fCategory]
	catValue := CategoryStyle(category).Render(category) + dimStyle.Render("  ←/→")
	catLabel := inputPromptStyle.Render(fmt.Sprintf("%-12s", "category:"))
	if m.fFocus == 2 {
		sb.WriteString("   " + accentStyle.Render(">") + " " + catLabel + " " + catValue + "\n")
	} else {
		sb.WriteString("     " + catLabel + " " + CategoryStyle(category).Render(category) + "\n")
	}

	sb.WriteString(row(3, "budget:", m.fBudget))

	visibility := "private"
	if m.fPublic {
		visibility = "public"
	}
	visLabel := inputPromptStyle.Render(fmt.Sprintf("%-12s", "visibility:"))
	if m.fFocus == 4 {
		sb.WriteString("   " + accentStyle.Render(">") + " " + visLabel + " " + normalStyle.Render(visibility) + dimStyle.Render("  space toggles") + "\n")
	} else {
		sb.WriteString("     " + visLabel + " " + dimStyle.Render(visibility) + "\n")
	}

	sb.WriteString("   " + dimStyle.Render("tab next · enter save · esc cancel") + "\n")
	return sb.String()
}

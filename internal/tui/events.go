package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hivecastapp/hivecast/internal/state"
	"github.com/hivecastapp/hivecast/pkg/domain"
)

// eventDateLayout is the input format for the schedule field.
const eventDateLayout = "2006-01-02 15:04"

// eventState is the state machine for event CRUD interactions.
type eventState int

const (
	evNormal eventState = iota
	evAdding
	evEditing
	evDeleting
)

// -- messages --

type eventCreatedMsg struct {
	event domain.Event
	err   error
}

type eventUpdatedMsg struct{ err error }

type eventDeletedMsg struct{ err error }

// -- model --

type eventsModel struct {
	app  *state.AppState
	auth *state.AuthSession

	items     []domain.Event
	cursor    int
	eState    eventState
	statusMsg string
	width     int
	height    int

	// form fields
	fTitle     string
	fWhen      string // free text, parsed on save
	fLocation  string
	fType      int // index into domain.ValidEventTypes
	fAttendees string
	fFocus     int
}

const eventFormFields = 5 // title, when, location, type, attendees

func newEventsModel(app *state.AppState, auth *state.AuthSession) eventsModel {
	return eventsModel{app: app, auth: auth}
}

func (m eventsModel) editing() bool {
	return m.eState != evNormal
}

func (m *eventsModel) resetForm() {
	m.fTitle = ""
	m.fWhen = ""
	m.fLocation = ""
	m.fType = 0
	m.fAttendees = ""
	m.fFocus = 0
}

func (m eventsModel) Update(msg tea.Msg) (eventsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dataRefreshedMsg:
		if msg.err == nil {
			m.items = m.app.Events()
			if m.cursor >= len(m.items) {
				m.cursor = 0
			}
		}
		return m, nil

	case eventCreatedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("create failed: %v", msg.err)
		} else {
			m.items = m.app.Events()
			m.statusMsg = "event scheduled"
		}
		m.eState = evNormal
		m.resetForm()
		return m, nil

	case eventUpdatedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("update failed: %v", msg.err)
		} else {
			m.items = m.app.Events()
			m.statusMsg = "saved"
		}
		m.eState = evNormal
		m.resetForm()
		return m, nil

	case eventDeletedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("delete failed: %v", msg.err)
		} else {
			m.items = m.app.Events()
			if m.cursor >= len(m.items) && m.cursor > 0 {
				m.cursor = len(m.items) - 1
			}
			m.statusMsg = "event removed"
		}
		m.eState = evNormal
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

func (m eventsModel) handleKey(msg tea.KeyMsg) (eventsModel, tea.Cmd) {
	switch m.eState {
	case evAdding, evEditing:
		return m.handleKeyForm(msg)
	case evDeleting:
		return m.handleKeyDeleting(msg)
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
	case "a", "n":
		m.eState = evAdding
		m.resetForm()
	case "e":
		if m.cursor < len(m.items) {
			m.eState = evEditing
			m.loadForm(m.items[m.cursor])
		}
	case "d":
		if m.cursor < len(m.items) {
			m.eState = evDeleting
		}
	}
	return m, nil
}

func (m *eventsModel) loadForm(e domain.Event) {
	m.fTitle = e.Title
	m.fWhen = ""
	if !e.DateTime.IsZero() {
		m.fWhen = e.DateTime.Format(eventDateLayout)
	}
	m.fLocation = e.Location
	m.fType = 0
	for i, t := range domain.ValidEventTypes {
		if t == e.Type {
			m.fType = i
			break
		}
	}
	m.fAttendees = strconv.Itoa(e.Attendees)
	m.fFocus = 0
}

func (m eventsModel) handleKeyForm(msg tea.KeyMsg) (eventsModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.fFocus = (m.fFocus + 1) % eventFormFields
	case "shift+tab":
		m.fFocus = (m.fFocus + eventFormFields - 1) % eventFormFields
	case "left", "right":
		if m.fFocus == 3 {
			n := len(domain.ValidEventTypes)
			if msg.String() == "right" {
				m.fType = (m.fType + 1) % n
			} else {
				m.fType = (m.fType + n - 1) % n
			}
		}
	case "enter":
		return m.submitForm()
	case "esc":
		m.eState = evNormal
		m.resetForm()
	default:
		switch m.fFocus {
		case 0:
			m.fTitle = editRune(m.fTitle, msg.String())
		case 1:
			m.fWhen = editRune(m.fWhen, msg.String())
		case 2:
			m.fLocation = editRune(m.fLocation, msg.String())
		case 4:
			m.fAttendees = editRune(m.fAttendees, msg.String())
		}
	}
	return m, nil
}

func (m eventsModel) submitForm() (eventsModel, tea.Cmd) {
	title := strings.TrimSpace(m.fTitle)
	if title == "" {
		m.statusMsg = "title required"
		return m, nil
	}

	var when domain.Time
	if s := strings.TrimSpace(m.fWhen); s != "" {
		t, err := time.ParseInLocation(eventDateLayout, s, time.Local)
		if err != nil {
			m.statusMsg = "date must be YYYY-MM-DD HH:MM"
			return m, nil
		}
		when = domain.NewTime(t)
	}

	location := strings.TrimSpace(m.fLocation)
	eventType := domain.ValidEventTypes[m.fType]
	attendees, _ := strconv.Atoi(strings.TrimSpace(m.fAttendees)) //nolint:errcheck // empty means store default
	app := m.app

	if m.eState == evEditing && m.cursor < len(m.items) {
		id := m.items[m.cursor].ID
		patch := domain.EventPatch{
			Title:    &title,
			Location: &location,
			Type:     &eventType,
		}
		if !when.IsZero() {
			patch.DateTime = &when
		}
		if attendees > 0 {
			patch.Attendees = &attendees
		}
		return m, func() tea.Msg {
			return eventUpdatedMsg{err: app.UpdateEvent(context.Background(), id, patch)}
		}
	}

	draft := domain.EventDraft{
		Title:     title,
		DateTime:  when,
		Location:  location,
		Type:      eventType,
		Attendees: attendees,
	}
	if user := m.auth.User(); user != nil {
		draft.CreatorID = user.UID
	}
	return m, func() tea.Msg {
		created, err := app.AddEvent(context.Background(), draft)
		return eventCreatedMsg{event: created, err: err}
	}
}

func (m eventsModel) handleKeyDeleting(msg tea.KeyMsg) (eventsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.cursor < len(m.items) {
			id := m.items[m.cursor].ID
			app := m.app
			return m, func() tea.Msg {
				return eventDeletedMsg{err: app.DeleteEvent(context.Background(), id)}
			}
		}
		m.eState = evNormal
	case "n", "N", "esc":
		m.eState = evNormal
	}
	return m, nil
}

func (m eventsModel) helpKeys() string {
	switch m.eState {
	case evAdding, evEditing:
		return helpEntry("tab", "next") + "  " + helpEntry("←/→", "type") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case evDeleting:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "remove") + "  " + helpEntry("q", "quit")
	}
}

func (m eventsModel) View() string {
	var sb strings.Builder

	sb.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("── EVENTS %d ──", len(m.items))) + "\n")

	if m.statusMsg != "" {
		sb.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}

	if m.eState == evAdding || m.eState == evEditing {
		sb.WriteString(m.renderForm())
		return sb.String()
	}

	if len(m.items) == 0 {
		sb.WriteString("   " + dimStyle.Render("no events yet · press a to schedule one") + "\n")
		return sb.String()
	}

	maxRows := m.height - 3
	if maxRows < 4 {
		maxRows = 8
	}
	for i, e := range m.items {
		if i >= maxRows {
			break
		}
		isActive := i == m.cursor

		cursor := "  "
		if isActive {
			cursor = accentStyle.Render("▸") + " "
		}
		titleStr := normalStyle.Render(truncStr(e.Title, 28))
		if isActive {
			titleStr = selectedStyle.Render(truncStr(e.Title, 28))
		}
		chip := EventTypeStyle(e.Type).Render(e.Type)
		when := ""
		if !e.DateTime.IsZero() {
			when = e.DateTime.Format("Jan 2 15:04")
		}

		if isActive && m.eState == evDeleting {
			fmt.Fprintf(&sb, " %s%s  %s\n", cursor, titleStr, chip)
			sb.WriteString("   " + dangerStyle.Render("delete this event? ") +
				accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
			continue
		}

		location := ""
		if e.Location != "" {
			location = dimStyle.Render(" @ " + truncStr(e.Location, 20))
		}
		fmt.Fprintf(&sb, " %s%s  %s  %s%s  %s\n",
			cursor, titleStr, chip, metaStyle.Render(when), location,
			metaStyle.Render(fmt.Sprintf("%d attending", e.Attendees)))
	}

	return sb.String()
}

func (m eventsModel) renderForm() string {
	var sb strings.Builder
	sb.WriteString("\n")

	row := func(idx int, label, value, hint string) string {
		labelStr := inputPromptStyle.Render(fmt.Sprintf("%-11s", label))
		if m.fFocus == idx {
			line := "   " + accentStyle.Render(">") + " " + labelStr + " " + value + accentStyle.Render("_")
			if hint != "" {
				line += dimStyle.Render("  " + hint)
			}
			return line + "\n"
		}
		return "     " + labelStr + " " + dimStyle.Render(value) + "\n"
	}

	sb.WriteString(row(0, "title:", m.fTitle, ""))
	sb.WriteString(row(1, "when:", m.fWhen, eventDateLayout))
	sb.WriteString(row(2, "location:", m.fLocation, ""))

	eventType := domain.ValidEventTypes[m.fType]
	typeLabel := inputPromptStyle.Render(fmt.Sprintf("%-11s", "type:"))
	if m.fFocus == 3 {
		sb.WriteString("   " + accentStyle.Render(">") + " " + typeLabel + " " + EventTypeStyle(eventType).Render(eventType) + dimStyle.Render("  ←/→") + "\n")
	} else {
		sb.WriteString("     " + typeLabel + " " + EventTypeStyle(eventType).Render(eventType) + "\n")
	}

	sb.WriteString(row(4, "attendees:", m.fAttendees, ""))
	sb.WriteString("   " + dimStyle.Render("tab next · enter save · esc cancel") + "\n")
	return sb.String()
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hivecastapp/hivecast/internal/browser"
	"github.com/hivecastapp/hivecast/internal/state"
	"github.com/hivecastapp/hivecast/pkg/domain"
)

// profileState is the state machine for the profile editor.
type profileState int

const (
	profNormal profileState = iota
	profEditing
	profLoggingOut // logout confirmation
)

// -- messages --

type profileLoadedMsg struct {
	user *domain.UserProfile
}

type profileSavedMsg struct{ err error }

type youCopyMsg struct{ err error }

type logoutDoneMsg struct{ err error }

// -- model --

type youModel struct {
	auth *state.AuthSession

	user      *domain.UserProfile
	pState    profileState
	statusMsg string
	width     int
	height    int

	// form fields
	fName     string
	fBio      string
	fLocation string
	fWebsite  string
	fSkills   string // comma-separated
	fFocus    int
}

const profileFormFields = 5

func newYouModel(auth *state.AuthSession) youModel {
	return youModel{auth: auth}
}

func (m youModel) editing() bool {
	return m.pState != profNormal
}

// load refreshes the profile snapshot from the session container.
func (m youModel) load() tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		return profileLoadedMsg{user: auth.User()}
	}
}

func (m youModel) Update(msg tea.Msg) (youModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionResolvedMsg:
		m.user = m.auth.User()
		return m, nil

	case profileLoadedMsg:
		m.user = msg.user
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.user = m.auth.User()
			m.statusMsg = "profile saved"
		}
		m.pState = profNormal
		return m, nil

	case youCopyMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "copied!"
		}
		return m, nil

	case logoutDoneMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("logout failed: %v", msg.err)
			m.pState = profNormal
			return m, nil
		}
		m.pState = profNormal
		m.user = nil
		return m, func() tea.Msg { return signedOutMsg{} }

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

func (m youModel) handleKey(msg tea.KeyMsg) (youModel, tea.Cmd) {
	switch m.pState {
	case profEditing:
		return m.handleKeyEditing(msg)
	case profLoggingOut:
		switch msg.String() {
		case "y", "Y":
			auth := m.auth
			return m, func() tea.Msg {
				return logoutDoneMsg{err: auth.Logout(context.Background())}
			}
		case "n", "N", "esc":
			m.pState = profNormal
		}
		return m, nil
	}

	switch msg.String() {
	case "e":
		if m.user != nil {
			m.pState = profEditing
			m.fName = m.user.DisplayName
			m.fBio = m.user.Bio
			m.fLocation = m.user.Location
			m.fWebsite = m.user.Website
			m.fSkills = strings.Join(m.user.Skills, ", ")
			m.fFocus = 0
		}
	case "c":
		if m.user != nil && m.user.Email != "" {
			email := m.user.Email
			return m, func() tea.Msg {
				return youCopyMsg{err: clipboard.WriteAll(email)}
			}
		}
	case "o":
		if m.user != nil && m.user.Website != "" {
			browser.Open(m.user.Website) //nolint:errcheck // best-effort browser open
		}
	case "x":
		m.pState = profLoggingOut
	}
	return m, nil
}

func (m youModel) handleKeyEditing(msg tea.KeyMsg) (youModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.fFocus = (m.fFocus + 1) % profileFormFields
	case "shift+tab":
		m.fFocus = (m.fFocus + profileFormFields - 1) % profileFormFields
	case "enter":
		name := strings.TrimSpace(m.fName)
		if name == "" {
			m.statusMsg = "name required"
			return m, nil
		}
		bio := strings.TrimSpace(m.fBio)
		location := strings.TrimSpace(m.fLocation)
		website := strings.TrimSpace(m.fWebsite)
		var skills []string
		for _, s := range strings.Split(m.fSkills, ",") {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		patch := domain.ProfilePatch{
			DisplayName: &name,
			Bio:         &bio,
			Location:    &location,
			Website:     &website,
			Skills:      &skills,
		}
		auth := m.auth
		return m, func() tea.Msg {
			return profileSavedMsg{err: auth.UpdateProfile(context.Background(), patch)}
		}
	case "esc":
		m.pState = profNormal
	default:
		switch m.fFocus {
		case 0:
			m.fName = editRune(m.fName, msg.String())
		case 1:
			m.fBio = editRune(m.fBio, msg.String())
		case 2:
			m.fLocation = editRune(m.fLocation, msg.String())
		case 3:
			m.fWebsite = editRune(m.fWebsite, msg.String())
		case 4:
			m.fSkills = editRune(m.fSkills, msg.String())
		}
	}
	return m, nil
}

func (m youModel) helpKeys() string {
	switch m.pState {
	case profEditing:
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case profLoggingOut:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	default:
		return helpEntry("e", "edit") + "  " + helpEntry("c", "copy email") + "  " + helpEntry("o", "open site") + "  " + helpEntry("x", "sign out") + "  " + helpEntry("q", "quit")
	}
}

func (m youModel) View() string {
	var sb strings.Builder

	if m.user == nil {
		sb.WriteString("\n " + dimStyle.Render("not signed in") + "\n")
		return sb.String()
	}

	if m.statusMsg != "" {
		sb.WriteString("\n " + okStyle.Render(m.statusMsg) + "\n")
	}

	if m.pState == profEditing {
		sb.WriteString(m.renderEditForm())
		return sb.String()
	}

	sb.WriteString("\n " + selectedStyle.Render(m.user.DisplayName) + "\n")
	parts := []string{}
	if m.user.Role != "" {
		parts = append(parts, accentStyle.Render(m.user.Role))
	}
	if m.user.Email != "" {
		parts = append(parts, metaStyle.Render(m.user.Email))
	}
	if m.user.Location != "" {
		parts = append(parts, metaStyle.Render(m.user.Location))
	}
	if len(parts) > 0 {
		sb.WriteString("   " + strings.Join(parts, dimStyle.Render(" · ")) + "\n")
	}

	if m.user.Bio != "" {
		sb.WriteString("\n   " + normalStyle.Render(m.user.Bio) + "\n")
	}
	if m.user.Website != "" {
		sb.WriteString("   " + dimStyle.Render("site  ") + accentStyle.Render(m.user.Website) + "\n")
	}
	if len(m.user.Skills) > 0 {
		sb.WriteString("   " + dimStyle.Render("skills  ") + normalStyle.Render(strings.Join(m.user.Skills, ", ")) + "\n")
	}

	if m.pState == profLoggingOut {
		sb.WriteString("\n   " + dangerStyle.Render("sign out? ") +
			accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
	}

	return sb.String()
}

func (m youModel) renderEditForm() string {
	var sb strings.Builder
	sb.WriteString("\n " + sectionHeaderStyle.Render("── EDIT PROFILE ──") + "\n\n")

	row := func(idx int, label, value string) string {
		labelStr := inputPromptStyle.Render(fmt.Sprintf("%-10s", label))
		if m.fFocus == idx {
			return "   " + accentStyle.Render(">") + " " + labelStr + " " + value + accentStyle.Render("_") + "\n"
		}
		return "     " + labelStr + " " + dimStyle.Render(value) + "\n"
	}

	sb.WriteString(row(0, "name:", m.fName))
	sb.WriteString(row(1, "bio:", m.fBio))
	sb.WriteString(row(2, "location:", m.fLocation))
	sb.WriteString(row(3, "website:", m.fWebsite))
	sb.WriteString(row(4, "skills:", m.fSkills))
	sb.WriteString("   " + dimStyle.Render("tab next · enter save · esc cancel") + "\n")
	return sb.String()
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hivecastapp/hivecast/internal/state"
)

// loginMode toggles between the sign-in and create-account forms.
type loginMode int

const (
	loginSignIn loginMode = iota
	loginRegister
)

// loginDoneMsg carries the result of a login or register attempt.
type loginDoneMsg struct{ err error }

type loginModel struct {
	auth *state.AuthSession

	mode     loginMode
	email    string
	password string
	name     string // display name, register only
	focus    int
	busy     bool
	errMsg   string
	width    int
	height   int
}

func newLoginModel(auth *state.AuthSession) loginModel {
	return loginModel{auth: auth}
}

func (m loginModel) fieldCount() int {
	if m.mode == loginRegister {
		return 3
	}
	return 2
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return signedInMsg{} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % m.fieldCount()
		case "shift+tab", "up":
			m.focus = (m.focus + m.fieldCount() - 1) % m.fieldCount()
		case "ctrl+r":
			if m.mode == loginSignIn {
				m.mode = loginRegister
			} else {
				m.mode = loginSignIn
			}
			m.focus = 0
			m.errMsg = ""
		case "enter":
			return m.submit()
		default:
			switch m.focus {
			case 0:
				m.email = editRune(m.email, msg.String())
			case 1:
				m.password = editRune(m.password, msg.String())
			case 2:
				m.name = editRune(m.name, msg.String())
			}
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.email)
	if email == "" {
		m.errMsg = "email required"
		return m, nil
	}
	m.busy = true
	m.errMsg = ""

	auth := m.auth
	password := m.password
	if m.mode == loginRegister {
		name := strings.TrimSpace(m.name)
		return m, func() tea.Msg {
			return loginDoneMsg{err: auth.Register(context.Background(), email, password, name)}
		}
	}
	return m, func() tea.Msg {
		return loginDoneMsg{err: auth.Login(context.Background(), email, password)}
	}
}

func (m loginModel) field(label, value string, idx int, masked bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("*", len([]rune(value)))
	}
	labelStr := inputPromptStyle.Render(fmt.Sprintf("%-10s", label))
	if m.focus == idx {
		return "   " + accentStyle.Render(">") + " " + labelStr + " " + shown + accentStyle.Render("_")
	}
	return "     " + labelStr + " " + dimStyle.Render(shown)
}

func (m loginModel) View() string {
	var sb strings.Builder

	title := "sign in"
	if m.mode == loginRegister {
		title = "create account"
	}
	sb.WriteString("\n " + sectionHeaderStyle.Render("── "+strings.ToUpper(title)+" ──") + "\n\n")

	sb.WriteString(m.field("email:", m.email, 0, false) + "\n")
	sb.WriteString(m.field("password:", m.password, 1, true) + "\n")
	if m.mode == loginRegister {
		sb.WriteString(m.field("name:", m.name, 2, false) + "\n")
	}

	sb.WriteString("\n")
	if m.busy {
		sb.WriteString("   " + dimStyle.Render("signing in...") + "\n")
	}
	if m.errMsg != "" {
		sb.WriteString("   " + dangerStyle.Render(m.errMsg) + "\n")
	}

	other := "create an account"
	if m.mode == loginRegister {
		other = "sign in instead"
	}
	sb.WriteString("\n   " + dimStyle.Render("ctrl+r "+other) + "\n")

	return sb.String()
}

func (m loginModel) helpKeys() string {
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("ctrl+r", "switch") + "  " + helpEntry("ctrl+c", "quit")
}

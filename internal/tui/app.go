// Package tui is the terminal front end: an Elm-style model tree over the
// state containers. Views never touch the stores directly; every mutation
// goes through the containers inside command goroutines and comes back as
// a message.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hivecastapp/hivecast/internal/browser"
	"github.com/hivecastapp/hivecast/internal/state"
	"github.com/hivecastapp/hivecast/pkg/store"
)

type view int

const (
	viewHome view = iota
	viewProjects
	viewEvents
	viewYou
	viewSettings
)

// sessionResolvedMsg carries the result of the startup auth resolution and
// initial data load.
type sessionResolvedMsg struct {
	status state.AuthStatus
	err    error
}

// signedInMsg is emitted by the login view after a successful login or
// registration.
type signedInMsg struct{}

// signedOutMsg is emitted by the You view after logout.
type signedOutMsg struct{}

// dataRefreshedMsg carries the result of a full snapshot reload.
type dataRefreshedMsg struct{ err error }

// themeChangedMsg is emitted by the Settings view when the theme setting
// changes; the whole style set is rebuilt in response.
type themeChangedMsg struct{ theme string }

// dataWipedMsg is emitted by the Settings view after the destructive bulk
// delete; the app reloads everything from (now empty) storage.
type dataWipedMsg struct{}

// App is the root Bubbletea model.
type App struct {
	auth    *state.AuthSession
	app     *state.AppState
	mode    store.Mode
	version string

	view     view
	resolved bool
	update   string // newer release tag, when one exists

	login    loginModel
	home     homeModel
	projects projectsModel
	events   eventsModel
	you      youModel
	settings settingsModel

	helpOpen   bool
	helpCursor int
	errMsg     string
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates the root model over the resolved backend's containers.
func NewApp(auth *state.AuthSession, app *state.AppState, mode store.Mode, version string) App {
	return App{
		auth:     auth,
		app:      app,
		mode:     mode,
		version:  version,
		login:    newLoginModel(auth),
		home:     newHomeModel(app, auth, mode),
		projects: newProjectsModel(app, auth),
		events:   newEventsModel(app, auth),
		you:      newYouModel(auth),
		settings: newSettingsModel(app),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.resolveSession(), checkVersion(a.version))
}

// resolveSession runs the one-time startup sequence: restore the auth
// state, then hydrate the entity snapshots.
func (a App) resolveSession() tea.Cmd {
	auth, app := a.auth, a.app
	return func() tea.Msg {
		ctx := context.Background()
		if err := auth.Init(ctx); err != nil {
			return sessionResolvedMsg{status: auth.Status(), err: err}
		}
		if err := app.Refresh(ctx); err != nil {
			return sessionResolvedMsg{status: auth.Status(), err: err}
		}
		return sessionResolvedMsg{status: auth.Status()}
	}
}

func (a App) refreshData() tea.Cmd {
	app := a.app
	return func() tea.Msg {
		return dataRefreshedMsg{err: app.Refresh(context.Background())}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.login, _ = a.login.Update(bodyMsg)
		a.home, _ = a.home.Update(bodyMsg)
		a.projects, _ = a.projects.Update(bodyMsg)
		a.events, _ = a.events.Update(bodyMsg)
		a.you, _ = a.you.Update(bodyMsg)
		a.settings, _ = a.settings.Update(bodyMsg)

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case versionCheckMsg:
		if msg.hasUpdate {
			a.update = msg.latestVersion
		}
		return a, nil

	case sessionResolvedMsg:
		a.resolved = true
		if msg.err != nil {
			a.errMsg = msg.err.Error()
		}
		applyTheme(a.app.Settings().Theme)
		a.you, _ = a.you.Update(msg)
		a.settings, _ = a.settings.Update(msg)
		return a, nil

	case signedInMsg:
		a.view = viewHome
		return a, tea.Batch(a.refreshData(), a.you.load())

	case signedOutMsg:
		a.view = viewHome
		a.login = newLoginModel(a.auth)
		return a, nil

	case dataRefreshedMsg:
		if msg.err != nil {
			a.errMsg = msg.err.Error()
		} else {
			a.errMsg = ""
		}
		a.home, _ = a.home.Update(msg)
		a.projects, _ = a.projects.Update(msg)
		a.events, _ = a.events.Update(msg)
		a.settings, _ = a.settings.Update(msg)
		return a, nil

	case themeChangedMsg:
		applyTheme(msg.theme)
		return a, nil

	case dataWipedMsg:
		applyTheme(a.app.Settings().Theme)
		return a, a.refreshData()

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		// Login screen owns the keyboard until the session is signed in
		if a.resolved && a.auth.Status() != state.StatusAuthenticated {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q", "ctrl+c":
				return a, tea.Quit
			case "r":
				return a, a.refreshData()
			case "1":
				a.view = viewHome
				return a, nil
			case "2":
				a.view = viewProjects
				return a, nil
			case "3":
				a.view = viewEvents
				return a, nil
			case "4":
				if a.view != viewYou {
					a.view = viewYou
					return a, a.you.load()
				}
				return a, nil
			case "5":
				a.view = viewSettings
				return a, nil
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	if a.resolved && a.auth.Status() != state.StatusAuthenticated {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.view {
	case viewHome:
		a.home, cmd = a.home.Update(msg)
	case viewProjects:
		a.projects, cmd = a.projects.Update(msg)
	case viewEvents:
		a.events, cmd = a.events.Update(msg)
	case viewYou:
		a.you, cmd = a.you.Update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewProjects:
		return a.projects.editing()
	case viewEvents:
		return a.events.editing()
	case viewYou:
		return a.you.editing()
	case viewSettings:
		return a.settings.confirming()
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)

	// Mode badge below the logo: remote sessions say so, local stays quiet
	statsLine := ""
	if a.resolved {
		parts := []string{}
		if user := a.auth.User(); user != nil {
			parts = append(parts, user.DisplayName)
		}
		if a.mode == store.ModeRemote {
			parts = append(parts, "hosted")
		}
		if a.update != "" {
			parts = append(parts, a.update+" available")
		}
		if len(parts) > 0 {
			statsLine = metaStyle.Render(strings.Join(parts, " · "))
		}
	}

	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	if statsLine != "" {
		statsWidth := lipgloss.Width(statsLine)
		statsPad := (a.width - statsWidth) / 2
		if statsPad < 0 {
			statsPad = 0
		}
		header += "\n" + strings.Repeat(" ", statsPad) + statsLine
	} else {
		header += "\n"
	}

	// Splash while the session resolves
	if !a.resolved {
		return header + "\n\n " + dimStyle.Render("preparing your desk...")
	}

	// Login screen until signed in
	if a.auth.Status() != state.StatusAuthenticated {
		body := a.login.View()
		help := " " + a.login.helpKeys()
		return fmt.Sprintf("%s\n%s\n%s", header, body, help)
	}

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Home", viewHome},
		{"2", "Projects", viewProjects},
		{"3", "Events", viewEvents},
		{"4", "You", viewYou},
		{"5", "Settings", viewSettings},
	}

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	centeredTabs := tabBar.String()

	var body string
	var help string
	switch a.view {
	case viewHome:
		body = a.home.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewProjects:
		body = a.projects.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.projects.helpKeys()
	case viewEvents:
		body = a.events.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.events.helpKeys()
	case viewYou:
		body = a.you.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.you.helpKeys()
	case viewSettings:
		body = a.settings.View()
		help = " " + helpEntry("1-5", "tabs") + "  " + a.settings.helpKeys()
	}

	if a.errMsg != "" {
		body = " " + dangerStyle.Render("error: "+a.errMsg) + "\n" + body
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Chrome: header(2) + tabs(1) + help(1) = 4 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, centeredTabs, body, help)
}

package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hivecastapp/hivecast/internal/state"
	"github.com/hivecastapp/hivecast/pkg/domain"
)

// settingsRow identifies an entry in the settings list.
type settingsRow int

const (
	rowTheme settingsRow = iota
	rowNotifications
	rowEmailUpdates
	rowPublicProfile
	rowShowLocation
	rowLanguage
	rowExport
	rowDeleteAll
	settingsRowCount
)

// -- messages --

type settingsSavedMsg struct {
	settings domain.Settings
	err      error
}

type exportDoneMsg struct {
	path string
	err  error
}

type wipeDoneMsg struct{ err error }

// -- model --

type settingsModel struct {
	app *state.AppState

	settings  domain.Settings
	cursor    settingsRow
	wiping    bool // delete-all confirmation pending
	statusMsg string
	width     int
	height    int
}

func newSettingsModel(app *state.AppState) settingsModel {
	return settingsModel{app: app, settings: domain.DefaultSettings()}
}

func (m settingsModel) confirming() bool {
	return m.wiping
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionResolvedMsg, dataRefreshedMsg:
		m.settings = m.app.Settings()
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
			return m, nil
		}
		changedTheme := msg.settings.Theme != m.settings.Theme
		m.settings = msg.settings
		if changedTheme {
			theme := msg.settings.Theme
			return m, func() tea.Msg { return themeChangedMsg{theme: theme} }
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.statusMsg = "exported to " + msg.path
		}
		return m, nil

	case wipeDoneMsg:
		m.wiping = false
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.settings = domain.DefaultSettings()
		m.statusMsg = "all local data deleted"
		return m, func() tea.Msg { return dataWipedMsg{} }

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

func (m settingsModel) handleKey(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if m.wiping {
		switch msg.String() {
		case "y", "Y":
			app := m.app
			return m, func() tea.Msg {
				return wipeDoneMsg{err: app.DeleteAllData(context.Background())}
			}
		case "n", "N", "esc":
			m.wiping = false
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < settingsRowCount-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", " ", "space":
		return m.activate()
	case "left", "right":
		if m.cursor == rowLanguage {
			return m.cycleLanguage(msg.String() == "right")
		}
		if m.cursor == rowTheme {
			return m.activate()
		}
	}
	return m, nil
}

func (m settingsModel) activate() (settingsModel, tea.Cmd) {
	switch m.cursor {
	case rowTheme:
		theme := domain.ThemeLight
		if m.settings.Theme == domain.ThemeLight {
			theme = domain.ThemeDark
		}
		return m.save(domain.SettingsPatch{Theme: &theme})
	case rowNotifications:
		v := !m.settings.Notifications
		return m.save(domain.SettingsPatch{Notifications: &v})
	case rowEmailUpdates:
		v := !m.settings.EmailUpdates
		return m.save(domain.SettingsPatch{EmailUpdates: &v})
	case rowPublicProfile:
		v := !m.settings.PublicProfile
		return m.save(domain.SettingsPatch{PublicProfile: &v})
	case rowShowLocation:
		v := !m.settings.ShowLocation
		return m.save(domain.SettingsPatch{ShowLocation: &v})
	case rowLanguage:
		return m.cycleLanguage(true)
	case rowExport:
		app := m.app
		dir, err := os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		return m, func() tea.Msg {
			path, err := app.ExportData(context.Background(), dir)
			return exportDoneMsg{path: path, err: err}
		}
	case rowDeleteAll:
		m.wiping = true
	}
	return m, nil
}

func (m settingsModel) cycleLanguage(forward bool) (settingsModel, tea.Cmd) {
	langs := domain.ValidLanguages
	idx := 0
	for i, l := range langs {
		if l == m.settings.Language {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(langs)
	} else {
		idx = (idx + len(langs) - 1) % len(langs)
	}
	lang := langs[idx]
	return m.save(domain.SettingsPatch{Language: &lang})
}

func (m settingsModel) save(patch domain.SettingsPatch) (settingsModel, tea.Cmd) {
	app := m.app
	return m, func() tea.Msg {
		settings, err := app.UpdateSettings(context.Background(), patch)
		return settingsSavedMsg{settings: settings, err: err}
	}
}

func (m settingsModel) helpKeys() string {
	if m.wiping {
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "toggle") + "  " + helpEntry("←/→", "language") + "  " + helpEntry("q", "quit")
}

func (m settingsModel) View() string {
	var sb strings.Builder

	sb.WriteString("\n " + sectionHeaderStyle.Render("── SETTINGS ──") + "\n")

	if m.statusMsg != "" {
		sb.WriteString(" " + okStyle.Render(m.statusMsg) + "\n")
	}
	sb.WriteString("\n")

	onOff := func(v bool) string {
		if v {
			return okStyle.Render("on")
		}
		return dimStyle.Render("off")
	}

	rows := []struct {
		row   settingsRow
		label string
		value string
	}{
		{rowTheme, "theme", normalStyle.Render(m.settings.Theme)},
		{rowNotifications, "notifications", onOff(m.settings.Notifications)},
		{rowEmailUpdates, "email updates", onOff(m.settings.EmailUpdates)},
		{rowPublicProfile, "public profile", onOff(m.settings.PublicProfile)},
		{rowShowLocation, "show location", onOff(m.settings.ShowLocation)},
		{rowLanguage, "language", normalStyle.Render(m.settings.Language)},
		{rowExport, "export data", dimStyle.Render("write JSON backup")},
		{rowDeleteAll, "delete all data", dangerStyle.Render("wipe local storage")},
	}

	for _, r := range rows {
		cursor := "  "
		label := dimStyle.Render(fmt.Sprintf("%-16s", r.label))
		if r.row == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			label = selectedStyle.Render(fmt.Sprintf("%-16s", r.label))
		}
		fmt.Fprintf(&sb, " %s%s %s\n", cursor, label, r.value)

		if r.row == rowDeleteAll && m.wiping {
			sb.WriteString("   " + dangerStyle.Render("delete ALL local data? this cannot be undone ") +
				accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n") + "\n")
		}
	}

	return sb.String()
}

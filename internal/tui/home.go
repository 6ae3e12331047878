package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hivecastapp/hivecast/internal/state"
	"github.com/hivecastapp/hivecast/pkg/domain"
	"github.com/hivecastapp/hivecast/pkg/store"
)

// homeModel is the dashboard: counts plus the most recent projects and
// events, rendered straight from the snapshots.
type homeModel struct {
	app    *state.AppState
	auth   *state.AuthSession
	mode   store.Mode
	width  int
	height int
}

func newHomeModel(app *state.AppState, auth *state.AuthSession, mode store.Mode) homeModel {
	return homeModel{app: app, auth: auth, mode: mode}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m homeModel) View() string {
	projects := m.app.Projects()
	events := m.app.Events()

	var sb strings.Builder

	inProgress := 0
	completed := 0
	for _, p := range projects {
		switch p.Status {
		case domain.StatusInProgress:
			inProgress++
		case domain.StatusCompleted:
			completed++
		}
	}

	sb.WriteString("\n ")
	sb.WriteString(selectedStyle.Render(fmt.Sprintf("%d", len(projects))) + dimStyle.Render(" projects"))
	sb.WriteString(metaStyle.Render("  ·  "))
	sb.WriteString(warnStyle.Render(fmt.Sprintf("%d", inProgress)) + dimStyle.Render(" in progress"))
	sb.WriteString(metaStyle.Render("  ·  "))
	sb.WriteString(okStyle.Render(fmt.Sprintf("%d", completed)) + dimStyle.Render(" completed"))
	sb.WriteString(metaStyle.Render("  ·  "))
	sb.WriteString(selectedStyle.Render(fmt.Sprintf("%d", len(events))) + dimStyle.Render(" events"))
	sb.WriteString("\n")

	sb.WriteString("\n " + sectionHeaderStyle.Render("── RECENT PROJECTS ──") + "\n")
	if len(projects) == 0 {
		sb.WriteString("   " + dimStyle.Render("nothing yet · press 2 to start a project") + "\n")
	}
	maxRows := 5
	for i, p := range projects {
		if i >= maxRows {
			break
		}
		chip := CategoryStyle(p.Category).Render(p.Category)
		status := StatusStyle(p.Status).Render(p.Status)
		fmt.Fprintf(&sb, "   %s  %s  %s  %s\n",
			normalStyle.Render(truncStr(p.Title, 32)),
			chip, status,
			metaStyle.Render(formatTime(p.CreatedAt.Time)))
	}

	sb.WriteString("\n " + sectionHeaderStyle.Render("── UPCOMING EVENTS ──") + "\n")
	if len(events) == 0 {
		sb.WriteString("   " + dimStyle.Render("no events · press 3 to schedule one") + "\n")
	}
	for i, e := range events {
		if i >= maxRows {
			break
		}
		chip := EventTypeStyle(e.Type).Render(e.Type)
		when := ""
		if !e.DateTime.IsZero() {
			when = e.DateTime.Format("Jan 2 15:04")
		}
		fmt.Fprintf(&sb, "   %s  %s  %s\n",
			normalStyle.Render(truncStr(e.Title, 32)),
			chip,
			metaStyle.Render(when))
	}

	return sb.String()
}

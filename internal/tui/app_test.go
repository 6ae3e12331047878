package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hivecastapp/hivecast/internal/backend"
	"github.com/hivecastapp/hivecast/internal/config"
	"github.com/hivecastapp/hivecast/internal/state"
	"github.com/hivecastapp/hivecast/pkg/store"
)

// newTestContainers builds real local-mode state containers over a temp
// data directory.
func newTestContainers(t *testing.T) (*state.AuthSession, *state.AppState) {
	t.Helper()
	b, err := backend.Open(config.Config{DataDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("backend.Open() error: %v", err)
	}
	auth := state.NewAuthSession(b, filepath.Join(b.Local.Dir(), "token"), nil)
	app := state.NewAppState(b, nil)
	return auth, app
}

func signIn(t *testing.T, auth *state.AuthSession) {
	t.Helper()
	ctx := context.Background()
	if err := auth.Init(ctx); err != nil {
		t.Fatalf("auth.Init() error: %v", err)
	}
	if err := auth.Login(ctx, "ana@example.com", "pw"); err != nil {
		t.Fatalf("auth.Login() error: %v", err)
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppSplashBeforeResolve(t *testing.T) {
	auth, app := newTestContainers(t)
	a := NewApp(auth, app, store.ModeLocal, "dev")

	if got := a.View(); !strings.Contains(got, "preparing your desk") {
		t.Errorf("splash missing from view:\n%s", got)
	}
}

func TestAppShowsLoginWhenAnonymous(t *testing.T) {
	auth, app := newTestContainers(t)
	if err := auth.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	a := NewApp(auth, app, store.ModeLocal, "dev")

	model, _ := a.Update(sessionResolvedMsg{status: state.StatusAnonymous})
	a = model.(App)

	got := a.View()
	if !strings.Contains(got, "SIGN IN") {
		t.Errorf("login header missing:\n%s", got)
	}
	if !strings.Contains(got, "email:") {
		t.Errorf("email field missing:\n%s", got)
	}
}

func TestAppTabSwitching(t *testing.T) {
	auth, app := newTestContainers(t)
	signIn(t, auth)
	a := NewApp(auth, app, store.ModeLocal, "dev")

	model, _ := a.Update(sessionResolvedMsg{status: state.StatusAuthenticated})
	a = model.(App)

	model, _ = a.Update(keyMsg("2"))
	a = model.(App)
	if !strings.Contains(a.View(), "PROJECTS") {
		t.Error("pressing 2 should show the projects view")
	}

	model, _ = a.Update(keyMsg("3"))
	a = model.(App)
	if !strings.Contains(a.View(), "EVENTS") {
		t.Error("pressing 3 should show the events view")
	}

	model, _ = a.Update(keyMsg("5"))
	a = model.(App)
	if !strings.Contains(a.View(), "SETTINGS") {
		t.Error("pressing 5 should show the settings view")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	auth, app := newTestContainers(t)
	signIn(t, auth)
	a := NewApp(auth, app, store.ModeLocal, "dev")

	model, _ := a.Update(sessionResolvedMsg{status: state.StatusAuthenticated})
	a = model.(App)

	model, _ = a.Update(keyMsg("h"))
	a = model.(App)
	if !a.helpOpen {
		t.Fatal("h should open the help overlay")
	}
	got := a.View()
	if !strings.Contains(got, "Commands") || !strings.Contains(got, "hivecast export") {
		t.Errorf("help overlay missing:\n%s", got)
	}

	model, _ = a.Update(keyMsg("esc"))
	a = model.(App)
	if a.helpOpen {
		t.Error("esc should close the help overlay")
	}
}

func TestAppShowsUpdateBadge(t *testing.T) {
	auth, app := newTestContainers(t)
	signIn(t, auth)
	a := NewApp(auth, app, store.ModeLocal, "1.0.0")

	model, _ := a.Update(sessionResolvedMsg{status: state.StatusAuthenticated})
	a = model.(App)
	model, _ = a.Update(versionCheckMsg{latestVersion: "v1.1.0", hasUpdate: true})
	a = model.(App)

	if !strings.Contains(a.View(), "v1.1.0 available") {
		t.Error("update badge missing from header")
	}
}

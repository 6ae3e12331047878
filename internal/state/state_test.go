package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivecastapp/hivecast/internal/backend"
	"github.com/hivecastapp/hivecast/internal/config"
	"github.com/hivecastapp/hivecast/pkg/domain"
)

func newTestBackend(t *testing.T) *backend.Backend {
	t.Helper()
	b, err := backend.Open(config.Config{DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	return b
}

func newTestAuth(t *testing.T, b *backend.Backend) *AuthSession {
	t.Helper()
	return NewAuthSession(b, filepath.Join(b.Local.Dir(), "token"), nil)
}

func TestAuthStartsAnonymous(t *testing.T) {
	b := newTestBackend(t)
	auth := newTestAuth(t, b)

	assert.Equal(t, StatusUnknown, auth.Status())
	require.NoError(t, auth.Init(context.Background()))
	assert.Equal(t, StatusAnonymous, auth.Status())
	assert.Nil(t, auth.User())
}

func TestLocalLoginDerivesDisplayName(t *testing.T) {
	b := newTestBackend(t)
	auth := newTestAuth(t, b)
	ctx := context.Background()

	require.NoError(t, auth.Init(ctx))
	require.NoError(t, auth.Login(ctx, "ana@example.com", "whatever"))

	assert.Equal(t, StatusAuthenticated, auth.Status())
	user := auth.User()
	require.NotNil(t, user)
	assert.Equal(t, "local-user", user.UID)
	assert.Equal(t, "ana", user.DisplayName)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestLocalRegisterKeepsChosenName(t *testing.T) {
	b := newTestBackend(t)
	auth := newTestAuth(t, b)
	ctx := context.Background()

	require.NoError(t, auth.Init(ctx))
	require.NoError(t, auth.Register(ctx, "ana@example.com", "pw", "Ana Torres"))

	user := auth.User()
	require.NotNil(t, user)
	assert.Equal(t, "Ana Torres", user.DisplayName)
}

func TestLocalSessionPersistsAcrossRestart(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	first := newTestAuth(t, b)
	require.NoError(t, first.Init(ctx))
	require.NoError(t, first.Login(ctx, "ana@example.com", "pw"))

	second := newTestAuth(t, b)
	require.NoError(t, second.Init(ctx))
	assert.Equal(t, StatusAuthenticated, second.Status())
	user := second.User()
	require.NotNil(t, user)
	assert.Equal(t, "ana", user.DisplayName)
}

func TestLogoutForgetsIdentityKeepsData(t *testing.T) {
	b := newTestBackend(t)
	auth := newTestAuth(t, b)
	ctx := context.Background()

	require.NoError(t, auth.Init(ctx))
	require.NoError(t, auth.Login(ctx, "ana@example.com", "pw"))

	_, err := b.Local.CreateProject(ctx, domain.ProjectDraft{Title: "survives"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx))
	assert.Equal(t, StatusAnonymous, auth.Status())
	assert.Nil(t, auth.User())

	fresh := newTestAuth(t, b)
	require.NoError(t, fresh.Init(ctx))
	assert.Equal(t, StatusAnonymous, fresh.Status())

	projects, err := b.Local.Projects(ctx, "")
	require.NoError(t, err)
	assert.Len(t, projects, 1, "entity data outlives the session")
}

func TestUpdateProfileMergesOverIdentity(t *testing.T) {
	b := newTestBackend(t)
	auth := newTestAuth(t, b)
	ctx := context.Background()

	require.NoError(t, auth.Init(ctx))
	require.NoError(t, auth.Login(ctx, "ana@example.com", "pw"))

	bio := "colorist"
	location := "Lisbon"
	require.NoError(t, auth.UpdateProfile(ctx, domain.ProfilePatch{Bio: &bio, Location: &location}))

	user := auth.User()
	require.NotNil(t, user)
	assert.Equal(t, "colorist", user.Bio)
	assert.Equal(t, "Lisbon", user.Location)
	assert.Equal(t, "ana", user.DisplayName, "identity survives the overlay")
	assert.Equal(t, "local-user", user.UID)

	// A second patch goes through the merge path, not the create path
	skills := []string{"grading", "editing"}
	require.NoError(t, auth.UpdateProfile(ctx, domain.ProfilePatch{Skills: &skills}))
	user = auth.User()
	require.NotNil(t, user)
	assert.Equal(t, "colorist", user.Bio, "earlier patch preserved")
	assert.Equal(t, []string{"grading", "editing"}, user.Skills)
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	b := newTestBackend(t)
	auth := newTestAuth(t, b)
	require.NoError(t, auth.Init(context.Background()))

	bio := "nope"
	err := auth.UpdateProfile(context.Background(), domain.ProfilePatch{Bio: &bio})
	assert.Error(t, err)
}

func TestAppStateConfirmThenUpdate(t *testing.T) {
	b := newTestBackend(t)
	app := NewAppState(b, nil)
	ctx := context.Background()

	require.NoError(t, app.Refresh(ctx))
	assert.Empty(t, app.Projects())
	assert.Equal(t, domain.DefaultSettings(), app.Settings())

	created, err := app.AddProject(ctx, domain.ProjectDraft{Title: "Night Shoot", Category: "film"})
	require.NoError(t, err)
	require.Len(t, app.Projects(), 1)
	assert.Equal(t, created.ID, app.Projects()[0].ID)

	status := domain.StatusInProgress
	progress := 30
	require.NoError(t, app.UpdateProject(ctx, created.ID, domain.ProjectPatch{Status: &status, Progress: &progress}))
	got := app.Projects()[0]
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, 30, got.Progress)

	require.NoError(t, app.DeleteProject(ctx, created.ID))
	assert.Empty(t, app.Projects())
}

func TestAppStateEvents(t *testing.T) {
	b := newTestBackend(t)
	app := NewAppState(b, nil)
	ctx := context.Background()

	created, err := app.AddEvent(ctx, domain.EventDraft{Title: "Kickoff", Type: "meeting"})
	require.NoError(t, err)
	require.Len(t, app.Events(), 1)

	title := "Kickoff (moved)"
	require.NoError(t, app.UpdateEvent(ctx, created.ID, domain.EventPatch{Title: &title}))
	assert.Equal(t, "Kickoff (moved)", app.Events()[0].Title)

	require.NoError(t, app.DeleteEvent(ctx, created.ID))
	assert.Empty(t, app.Events())
}

func TestAppStateSettingsIdempotent(t *testing.T) {
	b := newTestBackend(t)
	app := NewAppState(b, nil)
	ctx := context.Background()

	theme := domain.ThemeLight
	notif := false
	patch := domain.SettingsPatch{Theme: &theme, Notifications: &notif}

	first, err := app.UpdateSettings(ctx, patch)
	require.NoError(t, err)
	second, err := app.UpdateSettings(ctx, patch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, domain.ThemeLight, app.Settings().Theme)
	assert.False(t, app.Settings().Notifications)
}

func TestExportDataWritesDatedFile(t *testing.T) {
	b := newTestBackend(t)
	app := NewAppState(b, nil)
	ctx := context.Background()

	_, err := app.AddProject(ctx, domain.ProjectDraft{Title: "Night Shoot"})
	require.NoError(t, err)
	_, err = app.AddEvent(ctx, domain.EventDraft{Title: "Kickoff", Type: "meeting"})
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := app.ExportData(ctx, dir)
	require.NoError(t, err)

	wantName := "hivecast-data-" + time.Now().Format(time.DateOnly) + ".json"
	assert.Equal(t, wantName, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"projects", "events", "settings", "exportDate"} {
		assert.Contains(t, doc, key)
	}
	assert.True(t, strings.Contains(string(doc["projects"]), "Night Shoot"))
}

func TestDeleteAllDataResetsEverything(t *testing.T) {
	b := newTestBackend(t)
	app := NewAppState(b, nil)
	ctx := context.Background()

	_, err := app.AddProject(ctx, domain.ProjectDraft{Title: "gone"})
	require.NoError(t, err)
	_, err = app.AddEvent(ctx, domain.EventDraft{Title: "gone", Type: "meeting"})
	require.NoError(t, err)
	theme := domain.ThemeLight
	_, err = app.UpdateSettings(ctx, domain.SettingsPatch{Theme: &theme})
	require.NoError(t, err)

	require.NoError(t, app.DeleteAllData(ctx))
	assert.Empty(t, app.Projects())
	assert.Empty(t, app.Events())
	assert.Equal(t, domain.DefaultSettings(), app.Settings())

	// The wipe is durable, not just an in-memory reset
	require.NoError(t, app.Refresh(ctx))
	assert.Empty(t, app.Projects())
	assert.Equal(t, domain.DefaultSettings(), app.Settings())
}

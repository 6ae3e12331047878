package localstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivecastapp/hivecast/pkg/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	return db
}

func TestCreateProjectAssignsDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateProject(ctx, domain.ProjectDraft{
		Title:     "Night Shoot",
		Category:  "film",
		CreatorID: "user-1",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.ID, "project-"))
	assert.Equal(t, domain.StatusPreProduction, created.Status)
	assert.Equal(t, 0, created.Progress)
	assert.Equal(t, 1, created.Collaborators)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateProjectIDsDistinct(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		p, err := db.CreateProject(ctx, domain.ProjectDraft{Title: "p"})
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestProjectsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := Open(dir, nil)
	require.NoError(t, err)
	created, err := db.CreateProject(ctx, domain.ProjectDraft{Title: "Durable", Category: "music"})
	require.NoError(t, err)

	db2, err := Open(dir, nil)
	require.NoError(t, err)
	projects, err := db2.Projects(ctx, "")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, created.ID, projects[0].ID)
	assert.Equal(t, "Durable", projects[0].Title)
}

func TestProjectsFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateProject(ctx, domain.ProjectDraft{Title: "first", CreatorID: "alice"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = db.CreateProject(ctx, domain.ProjectDraft{Title: "second", CreatorID: "bob"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = db.CreateProject(ctx, domain.ProjectDraft{Title: "third", CreatorID: "alice"})
	require.NoError(t, err)

	all, err := db.Projects(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title, "newest first")
	assert.Equal(t, "first", all[2].Title)

	mine, err := db.Projects(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "third", mine[0].Title)
	assert.Equal(t, "first", mine[1].Title)
}

func TestUpdateProjectMergesOnlySetFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateProject(ctx, domain.ProjectDraft{
		Title:       "Doc",
		Description: "wildlife",
		Category:    "documentary",
	})
	require.NoError(t, err)

	progress := 40
	require.NoError(t, db.UpdateProject(ctx, created.ID, domain.ProjectPatch{Progress: &progress}))

	projects, err := db.Projects(ctx, "")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 40, projects[0].Progress)
	assert.Equal(t, "wildlife", projects[0].Description)
	assert.Equal(t, created.CreatedAt, projects[0].CreatedAt)
}

func TestUpdateProjectUnknownIDIsNoOp(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateProject(ctx, domain.ProjectDraft{Title: "keep"})
	require.NoError(t, err)

	title := "changed"
	require.NoError(t, db.UpdateProject(ctx, "project-missing", domain.ProjectPatch{Title: &title}))

	projects, err := db.Projects(ctx, "")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "keep", projects[0].Title)
}

func TestDeleteProjectTerminalAndIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateProject(ctx, domain.ProjectDraft{Title: "gone"})
	require.NoError(t, err)

	require.NoError(t, db.DeleteProject(ctx, created.ID))
	require.NoError(t, db.DeleteProject(ctx, created.ID))

	projects, err := db.Projects(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestCorruptNamespaceFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, NSProjects+".json"), []byte("{not json"), 0600))

	db, err := Open(dir, nil)
	require.NoError(t, err)
	projects, err := db.Projects(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, projects)

	// A write replaces the corrupt value and recovery sticks
	_, err = db.CreateProject(ctx, domain.ProjectDraft{Title: "fresh"})
	require.NoError(t, err)
	projects, err = db.Projects(ctx, "")
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestSaveAllQuotaExceeded(t *testing.T) {
	db := newTestDB(t)

	big := strings.Repeat("x", maxNamespaceBytes+1)
	err := db.SaveAll(NSProjects, big)
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// The previous value must be untouched
	var out string
	assert.False(t, db.Load(NSProjects, &out))
}

func TestSettingsDefaultAndPatch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	settings, err := db.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)

	theme := domain.ThemeLight
	patched, err := db.UpdateSettings(ctx, domain.SettingsPatch{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, patched.Theme)
	assert.True(t, patched.Notifications, "untouched field keeps default")

	again, err := db.UpdateSettings(ctx, domain.SettingsPatch{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, patched, again, "same patch twice yields same value")
}

func TestEventsAttendeeFloor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateEvent(ctx, domain.EventDraft{Title: "Kickoff", Type: "meeting"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Attendees)

	created, err = db.CreateEvent(ctx, domain.EventDraft{Title: "Shoot", Type: "shoot", Attendees: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, created.Attendees)
}

func TestProfileLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	got, err := db.Profile(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got, "missing profile yields nil")

	require.NoError(t, db.SaveProfile(ctx, domain.UserProfile{UID: "user-1", DisplayName: "Ana"}))

	got, err = db.Profile(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.DisplayName)
	assert.False(t, got.UpdatedAt.IsZero())

	got, err = db.Profile(ctx, "someone-else")
	require.NoError(t, err)
	assert.Nil(t, got, "uid mismatch yields nil")

	bio := "colorist"
	require.NoError(t, db.UpdateProfile(ctx, "user-1", domain.ProfilePatch{Bio: &bio}))
	got, err = db.Profile(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "colorist", got.Bio)
	assert.Equal(t, "Ana", got.DisplayName)
}

func TestFavoritesAddRemoveFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.AddFavorite(ctx, "alice", "project-1", domain.FavoriteProject))
	require.NoError(t, db.AddFavorite(ctx, "alice", "job-9", domain.FavoriteJob))
	require.NoError(t, db.AddFavorite(ctx, "bob", "project-1", domain.FavoriteProject))

	favs, err := db.Favorites(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, favs, 2)

	require.NoError(t, db.RemoveFavorite(ctx, "alice", "project-1"))
	favs, err = db.Favorites(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "job-9", favs[0].ItemID)

	favs, err = db.Favorites(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, favs, 1, "other users' favorites untouched")
}

func TestConnectionTransitions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.RequestConnection(ctx, "alice", "bob"))

	conns, err := db.Connections(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, domain.ConnectionPending, conns[0].Status)

	require.NoError(t, db.SetConnectionStatus(ctx, conns[0].ID, domain.ConnectionAccepted))
	conns, err = db.Connections(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, domain.ConnectionAccepted, conns[0].Status)
	assert.True(t, conns[0].UpdatedAt.After(conns[0].CreatedAt.Time) || conns[0].UpdatedAt.Equal(conns[0].CreatedAt.Time))

	err = db.SetConnectionStatus(ctx, conns[0].ID, "blocked")
	assert.Error(t, err, "unknown status rejected")

	conns, err = db.Connections(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestWipeClearsEveryNamespace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateProject(ctx, domain.ProjectDraft{Title: "p"})
	require.NoError(t, err)
	_, err = db.CreateEvent(ctx, domain.EventDraft{Title: "e"})
	require.NoError(t, err)
	theme := domain.ThemeLight
	_, err = db.UpdateSettings(ctx, domain.SettingsPatch{Theme: &theme})
	require.NoError(t, err)

	require.NoError(t, db.Wipe())

	projects, err := db.Projects(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, projects)
	events, err := db.Events(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
	settings, err := db.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings, "settings fall back to defaults")
}

func TestUploadFileReturnsLocalURL(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	url, err := db.UploadFile(ctx, strings.NewReader("poster art"), "posters/night.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))

	data, err := os.ReadFile(filepath.Join(db.Dir(), "files", "posters", "night.png"))
	require.NoError(t, err)
	assert.Equal(t, "poster art", string(data))
}

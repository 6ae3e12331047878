package localstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/hivecastapp/hivecast/pkg/domain"
	"github.com/hivecastapp/hivecast/pkg/store"
)

var _ store.Store = (*DB)(nil)

// --- Projects ---

// CreateProject appends a project with a fresh id, creation timestamp, and
// the lifecycle defaults, then rewrites the projects namespace.
func (db *DB) CreateProject(_ context.Context, draft domain.ProjectDraft) (domain.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	project := domain.Project{
		ID:            newID("project"),
		Title:         draft.Title,
		Description:   draft.Description,
		Category:      draft.Category,
		Budget:        draft.Budget,
		IsPublic:      draft.IsPublic,
		Status:        domain.StatusPreProduction,
		Progress:      0,
		Collaborators: 1,
		CreatedAt:     domain.Now(),
		CreatorID:     draft.CreatorID,
		CreatorName:   draft.CreatorName,
		Image:         draft.Image,
		Tags:          append([]string(nil), draft.Tags...),
		Files:         append([]string(nil), draft.Files...),
	}

	var projects []domain.Project
	db.Load(NSProjects, &projects)
	projects = append(projects, project)
	if err := db.SaveAll(NSProjects, projects); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// Projects returns the stored projects, newest first, optionally filtered
// by creator.
func (db *DB) Projects(_ context.Context, creatorID string) ([]domain.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var projects []domain.Project
	db.Load(NSProjects, &projects)

	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if creatorID == "" || p.CreatorID == creatorID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out, nil
}

// UpdateProject merge-patches the project with the given id. Unknown ids
// are a no-op.
func (db *DB) UpdateProject(_ context.Context, id string, patch domain.ProjectPatch) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var projects []domain.Project
	db.Load(NSProjects, &projects)
	for i := range projects {
		if projects[i].ID == id {
			patch.Apply(&projects[i])
			return db.SaveAll(NSProjects, projects)
		}
	}
	return nil
}

// DeleteProject removes the project with the given id. Unknown ids are a
// no-op.
func (db *DB) DeleteProject(_ context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var projects []domain.Project
	db.Load(NSProjects, &projects)
	kept := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(projects) {
		return nil
	}
	return db.SaveAll(NSProjects, kept)
}

// --- Events ---

// CreateEvent appends an event with a fresh id and creation timestamp.
// Events are a local-only kind; they have no remote counterpart.
func (db *DB) CreateEvent(_ context.Context, draft domain.EventDraft) (domain.Event, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	attendees := draft.Attendees
	if attendees < 1 {
		attendees = 1
	}
	event := domain.Event{
		ID:          newID("event"),
		Title:       draft.Title,
		Description: draft.Description,
		DateTime:    draft.DateTime,
		Location:    draft.Location,
		Type:        draft.Type,
		Attendees:   attendees,
		IsPublic:    draft.IsPublic,
		CreatedAt:   domain.Now(),
		CreatorID:   draft.CreatorID,
	}

	var events []domain.Event
	db.Load(NSEvents, &events)
	events = append(events, event)
	if err := db.SaveAll(NSEvents, events); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// Events returns the stored events, newest first.
func (db *DB) Events(_ context.Context) ([]domain.Event, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var events []domain.Event
	db.Load(NSEvents, &events)
	out := append([]domain.Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out, nil
}

// UpdateEvent merge-patches the event with the given id.
func (db *DB) UpdateEvent(_ context.Context, id string, patch domain.EventPatch) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var events []domain.Event
	db.Load(NSEvents, &events)
	for i := range events {
		if events[i].ID == id {
			patch.Apply(&events[i])
			return db.SaveAll(NSEvents, events)
		}
	}
	return nil
}

// DeleteEvent removes the event with the given id.
func (db *DB) DeleteEvent(_ context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var events []domain.Event
	db.Load(NSEvents, &events)
	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return nil
	}
	return db.SaveAll(NSEvents, kept)
}

// --- Settings ---

// Settings returns the settings singleton, falling back to the defaults
// when nothing usable is stored.
func (db *DB) Settings(_ context.Context) (domain.Settings, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	settings := domain.DefaultSettings()
	db.Load(NSSettings, &settings)
	return settings, nil
}

// UpdateSettings merges the patch over the stored singleton and persists
// the result.
func (db *DB) UpdateSettings(_ context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	settings := domain.DefaultSettings()
	db.Load(NSSettings, &settings)
	patch.Apply(&settings)
	if err := db.SaveAll(NSSettings, settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// --- Profile ---

// Profile returns the locally stored profile, or nil when none exists or
// the stored one belongs to a different uid.
func (db *DB) Profile(_ context.Context, uid string) (*domain.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var profile domain.UserProfile
	if !db.Load(NSProfile, &profile) {
		return nil, nil
	}
	if uid != "" && profile.UID != uid {
		return nil, nil
	}
	return &profile, nil
}

// SaveProfile stores the profile singleton, assigning both timestamps.
func (db *DB) SaveProfile(_ context.Context, profile domain.UserProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := domain.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	return db.SaveAll(NSProfile, profile)
}

// UpdateProfile merge-patches the stored profile and refreshes updatedAt.
// A missing profile is a no-op.
func (db *DB) UpdateProfile(_ context.Context, uid string, patch domain.ProfilePatch) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var profile domain.UserProfile
	if !db.Load(NSProfile, &profile) {
		return nil
	}
	if uid != "" && profile.UID != uid {
		return nil
	}
	patch.Apply(&profile)
	profile.UpdatedAt = domain.Now()
	return db.SaveAll(NSProfile, profile)
}

// --- Jobs ---

// CreateJob appends a job post with a fresh id and posting timestamp.
func (db *DB) CreateJob(_ context.Context, draft domain.JobDraft) (domain.Job, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	job := domain.Job{
		ID:          newID("job"),
		Title:       draft.Title,
		Company:     draft.Company,
		Location:    draft.Location,
		Type:        draft.Type,
		Duration:    draft.Duration,
		Pay:         draft.Pay,
		Description: draft.Description,
		Skills:      append([]string(nil), draft.Skills...),
		PosterID:    draft.PosterID,
		PosterName:  draft.PosterName,
		PostedAt:    domain.Now(),
		Applicants:  0,
		IsActive:    draft.IsActive,
	}

	var jobs []domain.Job
	db.Load(NSJobs, &jobs)
	jobs = append(jobs, job)
	if err := db.SaveAll(NSJobs, jobs); err != nil {
		return domain.Job{}, err
	}
	return job, nil
}

// Jobs returns the stored job posts, newest first.
func (db *DB) Jobs(_ context.Context) ([]domain.Job, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var jobs []domain.Job
	db.Load(NSJobs, &jobs)
	out := append([]domain.Job(nil), jobs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PostedAt.After(out[j].PostedAt.Time)
	})
	return out, nil
}

// --- Favorites ---

// AddFavorite appends a bookmark for the given user and item.
func (db *DB) AddFavorite(_ context.Context, userID, itemID string, itemType domain.FavoriteType) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var favorites []domain.Favorite
	db.Load(NSFavorites, &favorites)
	favorites = append(favorites, domain.Favorite{
		ID:        newID("fav"),
		UserID:    userID,
		ItemID:    itemID,
		ItemType:  itemType,
		CreatedAt: domain.Now(),
	})
	return db.SaveAll(NSFavorites, favorites)
}

// RemoveFavorite drops every bookmark the user holds on the item.
func (db *DB) RemoveFavorite(_ context.Context, userID, itemID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var favorites []domain.Favorite
	db.Load(NSFavorites, &favorites)
	kept := favorites[:0]
	for _, f := range favorites {
		if !(f.UserID == userID && f.ItemID == itemID) {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(favorites) {
		return nil
	}
	return db.SaveAll(NSFavorites, kept)
}

// Favorites returns the user's bookmarks, newest first.
func (db *DB) Favorites(_ context.Context, userID string) ([]domain.Favorite, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var favorites []domain.Favorite
	db.Load(NSFavorites, &favorites)
	out := make([]domain.Favorite, 0, len(favorites))
	for _, f := range favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out, nil
}

// --- Connections ---

// RequestConnection appends a pending connection between two users.
func (db *DB) RequestConnection(_ context.Context, senderID, receiverID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := domain.Now()
	var connections []domain.Connection
	db.Load(NSConnections, &connections)
	connections = append(connections, domain.Connection{
		ID:         newID("conn"),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.ConnectionPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return db.SaveAll(NSConnections, connections)
}

// SetConnectionStatus transitions a connection and refreshes updatedAt.
// Unknown ids are a no-op.
func (db *DB) SetConnectionStatus(_ context.Context, id string, status domain.ConnectionStatus) error {
	if !domain.ValidConnectionStatus(status) {
		return fmt.Errorf("localstore: unknown connection status %q", status)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	var connections []domain.Connection
	db.Load(NSConnections, &connections)
	for i := range connections {
		if connections[i].ID == id {
			connections[i].Status = status
			connections[i].UpdatedAt = domain.Now()
			return db.SaveAll(NSConnections, connections)
		}
	}
	return nil
}

// Connections returns every connection the user is either end of.
func (db *DB) Connections(_ context.Context, userID string) ([]domain.Connection, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var connections []domain.Connection
	db.Load(NSConnections, &connections)
	out := make([]domain.Connection, 0, len(connections))
	for _, c := range connections {
		if c.Involves(userID) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out, nil
}

// --- Files ---

// UploadFile copies the content under the data directory's files/ tree and
// returns a file:// URL. The local analog of blob upload.
func (db *DB) UploadFile(_ context.Context, r io.Reader, path string) (string, error) {
	dest := filepath.Join(db.dir, "files", filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
		return "", fmt.Errorf("localstore: create files dir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("localstore: create %s: %w", path, err)
	}
	if _, err := io.Copy(f, io.LimitReader(r, maxNamespaceBytes)); err != nil {
		f.Close() //nolint:errcheck
		return "", fmt.Errorf("localstore: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("localstore: close %s: %w", path, err)
	}
	return "file://" + dest, nil
}

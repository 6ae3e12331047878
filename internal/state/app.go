package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hivecastapp/hivecast/internal/backend"
	"github.com/hivecastapp/hivecast/pkg/domain"
)

// AppState is the entity state container: the project, event, and settings
// snapshots the views render. Mutations go through the backend first; the
// snapshot is refreshed from the store only after the write succeeds, so a
// failed write leaves the visible state untouched.
//
// Events and settings always persist locally, in both backend modes.
type AppState struct {
	backend *backend.Backend
	log     *zap.Logger

	mu       sync.Mutex
	projects []domain.Project
	events   []domain.Event
	settings domain.Settings
}

// NewAppState creates an empty container. Call Refresh to hydrate it.
func NewAppState(b *backend.Backend, log *zap.Logger) *AppState {
	if log == nil {
		log = zap.NewNop()
	}
	return &AppState{
		backend:  b,
		log:      log,
		settings: domain.DefaultSettings(),
	}
}

// Refresh reloads every snapshot from the stores.
func (a *AppState) Refresh(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.reloadProjects(ctx); err != nil {
		return err
	}
	if err := a.reloadEvents(ctx); err != nil {
		return err
	}
	settings, err := a.backend.Local.Settings(ctx)
	if err != nil {
		return fmt.Errorf("state: load settings: %w", err)
	}
	a.settings = settings
	return nil
}

func (a *AppState) reloadProjects(ctx context.Context) error {
	projects, err := a.backend.Store.Projects(ctx, "")
	if err != nil {
		return fmt.Errorf("state: load projects: %w", err)
	}
	a.projects = projects
	return nil
}

func (a *AppState) reloadEvents(ctx context.Context) error {
	events, err := a.backend.Local.Events(ctx)
	if err != nil {
		return fmt.Errorf("state: load events: %w", err)
	}
	a.events = events
	return nil
}

// Projects returns a copy of the project snapshot, newest first.
func (a *AppState) Projects() []domain.Project {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Project(nil), a.projects...)
}

// Events returns a copy of the event snapshot, newest first.
func (a *AppState) Events() []domain.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Event(nil), a.events...)
}

// Settings returns the current settings snapshot.
func (a *AppState) Settings() domain.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// AddProject persists a new project and returns the stored form, with the
// id, timestamp, and defaults the store assigned.
func (a *AppState) AddProject(ctx context.Context, draft domain.ProjectDraft) (domain.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	created, err := a.backend.Store.CreateProject(ctx, draft)
	if err != nil {
		return domain.Project{}, fmt.Errorf("state: add project: %w", err)
	}
	if err := a.reloadProjects(ctx); err != nil {
		return domain.Project{}, err
	}
	return created, nil
}

// UpdateProject merge-patches a project.
func (a *AppState) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.backend.Store.UpdateProject(ctx, id, patch); err != nil {
		return fmt.Errorf("state: update project: %w", err)
	}
	return a.reloadProjects(ctx)
}

// DeleteProject removes a project permanently.
func (a *AppState) DeleteProject(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.backend.Store.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("state: delete project: %w", err)
	}
	return a.reloadProjects(ctx)
}

// AddEvent persists a new event and returns the stored form.
func (a *AppState) AddEvent(ctx context.Context, draft domain.EventDraft) (domain.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	created, err := a.backend.Local.CreateEvent(ctx, draft)
	if err != nil {
		return domain.Event{}, fmt.Errorf("state: add event: %w", err)
	}
	if err := a.reloadEvents(ctx); err != nil {
		return domain.Event{}, err
	}
	return created, nil
}

// UpdateEvent merge-patches an event.
func (a *AppState) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.backend.Local.UpdateEvent(ctx, id, patch); err != nil {
		return fmt.Errorf("state: update event: %w", err)
	}
	return a.reloadEvents(ctx)
}

// DeleteEvent removes an event permanently.
func (a *AppState) DeleteEvent(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.backend.Local.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("state: delete event: %w", err)
	}
	return a.reloadEvents(ctx)
}

// UpdateSettings merges the patch over the stored settings and returns the
// result. Applying the same patch twice yields the same stored value.
func (a *AppState) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	settings, err := a.backend.Local.UpdateSettings(ctx, patch)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("state: update settings: %w", err)
	}
	a.settings = settings
	return settings, nil
}

// exportDoc is the shape of the export file.
type exportDoc struct {
	Projects   []domain.Project `json:"projects"`
	Events     []domain.Event   `json:"events"`
	Settings   domain.Settings  `json:"settings"`
	ExportDate domain.Time      `json:"exportDate"`
}

// ExportData writes the current projects, events, and settings to a dated
// JSON file in dir and returns its path.
func (a *AppState) ExportData(ctx context.Context, dir string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := domain.Now()
	doc := exportDoc{
		Projects:   append([]domain.Project{}, a.projects...),
		Events:     append([]domain.Event{}, a.events...),
		Settings:   a.settings,
		ExportDate: now,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("state: encode export: %w", err)
	}

	name := fmt.Sprintf("hivecast-data-%s.json", now.Format(time.DateOnly))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("state: write export: %w", err)
	}
	a.log.Info("data exported", zap.String("path", path))
	return path, nil
}

// DeleteAllData wipes every local namespace and resets the snapshots. The
// wipe always hits local storage, whichever backend is active.
func (a *AppState) DeleteAllData(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.backend.Local.Wipe(); err != nil {
		return fmt.Errorf("state: wipe: %w", err)
	}
	a.projects = nil
	a.events = nil
	a.settings = domain.DefaultSettings()
	a.log.Info("all local data deleted")
	return nil
}

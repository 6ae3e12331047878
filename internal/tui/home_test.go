package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/hivecastapp/hivecast/pkg/domain"
	"github.com/hivecastapp/hivecast/pkg/store"
)

func TestHomeEmptyState(t *testing.T) {
	auth, app := newTestContainers(t)
	m := newHomeModel(app, auth, store.ModeLocal)

	got := m.View()
	if !strings.Contains(got, "0 projects") {
		t.Errorf("counts missing:\n%s", got)
	}
	if !strings.Contains(got, "nothing yet") || !strings.Contains(got, "no events") {
		t.Errorf("empty hints missing:\n%s", got)
	}
}

func TestHomeShowsRecentActivity(t *testing.T) {
	auth, app := newTestContainers(t)
	ctx := context.Background()

	created, err := app.AddProject(ctx, domain.ProjectDraft{Title: "Night Shoot", Category: "film"})
	if err != nil {
		t.Fatal(err)
	}
	status := domain.StatusInProgress
	if err := app.UpdateProject(ctx, created.ID, domain.ProjectPatch{Status: &status}); err != nil {
		t.Fatal(err)
	}
	if _, err := app.AddEvent(ctx, domain.EventDraft{Title: "Kickoff", Type: "meeting"}); err != nil {
		t.Fatal(err)
	}

	m := newHomeModel(app, auth, store.ModeLocal)
	got := m.View()
	for _, want := range []string{"1 projects", "1 in progress", "1 events", "Night Shoot", "film", "Kickoff", "meeting"} {
		if !strings.Contains(got, want) {
			t.Errorf("view missing %q:\n%s", want, got)
		}
	}
}

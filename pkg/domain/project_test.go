package domain

import "testing"

func TestValidCategory(t *testing.T) {
	for _, c := range ValidCategories {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false, want true", c)
		}
	}
	if ValidCategory("podcast") {
		t.Error("ValidCategory(\"podcast\") = true, want false")
	}
	if ValidCategory("") {
		t.Error("ValidCategory(\"\") = true, want false")
	}
}

func TestProjectPatchAppliesOnlySetFields(t *testing.T) {
	p := Project{
		ID:          "project-1",
		Title:       "Short Film",
		Description: "a short",
		Category:    "film",
		Status:      StatusPreProduction,
		Progress:    10,
	}

	title := "Feature Film"
	progress := 55
	patch := ProjectPatch{Title: &title, Progress: &progress}
	patch.Apply(&p)

	if p.Title != "Feature Film" {
		t.Errorf("Title = %q, want %q", p.Title, "Feature Film")
	}
	if p.Progress != 55 {
		t.Errorf("Progress = %d, want 55", p.Progress)
	}
	if p.Description != "a short" {
		t.Errorf("Description changed: %q", p.Description)
	}
	if p.Status != StatusPreProduction {
		t.Errorf("Status changed: %q", p.Status)
	}
	if p.ID != "project-1" {
		t.Errorf("ID changed: %q", p.ID)
	}
}

func TestProjectPatchCopiesSlices(t *testing.T) {
	tags := []string{"indie", "noir"}
	patch := ProjectPatch{Tags: &tags}
	var p Project
	patch.Apply(&p)

	tags[0] = "mutated"
	if p.Tags[0] != "indie" {
		t.Errorf("Tags[0] = %q, want %q (patch slice must be copied)", p.Tags[0], "indie")
	}
}

func TestSettingsPatchIdempotent(t *testing.T) {
	s := DefaultSettings()
	theme := ThemeLight
	lang := "fr"
	notif := false
	patch := SettingsPatch{Theme: &theme, Language: &lang, Notifications: &notif}

	patch.Apply(&s)
	once := s
	patch.Apply(&s)

	if s != once {
		t.Errorf("second apply changed settings: %+v vs %+v", s, once)
	}
	if s.Theme != ThemeLight || s.Language != "fr" || s.Notifications {
		t.Errorf("patch not applied: %+v", s)
	}
}

func TestConnectionInvolves(t *testing.T) {
	c := Connection{SenderID: "alice", ReceiverID: "bob"}
	if !c.Involves("alice") || !c.Involves("bob") {
		t.Error("Involves should match both ends")
	}
	if c.Involves("carol") {
		t.Error("Involves(\"carol\") = true, want false")
	}
}

func TestValidConnectionStatus(t *testing.T) {
	for _, s := range []ConnectionStatus{ConnectionPending, ConnectionAccepted, ConnectionDeclined} {
		if !ValidConnectionStatus(s) {
			t.Errorf("ValidConnectionStatus(%q) = false, want true", s)
		}
	}
	if ValidConnectionStatus("blocked") {
		t.Error("ValidConnectionStatus(\"blocked\") = true, want false")
	}
}

package models

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadRoster(t *testing.T) {
	path := writeRoster(t, `[
		{"id": "c1", "name": "Aylin Demir", "total_spend": 1200.5, "total_visits": 8},
		{"id": "c2", "name": "Mert Can", "behavior_tags": ["weekend_only"]}
	]`)

	customers, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("got %d customers, want 2", len(customers))
	}
	if customers[0].TotalSpend != 1200.5 {
		t.Fatalf("total spend: got %v, want 1200.5", customers[0].TotalSpend)
	}
	if customers[0].BehaviorTags == nil {
		t.Fatal("behavior tags not initialized")
	}
	if !customers[1].BehaviorTags.Has(BehaviorWeekendOnly) {
		t.Fatalf("behavior tags not parsed: %v", customers[1].BehaviorTags.Strings())
	}
}

func TestLoadRoster_RejectsInvalidRecord(t *testing.T) {
	path := writeRoster(t, `[{"name": "No ID"}]`)
	if _, err := LoadRoster(path); err == nil {
		t.Fatal("expected error for record without id, got nil")
	}
}

func TestLoadRoster_MissingFile(t *testing.T) {
	if _, err := LoadRoster(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

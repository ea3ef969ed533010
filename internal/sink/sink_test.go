package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tableloyal/tableloyal/internal/models"
)

func TestJSONSink_WritesOneFilePerTopic(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONSink(dir, "tagging")

	if err := s.WriteMessage(models.TopicTagResults, []byte(`{"customer_id":"c1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.WriteMessage(models.TopicTagResults, []byte(`{"customer_id":"c2"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.WriteMessage(models.TopicTriggers, []byte(`{"id":"t1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tagging", models.TopicTagResults+".json"))
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "c2") {
		t.Fatalf("second line: %q", lines[1])
	}

	if _, err := os.Stat(filepath.Join(dir, "tagging", models.TopicTriggers+".json")); err != nil {
		t.Fatalf("trigger export missing: %v", err)
	}
}

func TestNew_UnknownDestination(t *testing.T) {
	cfg := &models.Config{OutputDestination: "carrier-pigeon"}
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unknown destination, got nil")
	}
}

func TestDecodeRecord_Trigger(t *testing.T) {
	createdAt := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	trigger := models.AutomationTrigger{
		ID:          "t1",
		CustomerID:  "c1",
		TriggerType: models.TriggerChurnRisk,
		TriggerData: models.TriggerData{
			OldTags: []string{"active"},
			NewTags: []string{"churn_risk"},
		},
		CreatedAt: createdAt,
	}

	record := newTriggerRecord(trigger)
	if record.OldTags != "active" || record.NewTags != "churn_risk" {
		t.Fatalf("tag columns wrong: %+v", record)
	}
	if record.CreatedAt != createdAt.Unix() {
		t.Fatalf("created at: got %d, want %d", record.CreatedAt, createdAt.Unix())
	}
}

func TestNewTagResultRecord_JoinsBehaviorTags(t *testing.T) {
	result := models.TagCalculationResult{
		CustomerID: "c1",
		NewTags: models.TagSnapshot{
			SpendTag:     models.SpendTagVIP,
			ActivityTag:  models.ActivityTagLoyal,
			BehaviorTags: models.NewBehaviorTagSet(models.BehaviorWeekendOnly, models.BehaviorComboResponder),
		},
		ChangesDetected: true,
	}

	record := newTagResultRecord(result)
	if record.BehaviorTags != "combo_responder,weekend_only" {
		t.Fatalf("behavior tags: got %q", record.BehaviorTags)
	}
	if record.SpendTag != "vip" || !record.ChangesDetected {
		t.Fatalf("record wrong: %+v", record)
	}
}

func TestGetSchema_CoversEveryTopic(t *testing.T) {
	topics := []string{
		models.TopicTagResults,
		models.TopicTriggers,
		models.TopicCampaignMessages,
		models.TopicRestaurantSummary,
	}
	for _, topic := range topics {
		if _, err := GetSchema(topic); err != nil {
			t.Fatalf("schema for %s: %v", topic, err)
		}
	}
	if _, err := GetSchema("nope"); err == nil {
		t.Fatal("expected error for unknown topic, got nil")
	}
}

package engine

import (
	"testing"

	"github.com/tableloyal/tableloyal/internal/models"
)

func triggerTypes(triggers []models.AutomationTrigger) map[models.TriggerType]int {
	types := make(map[models.TriggerType]int)
	for _, trigger := range triggers {
		types[trigger.TriggerType]++
	}
	return types
}

func TestProcessTagChanges_ChurnEntry(t *testing.T) {
	e := newTestEngine()
	results := []models.TagCalculationResult{{
		CustomerID: "c1",
		OldTags: models.TagSnapshot{
			SpendTag:     models.SpendTagMid,
			ActivityTag:  models.ActivityTagActive,
			BehaviorTags: models.NewBehaviorTagSet(),
		},
		NewTags: models.TagSnapshot{
			SpendTag:     models.SpendTagMid,
			ActivityTag:  models.ActivityTagChurnRisk,
			BehaviorTags: models.NewBehaviorTagSet(),
		},
		ChangesDetected: true,
	}}

	triggers := e.ProcessTagChanges(results)
	types := triggerTypes(triggers)

	if types[models.TriggerChurnRisk] != 1 {
		t.Fatalf("want one churn_risk trigger, got %v", types)
	}
	if types[models.TriggerTagChanged] != 1 {
		t.Fatalf("want one tag_changed trigger, got %v", types)
	}
	if types[models.TriggerVIPUpgrade] != 0 || types[models.TriggerInactiveCustomer] != 0 {
		t.Fatalf("unexpected trigger types: %v", types)
	}
}

func TestProcessTagChanges_VIPUpgradeCarriesSpendDelta(t *testing.T) {
	e := newTestEngine()
	results := []models.TagCalculationResult{{
		CustomerID: "c1",
		OldTags: models.TagSnapshot{
			SpendTag:     models.SpendTagHigh,
			ActivityTag:  models.ActivityTagLoyal,
			BehaviorTags: models.NewBehaviorTagSet(),
		},
		NewTags: models.TagSnapshot{
			SpendTag:     models.SpendTagVIP,
			ActivityTag:  models.ActivityTagLoyal,
			BehaviorTags: models.NewBehaviorTagSet(),
		},
		ChangesDetected: true,
	}}

	triggers := e.ProcessTagChanges(results)
	var vip *models.AutomationTrigger
	for i := range triggers {
		if triggers[i].TriggerType == models.TriggerVIPUpgrade {
			vip = &triggers[i]
		}
	}
	if vip == nil {
		t.Fatalf("no vip_upgrade trigger in %v", triggerTypes(triggers))
	}
	if len(vip.TriggerData.OldTags) != 1 || vip.TriggerData.OldTags[0] != "high_spender" {
		t.Fatalf("old tags: got %v, want [high_spender]", vip.TriggerData.OldTags)
	}
	if len(vip.TriggerData.NewTags) != 1 || vip.TriggerData.NewTags[0] != "vip" {
		t.Fatalf("new tags: got %v, want [vip]", vip.TriggerData.NewTags)
	}
}

func TestProcessTagChanges_UnchangedProducesNothing(t *testing.T) {
	e := newTestEngine()
	results := []models.TagCalculationResult{{
		CustomerID:      "c1",
		ChangesDetected: false,
	}}
	if triggers := e.ProcessTagChanges(results); len(triggers) != 0 {
		t.Fatalf("got %d triggers, want 0", len(triggers))
	}
}

func TestProcessTagChanges_TagChangedCarriesFlattenedTags(t *testing.T) {
	e := newTestEngine()
	results := []models.TagCalculationResult{{
		CustomerID: "c1",
		OldTags: models.TagSnapshot{
			SpendTag:     models.SpendTagLow,
			ActivityTag:  models.ActivityTagActive,
			BehaviorTags: models.NewBehaviorTagSet(models.BehaviorWeekendOnly, models.BehaviorComboResponder),
		},
		NewTags: models.TagSnapshot{
			SpendTag:     models.SpendTagMid,
			ActivityTag:  models.ActivityTagActive,
			BehaviorTags: models.NewBehaviorTagSet(models.BehaviorComboResponder),
		},
		ChangesDetected: true,
	}}

	triggers := e.ProcessTagChanges(results)
	if len(triggers) != 1 {
		t.Fatalf("got %d triggers, want 1", len(triggers))
	}
	trigger := triggers[0]
	if trigger.TriggerType != models.TriggerTagChanged {
		t.Fatalf("got %q, want %q", trigger.TriggerType, models.TriggerTagChanged)
	}

	wantOld := []string{"low_spender", "active", "combo_responder", "weekend_only"}
	wantNew := []string{"mid_spender", "active", "combo_responder"}
	assertStrings(t, trigger.TriggerData.OldTags, wantOld)
	assertStrings(t, trigger.TriggerData.NewTags, wantNew)
}

func TestProcessTagChanges_TriggerHousekeeping(t *testing.T) {
	e := newTestEngine()
	results := []models.TagCalculationResult{
		{
			CustomerID: "c1",
			OldTags:    models.TagSnapshot{ActivityTag: models.ActivityTagActive},
			NewTags:    models.TagSnapshot{ActivityTag: models.ActivityTagChurnRisk},

			ChangesDetected: true,
		},
		{
			CustomerID:      "c2",
			OldTags:         models.TagSnapshot{ActivityTag: models.ActivityTagActive},
			NewTags:         models.TagSnapshot{ActivityTag: models.ActivityTagInactive},
			ChangesDetected: true,
		},
	}

	triggers := e.ProcessTagChanges(results)
	seen := make(map[string]bool)
	for _, trigger := range triggers {
		if trigger.ID == "" {
			t.Fatal("trigger without id")
		}
		if seen[trigger.ID] {
			t.Fatalf("duplicate trigger id %s", trigger.ID)
		}
		seen[trigger.ID] = true
		if trigger.Processed {
			t.Fatalf("trigger %s starts processed", trigger.ID)
		}
		if !trigger.CreatedAt.Equal(testNow) {
			t.Fatalf("created at: got %v, want %v", trigger.CreatedAt, testNow)
		}
	}
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

package engine

import (
	"github.com/google/uuid"

	"github.com/tableloyal/tableloyal/internal/models"
)

// ProcessTagChanges scans tag deltas for campaign-relevant transitions and
// emits one trigger per transition. A single delta can fire several specific
// triggers, and every changed customer additionally gets a generic
// tag_changed trigger carrying the full flattened before/after tag lists.
func (e *Engine) ProcessTagChanges(results []models.TagCalculationResult) []models.AutomationTrigger {
	now := e.clock()
	var triggers []models.AutomationTrigger

	emit := func(customerID string, triggerType models.TriggerType, data models.TriggerData) {
		triggers = append(triggers, models.AutomationTrigger{
			ID:          uuid.NewString(),
			CustomerID:  customerID,
			TriggerType: triggerType,
			TriggerData: data,
			CreatedAt:   now,
			Processed:   false,
		})
	}

	for _, result := range results {
		if !result.ChangesDetected {
			continue
		}
		old, current := result.OldTags, result.NewTags

		if current.ActivityTag == models.ActivityTagNew && old.ActivityTag != models.ActivityTagNew {
			emit(result.CustomerID, models.TriggerNewCustomer, activityDelta(old, current))
		}
		if current.ActivityTag == models.ActivityTagChurnRisk && old.ActivityTag != models.ActivityTagChurnRisk {
			emit(result.CustomerID, models.TriggerChurnRisk, activityDelta(old, current))
		}
		if current.SpendTag == models.SpendTagVIP && old.SpendTag != models.SpendTagVIP {
			emit(result.CustomerID, models.TriggerVIPUpgrade, models.TriggerData{
				OldTags: []string{string(old.SpendTag)},
				NewTags: []string{string(current.SpendTag)},
			})
		}
		if current.ActivityTag == models.ActivityTagInactive && old.ActivityTag != models.ActivityTagInactive {
			emit(result.CustomerID, models.TriggerInactiveCustomer, activityDelta(old, current))
		}

		emit(result.CustomerID, models.TriggerTagChanged, models.TriggerData{
			OldTags: old.Flatten(),
			NewTags: current.Flatten(),
		})
	}

	return triggers
}

func activityDelta(old, current models.TagSnapshot) models.TriggerData {
	return models.TriggerData{
		OldTags: []string{string(old.ActivityTag)},
		NewTags: []string{string(current.ActivityTag)},
	}
}

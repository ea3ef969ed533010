package engine

import "github.com/tableloyal/tableloyal/internal/models"

// CalculateCustomerTags runs the three classifiers over the whole roster and
// reports, per customer, the tag state before and after plus whether anything
// changed. The population thresholds are computed once up front; after that
// every customer is classified independently, in input order. The function is
// pure: it neither mutates the roster nor persists anything.
func (e *Engine) CalculateCustomerTags(customers []models.Customer, restaurantAvgVisitGap float64) []models.TagCalculationResult {
	now := e.clock()
	thresholds := e.computeThresholds(customers)

	results := make([]models.TagCalculationResult, 0, len(customers))
	for i := range customers {
		c := &customers[i]
		oldTags := c.Snapshot()
		newTags := models.TagSnapshot{
			SpendTag:     e.classifySpend(c, thresholds),
			ActivityTag:  e.classifyActivity(c, restaurantAvgVisitGap, thresholds.visits80, now),
			BehaviorTags: e.behaviorTags(c),
		}

		results = append(results, models.TagCalculationResult{
			CustomerID:      c.ID,
			OldTags:         oldTags,
			NewTags:         newTags,
			ChangesDetected: !oldTags.Equal(newTags),
		})
	}

	return results
}

// ApplyResults copies the freshly computed tags back onto the roster. Split
// out of CalculateCustomerTags so callers decide when (and whether) state
// advances: re-tagging an unchanged, un-applied roster keeps reporting the
// same deltas.
func ApplyResults(customers []models.Customer, results []models.TagCalculationResult) {
	byID := make(map[string]*models.Customer, len(customers))
	for i := range customers {
		byID[customers[i].ID] = &customers[i]
	}
	for _, result := range results {
		c, ok := byID[result.CustomerID]
		if !ok {
			continue
		}
		c.SpendTag = result.NewTags.SpendTag
		c.ActivityTag = result.NewTags.ActivityTag
		c.BehaviorTags = result.NewTags.BehaviorTags.Clone()
	}
}

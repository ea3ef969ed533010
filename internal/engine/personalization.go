package engine

import "github.com/tableloyal/tableloyal/internal/models"

// contentAdjustment is one tag's contribution to the recommendation bundle.
// Nil tone/sensitivity fields leave the current value untouched.
type contentAdjustment struct {
	items       []string
	categories  []string
	contactTime string
	tone        models.MessageTone
	sensitivity models.DiscountSensitivity
}

var behaviorAdjustments = map[models.BehaviorTag]contentAdjustment{
	models.BehaviorComboResponder: {
		items:      []string{"Family Combo Deal", "Weekend Combo Special"},
		categories: []string{"combos"},
	},
	models.BehaviorWeekendOnly: {
		contactTime: "10:30",
	},
	models.BehaviorFamilyDiner: {
		items:      []string{"Family Feast Platter", "Kids Meal Combo"},
		categories: []string{"family meals"},
	},
	models.BehaviorLunchRegular: {
		contactTime: "11:30",
		categories:  []string{"lunch specials"},
	},
	models.BehaviorDinnerRegular: {
		contactTime: "17:30",
		categories:  []string{"dinner specials"},
	},
	models.BehaviorPriceSensitive: {
		items:       []string{"Value Meal", "Daily Special"},
		tone:        models.ToneCasual,
		sensitivity: models.SensitivityHigh,
	},
	models.BehaviorPremiumSeeker: {
		items:       []string{"Chef's Tasting Selection", "Premium Platter"},
		tone:        models.ToneFormal,
		sensitivity: models.SensitivityLow,
	},
}

var spendAdjustments = map[models.SpendTag]contentAdjustment{
	models.SpendTagVIP: {
		items:       []string{"Chef's Table Experience", "Signature Tasting Menu"},
		tone:        models.ToneFormal,
		sensitivity: models.SensitivityLow,
	},
	models.SpendTagHigh: {
		items: []string{"Seasonal Specialties", "House Favourites"},
		tone:  models.ToneFormal,
	},
	models.SpendTagLow: {
		items:       []string{"Value Meal", "Combo Saver"},
		tone:        models.ToneCasual,
		sensitivity: models.SensitivityHigh,
	},
}

var activityAdjustments = map[models.ActivityTag]contentAdjustment{
	models.ActivityTagNew: {
		items: []string{"Welcome Special"},
		tone:  models.ToneEnthusiastic,
	},
	models.ActivityTagChurnRisk: {
		items:       []string{"Comeback Combo"},
		tone:        models.ToneEnthusiastic,
		sensitivity: models.SensitivityHigh,
	},
	models.ActivityTagLoyal: {
		items: []string{"Loyalty Exclusive"},
		tone:  models.ToneCasual,
	},
}

// GeneratePersonalizedContent maps the customer's current tag set to a
// recommendation bundle. Adjustments fold in a fixed order (behavior tags,
// then spend tag, then activity tag) so the later layers override tone and
// discount sensitivity set by the earlier ones; the activity tag has the
// final say.
func (e *Engine) GeneratePersonalizedContent(c *models.Customer) models.PersonalizationData {
	data := models.PersonalizationData{
		RecommendedItems:    []string{},
		PreferredCategories: []string{},
		OptimalContactTime:  "18:00",
		DiscountSensitivity: models.SensitivityMedium,
		MessageTone:         models.ToneCasual,
	}

	for _, tag := range models.BehaviorTags {
		if !c.BehaviorTags.Has(tag) {
			continue
		}
		if tag == models.BehaviorCategoryLoyalist {
			if top, _, _ := topCategory(c.OrderHistory); top != "" {
				data.PreferredCategories = appendUnique(data.PreferredCategories, top)
			}
			continue
		}
		applyAdjustment(&data, behaviorAdjustments[tag])
	}

	applyAdjustment(&data, spendAdjustments[c.SpendTag])
	applyAdjustment(&data, activityAdjustments[c.ActivityTag])

	return data
}

func applyAdjustment(data *models.PersonalizationData, adj contentAdjustment) {
	for _, item := range adj.items {
		data.RecommendedItems = appendUnique(data.RecommendedItems, item)
	}
	for _, category := range adj.categories {
		data.PreferredCategories = appendUnique(data.PreferredCategories, category)
	}
	if adj.contactTime != "" {
		data.OptimalContactTime = adj.contactTime
	}
	if adj.tone != "" {
		data.MessageTone = adj.tone
	}
	if adj.sensitivity != "" {
		data.DiscountSensitivity = adj.sensitivity
	}
}

// appendUnique keeps first-seen order while enforcing set semantics.
func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

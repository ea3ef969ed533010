package engine

import (
	"sort"

	"github.com/tableloyal/tableloyal/internal/models"
)

// behaviorTags derives the customer's behavioral labels from order history.
// Every check runs independently, so a customer can accumulate any subset.
// No order history means no labels beyond the spend-derived ones.
func (e *Engine) behaviorTags(c *models.Customer) models.BehaviorTagSet {
	tags := models.NewBehaviorTagSet()
	orders := c.OrderHistory
	total := len(orders)

	if total > 0 {
		comboOrders := 0
		weekendOrders := 0
		lunchOrders := 0
		dinnerOrders := 0

		for _, order := range orders {
			if order.HasCombo() {
				comboOrders++
			}
			if order.IsWeekend() {
				weekendOrders++
			}
			hour := order.Timestamp.Hour()
			if hour >= 11 && hour <= 15 {
				lunchOrders++
			}
			if hour >= 18 && hour <= 22 {
				dinnerOrders++
			}
		}

		if comboOrders >= e.cfg.ComboOrderMin {
			tags.Add(models.BehaviorComboResponder)
		}
		if float64(weekendOrders)/float64(total) >= e.cfg.WeekendShare {
			tags.Add(models.BehaviorWeekendOnly)
		}
		if e.isCategoryLoyalist(orders) {
			tags.Add(models.BehaviorCategoryLoyalist)
		}
		if float64(lunchOrders)/float64(total) >= e.cfg.MealShare {
			tags.Add(models.BehaviorLunchRegular)
		}
		if float64(dinnerOrders)/float64(total) >= e.cfg.MealShare {
			tags.Add(models.BehaviorDinnerRegular)
		}
	}

	if c.GuestEstimateAvg >= e.cfg.FamilyGuestMin {
		tags.Add(models.BehaviorFamilyDiner)
	}
	if c.AvgOrderValue < e.cfg.PriceSensitiveBelow {
		tags.Add(models.BehaviorPriceSensitive)
	}
	if c.AvgOrderValue > e.cfg.PremiumSeekerAbove {
		tags.Add(models.BehaviorPremiumSeeker)
	}

	return tags
}

// isCategoryLoyalist reports whether one category accounts for more than the
// configured share of all category touches. Touches count per order, not per
// item.
func (e *Engine) isCategoryLoyalist(orders []models.Order) bool {
	top, topTouches, totalTouches := topCategory(orders)
	if top == "" || totalTouches == 0 {
		return false
	}
	return float64(topTouches)/float64(totalTouches) > e.cfg.CategoryShare
}

// topCategory returns the most-touched category across all orders plus its
// touch count and the total touches. Ties break lexicographically so the
// answer never depends on map iteration order.
func topCategory(orders []models.Order) (string, int, int) {
	touches := make(map[string]int)
	total := 0
	for _, order := range orders {
		for _, category := range order.Categories {
			touches[category]++
			total++
		}
	}
	if total == 0 {
		return "", 0, 0
	}

	categories := make([]string, 0, len(touches))
	for category := range touches {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	top := categories[0]
	for _, category := range categories[1:] {
		if touches[category] > touches[top] {
			top = category
		}
	}
	return top, touches[top], total
}

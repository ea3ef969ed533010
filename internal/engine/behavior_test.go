package engine

import (
	"testing"
	"time"

	"github.com/tableloyal/tableloyal/internal/models"
)

// orderAt builds a one-item order. March 2026: the 14th and 15th fall on a
// weekend, the 16th through 20th are weekdays.
func orderAt(day, hour int, combo bool, categories ...string) models.Order {
	return models.Order{
		Timestamp:  time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC),
		Items:      []models.OrderItem{{Name: "item", IsCombo: combo}},
		Categories: categories,
	}
}

func TestBehaviorTags_FamilyDinerAlwaysApplies(t *testing.T) {
	e := newTestEngine()
	c := models.Customer{GuestEstimateAvg: 3.5}
	tags := e.behaviorTags(&c)
	if !tags.Has(models.BehaviorFamilyDiner) {
		t.Fatalf("family_diner missing from %v", tags.Strings())
	}
}

func TestBehaviorTags_PriceSensitiveNotPremium(t *testing.T) {
	e := newTestEngine()
	c := models.Customer{AvgOrderValue: 150}
	tags := e.behaviorTags(&c)
	if !tags.Has(models.BehaviorPriceSensitive) {
		t.Fatalf("price_sensitive missing from %v", tags.Strings())
	}
	if tags.Has(models.BehaviorPremiumSeeker) {
		t.Fatalf("premium_seeker must not apply at order value 150")
	}
}

func TestBehaviorTags_PremiumSeeker(t *testing.T) {
	e := newTestEngine()
	c := models.Customer{AvgOrderValue: 900}
	tags := e.behaviorTags(&c)
	if !tags.Has(models.BehaviorPremiumSeeker) {
		t.Fatalf("premium_seeker missing from %v", tags.Strings())
	}
	if tags.Has(models.BehaviorPriceSensitive) {
		t.Fatalf("price_sensitive must not apply at order value 900")
	}
}

func TestBehaviorTags_ComboResponder(t *testing.T) {
	e := newTestEngine()
	c := models.Customer{
		AvgOrderValue: 300,
		OrderHistory: []models.Order{
			orderAt(16, 12, true),
			orderAt(17, 12, true),
			orderAt(18, 12, true),
		},
	}
	if tags := e.behaviorTags(&c); !tags.Has(models.BehaviorComboResponder) {
		t.Fatalf("combo_responder missing from %v", tags.Strings())
	}

	c.OrderHistory = c.OrderHistory[:2]
	if tags := e.behaviorTags(&c); tags.Has(models.BehaviorComboResponder) {
		t.Fatalf("combo_responder must need at least three combo orders")
	}
}

func TestBehaviorTags_WeekendOnly(t *testing.T) {
	e := newTestEngine()
	c := models.Customer{
		AvgOrderValue: 300,
		OrderHistory: []models.Order{
			orderAt(14, 19, false), // Saturday
			orderAt(15, 19, false), // Sunday
			orderAt(21, 19, false), // Saturday
			orderAt(16, 19, false), // Monday
		},
	}
	// 3 of 4 is 75%, above the 70% bar.
	if tags := e.behaviorTags(&c); !tags.Has(models.BehaviorWeekendOnly) {
		t.Fatalf("weekend_only missing from %v", tags.Strings())
	}

	c.OrderHistory = append(c.OrderHistory, orderAt(17, 19, false))
	// 3 of 5 is 60%, below the bar.
	if tags := e.behaviorTags(&c); tags.Has(models.BehaviorWeekendOnly) {
		t.Fatalf("weekend_only must not apply at 60%% weekend share")
	}
}

func TestBehaviorTags_MealTimeSkew(t *testing.T) {
	e := newTestEngine()
	c := models.Customer{
		AvgOrderValue: 300,
		OrderHistory: []models.Order{
			orderAt(16, 12, false),
			orderAt(17, 13, false),
			orderAt(18, 11, false),
			orderAt(19, 19, false),
		},
	}
	tags := e.behaviorTags(&c)
	if !tags.Has(models.BehaviorLunchRegular) {
		t.Fatalf("lunch_regular missing from %v", tags.Strings())
	}
	if tags.Has(models.BehaviorDinnerRegular) {
		t.Fatalf("dinner_regular must not apply at 25%% dinner share")
	}
}

func TestBehaviorTags_CategoryLoyalist(t *testing.T) {
	e := newTestEngine()

	cases := []struct {
		name   string
		orders []models.Order
		want   bool
	}{
		{
			name: "dominant category",
			orders: []models.Order{
				orderAt(16, 12, false, "pizza"),
				orderAt(17, 12, false, "pizza"),
				orderAt(18, 12, false, "pizza"),
				orderAt(19, 12, false, "pizza"),
				orderAt(20, 12, false, "salad"),
				orderAt(21, 12, false, "salad"),
			},
			want: true,
		},
		{
			name: "share exactly at the bar",
			orders: []models.Order{
				orderAt(16, 12, false, "pizza"),
				orderAt(17, 12, false, "pizza"),
				orderAt(18, 12, false, "pizza"),
				orderAt(19, 12, false, "salad"),
				orderAt(20, 12, false, "burgers"),
			},
			want: false, // 3 of 5 is exactly 60%, the rule needs strictly more
		},
		{
			name:   "no categories recorded",
			orders: []models.Order{orderAt(16, 12, false)},
			want:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.isCategoryLoyalist(tc.orders); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTopCategory_TieBreaksLexicographically(t *testing.T) {
	orders := []models.Order{
		orderAt(16, 12, false, "salad"),
		orderAt(17, 12, false, "pizza"),
		orderAt(18, 12, false, "salad"),
		orderAt(19, 12, false, "pizza"),
	}
	top, touches, total := topCategory(orders)
	if top != "pizza" {
		t.Fatalf("got %q, want %q", top, "pizza")
	}
	if touches != 2 || total != 4 {
		t.Fatalf("got touches=%d total=%d, want 2 and 4", touches, total)
	}
}

func TestBehaviorTags_EmptyHistorySkipsPatternTags(t *testing.T) {
	e := newTestEngine()
	c := models.Customer{AvgOrderValue: 300} // between the price bands
	tags := e.behaviorTags(&c)
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags.Strings())
	}
}

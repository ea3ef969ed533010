package models

import (
	"fmt"
	"strings"
	"time"
)

// Customer is the engine's read-only view of a guest. The surrounding store
// owns the record lifecycle; the engine only classifies it.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`

	TotalVisits      int       `json:"total_visits"`
	TotalSpend       float64   `json:"total_spend"`
	AvgOrderValue    float64   `json:"average_order_value"`
	AvgVisitGapDays  float64   `json:"average_visit_gap"`
	GuestEstimateAvg float64   `json:"guest_estimate_avg"`
	FirstVisitDate   time.Time `json:"first_visit_date"`
	LastVisitDate    time.Time `json:"last_visit_date"`

	SpendTag     SpendTag       `json:"spend_tag"`
	ActivityTag  ActivityTag    `json:"activity_tag"`
	BehaviorTags BehaviorTagSet `json:"behavior_tags"`

	OrderHistory []Order `json:"order_history"`
}

// Validate rejects shape violations eagerly so the engine itself never has to
// guard against malformed records.
func (c *Customer) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("customer: missing id")
	}
	if c.TotalVisits < 0 {
		return fmt.Errorf("customer %s: total_visits must be >= 0, got %d", c.ID, c.TotalVisits)
	}
	if c.TotalSpend < 0 {
		return fmt.Errorf("customer %s: total_spend must be >= 0, got %.2f", c.ID, c.TotalSpend)
	}
	if c.AvgOrderValue < 0 {
		return fmt.Errorf("customer %s: average_order_value must be >= 0, got %.2f", c.ID, c.AvgOrderValue)
	}
	if c.GuestEstimateAvg < 0 {
		return fmt.Errorf("customer %s: guest_estimate_avg must be >= 0, got %.2f", c.ID, c.GuestEstimateAvg)
	}
	if !c.FirstVisitDate.IsZero() && !c.LastVisitDate.IsZero() && c.FirstVisitDate.After(c.LastVisitDate) {
		return fmt.Errorf("customer %s: first_visit_date after last_visit_date", c.ID)
	}
	return nil
}

// FirstName returns the customer's given name for message greetings, falling
// back to a neutral salutation when the name is empty.
func (c *Customer) FirstName() string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "there"
	}
	if idx := strings.IndexByte(name, ' '); idx > 0 {
		return name[:idx]
	}
	return name
}

// Snapshot captures the customer's current tag state.
func (c *Customer) Snapshot() TagSnapshot {
	return TagSnapshot{
		SpendTag:     c.SpendTag,
		ActivityTag:  c.ActivityTag,
		BehaviorTags: c.BehaviorTags.Clone(),
	}
}

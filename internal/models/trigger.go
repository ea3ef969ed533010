package models

import "time"

// TriggerType names the business transition a trigger fires on.
type TriggerType string

const (
	TriggerNewCustomer      TriggerType = "new_customer"
	TriggerChurnRisk        TriggerType = "churn_risk"
	TriggerVIPUpgrade       TriggerType = "vip_upgrade"
	TriggerInactiveCustomer TriggerType = "inactive_customer"
	TriggerTagChanged       TriggerType = "tag_changed"
)

// TriggerData carries the tag arrays involved in the transition.
type TriggerData struct {
	OldTags []string `json:"old_tags"`
	NewTags []string `json:"new_tags"`
}

// AutomationTrigger is an event emitted when a customer's tags cross a
// campaign-relevant transition. The caller owns delivery and persistence;
// Processed starts false and is flipped by whoever consumes the trigger.
type AutomationTrigger struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customer_id"`
	TriggerType TriggerType `json:"trigger_type"`
	TriggerData TriggerData `json:"trigger_data"`
	CreatedAt   time.Time   `json:"created_at"`
	Processed   bool        `json:"processed"`
}

package models

// DiscountSensitivity grades how strongly a customer responds to discounts.
type DiscountSensitivity string

const (
	SensitivityLow    DiscountSensitivity = "low"
	SensitivityMedium DiscountSensitivity = "medium"
	SensitivityHigh   DiscountSensitivity = "high"
)

// MessageTone selects the voice outbound copy is written in.
type MessageTone string

const (
	ToneCasual       MessageTone = "casual"
	ToneFormal       MessageTone = "formal"
	ToneEnthusiastic MessageTone = "enthusiastic"
)

// PersonalizationData is the derived recommendation bundle for one customer.
// It is computed on demand and never persisted.
type PersonalizationData struct {
	RecommendedItems    []string            `json:"recommended_items"`
	PreferredCategories []string            `json:"preferred_categories"`
	OptimalContactTime  string              `json:"optimal_contact_time"` // HH:MM
	DiscountSensitivity DiscountSensitivity `json:"discount_sensitivity"`
	MessageTone         MessageTone         `json:"message_tone"`
}

// EmailMessage is the subject/body pair for the email channel.
type EmailMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CampaignMessage is the rendered outbound copy for every channel. Routing it
// to actual delivery services is the caller's job.
type CampaignMessage struct {
	CustomerID  string       `json:"customer_id"`
	TriggerType TriggerType  `json:"trigger_type"`
	WhatsApp    string       `json:"whatsapp"`
	Email       EmailMessage `json:"email"`
	SMS         string       `json:"sms"`
}

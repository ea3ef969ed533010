package engine

import (
	"fmt"
	"strings"

	"github.com/tableloyal/tableloyal/internal/models"
)

// channelTemplates holds one template per delivery channel. Placeholders use
// the {{variable}} form and are substituted verbatim.
type channelTemplates struct {
	whatsapp     string
	emailSubject string
	emailBody    string
	sms          string
}

var campaignTemplates = map[models.TriggerType]channelTemplates{
	models.TriggerNewCustomer: {
		whatsapp:     "Hi {{first_name}}! Welcome to the family 🎉 We loved having you — next time, try {{top_items}} on us to say thanks!",
		emailSubject: "Welcome, {{first_name}}!",
		emailBody:    "Hi {{first_name}},\n\nThank you for dining with us! We think you'd love {{top_items}}.\n\nSee you again soon — your table is always waiting.",
		sms:          "Welcome {{first_name}}! Thanks for your first visit. Try {{top_items}} next time — we saved you a seat.",
	},
	models.TriggerChurnRisk: {
		whatsapp:     "{{first_name}}, we miss you! 💛 Come back this week and enjoy {{discount}}% off {{top_items}}.",
		emailSubject: "We miss you, {{first_name}} — here's {{discount}}% off",
		emailBody:    "Hi {{first_name}},\n\nIt's been a while! Come back and enjoy {{discount}}% off your next order of {{top_items}}.\n\nWe'd love to see you again.",
		sms:          "We miss you {{first_name}}! {{discount}}% off {{top_items}} this week only.",
	},
	models.TriggerVIPUpgrade: {
		whatsapp:     "{{first_name}}, you're now one of our VIP guests ⭐ Enjoy priority reservations and a taste of {{top_items}} on your next visit.",
		emailSubject: "You're a VIP now, {{first_name}}",
		emailBody:    "Dear {{first_name}},\n\nWelcome to our VIP circle. Priority reservations and exclusive tastings await — starting with {{top_items}}.\n\nThank you for being one of our very best guests.",
		sms:          "Congrats {{first_name}} — you're a VIP! Priority booking + exclusive tastings now open to you.",
	},
	models.TriggerInactiveCustomer: {
		whatsapp:     "{{first_name}}, it's been too long! The kitchen's been busy — {{top_items}} is waiting for you.",
		emailSubject: "It's been a while, {{first_name}}",
		emailBody:    "Hi {{first_name}},\n\nIt's been a long time since your last visit. A lot has changed on the menu — {{top_items}} has been a favourite lately.\n\nDrop by whenever you're ready.",
		sms:          "Long time no see {{first_name}}! Come taste what's new: {{top_items}}.",
	},
	models.TriggerTagChanged: {
		whatsapp:     "Hi {{first_name}}! Based on what you love, we think {{top_items}} has your name on it.",
		emailSubject: "Picked for you, {{first_name}}",
		emailBody:    "Hi {{first_name}},\n\nBased on your recent visits we think you'd enjoy {{top_items}}.\n\nSee you soon!",
		sms:          "{{first_name}}, {{top_items}} is calling your name. See you soon!",
	},
}

// churn-risk discount percentage by sensitivity
const (
	discountHigh    = 30
	discountDefault = 20
)

// GenerateCampaignMessage renders the trigger and personalization bundle into
// channel-specific copy. Pure template interpolation; delivery is someone
// else's problem.
func (e *Engine) GenerateCampaignMessage(trigger models.AutomationTrigger, c *models.Customer, personalization models.PersonalizationData) models.CampaignMessage {
	templates, ok := campaignTemplates[trigger.TriggerType]
	if !ok {
		templates = campaignTemplates[models.TriggerTagChanged]
	}

	discount := discountDefault
	if personalization.DiscountSensitivity == models.SensitivityHigh {
		discount = discountHigh
	}

	vars := map[string]string{
		"first_name": c.FirstName(),
		"top_items":  topItems(personalization.RecommendedItems),
		"discount":   fmt.Sprintf("%d", discount),
	}

	return models.CampaignMessage{
		CustomerID:  trigger.CustomerID,
		TriggerType: trigger.TriggerType,
		WhatsApp:    renderTemplate(templates.whatsapp, vars),
		Email: models.EmailMessage{
			Subject: renderTemplate(templates.emailSubject, vars),
			Body:    renderTemplate(templates.emailBody, vars),
		},
		SMS: renderTemplate(templates.sms, vars),
	}
}

func renderTemplate(template string, vars map[string]string) string {
	rendered := template
	for variable, value := range vars {
		rendered = strings.ReplaceAll(rendered, "{{"+variable+"}}", value)
	}
	return rendered
}

// topItems joins up to the first two recommendations for message copy.
func topItems(items []string) string {
	if len(items) == 0 {
		return "our chef's specials"
	}
	if len(items) == 1 {
		return items[0]
	}
	return items[0] + " and " + items[1]
}

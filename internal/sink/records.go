package sink

import (
	"fmt"
	"strings"

	"github.com/xitongsys/parquet-go/schema"

	"github.com/tableloyal/tableloyal/internal/models"
)

// Parquet exports use flat records. List-valued fields are joined into a
// single comma-separated column so warehouse loads stay schema-stable.

type TagResultRecord struct {
	CustomerID      string `json:"customer_id" parquet:"name=customer_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	OldSpendTag     string `json:"old_spend_tag" parquet:"name=old_spend_tag,type=BYTE_ARRAY,convertedtype=UTF8"`
	OldActivityTag  string `json:"old_activity_tag" parquet:"name=old_activity_tag,type=BYTE_ARRAY,convertedtype=UTF8"`
	OldBehaviorTags string `json:"old_behavior_tags" parquet:"name=old_behavior_tags,type=BYTE_ARRAY,convertedtype=UTF8"`
	SpendTag        string `json:"spend_tag" parquet:"name=spend_tag,type=BYTE_ARRAY,convertedtype=UTF8"`
	ActivityTag     string `json:"activity_tag" parquet:"name=activity_tag,type=BYTE_ARRAY,convertedtype=UTF8"`
	BehaviorTags    string `json:"behavior_tags" parquet:"name=behavior_tags,type=BYTE_ARRAY,convertedtype=UTF8"`
	ChangesDetected bool   `json:"changes_detected" parquet:"name=changes_detected,type=BOOLEAN"`
}

type TriggerRecord struct {
	ID          string `json:"id" parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	CustomerID  string `json:"customer_id" parquet:"name=customer_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	TriggerType string `json:"trigger_type" parquet:"name=trigger_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	OldTags     string `json:"old_tags" parquet:"name=old_tags,type=BYTE_ARRAY,convertedtype=UTF8"`
	NewTags     string `json:"new_tags" parquet:"name=new_tags,type=BYTE_ARRAY,convertedtype=UTF8"`
	CreatedAt   int64  `json:"created_at" parquet:"name=created_at,type=INT64"`
	Processed   bool   `json:"processed" parquet:"name=processed,type=BOOLEAN"`
}

type CampaignMessageRecord struct {
	CustomerID   string `json:"customer_id" parquet:"name=customer_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	TriggerType  string `json:"trigger_type" parquet:"name=trigger_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	WhatsApp     string `json:"whatsapp" parquet:"name=whatsapp,type=BYTE_ARRAY,convertedtype=UTF8"`
	EmailSubject string `json:"email_subject" parquet:"name=email_subject,type=BYTE_ARRAY,convertedtype=UTF8"`
	EmailBody    string `json:"email_body" parquet:"name=email_body,type=BYTE_ARRAY,convertedtype=UTF8"`
	SMS          string `json:"sms" parquet:"name=sms,type=BYTE_ARRAY,convertedtype=UTF8"`
}

type SummaryRecord struct {
	RestaurantID      string  `json:"restaurant_id" parquet:"name=restaurant_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	TotalCustomers    int64   `json:"total_customers" parquet:"name=total_customers,type=INT64"`
	NewCustomersCount int64   `json:"new_customers_count" parquet:"name=new_customers_count,type=INT64"`
	ChurnRate         float64 `json:"churn_rate" parquet:"name=churn_rate,type=DOUBLE"`
	ActiveRate        float64 `json:"active_rate" parquet:"name=active_rate,type=DOUBLE"`
	AverageVisitGap   float64 `json:"average_visit_gap" parquet:"name=average_visit_gap,type=DOUBLE"`
	TopBehaviorTags   string  `json:"top_behavior_tags" parquet:"name=top_behavior_tags,type=BYTE_ARRAY,convertedtype=UTF8"`
	LastCalculated    int64   `json:"last_calculated" parquet:"name=last_calculated,type=INT64"`
}

// GetSchema returns the parquet schema handler for a topic.
func GetSchema(topic string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch topic {
	case models.TopicTagResults:
		sh, err = schema.NewSchemaHandlerFromStruct(new(TagResultRecord))
	case models.TopicTriggers:
		sh, err = schema.NewSchemaHandlerFromStruct(new(TriggerRecord))
	case models.TopicCampaignMessages:
		sh, err = schema.NewSchemaHandlerFromStruct(new(CampaignMessageRecord))
	case models.TopicRestaurantSummary:
		sh, err = schema.NewSchemaHandlerFromStruct(new(SummaryRecord))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
	if err != nil {
		return nil, fmt.Errorf("creating schema for %s: %w", topic, err)
	}
	return sh, nil
}

func newTagResultRecord(r models.TagCalculationResult) TagResultRecord {
	return TagResultRecord{
		CustomerID:      r.CustomerID,
		OldSpendTag:     string(r.OldTags.SpendTag),
		OldActivityTag:  string(r.OldTags.ActivityTag),
		OldBehaviorTags: strings.Join(r.OldTags.BehaviorTags.Strings(), ","),
		SpendTag:        string(r.NewTags.SpendTag),
		ActivityTag:     string(r.NewTags.ActivityTag),
		BehaviorTags:    strings.Join(r.NewTags.BehaviorTags.Strings(), ","),
		ChangesDetected: r.ChangesDetected,
	}
}

func newTriggerRecord(t models.AutomationTrigger) TriggerRecord {
	return TriggerRecord{
		ID:          t.ID,
		CustomerID:  t.CustomerID,
		TriggerType: string(t.TriggerType),
		OldTags:     strings.Join(t.TriggerData.OldTags, ","),
		NewTags:     strings.Join(t.TriggerData.NewTags, ","),
		CreatedAt:   t.CreatedAt.Unix(),
		Processed:   t.Processed,
	}
}

func newCampaignMessageRecord(m models.CampaignMessage) CampaignMessageRecord {
	return CampaignMessageRecord{
		CustomerID:   m.CustomerID,
		TriggerType:  string(m.TriggerType),
		WhatsApp:     m.WhatsApp,
		EmailSubject: m.Email.Subject,
		EmailBody:    m.Email.Body,
		SMS:          m.SMS,
	}
}

func newSummaryRecord(s models.RestaurantCustomerSummary) SummaryRecord {
	tags := make([]string, 0, len(s.MostCommonBehaviorTags))
	for _, tc := range s.MostCommonBehaviorTags {
		tags = append(tags, tc.Tag)
	}
	return SummaryRecord{
		RestaurantID:      s.RestaurantID,
		TotalCustomers:    int64(s.TotalCustomers),
		NewCustomersCount: int64(s.NewCustomersCount),
		ChurnRate:         s.ChurnRate,
		ActiveRate:        s.ActiveRate,
		AverageVisitGap:   s.AverageVisitGap,
		TopBehaviorTags:   strings.Join(tags, ","),
		LastCalculated:    s.LastCalculated.Unix(),
	}
}

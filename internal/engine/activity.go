package engine

import (
	"time"

	"github.com/tableloyal/tableloyal/internal/models"
)

// classifyActivity assigns exactly one lifecycle stage. The rules are checked
// in order and the first match wins.
//
// The active (1.5×) and churn_risk (2×) windows deliberately do not partition
// the gap space; for some visit-gap ratios both conditions hold and the rule
// order decides. That overlap matches the production rollout and stays until
// product settles the intended boundary.
func (e *Engine) classifyActivity(c *models.Customer, restaurantAvgVisitGap float64, visits80 float64, now time.Time) models.ActivityTag {
	daysSinceFirst := daysBetween(now, c.FirstVisitDate)
	daysSinceLast := daysBetween(now, c.LastVisitDate)

	switch {
	case daysSinceFirst <= e.cfg.NewCustomerGapRatio*restaurantAvgVisitGap:
		return models.ActivityTagNew
	case float64(c.TotalVisits) >= visits80:
		return models.ActivityTagLoyal
	case daysSinceLast <= e.cfg.ActiveGapRatio*c.AvgVisitGapDays:
		return models.ActivityTagActive
	case daysSinceLast >= e.cfg.ChurnGapRatio*c.AvgVisitGapDays:
		return models.ActivityTagChurnRisk
	case daysSinceLast > e.cfg.InactiveDays:
		return models.ActivityTagInactive
	default:
		return models.ActivityTagActive
	}
}

package engine

import "github.com/tableloyal/tableloyal/internal/models"

// spendThresholds are the population-wide cutoffs for one tagging run,
// recomputed fresh from the current roster every time.
type spendThresholds struct {
	ltv90    float64 // lifetime spend a customer must reach for vip
	aov80    float64 // order value cutoff for high_spender
	visits80 float64 // visit count cutoff for loyal
}

func (e *Engine) computeThresholds(customers []models.Customer) spendThresholds {
	spends := make([]float64, len(customers))
	aovs := make([]float64, len(customers))
	visits := make([]float64, len(customers))
	for i, c := range customers {
		spends[i] = c.TotalSpend
		aovs[i] = c.AvgOrderValue
		visits[i] = float64(c.TotalVisits)
	}

	// An Nth-percentile threshold is the cutoff for the top (100-N)% of the
	// population, so the descending-rank calculator takes the complement.
	return spendThresholds{
		ltv90:    PercentileDesc(spends, 100-e.cfg.LTVPercentile),
		aov80:    PercentileDesc(aovs, 100-e.cfg.AOVPercentile),
		visits80: PercentileDesc(visits, 100-e.cfg.VisitFreqPercentile),
	}
}

// classifySpend assigns exactly one spend tier. First match wins.
func (e *Engine) classifySpend(c *models.Customer, t spendThresholds) models.SpendTag {
	switch {
	case c.TotalSpend >= t.ltv90:
		return models.SpendTagVIP
	case c.AvgOrderValue >= t.aov80:
		return models.SpendTagHigh
	case c.AvgOrderValue >= t.aov80*e.cfg.MidSpenderRatio:
		return models.SpendTagMid
	default:
		return models.SpendTagLow
	}
}

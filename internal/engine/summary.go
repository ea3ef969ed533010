package engine

import (
	"math"
	"sort"

	"github.com/tableloyal/tableloyal/internal/models"
)

// CalculateRestaurantSummary aggregates the roster into restaurant-level
// distribution and cohort figures. Like the tagger it is a pure pass over its
// input; the customers' stored tags are read as-is.
func (e *Engine) CalculateRestaurantSummary(customers []models.Customer, restaurantID string) models.RestaurantCustomerSummary {
	now := e.clock()
	total := len(customers)

	summary := models.RestaurantCustomerSummary{
		RestaurantID:   restaurantID,
		TotalCustomers: total,
		LastCalculated: now,
	}

	if total == 0 {
		summary.Top10PercentLTV = []models.CustomerValue{}
		summary.MostCommonBehaviorTags = []models.TagCount{}
		summary.SpendTagDistribution = emptyDistribution(spendTagNames())
		summary.ActivityTagDistribution = emptyDistribution(activityTagNames())
		return summary
	}

	churned := 0
	active := 0
	newCustomers := 0
	gapSum := 0.0
	spendCounts := make(map[models.SpendTag]int)
	activityCounts := make(map[models.ActivityTag]int)
	behaviorCounts := make(map[models.BehaviorTag]int)

	for i := range customers {
		c := &customers[i]
		spendCounts[c.SpendTag]++
		activityCounts[c.ActivityTag]++
		for tag := range c.BehaviorTags {
			behaviorCounts[tag]++
		}
		if c.ActivityTag == models.ActivityTagChurnRisk {
			churned++
		}
		if c.ActivityTag == models.ActivityTagNew {
			newCustomers++
		}
		if daysBetween(now, c.LastVisitDate) <= e.cfg.ActiveWindowDays {
			active++
		}
		gapSum += c.AvgVisitGapDays
	}

	summary.ChurnRate = round2(float64(churned) / float64(total) * 100)
	summary.ActiveRate = round2(float64(active) / float64(total) * 100)
	summary.AverageVisitGap = round2(gapSum / float64(total))
	summary.NewCustomersCount = newCustomers
	summary.Top10PercentLTV = e.topLTVCohort(customers)
	summary.MostCommonBehaviorTags = topBehaviorTags(behaviorCounts, total, 5)

	summary.SpendTagDistribution = make([]models.TagCount, 0, len(models.SpendTags))
	for _, tag := range models.SpendTags {
		summary.SpendTagDistribution = append(summary.SpendTagDistribution, models.TagCount{
			Tag:        string(tag),
			Count:      spendCounts[tag],
			Percentage: round2(float64(spendCounts[tag]) / float64(total) * 100),
		})
	}

	summary.ActivityTagDistribution = make([]models.TagCount, 0, len(models.ActivityTags))
	for _, tag := range models.ActivityTags {
		summary.ActivityTagDistribution = append(summary.ActivityTagDistribution, models.TagCount{
			Tag:        string(tag),
			Count:      activityCounts[tag],
			Percentage: round2(float64(activityCounts[tag]) / float64(total) * 100),
		})
	}

	return summary
}

// topLTVCohort returns the ceil(10%) highest lifetime spenders, descending.
func (e *Engine) topLTVCohort(customers []models.Customer) []models.CustomerValue {
	ranked := make([]models.CustomerValue, len(customers))
	for i, c := range customers {
		ranked[i] = models.CustomerValue{CustomerID: c.ID, Name: c.Name, TotalSpend: c.TotalSpend}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].TotalSpend > ranked[j].TotalSpend })

	cohortSize := int(math.Ceil(float64(len(customers)) * e.cfg.TopLTVShare))
	if cohortSize > len(ranked) {
		cohortSize = len(ranked)
	}
	return ranked[:cohortSize]
}

// topBehaviorTags returns the most common behavior tags with their population
// share, count-descending with a lexicographic tie-break.
func topBehaviorTags(counts map[models.BehaviorTag]int, total, limit int) []models.TagCount {
	tags := make([]models.TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, models.TagCount{
			Tag:        string(tag),
			Count:      count,
			Percentage: round2(float64(count) / float64(total) * 100),
		})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}

func emptyDistribution(names []string) []models.TagCount {
	out := make([]models.TagCount, 0, len(names))
	for _, name := range names {
		out = append(out, models.TagCount{Tag: name})
	}
	return out
}

func spendTagNames() []string {
	names := make([]string, len(models.SpendTags))
	for i, tag := range models.SpendTags {
		names[i] = string(tag)
	}
	return names
}

func activityTagNames() []string {
	names := make([]string, len(models.ActivityTags))
	for i, tag := range models.ActivityTags {
		names[i] = string(tag)
	}
	return names
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

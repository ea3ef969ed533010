package models

import "time"

// TagCount is one tag's share of the population.
type TagCount struct {
	Tag        string  `json:"tag"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CustomerValue identifies one customer in the top-LTV cohort.
type CustomerValue struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	TotalSpend float64 `json:"total_spend"`
}

// RestaurantCustomerSummary is the restaurant-level aggregation produced
// alongside a tagging run. Percentages are rounded to two decimals.
type RestaurantCustomerSummary struct {
	RestaurantID            string          `json:"restaurant_id"`
	TotalCustomers          int             `json:"total_customers"`
	ChurnRate               float64         `json:"churn_rate"`
	ActiveRate              float64         `json:"active_rate"`
	AverageVisitGap         float64         `json:"average_visit_gap"`
	Top10PercentLTV         []CustomerValue `json:"top_10_percent_ltv"`
	MostCommonBehaviorTags  []TagCount      `json:"most_common_behavior_tags"`
	NewCustomersCount       int             `json:"new_customers_count"`
	SpendTagDistribution    []TagCount      `json:"spend_tag_distribution"`
	ActivityTagDistribution []TagCount      `json:"activity_tag_distribution"`
	LastCalculated          time.Time       `json:"last_calculated"`
}

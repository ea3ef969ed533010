package engine

import (
	"testing"
	"time"

	"github.com/tableloyal/tableloyal/internal/models"
)

func daysAgo(days int) time.Time {
	return testNow.AddDate(0, 0, -days)
}

func TestClassifyActivity(t *testing.T) {
	e := newTestEngine()
	const restaurantGap = 14.0 // new window is 0.5 × 14 = 7 days
	const visits80 = 10.0

	cases := []struct {
		name     string
		customer models.Customer
		want     models.ActivityTag
	}{
		{
			name: "recently acquired",
			customer: models.Customer{
				FirstVisitDate: daysAgo(5),
				LastVisitDate:  daysAgo(5),
			},
			want: models.ActivityTagNew,
		},
		{
			name: "first visit exactly at new window edge",
			customer: models.Customer{
				FirstVisitDate: daysAgo(7),
				LastVisitDate:  daysAgo(7),
			},
			want: models.ActivityTagNew,
		},
		{
			name: "visit count at loyal cutoff",
			customer: models.Customer{
				TotalVisits:     10,
				FirstVisitDate:  daysAgo(200),
				LastVisitDate:   daysAgo(60),
				AvgVisitGapDays: 20,
			},
			want: models.ActivityTagLoyal,
		},
		{
			name: "returned within own rhythm",
			customer: models.Customer{
				TotalVisits:     5,
				FirstVisitDate:  daysAgo(100),
				LastVisitDate:   daysAgo(10),
				AvgVisitGapDays: 7, // active window 10.5 days
			},
			want: models.ActivityTagActive,
		},
		{
			name: "gap doubled",
			customer: models.Customer{
				TotalVisits:     5,
				FirstVisitDate:  daysAgo(200),
				LastVisitDate:   daysAgo(30),
				AvgVisitGapDays: 7, // churn threshold 14 days
			},
			want: models.ActivityTagChurnRisk,
		},
		{
			name: "long silence without churn signal",
			customer: models.Customer{
				TotalVisits:     5,
				FirstVisitDate:  daysAgo(300),
				LastVisitDate:   daysAgo(100),
				AvgVisitGapDays: 60, // active 90, churn 120: neither fires
			},
			want: models.ActivityTagInactive,
		},
		{
			name: "between windows falls back to active",
			customer: models.Customer{
				TotalVisits:     5,
				FirstVisitDate:  daysAgo(300),
				LastVisitDate:   daysAgo(80),
				AvgVisitGapDays: 50, // active 75, churn 100, inactive 90: none fires
			},
			want: models.ActivityTagActive,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.classifyActivity(&tc.customer, restaurantGap, visits80, testNow)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifyActivity_NewBeatsLoyal(t *testing.T) {
	e := newTestEngine()
	c := models.Customer{
		TotalVisits:    50,
		FirstVisitDate: daysAgo(3),
		LastVisitDate:  daysAgo(1),
	}
	if got := e.classifyActivity(&c, 14, 10, testNow); got != models.ActivityTagNew {
		t.Fatalf("got %q, want %q", got, models.ActivityTagNew)
	}
}

func TestDaysBetween_CeilsPartialDays(t *testing.T) {
	then := testNow.Add(-25 * time.Hour)
	if got := daysBetween(testNow, then); got != 2 {
		t.Fatalf("got %v, want 2", got)
	}
	if got := daysBetween(testNow, testNow); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

package factories

import (
	"math"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/tableloyal/tableloyal/internal/models"
)

var fake = faker.New()

// dining segments used to shape demo rosters; ratios sum to 1
type customerSegment struct {
	Ratio          float64
	VisitsPerMonth float64
	AvgSpendPerVisit struct {
		Min float64
		Max float64
	}
	ComboAffinity float64
	WeekendBias   float64
}

var demoSegments = map[string]customerSegment{
	"frequent": {
		Ratio:          0.2,
		VisitsPerMonth: 6,
		AvgSpendPerVisit: struct {
			Min float64
			Max float64
		}{250, 900},
		ComboAffinity: 0.5,
		WeekendBias:   0.3,
	},
	"regular": {
		Ratio:          0.5,
		VisitsPerMonth: 2.5,
		AvgSpendPerVisit: struct {
			Min float64
			Max float64
		}{150, 500},
		ComboAffinity: 0.3,
		WeekendBias:   0.45,
	},
	"occasional": {
		Ratio:          0.3,
		VisitsPerMonth: 0.8,
		AvgSpendPerVisit: struct {
			Min float64
			Max float64
		}{100, 300},
		ComboAffinity: 0.15,
		WeekendBias:   0.6,
	},
}

var demoCategories = []string{
	"starters", "mains", "grills", "pizza", "burgers", "desserts", "beverages", "combos",
}

// CustomerFactory builds realistic demo rosters so the pipeline can run
// without a live database.
type CustomerFactory struct {
	rng *rand.Rand
}

func NewCustomerFactory(seed int64) *CustomerFactory {
	return &CustomerFactory{rng: rand.New(rand.NewSource(seed))}
}

// CreateRoster generates count customers with populated order histories.
func (cf *CustomerFactory) CreateRoster(count int, now time.Time) []models.Customer {
	customers := make([]models.Customer, 0, count)
	for i := 0; i < count; i++ {
		customers = append(customers, cf.CreateCustomer(now))
	}
	return customers
}

func (cf *CustomerFactory) CreateCustomer(now time.Time) models.Customer {
	segment := cf.pickSegment()
	profile := demoSegments[segment]

	// customers joined anywhere in the last year
	tenureDays := cf.rng.Intn(350) + 10
	firstVisit := now.AddDate(0, 0, -tenureDays)

	orders := cf.createOrderHistory(profile, firstVisit, now)

	customer := models.Customer{
		ID:           cuid.New(),
		Name:         fake.Person().Name(),
		Phone:        fake.Phone().Number(),
		Email:        fake.Internet().Email(),
		BehaviorTags: models.NewBehaviorTagSet(),
		OrderHistory: orders,
	}

	customer.TotalVisits = len(orders)
	if len(orders) == 0 {
		customer.FirstVisitDate = firstVisit
		customer.LastVisitDate = firstVisit
		customer.AvgVisitGapDays = 30
		customer.GuestEstimateAvg = 1 + cf.rng.Float64()*2
		return customer
	}

	customer.FirstVisitDate = orders[0].Timestamp
	customer.LastVisitDate = orders[len(orders)-1].Timestamp

	var spend float64
	for _, order := range orders {
		for _, item := range order.Items {
			spend += item.Price
		}
	}
	customer.TotalSpend = math.Round(spend*100) / 100
	customer.AvgOrderValue = math.Round(spend/float64(len(orders))*100) / 100

	if len(orders) > 1 {
		span := customer.LastVisitDate.Sub(customer.FirstVisitDate).Hours() / 24
		customer.AvgVisitGapDays = math.Max(1, math.Round(span/float64(len(orders)-1)*100)/100)
	} else {
		customer.AvgVisitGapDays = 30
	}

	customer.GuestEstimateAvg = math.Round((1+cf.rng.Float64()*4)*10) / 10
	return customer
}

func (cf *CustomerFactory) pickSegment() string {
	r := cf.rng.Float64()
	if r < demoSegments["frequent"].Ratio {
		return "frequent"
	}
	if r < demoSegments["frequent"].Ratio+demoSegments["regular"].Ratio {
		return "regular"
	}
	return "occasional"
}

func (cf *CustomerFactory) createOrderHistory(profile customerSegment, firstVisit, now time.Time) []models.Order {
	spanDays := now.Sub(firstVisit).Hours() / 24
	expected := profile.VisitsPerMonth * spanDays / 30
	count := int(expected * (0.7 + cf.rng.Float64()*0.6))
	if count < 1 {
		count = 1
	}

	orders := make([]models.Order, 0, count)
	for i := 0; i < count; i++ {
		// spread visits across the tenure, weekend-biased per segment
		offset := time.Duration(cf.rng.Float64()*spanDays*24) * time.Hour
		when := firstVisit.Add(offset)
		if cf.rng.Float64() < profile.WeekendBias {
			when = nudgeToWeekend(when)
		}
		when = time.Date(when.Year(), when.Month(), when.Day(), cf.pickHour(), cf.rng.Intn(60), 0, 0, when.Location())

		orders = append(orders, cf.createOrder(profile, when))
	}

	sortOrders(orders)
	return orders
}

func (cf *CustomerFactory) createOrder(profile customerSegment, when time.Time) models.Order {
	itemCount := cf.rng.Intn(3) + 1
	items := make([]models.OrderItem, 0, itemCount)
	categories := make([]string, 0, itemCount)

	orderValue := profile.AvgSpendPerVisit.Min +
		cf.rng.Float64()*(profile.AvgSpendPerVisit.Max-profile.AvgSpendPerVisit.Min)

	for i := 0; i < itemCount; i++ {
		category := demoCategories[cf.rng.Intn(len(demoCategories))]
		isCombo := cf.rng.Float64() < profile.ComboAffinity
		if isCombo {
			category = "combos"
		}
		items = append(items, models.OrderItem{
			Name:    fake.Lorem().Word(),
			Price:   math.Round(orderValue/float64(itemCount)*100) / 100,
			IsCombo: isCombo,
		})
		categories = appendIfMissing(categories, category)
	}

	return models.Order{
		Timestamp:  when,
		Items:      items,
		Categories: categories,
	}
}

func (cf *CustomerFactory) pickHour() int {
	// lunch and dinner peaks, with a tail across the rest of the day
	switch r := cf.rng.Float64(); {
	case r < 0.35:
		return 11 + cf.rng.Intn(4) // 11-14
	case r < 0.75:
		return 18 + cf.rng.Intn(4) // 18-21
	default:
		return 9 + cf.rng.Intn(13) // 9-21
	}
}

func nudgeToWeekend(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return t
	default:
		daysToSaturday := (int(time.Saturday) - int(t.Weekday()) + 7) % 7
		return t.AddDate(0, 0, daysToSaturday)
	}
}

func sortOrders(orders []models.Order) {
	for i := 1; i < len(orders); i++ {
		for j := i; j > 0 && orders[j].Timestamp.Before(orders[j-1].Timestamp); j-- {
			orders[j], orders[j-1] = orders[j-1], orders[j]
		}
	}
}

func appendIfMissing(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

package models

import "time"

// OrderItem is a single line on an order. IsCombo marks bundled combo deals,
// the signal behind the combo_responder behavior tag.
type OrderItem struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price,omitempty"`
	IsCombo bool    `json:"is_combo"`
}

// Order is one visit's worth of items plus the menu categories it touched.
type Order struct {
	Timestamp  time.Time   `json:"timestamp"`
	Items      []OrderItem `json:"items"`
	Categories []string    `json:"categories"`
}

// HasCombo reports whether any item on the order is a combo deal.
func (o Order) HasCombo() bool {
	for _, item := range o.Items {
		if item.IsCombo {
			return true
		}
	}
	return false
}

// IsWeekend reports whether the order was placed on a Saturday or Sunday.
func (o Order) IsWeekend() bool {
	day := o.Timestamp.Weekday()
	return day == time.Saturday || day == time.Sunday
}

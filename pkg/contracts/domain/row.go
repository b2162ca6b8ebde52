package domain

import (
	"time"
)

// Row is the canonical, fully-typed representation of one order record.
// Every field holds a concrete value after normalization: categorical fields
// fall back to "Unknown" (state keeps its raw text, including empty), numeric
// fields fall back to 0, and only the two dates may be nil when the source
// text could not be parsed. Rows are immutable once constructed and keep no
// reference to the raw record they came from.
type Row struct {
	OrderID          string     `json:"order_id"`
	OrderDate        *time.Time `json:"order_date,omitempty"`
	ShipDate         *time.Time `json:"ship_date,omitempty"`
	Sales            float64    `json:"sales"`
	Profit           float64    `json:"profit"`
	Discount         float64    `json:"discount"`
	BaseMargin       float64    `json:"base_margin"`
	Region           string     `json:"region"`
	Segment          string     `json:"segment"`
	Category         string     `json:"category"`
	SubCategory      string     `json:"sub_category"`
	ShipMode         string     `json:"ship_mode"`
	State            string     `json:"state"`
	ProductContainer string     `json:"product_container"`
	ProductName      string     `json:"product_name"`
}

// OrderYear returns the year of the order date and whether one is defined.
func (r Row) OrderYear() (int, bool) {
	if r.OrderDate == nil {
		return 0, false
	}
	return r.OrderDate.Year(), true
}

// ShipDays returns the shipping delay in whole days and whether both dates
// are defined.
func (r Row) ShipDays() (float64, bool) {
	if r.OrderDate == nil || r.ShipDate == nil {
		return 0, false
	}
	return r.ShipDate.Sub(*r.OrderDate).Hours() / 24, true
}

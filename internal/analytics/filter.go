package analytics

import (
	"salespulse/pkg/contracts/domain"
)

// Matches reports whether a row passes the filter: its order-date year must
// be defined and inside the normalized inclusive range, and every categorical
// selector must be either unconstrained or exactly equal (case-sensitive) to
// the row's field. Rows without a parsed order date never pass because they
// cannot be year-bounded.
func Matches(row domain.Row, filter domain.FilterState) bool {
	year, ok := row.OrderYear()
	if !ok {
		return false
	}
	lo, hi := filter.YearBounds()
	if year < lo || year > hi {
		return false
	}
	if filter.Region != "" && row.Region != filter.Region {
		return false
	}
	if filter.Segment != "" && row.Segment != filter.Segment {
		return false
	}
	if filter.Category != "" && row.Category != filter.Category {
		return false
	}
	if filter.State != "" && row.State != filter.State {
		return false
	}
	if filter.ShipMode != "" && row.ShipMode != filter.ShipMode {
		return false
	}
	return true
}

// Apply recomputes the filtered row collection in full. There is no
// incremental path: every filter change re-evaluates every row.
func Apply(rows []domain.Row, filter domain.FilterState) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	for _, row := range rows {
		if Matches(row, filter) {
			out = append(out, row)
		}
	}
	return out
}

package analytics

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"salespulse/pkg/contracts/domain"
)

// DistinctValues collects the case-sensitive distinct values of a
// categorical field over the full row collection, drops blanks, and sorts
// ascending with locale-aware collation (byte order would misplace
// mixed-case labels).
func DistinctValues(rows []domain.Row, field func(domain.Row) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, row := range rows {
		v := field(row)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	collate.New(language.AmericanEnglish).SortStrings(values)
	return values
}

// YearBounds scans the full dataset for the min and max order-date year.
// ok is false when no row has a parsed order date.
func YearBounds(rows []domain.Row) (minYear, maxYear int, ok bool) {
	for _, row := range rows {
		year, defined := row.OrderYear()
		if !defined {
			continue
		}
		if !ok {
			minYear, maxYear, ok = year, year, true
			continue
		}
		if year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}
	return minYear, maxYear, ok
}

// BuildFilterOptions computes the read surface for filter controls: distinct
// value sets per selector plus the dataset's default year bounds. It always
// runs over the unfiltered rows.
func BuildFilterOptions(rows []domain.Row) domain.FilterOptions {
	minYear, maxYear, _ := YearBounds(rows)
	return domain.FilterOptions{
		Regions:    DistinctValues(rows, func(r domain.Row) string { return r.Region }),
		Segments:   DistinctValues(rows, func(r domain.Row) string { return r.Segment }),
		Categories: DistinctValues(rows, func(r domain.Row) string { return r.Category }),
		States:     DistinctValues(rows, func(r domain.Row) string { return r.State }),
		ShipModes:  DistinctValues(rows, func(r domain.Row) string { return r.ShipMode }),
		MinYear:    minYear,
		MaxYear:    maxYear,
	}
}

// BuildDashboard evaluates every aggregate view for one (rows, filter)
// pair. Views are pure recomputations over the filtered collection; nothing
// is cached or incrementally maintained across filter changes.
func BuildDashboard(rows []domain.Row, filter domain.FilterState) domain.Dashboard {
	filtered := Apply(rows, filter)
	return domain.Dashboard{
		KPIs:                ComputeKPIs(filtered),
		SalesBySegment:      SalesBySegment(filtered),
		SalesByCategory:     SalesByCategory(filtered),
		SalesByRegion:       SalesByRegion(filtered),
		SalesByContainer:    SalesByContainer(filtered),
		ProfitBySubCategory: ProfitBySubCategory(filtered),
		SalesByState:        SalesProfitByState(filtered),
		Monthly:             MonthlySeries(filtered),
		Scatter:             Scatter(filtered),
		Insights:            Insights(filtered),
		FilteredRows:        len(filtered),
		TotalRows:           len(rows),
	}
}

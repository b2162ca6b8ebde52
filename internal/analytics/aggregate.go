package analytics

import (
	"fmt"
	"math"
	"sort"

	"salespulse/pkg/contracts/domain"
)

// Truncation limits for the views that cap their series after sorting.
const (
	TopSubCategories = 10
	TopContainers    = 8
)

// GroupedSum accumulates a metric into buckets keyed by a categorical field
// and returns the buckets sorted descending by value. Ties keep insertion
// order (first appearance in the row collection), which makes the result
// deterministic for a given input. A positive limit truncates the series
// after sorting.
func GroupedSum(rows []domain.Row, key func(domain.Row) string, metric func(domain.Row) float64, limit int) []domain.SeriesPoint {
	sums := make(map[string]float64)
	order := make([]string, 0)

	for _, row := range rows {
		k := key(row)
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] += metric(row)
	}

	series := make([]domain.SeriesPoint, 0, len(order))
	for _, k := range order {
		series = append(series, domain.SeriesPoint{Label: k, Value: sums[k]})
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Value > series[j].Value
	})
	if limit > 0 && len(series) > limit {
		series = series[:limit]
	}
	return series
}

// SalesBySegment groups total sales by customer segment.
func SalesBySegment(rows []domain.Row) []domain.SeriesPoint {
	return GroupedSum(rows, func(r domain.Row) string { return r.Segment }, sales, 0)
}

// SalesByCategory groups total sales by product category.
func SalesByCategory(rows []domain.Row) []domain.SeriesPoint {
	return GroupedSum(rows, func(r domain.Row) string { return r.Category }, sales, 0)
}

// SalesByRegion groups total sales by region.
func SalesByRegion(rows []domain.Row) []domain.SeriesPoint {
	return GroupedSum(rows, func(r domain.Row) string { return r.Region }, sales, 0)
}

// SalesByContainer groups total sales by product container, truncated to the
// top entries.
func SalesByContainer(rows []domain.Row) []domain.SeriesPoint {
	return GroupedSum(rows, func(r domain.Row) string { return r.ProductContainer }, sales, TopContainers)
}

// ProfitBySubCategory groups total profit by sub-category, truncated to the
// top entries.
func ProfitBySubCategory(rows []domain.Row) []domain.SeriesPoint {
	return GroupedSum(rows, func(r domain.Row) string { return r.SubCategory }, profit, TopSubCategories)
}

// SalesProfitByState accumulates sales and profit in parallel per 2-letter
// state code. Rows whose state cannot be geo-normalized are excluded from
// this view only. The result is sorted descending by sales with
// insertion-order ties, like every grouped sum.
func SalesProfitByState(rows []domain.Row) []domain.StateMetric {
	type pair struct{ sales, profit float64 }
	sums := make(map[string]*pair)
	order := make([]string, 0)

	for _, row := range rows {
		code := StateCode(row.State)
		if code == "" {
			continue
		}
		p, seen := sums[code]
		if !seen {
			p = &pair{}
			sums[code] = p
			order = append(order, code)
		}
		p.sales += row.Sales
		p.profit += row.Profit
	}

	series := make([]domain.StateMetric, 0, len(order))
	for _, code := range order {
		p := sums[code]
		series = append(series, domain.StateMetric{Code: code, Sales: p.sales, Profit: p.profit})
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Sales > series[j].Sales
	})
	return series
}

// MonthlySeries buckets rows by "YYYY-MM" of the order date and accumulates
// sales and profit per bucket. Buckets come out in ascending lexicographic
// key order, which is chronological because the month is zero-padded. Rows
// without a parsed order date are excluded.
func MonthlySeries(rows []domain.Row) domain.MonthlySeries {
	type bucket struct{ sales, profit float64 }
	sums := make(map[string]*bucket)

	for _, row := range rows {
		if row.OrderDate == nil {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", row.OrderDate.Year(), int(row.OrderDate.Month()))
		b, seen := sums[key]
		if !seen {
			b = &bucket{}
			sums[key] = b
		}
		b.sales += row.Sales
		b.profit += row.Profit
	}

	months := make([]string, 0, len(sums))
	for key := range sums {
		months = append(months, key)
	}
	sort.Strings(months)

	series := domain.MonthlySeries{
		Months: months,
		Sales:  make([]float64, len(months)),
		Profit: make([]float64, len(months)),
	}
	for i, key := range months {
		series.Sales[i] = sums[key].sales
		series.Profit[i] = sums[key].profit
	}
	return series
}

// Scatter projects one (baseMargin, profit, category) triple per row with
// both numbers finite. No aggregation happens here; the category rides along
// for color coding downstream.
func Scatter(rows []domain.Row) []domain.ScatterPoint {
	points := make([]domain.ScatterPoint, 0, len(rows))
	for _, row := range rows {
		if !finite(row.BaseMargin) || !finite(row.Profit) {
			continue
		}
		points = append(points, domain.ScatterPoint{
			BaseMargin: row.BaseMargin,
			Profit:     row.Profit,
			Category:   row.Category,
		})
	}
	return points
}

func sales(r domain.Row) float64  { return r.Sales }
func profit(r domain.Row) float64 { return r.Profit }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

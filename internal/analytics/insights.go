package analytics

import (
	"salespulse/pkg/contracts/domain"
)

// Insights ranks the filtered rows into human-readable highlights: the top
// sales entry for region, category, segment and state, the top profit entry
// for sub-category, and the strongest month of the sales time series. Each
// pick is position 0 of the corresponding descending grouped sum; there is
// no separate ranking algorithm.
func Insights(rows []domain.Row) []domain.Insight {
	insights := make([]domain.Insight, 0, 6)

	byDimension := []struct {
		dimension string
		key       func(domain.Row) string
	}{
		{"region", func(r domain.Row) string { return r.Region }},
		{"category", func(r domain.Row) string { return r.Category }},
		{"segment", func(r domain.Row) string { return r.Segment }},
		{"state", func(r domain.Row) string { return r.State }},
	}
	for _, d := range byDimension {
		if series := GroupedSum(rows, d.key, sales, 0); len(series) > 0 {
			insights = append(insights, domain.Insight{
				Dimension: d.dimension,
				Metric:    "sales",
				Label:     series[0].Label,
				Value:     series[0].Value,
			})
		}
	}

	if series := GroupedSum(rows, func(r domain.Row) string { return r.SubCategory }, profit, 0); len(series) > 0 {
		insights = append(insights, domain.Insight{
			Dimension: "sub_category",
			Metric:    "profit",
			Label:     series[0].Label,
			Value:     series[0].Value,
		})
	}

	if monthly := MonthlySeries(rows); len(monthly.Months) > 0 {
		best := 0
		for i := range monthly.Sales {
			if monthly.Sales[i] > monthly.Sales[best] {
				best = i
			}
		}
		insights = append(insights, domain.Insight{
			Dimension: "month",
			Metric:    "sales",
			Label:     monthly.Months[best],
			Value:     monthly.Sales[best],
		})
	}

	return insights
}

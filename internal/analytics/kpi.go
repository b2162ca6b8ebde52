package analytics

import (
	"salespulse/pkg/contracts/domain"
)

// ComputeKPIs derives the scalar indicators from the filtered row set. It is
// a pure function: the same rows always yield the same KPISet, and no state
// survives between calls.
//
// The order count is the number of distinct non-empty order identifiers; a
// dataset with no identifiers at all falls back to the raw row count so that
// averages stay meaningful.
func ComputeKPIs(rows []domain.Row) domain.KPISet {
	var kpis domain.KPISet

	distinctOrders := make(map[string]struct{})
	var discountSum float64
	var shipDaysSum float64
	shipDaysCount := 0

	for _, row := range rows {
		kpis.TotalSales += row.Sales
		kpis.TotalProfit += row.Profit
		discountSum += row.Discount
		if row.OrderID != "" {
			distinctOrders[row.OrderID] = struct{}{}
		}
		if days, ok := row.ShipDays(); ok {
			shipDaysSum += days
			shipDaysCount++
		}
	}

	kpis.OrderCount = len(distinctOrders)
	if kpis.OrderCount == 0 {
		kpis.OrderCount = len(rows)
	}

	if kpis.TotalSales != 0 {
		kpis.Margin = kpis.TotalProfit / kpis.TotalSales
	}
	if len(rows) > 0 {
		kpis.AvgDiscount = discountSum / float64(len(rows))
	}
	if shipDaysCount > 0 {
		kpis.AvgShipDays = shipDaysSum / float64(shipDaysCount)
	}
	if kpis.OrderCount > 0 {
		kpis.AverageOrderValue = kpis.TotalSales / float64(kpis.OrderCount)
	}
	return kpis
}

package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func TestGroupedSum(t *testing.T) {
	rows := []domain.Row{
		{Category: "A", Sales: 10},
		{Category: "B", Sales: 30},
		{Category: "A", Sales: 5},
	}

	series := GroupedSum(rows, func(r domain.Row) string { return r.Category }, sales, 0)

	require.Len(t, series, 2)
	assert.Equal(t, domain.SeriesPoint{Label: "B", Value: 30}, series[0])
	assert.Equal(t, domain.SeriesPoint{Label: "A", Value: 15}, series[1])
}

func TestGroupedSumTiesKeepInsertionOrder(t *testing.T) {
	rows := []domain.Row{
		{Region: "South", Sales: 20},
		{Region: "North", Sales: 20},
		{Region: "East", Sales: 20},
	}

	series := GroupedSum(rows, func(r domain.Row) string { return r.Region }, sales, 0)

	require.Len(t, series, 3)
	assert.Equal(t, "South", series[0].Label)
	assert.Equal(t, "North", series[1].Label)
	assert.Equal(t, "East", series[2].Label)
}

func TestGroupedSumLimit(t *testing.T) {
	rows := []domain.Row{
		{SubCategory: "A", Profit: 1},
		{SubCategory: "B", Profit: 2},
		{SubCategory: "C", Profit: 3},
	}

	series := GroupedSum(rows, func(r domain.Row) string { return r.SubCategory }, profit, 2)

	require.Len(t, series, 2)
	assert.Equal(t, "C", series[0].Label)
	assert.Equal(t, "B", series[1].Label)
}

func TestSalesByContainerTruncatesToTop(t *testing.T) {
	containers := []string{"Small Box", "Large Box", "Jumbo Box", "Jumbo Drum",
		"Medium Box", "Small Pack", "Wrap Bag", "Large Crate", "Pallet", "Envelope"}
	rows := make([]domain.Row, 0, len(containers))
	for i, c := range containers {
		rows = append(rows, domain.Row{ProductContainer: c, Sales: float64(i + 1)})
	}

	series := SalesByContainer(rows)

	require.Len(t, series, TopContainers)
	assert.Equal(t, "Envelope", series[0].Label)
	assert.Equal(t, 10.0, series[0].Value)
}

func TestSalesProfitByState(t *testing.T) {
	rows := []domain.Row{
		{State: "California", Sales: 100, Profit: 20},
		{State: "CA", Sales: 50, Profit: 5},
		{State: "Texas", Sales: 80, Profit: -10},
		{State: "Atlantis", Sales: 999, Profit: 999},
		{State: "", Sales: 40, Profit: 4},
	}

	series := SalesProfitByState(rows)

	// "California" and "CA" accumulate into the same bucket; rows that do
	// not geo-normalize are excluded from this view only.
	require.Len(t, series, 2)
	assert.Equal(t, domain.StateMetric{Code: "CA", Sales: 150, Profit: 25}, series[0])
	assert.Equal(t, domain.StateMetric{Code: "TX", Sales: 80, Profit: -10}, series[1])
}

func TestMonthlySeries(t *testing.T) {
	rows := []domain.Row{
		{OrderDate: datePtr(2014, time.January, 5), Sales: 100, Profit: 10},
		{OrderDate: datePtr(2014, time.January, 20), Sales: 50, Profit: 5},
		{OrderDate: datePtr(2013, time.December, 1), Sales: 30, Profit: 3},
		{OrderDate: datePtr(2014, time.March, 2), Sales: 20, Profit: -2},
		{Sales: 999, Profit: 999},
	}

	series := MonthlySeries(rows)

	assert.Equal(t, []string{"2013-12", "2014-01", "2014-03"}, series.Months)
	assert.Equal(t, []float64{30, 150, 20}, series.Sales)
	assert.Equal(t, []float64{3, 15, -2}, series.Profit)
}

func TestScatter(t *testing.T) {
	rows := []domain.Row{
		{BaseMargin: 0.5, Profit: 12, Category: "Furniture"},
		{BaseMargin: 0.4, Profit: -3, Category: "Technology"},
	}

	points := Scatter(rows)

	require.Len(t, points, 2)
	assert.Equal(t, domain.ScatterPoint{BaseMargin: 0.5, Profit: 12, Category: "Furniture"}, points[0])
	assert.Equal(t, domain.ScatterPoint{BaseMargin: 0.4, Profit: -3, Category: "Technology"}, points[1])
}

func TestGroupedSumEmptyRows(t *testing.T) {
	series := GroupedSum(nil, func(r domain.Row) string { return r.Region }, sales, 0)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}

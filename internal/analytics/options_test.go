package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func TestDistinctValues(t *testing.T) {
	rows := []domain.Row{
		{Region: "West"},
		{Region: "east"},
		{Region: "West"},
		{Region: ""},
		{Region: "Central"},
	}

	values := DistinctValues(rows, func(r domain.Row) string { return r.Region })

	// Blanks are dropped, duplicates collapse, and collation sorts
	// mixed-case labels alphabetically rather than by byte value.
	assert.Equal(t, []string{"Central", "east", "West"}, values)
}

func TestYearBounds(t *testing.T) {
	rows := []domain.Row{
		{OrderDate: datePtr(2015, time.June, 1)},
		{},
		{OrderDate: datePtr(2012, time.January, 1)},
		{OrderDate: datePtr(2014, time.March, 1)},
	}

	minYear, maxYear, ok := YearBounds(rows)

	require.True(t, ok)
	assert.Equal(t, 2012, minYear)
	assert.Equal(t, 2015, maxYear)
}

func TestYearBoundsNoDates(t *testing.T) {
	_, _, ok := YearBounds([]domain.Row{{}, {}})
	assert.False(t, ok)
}

func TestBuildFilterOptions(t *testing.T) {
	rows := []domain.Row{
		{
			OrderDate: datePtr(2013, time.May, 1),
			Region:    "West", Segment: "Consumer", Category: "Furniture",
			State: "California", ShipMode: "Second Class",
		},
		{
			OrderDate: datePtr(2016, time.May, 1),
			Region:    "East", Segment: "Corporate", Category: "Technology",
			State: "Texas", ShipMode: "First Class",
		},
	}

	opts := BuildFilterOptions(rows)

	assert.Equal(t, []string{"East", "West"}, opts.Regions)
	assert.Equal(t, []string{"Consumer", "Corporate"}, opts.Segments)
	assert.Equal(t, []string{"Furniture", "Technology"}, opts.Categories)
	assert.Equal(t, []string{"California", "Texas"}, opts.States)
	assert.Equal(t, []string{"First Class", "Second Class"}, opts.ShipModes)
	assert.Equal(t, 2013, opts.MinYear)
	assert.Equal(t, 2016, opts.MaxYear)
}

func TestBuildDashboard(t *testing.T) {
	rows := []domain.Row{
		{
			OrderID:   "A",
			OrderDate: datePtr(2014, time.January, 5),
			Region:    "West", Segment: "Consumer", Category: "Furniture",
			SubCategory: "Chairs", State: "California",
			ProductContainer: "Small Box",
			Sales:            100, Profit: 20,
		},
		{
			OrderID:   "B",
			OrderDate: datePtr(2014, time.February, 5),
			Region:    "East", Segment: "Corporate", Category: "Technology",
			SubCategory: "Phones", State: "Texas",
			ProductContainer: "Large Box",
			Sales:            50, Profit: 5,
		},
		{
			OrderID:   "C",
			OrderDate: datePtr(2012, time.February, 5),
			Region:    "East", Category: "Technology",
			Sales: 999, Profit: 999,
		},
	}

	dash := BuildDashboard(rows, domain.FilterState{YearFrom: 2013, YearTo: 2016})

	assert.Equal(t, 2, dash.FilteredRows)
	assert.Equal(t, 3, dash.TotalRows)
	assert.Equal(t, 150.0, dash.KPIs.TotalSales)
	require.Len(t, dash.SalesByRegion, 2)
	assert.Equal(t, "West", dash.SalesByRegion[0].Label)
	assert.Equal(t, []string{"2014-01", "2014-02"}, dash.Monthly.Months)
	require.Len(t, dash.SalesByState, 2)
	assert.Equal(t, "CA", dash.SalesByState[0].Code)
	assert.NotEmpty(t, dash.Insights)
}

package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecordModernHeaders(t *testing.T) {
	rec := NewRawRecord(
		[]string{
			"Order ID", "Order Date", "Ship Date", "Sales", "Profit",
			"Discount", "Region", "Segment", "Category", "Sub-Category",
			"Ship Mode", "State", "Product Name",
		},
		[]string{
			"CA-2014-100001", "2014-01-05", "2014-01-08", "$1,234.50", "-45.20",
			"0.2", "West", "Consumer", "Furniture", "Chairs",
			"Second Class", "California", "Desk Chair",
		},
	)

	row := NormalizeRecord(rec)

	assert.Equal(t, "CA-2014-100001", row.OrderID)
	require.NotNil(t, row.OrderDate)
	assert.Equal(t, date(2014, time.January, 5), *row.OrderDate)
	require.NotNil(t, row.ShipDate)
	assert.Equal(t, date(2014, time.January, 8), *row.ShipDate)
	assert.Equal(t, 1234.5, row.Sales)
	assert.Equal(t, -45.2, row.Profit)
	assert.Equal(t, 0.2, row.Discount)
	assert.Equal(t, "West", row.Region)
	assert.Equal(t, "Consumer", row.Segment)
	assert.Equal(t, "Furniture", row.Category)
	assert.Equal(t, "Chairs", row.SubCategory)
	assert.Equal(t, "Second Class", row.ShipMode)
	assert.Equal(t, "California", row.State)
	assert.Equal(t, "Desk Chair", row.ProductName)
}

func TestNormalizeRecordLegacyHeaders(t *testing.T) {
	rec := NewRawRecord(
		[]string{
			"Order Date", "Customer Segment", "Product Category",
			"Product Sub-Category", "Product Container",
			"Product Base Margin", "State or Province", "Total Sales",
		},
		[]string{
			"02/03/2015", "Corporate", "Technology",
			"Telephones and Communication", "Small Box",
			"0.56", "Texas", "890.10",
		},
	)

	row := NormalizeRecord(rec)

	require.NotNil(t, row.OrderDate)
	assert.Equal(t, date(2015, time.February, 3), *row.OrderDate)
	assert.Equal(t, "Corporate", row.Segment)
	assert.Equal(t, "Technology", row.Category)
	assert.Equal(t, "Telephones and Communication", row.SubCategory)
	assert.Equal(t, "Small Box", row.ProductContainer)
	assert.Equal(t, 0.56, row.BaseMargin)
	assert.Equal(t, "Texas", row.State)
	assert.Equal(t, 890.1, row.Sales)
}

func TestNormalizeRecordDefaults(t *testing.T) {
	rec := NewRawRecord([]string{"Sales", "Profit"}, []string{"10", "2"})

	row := NormalizeRecord(rec)

	assert.Equal(t, "", row.OrderID)
	assert.Nil(t, row.OrderDate)
	assert.Nil(t, row.ShipDate)
	assert.Equal(t, "Unknown", row.Region)
	assert.Equal(t, "Unknown", row.Segment)
	assert.Equal(t, "Unknown", row.Category)
	assert.Equal(t, "Unknown", row.SubCategory)
	assert.Equal(t, "Unknown", row.ShipMode)
	assert.Equal(t, "Unknown", row.ProductContainer)
	assert.Equal(t, "Unknown", row.ProductName)
	// State keeps the raw (here empty) text so geo lookup sees the original.
	assert.Equal(t, "", row.State)
	assert.Equal(t, 0.0, row.Discount)
	assert.Equal(t, 0.0, row.BaseMargin)
}

func TestNormalizeAllSkipsNearEmptyRecords(t *testing.T) {
	header := []string{"Order Date", "Sales", "Region"}
	records := []RawRecord{
		NewRawRecord(header, []string{"2014-01-05", "100", "West"}),
		NewRawRecord(header, []string{"", "", ""}),
		NewRawRecord(header, []string{"", "5", ""}),
		NewRawRecord(header, []string{"2014-02-01", "50", ""}),
	}

	rows := NormalizeAll(records)

	require.Len(t, rows, 2)
	assert.Equal(t, 100.0, rows[0].Sales)
	assert.Equal(t, 50.0, rows[1].Sales)
}

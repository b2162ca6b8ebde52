package dataprocessing

import (
	"salespulse/pkg/contracts/domain"
)

// unknownValue substitutes for absent categorical fields. State is the one
// exception: its raw text (possibly empty) is retained for geo lookup.
const unknownValue = "Unknown"

// fieldAliases maps each canonical field to its candidate headers,
// most-preferred first. The lists cover the modern Superstore export, the
// legacy one (Customer Segment, Product Category, State or Province, ...)
// and common snake_case variants; case-insensitive matching in ResolveField
// covers the rest.
var fieldAliases = map[string][]string{
	"orderID":   {"Order ID", "order id", "OrderID", "order_id", "ID"},
	"orderDate": {"Order Date", "order date", "OrderDate", "order_date", "Date"},
	"shipDate":  {"Ship Date", "ship date", "ShipDate", "ship_date"},
	"sales":     {"Sales", "sales", "Total Sales", "total_sales"},
	"profit":    {"Profit", "profit", "Total Profit", "total_profit"},
	"discount":  {"Discount", "discount"},
	"baseMargin": {
		"Product Base Margin", "Base Margin", "base margin", "base_margin", "BaseMargin",
	},
	"region":  {"Region", "region"},
	"segment": {"Segment", "segment", "Customer Segment", "customer_segment"},
	"category": {
		"Category", "category", "Product Category", "product_category",
	},
	"subCategory": {
		"Sub-Category", "Sub Category", "sub-category", "sub_category",
		"Product Sub-Category", "Product Sub Category",
	},
	"shipMode": {"Ship Mode", "ship mode", "ShipMode", "ship_mode"},
	"state": {
		"State", "state", "State or Province", "state_or_province", "Province",
	},
	"productContainer": {
		"Product Container", "product container", "product_container", "Container",
	},
	"productName": {"Product Name", "product name", "product_name"},
}

func resolve(rec RawRecord, field string) string {
	return ResolveField(rec, fieldAliases[field])
}

func resolveOrUnknown(rec RawRecord, field string) string {
	if v := resolve(rec, field); v != "" {
		return v
	}
	return unknownValue
}

// NormalizeRecord maps one raw record to a canonical row: each field is
// located through its alias list, coerced to its target type, and defaulted
// per the substitution policy. Normalization never fails, it degrades.
func NormalizeRecord(rec RawRecord) domain.Row {
	return domain.Row{
		OrderID:          resolve(rec, "orderID"),
		OrderDate:        ParseDate(resolve(rec, "orderDate")),
		ShipDate:         ParseDate(resolve(rec, "shipDate")),
		Sales:            ParseNumber(resolve(rec, "sales")),
		Profit:           ParseNumber(resolve(rec, "profit")),
		Discount:         ParseNumber(resolve(rec, "discount")),
		BaseMargin:       ParseNumber(resolve(rec, "baseMargin")),
		Region:           resolveOrUnknown(rec, "region"),
		Segment:          resolveOrUnknown(rec, "segment"),
		Category:         resolveOrUnknown(rec, "category"),
		SubCategory:      resolveOrUnknown(rec, "subCategory"),
		ShipMode:         resolveOrUnknown(rec, "shipMode"),
		State:            resolve(rec, "state"),
		ProductContainer: resolveOrUnknown(rec, "productContainer"),
		ProductName:      resolveOrUnknown(rec, "productName"),
	}
}

// NormalizeAll converts a batch of raw records, skipping records with at
// most one populated cell.
func NormalizeAll(records []RawRecord) []domain.Row {
	rows := make([]domain.Row, 0, len(records))
	for _, rec := range records {
		if rec.PopulatedCount() <= 1 {
			continue
		}
		rows = append(rows, NormalizeRecord(rec))
	}
	return rows
}

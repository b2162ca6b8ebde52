package domain

// SeriesPoint is one entry of a grouped-sum series: a categorical label and
// the metric accumulated for it. Series are sorted descending by value.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// StateMetric is one entry of the geographic view: a 2-letter state code with
// sales and profit accumulated in parallel.
type StateMetric struct {
	Code   string  `json:"code"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

// MonthlySeries carries the monthly time buckets as three parallel sequences
// in ascending chronological order. Months are "YYYY-MM" keys with a
// zero-padded month.
type MonthlySeries struct {
	Months []string  `json:"months"`
	Sales  []float64 `json:"sales"`
	Profit []float64 `json:"profit"`
}

// ScatterPoint is one profit-vs-base-margin pair projected from a single
// filtered row. Category is carried through for color coding only.
type ScatterPoint struct {
	BaseMargin float64 `json:"base_margin"`
	Profit     float64 `json:"profit"`
	Category   string  `json:"category"`
}

// KPISet holds the scalar indicators computed over the filtered rows.
type KPISet struct {
	TotalSales        float64 `json:"total_sales"`
	TotalProfit       float64 `json:"total_profit"`
	OrderCount        int     `json:"order_count"`
	Margin            float64 `json:"margin"`
	AvgDiscount       float64 `json:"avg_discount"`
	AvgShipDays       float64 `json:"avg_ship_days"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// Insight is one ranked highlight: the top entry of a grouped sum, surfaced
// with the dimension and metric it was ranked by.
type Insight struct {
	Dimension string  `json:"dimension"`
	Metric    string  `json:"metric"`
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
}

// FilterOptions is the read surface for building filter controls: the
// distinct sorted values per categorical field over the full (unfiltered)
// dataset, plus the min/max order-date year used as default bounds.
type FilterOptions struct {
	Regions    []string `json:"regions"`
	Segments   []string `json:"segments"`
	Categories []string `json:"categories"`
	States     []string `json:"states"`
	ShipModes  []string `json:"ship_modes"`
	MinYear    int      `json:"min_year"`
	MaxYear    int      `json:"max_year"`
}

// Dashboard bundles every aggregate view for one filter evaluation.
type Dashboard struct {
	KPIs                KPISet         `json:"kpis"`
	SalesBySegment      []SeriesPoint  `json:"sales_by_segment"`
	SalesByCategory     []SeriesPoint  `json:"sales_by_category"`
	SalesByRegion       []SeriesPoint  `json:"sales_by_region"`
	SalesByContainer    []SeriesPoint  `json:"sales_by_container"`
	ProfitBySubCategory []SeriesPoint  `json:"profit_by_sub_category"`
	SalesByState        []StateMetric  `json:"sales_by_state"`
	Monthly             MonthlySeries  `json:"monthly"`
	Scatter             []ScatterPoint `json:"scatter"`
	Insights            []Insight      `json:"insights"`
	FilteredRows        int            `json:"filtered_rows"`
	TotalRows           int            `json:"total_rows"`
}

package domain

// FilterDimension names one of the categorical selectors a filter can
// constrain. The same names are used on the select-label reverse channel.
type FilterDimension string

const (
	DimensionRegion   FilterDimension = "region"
	DimensionSegment  FilterDimension = "segment"
	DimensionCategory FilterDimension = "category"
	DimensionState    FilterDimension = "state"
	DimensionShipMode FilterDimension = "ship_mode"
)

// FilterState holds the current set of constraints applied before
// aggregation. An empty selector means "no constraint". The year range is
// inclusive on both sides; callers may supply the bounds in either order and
// must read them through YearBounds, which normalizes min/max.
//
// FilterState is a plain value: the engine treats it as immutable per
// evaluation, and mutation happens only through the service's setters.
type FilterState struct {
	Region   string `json:"region,omitempty"`
	Segment  string `json:"segment,omitempty"`
	Category string `json:"category,omitempty"`
	State    string `json:"state,omitempty"`
	ShipMode string `json:"ship_mode,omitempty"`
	YearFrom int    `json:"year_from"`
	YearTo   int    `json:"year_to"`
}

// YearBounds returns the inclusive year range in normalized order.
func (f FilterState) YearBounds() (int, int) {
	if f.YearFrom > f.YearTo {
		return f.YearTo, f.YearFrom
	}
	return f.YearFrom, f.YearTo
}

// Selector returns the value of the named categorical selector. Unknown
// dimensions report false.
func (f FilterState) Selector(dim FilterDimension) (string, bool) {
	switch dim {
	case DimensionRegion:
		return f.Region, true
	case DimensionSegment:
		return f.Segment, true
	case DimensionCategory:
		return f.Category, true
	case DimensionState:
		return f.State, true
	case DimensionShipMode:
		return f.ShipMode, true
	}
	return "", false
}

// WithSelector returns a copy of the state with the named selector set to
// value. Unknown dimensions return the state unchanged and false.
func (f FilterState) WithSelector(dim FilterDimension, value string) (FilterState, bool) {
	switch dim {
	case DimensionRegion:
		f.Region = value
	case DimensionSegment:
		f.Segment = value
	case DimensionCategory:
		f.Category = value
	case DimensionState:
		f.State = value
	case DimensionShipMode:
		f.ShipMode = value
	default:
		return f, false
	}
	return f, true
}

// Package analytics computes every derived view of the dataset: the filter
// predicate, grouped sums, the monthly time series, scalar KPIs, ranked
// insights, scatter projections and the geographic rollup.
//
// All functions are pure: they take the row collection and return fresh
// values. A filter change means full recomputation; there is no incremental
// or cached path. Recomputation is O(rows) per view, which is fine at
// single-machine in-memory scale.
package analytics

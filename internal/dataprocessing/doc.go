// Package dataprocessing turns loosely-typed tabular input into canonical
// rows. It owns the three ingestion stages:
//
//  1. Field resolution: locating semantically-named fields under
//     inconsistent headers via ordered alias lists (exact match first, then
//     case-insensitive).
//  2. Value coercion: best-effort conversion of raw text to numbers and
//     calendar dates with defined fallback rules. Coercion never fails; it
//     degrades to 0 for numbers and nil for dates.
//  3. Normalization: assembling one immutable domain.Row per record with
//     the default substitution policy applied.
//
// Input arrives as CSV or XLSX (first sheet) from a file path or HTTP URL.
// Records with at most one populated cell are discarded at the boundary.
//
// The date-layout heuristic in ParseDate is intentionally lossy and must not
// be "improved": downstream datasets depend on its exact disambiguation.
package dataprocessing

package dataprocessing

import (
	"strings"
)

// RawRecord is one loosely-typed record from the external parser: a set of
// key→text pairs whose keys are not guaranteed to match any canonical field
// name. Key order is preserved from the source header so that resolution is
// deterministic when several keys normalize to the same name.
type RawRecord struct {
	keys   []string
	values map[string]string
}

// NewRawRecord builds a record from parallel header/value slices. Extra
// values beyond the header are dropped; missing ones read as empty.
func NewRawRecord(keys, values []string) RawRecord {
	rec := RawRecord{
		keys:   make([]string, 0, len(keys)),
		values: make(map[string]string, len(keys)),
	}
	for i, k := range keys {
		if _, dup := rec.values[k]; dup {
			continue
		}
		rec.keys = append(rec.keys, k)
		if i < len(values) {
			rec.values[k] = values[i]
		} else {
			rec.values[k] = ""
		}
	}
	return rec
}

// Get returns the raw value for an exact key.
func (r RawRecord) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the record's keys in source order.
func (r RawRecord) Keys() []string {
	return r.keys
}

// PopulatedCount reports how many values are non-empty after trimming.
// Records with at most one populated cell are discarded at the ingestion
// boundary before they reach normalization.
func (r RawRecord) PopulatedCount() int {
	n := 0
	for _, k := range r.keys {
		if strings.TrimSpace(r.values[k]) != "" {
			n++
		}
	}
	return n
}

// ResolveField locates the value of a semantically-named field under an
// inconsistent header. Aliases are tried most-preferred first, in two passes:
// an exact key match, then a case-insensitive match with surrounding
// whitespace ignored on both key and alias. A value counts as found only if
// it is non-empty after trimming; the trimmed value is returned. Absence is a
// normal outcome and yields the empty string, never an error.
func ResolveField(rec RawRecord, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := rec.Get(alias); ok {
			if t := strings.TrimSpace(v); t != "" {
				return t
			}
		}
	}
	for _, alias := range aliases {
		want := strings.ToLower(strings.TrimSpace(alias))
		for _, key := range rec.Keys() {
			if strings.ToLower(strings.TrimSpace(key)) != want {
				continue
			}
			v, _ := rec.Get(key)
			if t := strings.TrimSpace(v); t != "" {
				return t
			}
		}
	}
	return ""
}

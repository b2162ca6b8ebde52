package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full name", "California", "CA"},
		{"lowercase name", "california", "CA"},
		{"uppercase name", "TEXAS", "TX"},
		{"district of columbia", "District of Columbia", "DC"},
		{"two letter passes through", "NY", "NY"},
		{"two letter lowercased", "ny", "NY"},
		{"unrecognized two letter still passes", "ZZ", "ZZ"},
		{"padded name", "  Ohio  ", "OH"},
		{"unknown name", "Atlantis", ""},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateCode(tt.in))
		})
	}
}

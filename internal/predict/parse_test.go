package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"age with label and unit", "Age: 42.5 years", 42.5},
		{"bare integer", "7", 7.0},
		{"decimal", "63.2", 63.2},
		{"number with trailing text", "25 years old", 25.0},
		{"first of several numbers", "between 40 and 50", 40.0},
		{"leading minus is not captured", "-5", 5.0},
		{"trailing dot", "31.", 31.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAge(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAgeNoNumber(t *testing.T) {
	for _, raw := range []string{"no digits here", "", "unknown age"} {
		_, err := ParseAge(raw)
		assert.ErrorIs(t, err, ErrNoAgeInResponse, "raw=%q", raw)
	}
}

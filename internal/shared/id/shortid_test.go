package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		wantLength int
	}{
		{name: "default length for zero", length: 0, wantLength: DefaultLength},
		{name: "default length for negative", length: -5, wantLength: DefaultLength},
		{name: "explicit length", length: 8, wantLength: 8},
		{name: "long id", length: 32, wantLength: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.length)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLength)
			for _, c := range got {
				assert.Contains(t, alphabet, string(c))
			}
		})
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := MustGenerate(DefaultLength)
		require.False(t, seen[id], "duplicate id generated: %s", id)
		seen[id] = true
	}
}

func TestPrefixedIDs(t *testing.T) {
	planSID := NewPlanSID()
	assert.True(t, strings.HasPrefix(planSID, "plan_"))

	orderSID := NewOrderSID()
	assert.True(t, strings.HasPrefix(orderSID, "ord_"))

	intentID := NewCheckoutIntentID()
	assert.True(t, strings.HasPrefix(intentID, "ci_"))

	prefix, shortID, err := ParsePrefixedID(orderSID)
	require.NoError(t, err)
	assert.Equal(t, "ord", prefix)
	assert.Len(t, shortID, DefaultLength)

	require.NoError(t, ValidatePrefix(orderSID, PrefixOrder))
	assert.Error(t, ValidatePrefix(orderSID, PrefixPlan))
}

func TestParsePrefixedIDInvalid(t *testing.T) {
	_, _, err := ParsePrefixedID("noprefix")
	assert.Error(t, err)
}

// internal/generator/noise_test.go
package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows(n int) [][]string {
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []string{string(rune('a' + i)), "x", "y"})
	}
	return rows
}

func TestApplyFileNoise_DuplicateAppend(t *testing.T) {
	policy := NoisePolicy{DuplicateRate: 1.0}
	rows := sampleRows(5)

	out, injected := policy.ApplyFileNoise(EntityApplications, rows, NewRand(3))

	require.Len(t, out, 6)
	assert.Equal(t, []string{DefectDuplicate}, injected)
	assert.Contains(t, out[:5], out[5], "appended row must be a verbatim copy")
}

func TestApplyFileNoise_DuplicateSkippedWhenEmpty(t *testing.T) {
	policy := NoisePolicy{DuplicateRate: 1.0}

	out, injected := policy.ApplyFileNoise(EntityApplications, nil, NewRand(3))
	assert.Empty(t, out)
	assert.Empty(t, injected)
}

func TestApplyFileNoise_MalformedAppend(t *testing.T) {
	tests := []struct {
		entity    string
		headers   []string
		firstCell string
	}{
		{EntityMerchants, MerchantHeaders, "not-a-uuid"},
		{EntityApplications, ApplicationHeaders, "bad-app"},
		{EntityDisbursements, DisbursementHeaders, "bad-disb"},
		{EntityPayments, PaymentHeaders, "bad-pay"},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			policy := NoisePolicy{InvalidRate: 1.0}
			rows := sampleRows(3)

			out, injected := policy.ApplyFileNoise(tt.entity, rows, NewRand(5))

			require.Len(t, out, 4)
			assert.Equal(t, []string{DefectInvalid}, injected)

			bad := out[3]
			// Wrong field count is avoided; the values are what's broken.
			assert.Len(t, bad, len(tt.headers))
			assert.Equal(t, tt.firstCell, bad[0])
		})
	}
}

func TestApplyFileNoise_ZeroRates(t *testing.T) {
	policy := NoisePolicy{}
	rows := sampleRows(4)

	out, injected := policy.ApplyFileNoise(EntityPayments, rows, NewRand(7))
	assert.Len(t, out, 4)
	assert.Empty(t, injected)
}

func TestMaybeBreakRef(t *testing.T) {
	rng := NewRand(9)

	keep := NoisePolicy{BrokenRefRate: 0}
	id, broken := keep.MaybeBreakRef("real-id", rng)
	assert.Equal(t, "real-id", id)
	assert.False(t, broken)

	swap := NoisePolicy{BrokenRefRate: 1.0}
	for i := 0; i < 100; i++ {
		id, broken = swap.MaybeBreakRef("real-id", rng)
		assert.NotEqual(t, "real-id", id)
		assert.True(t, broken)
	}
}

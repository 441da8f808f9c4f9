// internal/generator/pool_test.go
package generator

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStartDate() time.Time {
	return time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
}

func TestBuildMerchantPool(t *testing.T) {
	start := testStartDate()
	pool := BuildMerchantPool(40, start, NewRand(42))

	require.Len(t, pool, 40)

	seen := map[string]bool{}
	for i, m := range pool {
		assert.False(t, seen[m.ID], "merchant id repeated")
		seen[m.ID] = true

		assert.Equal(t, fmt.Sprintf("Merchant %04d", i), m.BusinessName)
		assert.Contains(t, industryCodes, m.IndustryCode)
		assert.Contains(t, stateCodes, m.StateCode)
		assert.True(t, m.AnnualRevenue.GreaterThanOrEqual(decimal.NewFromInt(49_999)))
		assert.True(t, m.AnnualRevenue.LessThanOrEqual(decimal.NewFromInt(5_000_001)))
		assert.GreaterOrEqual(t, m.EmployeesCount, 1)
		assert.LessOrEqual(t, m.EmployeesCount, 250)
		assert.GreaterOrEqual(t, m.RiskScore, 0.0)
		assert.LessOrEqual(t, m.RiskScore, 1.0)

		// Onboarding always predates the first batch by 30-900 days.
		daysBefore := int(start.Sub(m.OnboardingDate).Hours() / 24)
		assert.GreaterOrEqual(t, daysBefore, 30)
		assert.LessOrEqual(t, daysBefore, 900)
	}
}

func TestBuildMerchantPool_Empty(t *testing.T) {
	pool := BuildMerchantPool(0, testStartDate(), NewRand(42))
	assert.Empty(t, pool)
}

func TestMutate_PerturbsExactlyOneField(t *testing.T) {
	rng := NewRand(7)
	original := Merchant{
		ID:             "m-1",
		BusinessName:   "Merchant 0001",
		IndustryCode:   "42310",
		StateCode:      "CA",
		AnnualRevenue:  decimal.NewFromInt(100_000),
		EmployeesCount: 12,
		RiskScore:      0.50,
		OnboardingDate: testStartDate().AddDate(0, 0, -100),
	}

	var riskChanged, revenueChanged int
	for i := 0; i < 200; i++ {
		mutated := Mutate(original, rng)

		// Identity and static attributes never move.
		assert.Equal(t, original.ID, mutated.ID)
		assert.Equal(t, original.BusinessName, mutated.BusinessName)
		assert.Equal(t, original.IndustryCode, mutated.IndustryCode)
		assert.Equal(t, original.StateCode, mutated.StateCode)
		assert.Equal(t, original.EmployeesCount, mutated.EmployeesCount)
		assert.Equal(t, original.OnboardingDate, mutated.OnboardingDate)

		riskMoved := mutated.RiskScore != original.RiskScore
		revenueMoved := !mutated.AnnualRevenue.Equal(original.AnnualRevenue)
		require.True(t, riskMoved != revenueMoved, "exactly one of risk/revenue must change")
		if riskMoved {
			riskChanged++
			assert.InDelta(t, original.RiskScore, mutated.RiskScore, 0.10)
		} else {
			revenueChanged++
		}
	}
	assert.Positive(t, riskChanged)
	assert.Positive(t, revenueChanged)
}

func TestMutate_IsPure(t *testing.T) {
	rng := NewRand(9)
	original := Merchant{
		ID:            "m-2",
		AnnualRevenue: decimal.NewFromInt(75_000),
		RiskScore:     0.30,
	}
	before := original

	for i := 0; i < 50; i++ {
		Mutate(original, rng)
	}
	assert.Equal(t, before.RiskScore, original.RiskScore)
	assert.True(t, before.AnnualRevenue.Equal(original.AnnualRevenue))
}

func TestMutate_Bounds(t *testing.T) {
	rng := NewRand(21)

	// Chain mutations from the edges; drift must never escape the ranges.
	m := Merchant{ID: "m-3", AnnualRevenue: decimal.NewFromInt(2), RiskScore: 0.97}
	for i := 0; i < 500; i++ {
		m = Mutate(m, rng)
		assert.GreaterOrEqual(t, m.RiskScore, 0.0)
		assert.LessOrEqual(t, m.RiskScore, 1.0)
		assert.True(t, m.AnnualRevenue.GreaterThanOrEqual(decimalOne),
			"revenue fell below floor: %s", m.AnnualRevenue)
	}
}

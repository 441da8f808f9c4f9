// internal/generator/pool.go
package generator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

// BuildMerchantPool produces the fixed set of merchant master records. Every
// onboarding date lands 30-900 days before the first batch date.
func BuildMerchantPool(count int, startDate time.Time, rng *Rand) []Merchant {
	pool := make([]Merchant, 0, count)
	for i := 0; i < count; i++ {
		m := Merchant{
			ID:             rng.UUID(),
			BusinessName:   fmt.Sprintf("Merchant %04d", i),
			IndustryCode:   Pick(rng, industryCodes),
			StateCode:      Pick(rng, stateCodes),
			AnnualRevenue:  decimal.NewFromFloat(rng.Float(50_000, 5_000_000)).Round(2),
			EmployeesCount: rng.Int(1, 250),
			RiskScore:      clamp(rng.Float(0, 1), 0, 1),
			OnboardingDate: startDate.AddDate(0, 0, -rng.Int(30, 900)),
		}
		pool = append(pool, m)
	}
	return pool
}

// Mutate returns a copy of m with exactly one of risk_score or
// annual_revenue perturbed. Pure transform: m is untouched.
func Mutate(m Merchant, rng *Rand) Merchant {
	out := m
	if rng.Chance(0.5) {
		out.RiskScore = clamp(m.RiskScore+rng.Float(-0.10, 0.10), 0, 1)
	} else {
		factor := decimal.NewFromFloat(rng.Float(0.95, 1.15))
		revenue := m.AnnualRevenue.Mul(factor).Round(2)
		if revenue.LessThan(decimalOne) {
			revenue = decimalOne
		}
		out.AnnualRevenue = revenue
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// internal/generator/noise.go
package generator

// Defect classes, used as metric labels.
const (
	DefectDuplicate = "duplicate"
	DefectInvalid   = "invalid"
	DefectBrokenRef = "broken_ref"
)

// NoisePolicy centralizes the injected defect taxonomy: verbatim duplicate
// rows, syntactically malformed rows, and broken foreign-key references.
// These are designed artifacts of the output, not generator faults.
type NoisePolicy struct {
	DuplicateRate float64
	InvalidRate   float64
	BrokenRefRate float64
}

// ApplyFileNoise runs the per-file injection pass on a fully generated
// row-set: at most one duplicate append (an already-emitted row repeated
// byte-identically) followed by at most one malformed append. Returns the
// extended row-set and the defect classes injected.
//
// The duplicate here is a distinct defect class from the carry-state
// resurfacing mechanism: that one re-emits an id with different content on a
// later day, this one repeats a row verbatim within a single file.
func (p NoisePolicy) ApplyFileNoise(entity string, rows [][]string, rng *Rand) ([][]string, []string) {
	var injected []string

	if len(rows) > 0 && rng.Chance(p.DuplicateRate) {
		rows = append(rows, rows[rng.Intn(len(rows))])
		injected = append(injected, DefectDuplicate)
	}
	if rng.Chance(p.InvalidRate) {
		rows = append(rows, malformedRow(entity, rng))
		injected = append(injected, DefectInvalid)
	}
	return rows, injected
}

// MaybeBreakRef swaps a referencing id for a freshly generated one that
// exists in no file, at the configured rate. The never-arrived upstream
// record is the point: the fake id must not collide with a real one.
func (p NoisePolicy) MaybeBreakRef(id string, rng *Rand) (string, bool) {
	if rng.Chance(p.BrokenRefRate) {
		return rng.UUID(), true
	}
	return id, false
}

// malformedRow keeps the field count of its entity but violates the type,
// range, or format expectations of every interesting column.
func malformedRow(entity string, rng *Rand) []string {
	switch entity {
	case EntityMerchants:
		return []string{"not-a-uuid", "Bad Merchant", "ABCDE", "C", "-1", "x", "1.50", "not-a-date"}
	case EntityApplications:
		return []string{"bad-app", "", "not-a-date", "-5", "OTHER", "UNKNOWN", "999", "not-a-ts"}
	case EntityDisbursements:
		return []string{"bad-disb", rng.UUID(), rng.UUID(), "0", "not-a-date", "-0.1", "0", "YEARLY"}
	case EntityPayments:
		return []string{"bad-pay", rng.UUID(), "", "not-a-date", "-1", "CASH", "MAYBE", "x", "not-a-ts"}
	}
	return nil
}

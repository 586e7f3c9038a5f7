package pricing

import "math"

// IsDeductionEligible reports whether both the property and the customer
// qualify for the labor deduction.
func IsDeductionEligible(in QuoteInput) bool {
	return in.Deduction.PropertyEligible && in.Deduction.CustomerEligible
}

// DeductionCap returns the maximum labor deduction for one or two claimants.
func DeductionCap(shared bool, t *Table) float64 {
	if shared {
		return t.Tax.CapShared
	}
	return t.Tax.CapSingle
}

// Deductions returns the material deduction and the capped labor deduction
// for subtotal. Both are zero when the input is not eligible.
func Deductions(in QuoteInput, subtotal float64, t *Table) (material, labor float64) {
	if !IsDeductionEligible(in) || subtotal <= 0 {
		return 0, 0
	}

	percent := math.Min(math.Max(in.Deduction.MaterialPercent, 0), 100)
	material = subtotal * percent / 100
	labor = (subtotal - material) * t.Tax.DeductionRate
	return material, math.Min(labor, DeductionCap(in.Deduction.Shared, t))
}

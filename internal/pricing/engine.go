package pricing

import (
	"strconv"
	"strings"
)

// PriceBreakdown contains every line item and roll-up of a quote. Discounts
// and deductions are reported as positive amounts.
type PriceBreakdown struct {
	FloorFee             float64 `json:"floorFee"`
	AccessFee            float64 `json:"accessFee"`
	WindowBase           float64 `json:"windowBase"`
	WindowTypeAdjustment float64 `json:"windowTypeAdjustment"`
	GlazedBalcony        float64 `json:"glazedBalcony"`
	BasementWindows      float64 `json:"basementWindows"`
	InteriorCleaning     float64 `json:"interiorCleaning"`
	BaseCost             float64 `json:"baseCost"`

	UrgencySurcharge   float64 `json:"urgencySurcharge"`
	OccupancySurcharge float64 `json:"occupancySurcharge"`
	WarrantySurcharge  float64 `json:"warrantySurcharge"`
	Travel             float64 `json:"travel"`
	RegularDiscount    float64 `json:"regularDiscount"`

	Cleaning CleaningBreakdown `json:"cleaning"`

	SubtotalExclVAT float64 `json:"subtotalExclVat"`
	VAT             float64 `json:"vat"`
	SubtotalInclVAT float64 `json:"subtotalInclVat"`

	Eligible          bool    `json:"eligible"`
	MaterialDeduction float64 `json:"materialDeduction"`
	LaborDeduction    float64 `json:"laborDeduction"`
	FinalTotal        float64 `json:"finalTotal"`
}

// ComputeQuote prices a quote input against t. It never fails: unknown or
// empty selections contribute nothing.
func ComputeQuote(in QuoteInput, t *Table) PriceBreakdown {
	var b PriceBreakdown
	w := t.Windows

	count := max(in.Windows.Count, 0)
	b.FloorFee = w.Floors[floorKey(in.Property.Floors, w.Floors)]
	b.AccessFee = w.Access[in.Property.Access]
	b.WindowBase = WindowBaseCost(count, t)
	for _, typ := range UniqueStrings(in.Windows.Types) {
		b.WindowTypeAdjustment += w.TypeAdjustments[typ] * float64(count)
	}
	if in.Windows.GlazedBalcony {
		b.GlazedBalcony = w.GlazedBalcony
	}
	b.BasementWindows = BasementCost(in.Windows.Basement, t)
	if in.Windows.Interior {
		b.InteriorCleaning = w.InteriorPerWindow * float64(count)
	}
	b.BaseCost = b.FloorFee + b.AccessFee + b.WindowBase + b.WindowTypeAdjustment +
		b.GlazedBalcony + b.BasementWindows + b.InteriorCleaning

	running := b.BaseCost

	// Surcharges compound on the running subtotal.
	if running > 0 {
		b.UrgencySurcharge = running * t.Surcharges.Urgency[in.Project.Urgency]
		running += b.UrgencySurcharge
		b.OccupancySurcharge = running * t.Surcharges.Occupancy[in.Project.Occupancy]
		running += b.OccupancySurcharge
		b.WarrantySurcharge = running * t.Surcharges.Warranty[in.Project.Warranty]
		running += b.WarrantySurcharge
	}

	if in.Project.TravelKm > 0 {
		b.Travel = in.Project.TravelKm * t.TravelPerKm
		running += b.Travel
	}

	if rate := t.RegularDiscounts[in.Project.Regular]; running > 0 && rate < 0 {
		b.RegularDiscount = -running * rate
		running -= b.RegularDiscount
	}

	b.Cleaning = CleaningQuote(in.Cleaning, t)
	running += b.Cleaning.Total

	b.SubtotalExclVAT = running
	b.VAT = running * t.Tax.VATRate
	b.SubtotalInclVAT = b.SubtotalExclVAT + b.VAT

	b.Eligible = IsDeductionEligible(in)
	b.MaterialDeduction, b.LaborDeduction = Deductions(in, b.SubtotalExclVAT, t)
	b.FinalTotal = b.SubtotalInclVAT - b.LaborDeduction

	return b
}

// WindowBaseCost returns the bracket price for n windows. Above the last
// bracket every window is charged the overflow rate.
func WindowBaseCost(n int, t *Table) float64 {
	if n <= 0 {
		return 0
	}
	if price, ok := bracketPrice(n, t.Windows.CountBrackets); ok {
		return price
	}
	return float64(n) * t.Windows.OverflowPerWindow
}

// BasementCost returns the bucket price for n basement windows.
func BasementCost(n int, t *Table) float64 {
	if n <= 0 {
		return 0
	}
	if price, ok := bracketPrice(n, t.Windows.BasementBrackets); ok {
		return price
	}
	return t.Windows.BasementOverflow
}

// floorKey maps a floor answer onto a row of floors. "N+" and anything
// above the highest numbered row use that row.
func floorKey(raw string, floors map[string]float64) string {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "+"))
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return ""
	}

	top := 0
	for key := range floors {
		if k, err := strconv.Atoi(key); err == nil && k > top {
			top = k
		}
	}
	if top > 0 && n > top {
		n = top
	}
	return strconv.Itoa(n)
}

// UniqueStrings drops empty and repeated values, keeping first-seen order.
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

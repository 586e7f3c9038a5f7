package pricing

import (
	"math"
	"reflect"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestComputeQuote_EndToEndWithoutModifiers(t *testing.T) {
	table := DefaultTable()
	in := QuoteInput{
		Property: Property{Floors: "2", Access: "Viss åtkomst med stege"},
		Windows:  Windows{Count: 15},
	}

	b := ComputeQuote(in, table)

	nearlyEqual(t, "floorFee", b.FloorFee, 200)
	nearlyEqual(t, "accessFee", b.AccessFee, 250)
	nearlyEqual(t, "windowBase", b.WindowBase, 760)
	nearlyEqual(t, "baseCost", b.BaseCost, 1210)
	nearlyEqual(t, "subtotalExclVat", b.SubtotalExclVAT, 1210)
	nearlyEqual(t, "vat", b.VAT, 302.5)
	nearlyEqual(t, "subtotalInclVat", b.SubtotalInclVAT, 1512.5)
	nearlyEqual(t, "laborDeduction", b.LaborDeduction, 0)
	nearlyEqual(t, "finalTotal", b.FinalTotal, 1512.5)
	if b.Eligible {
		t.Fatalf("expected quote without deduction flags to be ineligible")
	}
}

func TestComputeQuote_SurchargesCompound(t *testing.T) {
	table := DefaultTable()
	table.Windows.Floors["1"] = 1000

	b := ComputeQuote(QuoteInput{
		Property: Property{Floors: "1"},
		Project:  Project{Urgency: "Akut", Occupancy: "Bebott"},
	}, table)

	nearlyEqual(t, "urgencySurcharge", b.UrgencySurcharge, 250)
	nearlyEqual(t, "occupancySurcharge", b.OccupancySurcharge, 187.5)
	nearlyEqual(t, "subtotalExclVat", b.SubtotalExclVAT, 1437.5)
}

func TestComputeQuote_WarrantyTravelAndDiscountOrder(t *testing.T) {
	table := DefaultTable()
	table.Windows.Floors["1"] = 1000

	b := ComputeQuote(QuoteInput{
		Property: Property{Floors: "1"},
		Project: Project{
			Urgency:  "Helgtjänst",
			Warranty: "5 år",
			TravelKm: 10,
			Regular:  "Var 4:e vecka",
		},
	}, table)

	// 1000 * 1.30 * 1.12 = 1456; + 65 travel = 1521; -20% = 1216.8
	nearlyEqual(t, "urgencySurcharge", b.UrgencySurcharge, 300)
	nearlyEqual(t, "warrantySurcharge", b.WarrantySurcharge, 156)
	nearlyEqual(t, "travel", b.Travel, 65)
	nearlyEqual(t, "regularDiscount", b.RegularDiscount, 304.2)
	nearlyEqual(t, "subtotalExclVat", b.SubtotalExclVAT, 1216.8)
}

func TestComputeQuote_TravelIsNotSurcharged(t *testing.T) {
	table := DefaultTable()

	b := ComputeQuote(QuoteInput{
		Project: Project{Urgency: "Akut", TravelKm: 20},
	}, table)

	nearlyEqual(t, "urgencySurcharge", b.UrgencySurcharge, 0)
	nearlyEqual(t, "subtotalExclVat", b.SubtotalExclVAT, 130)
}

func TestComputeQuote_WindowExtras(t *testing.T) {
	table := DefaultTable()

	b := ComputeQuote(QuoteInput{
		Windows: Windows{
			Count:         12,
			Types:         []string{"spröjs", "fasta fönster", "spröjs", "okänd"},
			Basement:      7,
			GlazedBalcony: true,
			Interior:      true,
		},
	}, table)

	nearlyEqual(t, "windowBase", b.WindowBase, 760)
	nearlyEqual(t, "windowTypeAdjustment", b.WindowTypeAdjustment, (12-5)*12)
	nearlyEqual(t, "glazedBalcony", b.GlazedBalcony, 500)
	nearlyEqual(t, "basementWindows", b.BasementWindows, 220)
	nearlyEqual(t, "interiorCleaning", b.InteriorCleaning, 35*12)
	nearlyEqual(t, "baseCost", b.BaseCost, 760+84+500+220+420)
}

func TestComputeQuote_NonPositiveWindowCountHasNoWindowCosts(t *testing.T) {
	table := DefaultTable()

	for _, n := range []int{0, -3} {
		b := ComputeQuote(QuoteInput{
			Windows: Windows{Count: n, Types: []string{"spröjs"}, Interior: true},
		}, table)
		nearlyEqual(t, "windowBase", b.WindowBase, 0)
		nearlyEqual(t, "windowTypeAdjustment", b.WindowTypeAdjustment, 0)
		nearlyEqual(t, "interiorCleaning", b.InteriorCleaning, 0)
		nearlyEqual(t, "finalTotal", b.FinalTotal, 0)
	}
}

func TestComputeQuote_UnknownSelectionsContributeNothing(t *testing.T) {
	table := DefaultTable()

	b := ComputeQuote(QuoteInput{
		Property: Property{Floors: "tio", Access: "Helikopter"},
		Project:  Project{Urgency: "Igår", Occupancy: "Kanske", Warranty: "100 år", Regular: "Ibland"},
		Cleaning: CleaningSelection{HomeType: "slott", Frequency: "dagligen", Services: []string{"trädgård"}},
	}, table)

	if b != (PriceBreakdown{}) {
		t.Fatalf("expected zero breakdown, got %+v", b)
	}
}

func TestComputeQuote_FloorsFourPlus(t *testing.T) {
	table := DefaultTable()

	for _, floors := range []string{"4+", "4", "7"} {
		b := ComputeQuote(QuoteInput{Property: Property{Floors: floors}}, table)
		nearlyEqual(t, "floorFee("+floors+")", b.FloorFee, 600)
	}
}

func TestComputeQuote_CleaningLineAddedBeforeTax(t *testing.T) {
	table := DefaultTable()

	b := ComputeQuote(QuoteInput{
		Property: Property{Floors: "2", Access: "Viss åtkomst med stege"},
		Windows:  Windows{Count: 15},
		Project:  Project{Urgency: "Akut"},
		Cleaning: CleaningSelection{HomeType: "1a_30kvm", Frequency: "varje_vecka"},
	}, table)

	// 1210 * 1.25 = 1512.5; cleaning 450 is not surcharged.
	nearlyEqual(t, "cleaningTotal", b.Cleaning.Total, 450)
	nearlyEqual(t, "subtotalExclVat", b.SubtotalExclVAT, 1962.5)
	nearlyEqual(t, "vat", b.VAT, 490.625)
}

func TestComputeQuote_IsIdempotent(t *testing.T) {
	table := DefaultTable()
	in := QuoteInput{
		Property:  Property{Floors: "3", Access: "Kräver lift eller annan specialutrustning"},
		Windows:   Windows{Count: 63, Types: []string{"öppningsbara"}, Basement: 12},
		Project:   Project{Urgency: "Akut", Occupancy: "Bebott", Warranty: "5 år", TravelKm: 42, Regular: "Var 8:e vecka"},
		Cleaning:  CleaningSelection{HomeType: "3a_70kvm", Frequency: "varje_manad", Services: []string{"storstadning"}, Emergency: true},
		Deduction: Deduction{PropertyEligible: true, CustomerEligible: true, MaterialPercent: 10},
	}

	first := ComputeQuote(in, table)
	second := ComputeQuote(in, table)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(table, DefaultTable()) {
		t.Fatalf("expected table to be left unchanged")
	}
}

func TestWindowBaseCost_Brackets(t *testing.T) {
	table := DefaultTable()

	cases := []struct {
		name string
		n    int
		want float64
	}{
		{name: "zero", n: 0, want: 0},
		{name: "one", n: 1, want: 400},
		{name: "ten", n: 10, want: 400},
		{name: "eleven", n: 11, want: 760},
		{name: "twenty", n: 20, want: 760},
		{name: "twenty-one", n: 21, want: 1140},
		{name: "thirty", n: 30, want: 1140},
		{name: "thirty-one", n: 31, want: 1520},
		{name: "forty", n: 40, want: 1520},
		{name: "forty-one", n: 41, want: 1900},
		{name: "fifty", n: 50, want: 1900},
		{name: "fifty-one", n: 51, want: 51 * 38},
		{name: "hundred", n: 100, want: 3800},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nearlyEqual(t, "windowBaseCost", WindowBaseCost(tc.n, table), tc.want)
		})
	}
}

func TestWindowBaseCost_MonotonicAcrossBoundaries(t *testing.T) {
	table := DefaultTable()

	prev := WindowBaseCost(0, table)
	for n := 1; n <= 200; n++ {
		got := WindowBaseCost(n, table)
		if got < prev {
			t.Fatalf("windowBaseCost(%d) = %v is below windowBaseCost(%d) = %v", n, got, n-1, prev)
		}
		prev = got
	}
}

func TestBasementCost_Buckets(t *testing.T) {
	table := DefaultTable()

	cases := map[int]float64{0: 0, 1: 120, 5: 120, 6: 220, 10: 220, 11: 320, 40: 320}
	for n, want := range cases {
		nearlyEqual(t, "basementCost", BasementCost(n, table), want)
	}
}

func TestFloorKey(t *testing.T) {
	floors := DefaultTable().Windows.Floors
	cases := map[string]string{"1": "1", " 3 ": "3", "4+": "4", "9": "4", "": "", "0": "", "x": ""}
	for raw, want := range cases {
		if got := floorKey(raw, floors); got != want {
			t.Fatalf("floorKey(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestComputeQuote_TopFloorRowFollowsTable(t *testing.T) {
	table := DefaultTable()
	table.Windows.Floors["5"] = 900

	cases := map[string]float64{"4": 600, "5": 900, "5+": 900, "8": 900}
	for floors, want := range cases {
		b := ComputeQuote(QuoteInput{Property: Property{Floors: floors}}, table)
		nearlyEqual(t, "floorFee("+floors+")", b.FloorFee, want)
	}
}

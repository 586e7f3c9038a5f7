// Package document renders quotes as downloadable PDF and Excel files.
package document

import (
	"github.com/solidastad/anbud/internal/money"
	"github.com/solidastad/anbud/internal/pricing"
)

const companyName = "Solida Städ & Fönsterputs AB"

// Line is one labelled amount. Deductions render with a minus sign.
type Line struct {
	Label     string
	Amount    float64
	Deduction bool
}

// Text returns the display string for the amount.
func (l Line) Text() string {
	if l.Deduction {
		return money.FormatDeduction(l.Amount)
	}
	return money.FormatKrona(l.Amount)
}

// Document is everything a rendered quote shows.
type Document struct {
	Title         string
	Number        string
	Date          string
	Customer      pricing.Customer
	Lines         []Line
	Totals        []Line
	Note          string
	EstimatedTime string
	Description   string
}

// FromQuote lays out a computed quote. Zero-valued line items are omitted.
func FromQuote(number, date string, in pricing.QuoteInput, b pricing.PriceBreakdown, t *pricing.Table, description string) Document {
	items := []Line{
		{Label: "Våningar", Amount: b.FloorFee},
		{Label: "Åtkomst", Amount: b.AccessFee},
		{Label: "Fönsterputs grundpris", Amount: b.WindowBase},
		{Label: "Fönstertyper", Amount: b.WindowTypeAdjustment},
		{Label: "Inglasad balkong", Amount: b.GlazedBalcony},
		{Label: "Källarfönster", Amount: b.BasementWindows},
		{Label: "Invändig puts", Amount: b.InteriorCleaning},
		{Label: "Brådskande tillägg", Amount: b.UrgencySurcharge},
		{Label: "Bebott tillägg", Amount: b.OccupancySurcharge},
		{Label: "Garanti", Amount: b.WarrantySurcharge},
		{Label: "Resekostnad", Amount: b.Travel},
		{Label: "Rabatt regelbunden putsning", Amount: b.RegularDiscount, Deduction: true},
		{Label: "Städning grundpris", Amount: b.Cleaning.Base},
		{Label: "Städtjänster", Amount: b.Cleaning.Services},
		{Label: "Fönsterputs (städ)", Amount: b.Cleaning.WindowCleaning},
		{Label: "Akuttillägg", Amount: b.Cleaning.Emergency},
	}

	d := Document{
		Title:         "Anbud",
		Number:        number,
		Date:          date,
		Customer:      in.Customer,
		EstimatedTime: b.Cleaning.EstimatedTime,
		Description:   description,
	}
	for _, item := range items {
		if money.Round(item.Amount) != 0 {
			d.Lines = append(d.Lines, item)
		}
	}

	d.Totals = []Line{
		{Label: "Summa exkl. moms", Amount: b.SubtotalExclVAT},
		{Label: "Moms " + money.FormatPercent(t.Tax.VATRate), Amount: b.VAT},
		{Label: "Summa inkl. moms", Amount: b.SubtotalInclVAT},
	}
	if b.Eligible {
		d.Totals = append(d.Totals, Line{Label: "RUT-avdrag", Amount: b.LaborDeduction, Deduction: true})
		if b.MaterialDeduction > 0 {
			d.Note = "Materialkostnad " + money.FormatKrona(b.MaterialDeduction) + " ingår och ger inget avdrag."
		}
	}
	d.Totals = append(d.Totals, Line{Label: "Att betala", Amount: b.FinalTotal})
	return d
}

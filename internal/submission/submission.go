// Package submission assembles the payloads sent to the webhook relay.
package submission

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/solidastad/anbud/internal/form"
	"github.com/solidastad/anbud/internal/money"
	"github.com/solidastad/anbud/internal/pricing"
	"github.com/solidastad/anbud/internal/workorder"
)

const (
	TypeQuote     = "quote"
	TypeWorkOrder = "arbetsbeskrivning"

	additionalSource = "Solida Städ & Fönsterputs AB - Tilläggstjänst"
)

// Customer is the kundInfo object shared by quote and work-order payloads.
type Customer struct {
	Company             string `json:"företag"`
	Contact             string `json:"kontaktperson"`
	Email               string `json:"email"`
	Phone               string `json:"telefon"`
	Address             string `json:"adress"`
	PropertyDesignation string `json:"fastighetsbeteckning"`
	PostalCode          string `json:"postnummer"`
	City                string `json:"ort"`
}

// Service is one priced line in a quote payload.
type Service struct {
	Name      string  `json:"tjanst"`
	ServiceID string  `json:"serviceId"`
	Quantity  float64 `json:"antal"`
	Unit      string  `json:"enhet"`
	Price     float64 `json:"pris"`
	Total     float64 `json:"total"`
}

// Deduction echoes the deduction answers as the customer gave them.
type Deduction struct {
	PropertyEligible string `json:"fastighetBerättigad"`
	CustomerEligible string `json:"kundBerättigad"`
	Shared           string `json:"delatRUT"`
	MaterialPercent  string `json:"materialkostnad"`
}

// Totals holds display-formatted amounts.
type Totals struct {
	ExclVAT           string `json:"exklMoms"`
	InclVAT           string `json:"inklMoms"`
	LaborDeduction    string `json:"rotAvdrag"`
	MaterialDeduction string `json:"materialAvdrag"`
	Final             string `json:"slutsumma"`
}

// QuotePayload is sent when a quote is submitted.
type QuotePayload struct {
	Type        string    `json:"type"`
	Timestamp   string    `json:"timestamp"`
	QuoteNumber string    `json:"anbudsNummer"`
	QuoteDate   string    `json:"anbudsDatum"`
	Customer    Customer  `json:"kundInfo"`
	Services    []Service `json:"tjanster"`
	Deduction   Deduction `json:"rutAvdrag"`
	Totals      Totals    `json:"totaler"`
}

// WorkOrderPayload is sent when a work description is submitted.
type WorkOrderPayload struct {
	Type        string   `json:"type"`
	Timestamp   string   `json:"timestamp"`
	Date        string   `json:"arbetsbeskrivningsDatum"`
	Customer    Customer `json:"kundInfo"`
	Description string   `json:"projektBeskrivning"`
	Consent     bool     `json:"gdprConsent"`
}

// AdditionalCustomer is the reduced kundInfo of an additional service.
type AdditionalCustomer struct {
	Name    string `json:"namn"`
	Phone   string `json:"telefon"`
	Address string `json:"adress"`
}

// AdditionalServicePayload is sent when a signed additional service is
// submitted.
type AdditionalServicePayload struct {
	Customer           AdditionalCustomer `json:"kundInfo"`
	ServiceType        string             `json:"tilläggstyp"`
	Price              float64            `json:"pris"`
	Date               string             `json:"datum"`
	Comment            string             `json:"kommentar"`
	Signature          *string            `json:"signatur_base64"`
	SignatureTimestamp string             `json:"signatur_timestamp"`
	Signed             bool               `json:"signatur_tillagd"`
	SignatureImage     *string            `json:"signaturBild"`
	Timestamp          string             `json:"tidsstämpel"`
	Reference          string             `json:"ursprungligtAnbud"`
	Source             string             `json:"källa"`
}

// QuoteNumber returns the quote identifier for a submission made at now.
func QuoteNumber(now time.Time) string {
	return fmt.Sprintf("SM-%d", now.UnixMilli())
}

// BuildQuote assembles the quote payload from the form snapshot and its
// computed breakdown.
func BuildQuote(s form.State, in pricing.QuoteInput, b pricing.PriceBreakdown, t *pricing.Table, now time.Time) QuotePayload {
	answers := form.Deduction(s)
	return QuotePayload{
		Type:        TypeQuote,
		Timestamp:   timestamp(now),
		QuoteNumber: QuoteNumber(now),
		QuoteDate:   form.Text(s, form.FieldQuoteDate),
		Customer:    customerFrom(in.Customer),
		Services:    services(in.Cleaning, t),
		Deduction: Deduction{
			PropertyEligible: answers.Property,
			CustomerEligible: answers.Customer,
			Shared:           answers.Shared,
			MaterialPercent:  answers.Material,
		},
		Totals: Totals{
			ExclVAT:           money.FormatKrona(b.SubtotalExclVAT),
			InclVAT:           money.FormatKrona(b.SubtotalInclVAT),
			LaborDeduction:    money.FormatKrona(b.LaborDeduction),
			MaterialDeduction: money.FormatKrona(b.MaterialDeduction),
			Final:             money.FormatKrona(b.FinalTotal),
		},
	}
}

// BuildWorkOrder assembles the work-order payload. An empty description
// field falls back to generated.
func BuildWorkOrder(s form.State, generated string, now time.Time) WorkOrderPayload {
	description := form.Text(s, form.FieldWorkDescription)
	if description == "" {
		description = generated
	}
	return WorkOrderPayload{
		Type:      TypeWorkOrder,
		Timestamp: timestamp(now),
		Date:      form.Text(s, form.FieldWorkDate),
		Customer: Customer{
			Company:             form.Text(s, form.FieldWorkCompany),
			Contact:             form.Text(s, form.FieldWorkContact),
			Email:               form.Text(s, form.FieldWorkEmail),
			Phone:               form.Text(s, form.FieldWorkPhone),
			Address:             form.Text(s, form.FieldWorkAddress),
			PropertyDesignation: form.Text(s, form.FieldWorkPropertyDesignation),
			PostalCode:          form.Text(s, form.FieldWorkPostalCode),
			City:                form.Text(s, form.FieldWorkCity),
		},
		Description: description,
		Consent:     form.Checked(s, form.FieldWorkConsent),
	}
}

// BuildAdditionalService assembles the additional-service payload. A
// signature data URL is normalised before it is attached.
func BuildAdditionalService(s form.State, now time.Time) (AdditionalServicePayload, error) {
	name := form.Text(s, form.FieldExtraCompany)
	p := AdditionalServicePayload{
		Customer: AdditionalCustomer{
			Name:    name,
			Phone:   form.Text(s, form.FieldExtraContact),
			Address: form.Text(s, form.FieldExtraAddress),
		},
		ServiceType:        form.Text(s, form.FieldExtraType),
		Price:              form.Number(s, form.FieldExtraPrice),
		Date:               form.Text(s, form.FieldExtraDate),
		Comment:            form.Text(s, form.FieldExtraComment),
		SignatureTimestamp: timestamp(now),
		Timestamp:          timestamp(now),
		Reference:          AdditionalReference(name, now),
		Source:             additionalSource,
	}

	if raw := form.Text(s, form.FieldExtraSignature); raw != "" {
		sig, err := NormalizeSignature(raw)
		if err != nil {
			return AdditionalServicePayload{}, fmt.Errorf("normalize signature: %w", err)
		}
		p.Signature = &sig
		p.SignatureImage = &sig
		p.Signed = true
	}
	return p, nil
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

// AdditionalReference returns TILLAGG-<code>-<millis>, where code is the
// first six ASCII letters or digits of name in upper case.
func AdditionalReference(name string, now time.Time) string {
	code := strings.ToUpper(nonAlnum.ReplaceAllString(name, ""))
	if len(code) > 6 {
		code = code[:6]
	}
	if code == "" {
		code = "NONAME"
	}
	return fmt.Sprintf("TILLAGG-%s-%d", code, now.UnixMilli())
}

func customerFrom(c pricing.Customer) Customer {
	return Customer{
		Company:             c.Company,
		Contact:             c.Contact,
		Email:               c.Email,
		Phone:               c.Phone,
		Address:             c.Address,
		PropertyDesignation: c.PropertyDesignation,
		PostalCode:          c.PostalCode,
		City:                c.City,
	}
}

// services lists the selected cleaning services with their table prices.
func services(c pricing.CleaningSelection, t *pricing.Table) []Service {
	out := []Service{}
	for _, id := range pricing.UniqueStrings(c.Services) {
		name, ok := workorder.ServiceNames[id]
		if !ok {
			continue
		}
		var price float64
		if id == pricing.ServiceWindowCleaning {
			price = pricing.WindowCleaningPrice(c.Windows, t)
		} else {
			price = t.Cleaning.Services[id]
		}
		out = append(out, Service{
			Name:      name,
			ServiceID: id,
			Quantity:  1,
			Unit:      "st",
			Price:     price,
			Total:     price,
		})
	}
	return out
}

func timestamp(now time.Time) string {
	return now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

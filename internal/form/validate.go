package form

import (
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
)

const (
	msgEmail        = "Ange en giltig e-postadress"
	msgPostalCode   = "Ange ett giltigt postnummer (5 siffror)"
	msgWindowType   = "Välj minst en fönstertyp"
	msgConsent      = "Du måste godkänna behandling av personuppgifter"
	msgExtraType    = "Vänligen ange typ av tilläggstjänst"
	msgExtraPrice   = "Vänligen ange ett giltigt pris för tilläggstjänsten"
	msgExtraSigning = "Signatur krävs för att godkänna tilläggstjänsten"
)

// Errors maps field identifiers to user-facing messages.
type Errors map[string]string

// Fields returns the failing field identifiers in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func required(name string) validation.Rule {
	return validation.Required.Error(name + " är obligatorisk")
}

// ValidateQuote checks the quote form and returns every problem at once.
func ValidateQuote(s State) Errors {
	return collect(validation.Errors{
		FieldQuoteDate:    validation.Validate(Text(s, FieldQuoteDate), required("Anbudsdatum")),
		FieldCompany:      validation.Validate(Text(s, FieldCompany), required("Företag/Namn")),
		FieldEmail:        validation.Validate(Text(s, FieldEmail), required("E-post"), validation.Match(emailPattern).Error(msgEmail)),
		FieldPhone:        validation.Validate(Text(s, FieldPhone), required("Telefonnummer")),
		FieldAddress:      validation.Validate(Text(s, FieldAddress), required("Adress")),
		FieldPostalCode:   validation.Validate(Text(s, FieldPostalCode), required("Postnummer"), validation.Match(postalCodePattern).Error(msgPostalCode)),
		FieldCity:         validation.Validate(Text(s, FieldCity), required("Ort")),
		FieldFloors:       validation.Validate(Text(s, FieldFloors), required("Antal våningar")),
		FieldPropertyType: validation.Validate(Text(s, FieldPropertyType), required("Typ av fastighet")),
		FieldAccess:       validation.Validate(Text(s, FieldAccess), required("Fönstrens åtkomst")),
		FieldWindowCount:  validation.Validate(Text(s, FieldWindowCount), required("Antal fönster")),
		FieldWindowTypes:  validation.Validate(List(s, FieldWindowTypes), validation.Required.Error(msgWindowType)),
		FieldConsent:      validation.Validate(Checked(s, FieldConsent), validation.Required.Error(msgConsent)),
	})
}

// ValidateWorkOrder checks the work-order form.
func ValidateWorkOrder(s State) Errors {
	return collect(validation.Errors{
		FieldWorkDate:        validation.Validate(Text(s, FieldWorkDate), required("Datum")),
		FieldWorkCompany:     validation.Validate(Text(s, FieldWorkCompany), required("Företag/Namn")),
		FieldWorkEmail:       validation.Validate(Text(s, FieldWorkEmail), required("E-post"), validation.Match(emailPattern).Error(msgEmail)),
		FieldWorkPhone:       validation.Validate(Text(s, FieldWorkPhone), required("Telefonnummer")),
		FieldWorkAddress:     validation.Validate(Text(s, FieldWorkAddress), required("Adress")),
		FieldWorkPostalCode:  validation.Validate(Text(s, FieldWorkPostalCode), required("Postnummer"), validation.Match(postalCodePattern).Error(msgPostalCode)),
		FieldWorkCity:        validation.Validate(Text(s, FieldWorkCity), required("Ort")),
		FieldWorkDescription: validation.Validate(Text(s, FieldWorkDescription), required("Projektbeskrivning")),
		FieldWorkConsent:     validation.Validate(Checked(s, FieldWorkConsent), validation.Required.Error(msgConsent)),
	})
}

// ValidateAdditionalService checks the additional-service form.
func ValidateAdditionalService(s State) Errors {
	return collect(validation.Errors{
		FieldExtraType: validation.Validate(Text(s, FieldExtraType), validation.Required.Error(msgExtraType)),
		FieldExtraPrice: validation.Validate(Number(s, FieldExtraPrice),
			validation.Required.Error(msgExtraPrice),
			validation.Min(0.0).Exclusive().Error(msgExtraPrice),
		),
		FieldExtraSignature: validation.Validate(Text(s, FieldExtraSignature), validation.Required.Error(msgExtraSigning)),
		FieldExtraEmail:     validation.Validate(Text(s, FieldExtraEmail), validation.Match(emailPattern).Error(msgEmail)),
	})
}

func collect(errs validation.Errors) Errors {
	out := Errors{}
	for field, err := range errs {
		if err != nil {
			out[field] = err.Error()
		}
	}
	return out
}

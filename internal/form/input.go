package form

import (
	"strings"

	"github.com/solidastad/anbud/internal/pricing"
)

// QuoteInput builds a pricing snapshot from the quote form. Absent radio
// groups take the form's defaults.
func QuoteInput(s State) pricing.QuoteInput {
	regular := ""
	if picks := List(s, FieldRegular); len(picks) > 0 {
		regular = picks[0]
	}

	return pricing.QuoteInput{
		Property: pricing.Property{
			Floors: Text(s, FieldFloors),
			Access: Text(s, FieldAccess),
			Type:   Text(s, FieldPropertyType),
		},
		Windows: pricing.Windows{
			Count:         Count(s, FieldWindowCount),
			Types:         List(s, FieldWindowTypes),
			Basement:      Count(s, FieldBasementWindows),
			GlazedBalcony: Checked(s, FieldGlazedBalcony),
			Interior:      Checked(s, FieldInterior),
		},
		Project: pricing.Project{
			Urgency:   textOr(s, FieldUrgency, DefaultUrgency),
			Occupancy: textOr(s, FieldOccupancy, DefaultOccupancy),
			Warranty:  textOr(s, FieldWarranty, DefaultWarranty),
			TravelKm:  Number(s, FieldTravelKm),
			Regular:   regular,
		},
		Cleaning: pricing.CleaningSelection{
			HomeType:  Text(s, FieldHomeType),
			Frequency: Text(s, FieldFrequency),
			Services:  List(s, FieldServices),
			Emergency: Checked(s, FieldEmergency),
			Windows: pricing.WindowCleaningInput{
				PropertyType: Text(s, FieldWCProperty),
				WindowType:   Text(s, FieldWCWindowType),
				Opening:      Text(s, FieldWCOpening),
				Scope:        Text(s, FieldWCScope),
				Sides:        Text(s, FieldWCSides),
				Count:        Count(s, FieldWCCount),
				Mullions:     Checked(s, FieldWCMullions),
				NoMullions:   strings.EqualFold(Text(s, FieldWCMullions), "nej"),
				MullionType:  Text(s, FieldWCMullionType),
				Panes:        Count(s, FieldWCPanes),
				Frames:       Checked(s, FieldWCFrames),
				Ladder:       Checked(s, FieldWCLadder),
				Lift:         Checked(s, FieldWCLift),
			},
		},
		Deduction: pricing.Deduction{
			PropertyEligible: Text(s, FieldDeductionProperty) == PropertyEligibleValue,
			CustomerEligible: Text(s, FieldDeductionCustomer) == CustomerEligibleValue,
			Shared:           Checked(s, FieldDeductionShared),
			MaterialPercent:  Number(s, FieldMaterialPercent),
		},
		Customer: pricing.Customer{
			Company:             Text(s, FieldCompany),
			Contact:             Text(s, FieldContact),
			Email:               Text(s, FieldEmail),
			Phone:               Text(s, FieldPhone),
			Address:             Text(s, FieldAddress),
			PropertyDesignation: Text(s, FieldPropertyDesignation),
			PostalCode:          Text(s, FieldPostalCode),
			City:                Text(s, FieldCity),
		},
		Visit: pricing.Visit{
			PreferredDay:  Text(s, FieldPreferredDay),
			PreferredTime: Text(s, FieldPreferredTime),
			StartDate:     Text(s, FieldStartDate),
			AccessMethod:  Text(s, FieldAccessMethod),
			Pets:          Text(s, FieldPets),
			Allergies:     Text(s, FieldAllergies),
			Parking:       Text(s, FieldParking),
		},
	}
}

// DeductionAnswers holds the raw deduction answers as shown on the form.
type DeductionAnswers struct {
	Property string
	Customer string
	Shared   string
	Material string
}

// Deduction returns the deduction answers with the form's defaults applied.
func Deduction(s State) DeductionAnswers {
	return DeductionAnswers{
		Property: textOr(s, FieldDeductionProperty, DefaultPropertyAnswer),
		Customer: textOr(s, FieldDeductionCustomer, DefaultCustomerAnswer),
		Shared:   textOr(s, FieldDeductionShared, DefaultSharedAnswer),
		Material: textOr(s, FieldMaterialPercent, DefaultMaterial),
	}
}

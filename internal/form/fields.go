package form

// Quote form.
const (
	FieldQuoteDate           = "quote-date"
	FieldCompany             = "company"
	FieldContact             = "contact_person"
	FieldEmail               = "email"
	FieldPhone               = "phone"
	FieldAddress             = "address"
	FieldPropertyDesignation = "fastighetsbeteckning"
	FieldPostalCode          = "postal_code"
	FieldCity                = "city"

	FieldFloors          = "antal_vaningar"
	FieldPropertyType    = "typ_fastighet"
	FieldAccess          = "fonster_atkomst"
	FieldWindowCount     = "antal_fonster"
	FieldWindowTypes     = "fonstertyp"
	FieldBasementWindows = "kallarfonster"
	FieldGlazedBalcony   = "inglasad_balkong"
	FieldInterior        = "invandig_puts"

	FieldUrgency   = "projekttyp"
	FieldOccupancy = "bostadssituation"
	FieldWarranty  = "garanti"
	FieldTravelKm  = "resekostnad"
	FieldRegular   = "regelbunden_putsning"

	FieldDeductionProperty = "fastighet_rut_berättigad"
	FieldDeductionCustomer = "är_du_berättigad_rut_avdrag"
	FieldDeductionShared   = "delat_rut_avdrag"
	FieldMaterialPercent   = "materialkostnad"

	FieldHomeType  = "bostadstyp"
	FieldFrequency = "stadfrekvens"
	FieldServices  = "stadtjanster"
	FieldEmergency = "akut-service"

	FieldWCProperty    = "fp_fastighet"
	FieldWCWindowType  = "fp_fonstertyp"
	FieldWCOpening     = "fp_oppning"
	FieldWCScope       = "fp_rengoring"
	FieldWCCount       = "fp_antal_fonster"
	FieldWCSides       = "fp_antal_sidor"
	FieldWCMullions    = "fp_sprojs"
	FieldWCMullionType = "fp_sprojs_typ"
	FieldWCPanes       = "fp_antal_rutor"
	FieldWCFrames      = "fp_karmar"
	FieldWCLadder      = "fp_stege"
	FieldWCLift        = "fp_skylift"

	FieldPreferredDay  = "preferred-day"
	FieldPreferredTime = "preferred-time"
	FieldStartDate     = "start-date"
	FieldAccessMethod  = "access-method"
	FieldPets          = "pets"
	FieldAllergies     = "allergies"
	FieldParking       = "parking"

	FieldConsent = "gdpr-consent"
)

// Work-order form.
const (
	FieldWorkDate                = "work-date"
	FieldWorkCompany             = "arb-company"
	FieldWorkContact             = "arb-contact_person"
	FieldWorkEmail               = "arb-email"
	FieldWorkPhone               = "arb-phone"
	FieldWorkAddress             = "arb-address"
	FieldWorkPropertyDesignation = "arb-fastighetsbeteckning"
	FieldWorkPostalCode          = "arb-postal_code"
	FieldWorkCity                = "arb-city"
	FieldWorkDescription         = "arb-beskrivning"
	FieldWorkConsent             = "arb-gdpr-consent"
)

// Additional-service form.
const (
	FieldExtraCompany   = "tillagg-customer-company"
	FieldExtraContact   = "tillagg-customer-contact"
	FieldExtraEmail     = "tillagg-customer-email"
	FieldExtraAddress   = "tillagg-customer-address"
	FieldExtraType      = "tillagg-service-type"
	FieldExtraPrice     = "tillagg-service-price"
	FieldExtraDate      = "tillagg-service-date"
	FieldExtraComment   = "tillagg-service-comment"
	FieldExtraSignature = "tillagg-signature"
)

// Option values with pricing meaning.
const (
	PropertyEligibleValue = "Ja - Villa/Radhus"
	CustomerEligibleValue = "Ja - inkludera RUT-avdrag i anbudet"

	DefaultPropertyAnswer = "Nej - Hyresrätt/Kommersiell fastighet"
	DefaultCustomerAnswer = "Nej - visa fullpris utan avdrag"
	DefaultSharedAnswer   = "Nej"
	DefaultMaterial       = "0"

	DefaultUrgency   = "Standard"
	DefaultOccupancy = "Obebott"
	DefaultWarranty  = "2 år"
)

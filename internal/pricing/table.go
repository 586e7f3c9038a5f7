package pricing

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

//go:embed default_table.json
var defaultTableJSON []byte

// Bracket assigns a fixed price to every quantity up to and including Max.
type Bracket struct {
	Max   int     `json:"max"`
	Price float64 `json:"price"`
}

// WindowRates holds the window-washing base prices.
type WindowRates struct {
	Floors            map[string]float64 `json:"floors"`
	Access            map[string]float64 `json:"access"`
	CountBrackets     []Bracket          `json:"countBrackets"`
	OverflowPerWindow float64            `json:"overflowPerWindow"`
	TypeAdjustments   map[string]float64 `json:"typeAdjustments"`
	GlazedBalcony     float64            `json:"glazedBalcony"`
	BasementBrackets  []Bracket          `json:"basementBrackets"`
	BasementOverflow  float64            `json:"basementOverflow"`
	InteriorPerWindow float64            `json:"interiorPerWindow"`
}

// SurchargeRates holds proportional surcharges keyed by the selected option.
type SurchargeRates struct {
	Urgency   map[string]float64 `json:"urgency"`
	Occupancy map[string]float64 `json:"occupancy"`
	Warranty  map[string]float64 `json:"warranty"`
}

// CleaningRates holds the cleaning-service price list.
type CleaningRates struct {
	BasePrices     map[string]map[string]float64 `json:"basePrices"`
	Services       map[string]float64            `json:"services"`
	EmergencyRate  float64                       `json:"emergencyRate"`
	EstimatedTimes map[string]string             `json:"estimatedTimes"`
}

// WindowCleaningRates holds the multiplier chain and fees of the window-cleaning add-on.
type WindowCleaningRates struct {
	BasePrices          map[string]float64 `json:"basePrices"`
	PropertyMultipliers map[string]float64 `json:"propertyMultipliers"`
	OpeningMultipliers  map[string]float64 `json:"openingMultipliers"`
	ScopeMultipliers    map[string]float64 `json:"scopeMultipliers"`
	SidesMultipliers    map[string]float64 `json:"sidesMultipliers"`
	MullionFees         map[string]float64 `json:"mullionFees"`
	PaneFee             float64            `json:"paneFee"`
	FramePerWindow      float64            `json:"framePerWindow"`
	LadderFee           float64            `json:"ladderFee"`
	LiftFee             float64            `json:"liftFee"`
}

// TaxRates holds VAT and the labor deduction parameters.
type TaxRates struct {
	VATRate       float64 `json:"vatRate"`
	DeductionRate float64 `json:"deductionRate"`
	CapSingle     float64 `json:"capSingle"`
	CapShared     float64 `json:"capShared"`
}

// Table is the complete price list. It is loaded once at start-up and must
// not be modified afterwards.
type Table struct {
	Name             string              `json:"name"`
	Windows          WindowRates         `json:"windows"`
	Surcharges       SurchargeRates      `json:"surcharges"`
	TravelPerKm      float64             `json:"travelPerKm"`
	RegularDiscounts map[string]float64  `json:"regularDiscounts"`
	Cleaning         CleaningRates       `json:"cleaning"`
	WindowCleaning   WindowCleaningRates `json:"windowCleaning"`
	Tax              TaxRates            `json:"tax"`
}

// DefaultTable returns a fresh copy of the built-in price list.
func DefaultTable() *Table {
	t, err := ParseTable(defaultTableJSON)
	if err != nil {
		panic(fmt.Sprintf("built-in pricing table is invalid: %v", err))
	}
	return t
}

// DefaultTableJSON returns the raw built-in price list document.
func DefaultTableJSON() []byte {
	out := make([]byte, len(defaultTableJSON))
	copy(out, defaultTableJSON)
	return out
}

// ParseTable decodes and validates a price list document.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode pricing table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Encode renders the table as an indented JSON document.
func (t *Table) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode pricing table: %w", err)
	}
	return data, nil
}

// Validate checks the structural invariants the engine relies on.
func (t *Table) Validate() error {
	var errs []error

	if t.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if err := validateBrackets("windows.countBrackets", t.Windows.CountBrackets); err != nil {
		errs = append(errs, err)
	}
	if len(t.Windows.CountBrackets) == 0 {
		errs = append(errs, errors.New("windows.countBrackets must not be empty"))
	}
	if err := validateBrackets("windows.basementBrackets", t.Windows.BasementBrackets); err != nil {
		errs = append(errs, err)
	}
	if t.Windows.OverflowPerWindow < 0 {
		errs = append(errs, errors.New("windows.overflowPerWindow must be non-negative"))
	}
	if t.TravelPerKm < 0 {
		errs = append(errs, errors.New("travelPerKm must be non-negative"))
	}
	for key, rate := range t.RegularDiscounts {
		if rate > 0 || rate <= -1 {
			errs = append(errs, fmt.Errorf("regularDiscounts[%q] must be in (-1, 0]", key))
		}
	}
	if t.Tax.VATRate < 0 || t.Tax.VATRate > 1 {
		errs = append(errs, errors.New("tax.vatRate must be between 0 and 1"))
	}
	if t.Tax.DeductionRate < 0 || t.Tax.DeductionRate > 1 {
		errs = append(errs, errors.New("tax.deductionRate must be between 0 and 1"))
	}
	if t.Tax.CapSingle <= 0 || t.Tax.CapShared < t.Tax.CapSingle {
		errs = append(errs, errors.New("tax caps must be positive and the shared cap must not be below the single cap"))
	}
	if t.Cleaning.EmergencyRate < 0 {
		errs = append(errs, errors.New("cleaning.emergencyRate must be non-negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid pricing table: %w", errors.Join(errs...))
	}
	return nil
}

func validateBrackets(field string, brackets []Bracket) error {
	if !sort.SliceIsSorted(brackets, func(i, j int) bool { return brackets[i].Max < brackets[j].Max }) {
		return fmt.Errorf("%s must be sorted by max", field)
	}
	prev := 0.0
	for i, b := range brackets {
		if b.Max <= 0 {
			return fmt.Errorf("%s[%d].max must be positive", field, i)
		}
		if i > 0 && b.Max == brackets[i-1].Max {
			return fmt.Errorf("%s[%d].max is duplicated", field, i)
		}
		if b.Price < prev {
			return fmt.Errorf("%s[%d].price must not decrease", field, i)
		}
		prev = b.Price
	}
	return nil
}

// bracketPrice returns the price of the first bracket that covers n.
func bracketPrice(n int, brackets []Bracket) (float64, bool) {
	for _, b := range brackets {
		if n <= b.Max {
			return b.Price, true
		}
	}
	return 0, false
}

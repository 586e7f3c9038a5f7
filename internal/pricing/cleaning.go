package pricing

import "math"

// ServiceWindowCleaning selects the window-cleaning add-on within a cleaning order.
const ServiceWindowCleaning = "fonsterputs"

const mullionFixed = "fast"

// CleaningBreakdown itemises the cleaning-service line of a quote.
type CleaningBreakdown struct {
	Base           float64 `json:"base"`
	Services       float64 `json:"services"`
	WindowCleaning float64 `json:"windowCleaning"`
	Emergency      float64 `json:"emergency"`
	Total          float64 `json:"total"`
	EstimatedTime  string  `json:"estimatedTime,omitempty"`
}

// CleaningQuote prices a cleaning order: base price for the home type and
// frequency, add-on services, the window-cleaning add-on, and the emergency
// surcharge on their sum.
func CleaningQuote(in CleaningSelection, t *Table) CleaningBreakdown {
	var b CleaningBreakdown

	if in.HomeType != "" && in.Frequency != "" {
		b.Base = t.Cleaning.BasePrices[in.HomeType][in.Frequency]
	}

	for _, service := range UniqueStrings(in.Services) {
		if service == ServiceWindowCleaning {
			b.WindowCleaning = WindowCleaningPrice(in.Windows, t)
			continue
		}
		b.Services += t.Cleaning.Services[service]
	}

	sum := b.Base + b.Services + b.WindowCleaning
	if in.Emergency {
		b.Emergency = sum * t.Cleaning.EmergencyRate
	}
	b.Total = sum + b.Emergency
	b.EstimatedTime = EstimatedTime(in.HomeType, t)
	return b
}

// EstimatedTime returns the expected visit length for a home type, or "".
func EstimatedTime(homeType string, t *Table) string {
	return t.Cleaning.EstimatedTimes[homeType]
}

// WindowCleaningPrice prices the window-cleaning add-on. The result is rounded
// to whole kronor.
func WindowCleaningPrice(in WindowCleaningInput, t *Table) float64 {
	if in.WindowType == "" || in.PropertyType == "" || in.Count <= 0 {
		return 0
	}

	r := t.WindowCleaning
	n := float64(in.Count)

	perWindow := r.BasePrices[in.WindowType]
	perWindow *= multiplier(r.PropertyMultipliers, in.PropertyType)
	perWindow *= multiplier(r.OpeningMultipliers, in.Opening)
	perWindow *= multiplier(r.ScopeMultipliers, in.Scope)
	perWindow *= multiplier(r.SidesMultipliers, in.Sides)

	total := perWindow * n

	if in.Mullions && in.MullionType != "" {
		total += r.MullionFees[in.MullionType] * n
		if in.MullionType == mullionFixed && in.Panes > 0 {
			total += float64(in.Panes) * r.PaneFee * n
		}
	}
	if in.Frames {
		total += r.FramePerWindow * n
	}
	if in.Ladder {
		total += r.LadderFee
	}
	if in.Lift {
		total += r.LiftFee
	}

	return RoundKrona(total)
}

// multiplier looks up key and falls back to 1 for unknown or empty keys.
func multiplier(m map[string]float64, key string) float64 {
	if key == "" {
		return 1
	}
	if v, ok := m[key]; ok && v != 0 {
		return v
	}
	return 1
}

// RoundKrona rounds half up to a whole krona.
func RoundKrona(v float64) float64 {
	return math.Floor(v + 0.5)
}

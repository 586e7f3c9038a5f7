package pricing

// Property describes the building.
type Property struct {
	Floors string `json:"floors"`
	Access string `json:"access"`
	Type   string `json:"type"`
}

// Windows describes the window-washing job.
type Windows struct {
	Count         int      `json:"count"`
	Types         []string `json:"types"`
	Basement      int      `json:"basement"`
	GlazedBalcony bool     `json:"glazedBalcony"`
	Interior      bool     `json:"interior"`
}

// Project holds modifiers applied to the running subtotal.
type Project struct {
	Urgency   string  `json:"urgency"`
	Occupancy string  `json:"occupancy"`
	Warranty  string  `json:"warranty"`
	TravelKm  float64 `json:"travelKm"`
	Regular   string  `json:"regular"`
}

// Deduction holds the flags that gate the labor deduction.
type Deduction struct {
	PropertyEligible bool    `json:"propertyEligible"`
	CustomerEligible bool    `json:"customerEligible"`
	Shared           bool    `json:"shared"`
	MaterialPercent  float64 `json:"materialPercent"`
}

// WindowCleaningInput holds the window-cleaning add-on selections.
// NoMullions is set only when the customer explicitly answered no, so an
// unanswered mullion question has both flags false.
type WindowCleaningInput struct {
	PropertyType string `json:"propertyType"`
	WindowType   string `json:"windowType"`
	Opening      string `json:"opening"`
	Scope        string `json:"scope"`
	Sides        string `json:"sides"`
	Count        int    `json:"count"`
	Mullions     bool   `json:"mullions"`
	NoMullions   bool   `json:"noMullions"`
	MullionType  string `json:"mullionType"`
	Panes        int    `json:"panes"`
	Frames       bool   `json:"frames"`
	Ladder       bool   `json:"ladder"`
	Lift         bool   `json:"lift"`
}

// CleaningSelection holds the cleaning-service selections.
type CleaningSelection struct {
	HomeType  string              `json:"homeType"`
	Frequency string              `json:"frequency"`
	Services  []string            `json:"services"`
	Emergency bool                `json:"emergency"`
	Windows   WindowCleaningInput `json:"windows"`
}

// Customer is carried for the work order only and never affects the price.
type Customer struct {
	Company             string `json:"company"`
	Contact             string `json:"contact"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	PropertyDesignation string `json:"propertyDesignation"`
	PostalCode          string `json:"postalCode"`
	City                string `json:"city"`
}

// Visit holds scheduling and site notes for the work order.
type Visit struct {
	PreferredDay  string `json:"preferredDay"`
	PreferredTime string `json:"preferredTime"`
	StartDate     string `json:"startDate"`
	AccessMethod  string `json:"accessMethod"`
	Pets          string `json:"pets"`
	Allergies     string `json:"allergies"`
	Parking       string `json:"parking"`
}

// QuoteInput is a snapshot of every selection on the quote form.
type QuoteInput struct {
	Property  Property          `json:"property"`
	Windows   Windows           `json:"windows"`
	Project   Project           `json:"project"`
	Cleaning  CleaningSelection `json:"cleaning"`
	Deduction Deduction         `json:"deduction"`
	Customer  Customer          `json:"customer"`
	Visit     Visit             `json:"visit"`
}

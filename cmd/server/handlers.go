package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/solidastad/anbud/internal/document"
	"github.com/solidastad/anbud/internal/form"
	"github.com/solidastad/anbud/internal/money"
	"github.com/solidastad/anbud/internal/pricing"
	"github.com/solidastad/anbud/internal/relay"
	"github.com/solidastad/anbud/internal/submission"
	"github.com/solidastad/anbud/internal/workorder"
)

const (
	maxFormBytes = 5 << 20

	msgWrongPassword = "Fel lösenord, försök igen (%d av %d försök)"
	msgLocked        = "För många felaktiga försök. Återställ för att försöka igen."
	msgSubmitFailed  = "Det gick inte att skicka. Försök igen om en stund eller kontakta oss."
	msgInvalidForm   = "Formuläret innehåller fel. Rätta fälten nedan och försök igen."
)

type baseViewData struct {
	Authenticated  bool
	ErrorMessage   string
	SuccessMessage string
}

type loginViewData struct {
	baseViewData
	Locked bool
}

type homeViewData struct {
	baseViewData
	Today            string
	Floors           []string
	PropertyTypes    []string
	Access           []string
	WindowTypes      []string
	Urgency          []string
	Occupancy        []string
	Warranty         []string
	Regular          []string
	Sides            []string
	HomeTypes        []workorder.Choice
	Frequencies      []workorder.Choice
	Services         []workorder.Choice
	WCProperty       []workorder.Choice
	WCWindowType     []workorder.Choice
	WCOpening        []workorder.Choice
	WCScope          []workorder.Choice
	WCMullion        []workorder.Choice
	PropertyEligible string
	CustomerEligible string
}

type resultViewData struct {
	baseViewData
	Heading   string
	Errors    form.Errors
	Reference string
	Total     string
}

type quoteResponse struct {
	Breakdown       pricing.PriceBreakdown `json:"breakdown"`
	Totals          map[string]string      `json:"totals"`
	WorkDescription string                 `json:"workDescription"`
	Errors          form.Errors            `json:"errors,omitempty"`
}

var propertyTypes = []string{"Villa", "Radhus", "Lägenhet", "Bostadsrättsförening", "Kommersiell fastighet"}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.auth.isAuthenticated(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, http.StatusOK, "login.html", loginViewData{Locked: s.auth.locked(r)})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if s.auth.locked(r) {
		s.renderTemplate(w, http.StatusTooManyRequests, "login.html", loginViewData{
			baseViewData: baseViewData{ErrorMessage: msgLocked},
			Locked:       true,
		})
		return
	}

	if !s.auth.checkPassword(r.PostFormValue("password")) {
		attempts := s.auth.attempts(r) + 1
		s.auth.setAttempts(w, attempts)
		log.Printf("login: failed attempt %d of %d", attempts, s.auth.maxAttempts)

		view := loginViewData{baseViewData: baseViewData{
			ErrorMessage: fmt.Sprintf(msgWrongPassword, attempts, s.auth.maxAttempts),
		}}
		if attempts >= s.auth.maxAttempts {
			view.ErrorMessage = msgLocked
			view.Locked = true
		}
		s.renderTemplate(w, http.StatusUnauthorized, "login.html", view)
		return
	}

	s.auth.clearAttempts(w)
	s.auth.setSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLoginReset(w http.ResponseWriter, r *http.Request) {
	s.auth.clearAttempts(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	t := s.table
	s.renderTemplate(w, http.StatusOK, "home.html", homeViewData{
		baseViewData:     baseViewData{Authenticated: true},
		Today:            s.now().Format("2006-01-02"),
		Floors:           floorChoices(t),
		PropertyTypes:    propertyTypes,
		Access:           sortedKeys(t.Windows.Access),
		WindowTypes:      sortedKeys(t.Windows.TypeAdjustments),
		Urgency:          sortedKeys(t.Surcharges.Urgency),
		Occupancy:        sortedKeys(t.Surcharges.Occupancy),
		Warranty:         sortedKeys(t.Surcharges.Warranty),
		Regular:          sortedKeys(t.RegularDiscounts),
		Sides:            sortedKeys(t.WindowCleaning.SidesMultipliers),
		HomeTypes:        workorder.Choices("homeType"),
		Frequencies:      workorder.Choices("frequency"),
		Services:         workorder.Choices("service"),
		WCProperty:       workorder.Choices("property"),
		WCWindowType:     workorder.Choices("windowType"),
		WCOpening:        workorder.Choices("opening"),
		WCScope:          workorder.Choices("scope"),
		WCMullion:        workorder.Choices("mullion"),
		PropertyEligible: form.PropertyEligibleValue,
		CustomerEligible: form.CustomerEligibleValue,
	})
}

func (s *server) handleQuoteAPI(w http.ResponseWriter, r *http.Request) {
	state, ok := decodeState(w, r)
	if !ok {
		return
	}

	in := form.QuoteInput(state)
	b := pricing.ComputeQuote(in, s.table)
	resp := quoteResponse{
		Breakdown:       b,
		Totals:          formattedTotals(b),
		WorkDescription: workorder.Describe(in),
	}
	if errs := form.ValidateQuote(state); len(errs) > 0 {
		resp.Errors = errs
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleWorkDescriptionAPI(w http.ResponseWriter, r *http.Request) {
	state, ok := decodeState(w, r)
	if !ok {
		return
	}

	in := form.QuoteInput(state)
	writeJSON(w, http.StatusOK, map[string]string{
		"description":       workorder.Generate(in, workorder.Services(in.Cleaning.Services...)),
		"windowDescription": workorder.GenerateWindowProject(in),
	})
}

func (s *server) handleQuoteSubmit(w http.ResponseWriter, r *http.Request) {
	state, ok := parseForm(w, r)
	if !ok {
		return
	}
	if errs := form.ValidateQuote(state); len(errs) > 0 {
		s.renderInvalid(w, "Anbudet kunde inte skickas", errs)
		return
	}

	in := form.QuoteInput(state)
	b := pricing.ComputeQuote(in, s.table)
	payload := submission.BuildQuote(state, in, b, s.table, s.now())

	if !s.forward(w, r, "quote", payload) {
		return
	}
	s.renderTemplate(w, http.StatusOK, "result.html", resultViewData{
		baseViewData: baseViewData{Authenticated: true, SuccessMessage: "Tack! Anbudet har skickats."},
		Heading:      "Anbud skickat",
		Reference:    payload.QuoteNumber,
		Total:        money.FormatKrona(b.FinalTotal),
	})
}

func (s *server) handleWorkOrderSubmit(w http.ResponseWriter, r *http.Request) {
	state, ok := parseForm(w, r)
	if !ok {
		return
	}
	if errs := form.ValidateWorkOrder(state); len(errs) > 0 {
		s.renderInvalid(w, "Arbetsbeskrivningen kunde inte skickas", errs)
		return
	}

	payload := submission.BuildWorkOrder(state, workorder.Describe(form.QuoteInput(state)), s.now())
	if !s.forward(w, r, "work order", payload) {
		return
	}
	s.renderTemplate(w, http.StatusOK, "result.html", resultViewData{
		baseViewData: baseViewData{Authenticated: true, SuccessMessage: "Tack! Arbetsbeskrivningen har skickats."},
		Heading:      "Arbetsbeskrivning skickad",
	})
}

func (s *server) handleAdditionalServiceSubmit(w http.ResponseWriter, r *http.Request) {
	state, ok := parseForm(w, r)
	if !ok {
		return
	}
	if errs := form.ValidateAdditionalService(state); len(errs) > 0 {
		s.renderInvalid(w, "Tilläggstjänsten kunde inte skickas", errs)
		return
	}

	payload, err := submission.BuildAdditionalService(state, s.now())
	if err != nil {
		log.Printf("additional service: %v", err)
		s.renderInvalid(w, "Tilläggstjänsten kunde inte skickas", form.Errors{
			form.FieldExtraSignature: "Signaturen kunde inte läsas, signera igen",
		})
		return
	}

	if !s.forward(w, r, "additional service", payload) {
		return
	}
	s.renderTemplate(w, http.StatusOK, "result.html", resultViewData{
		baseViewData: baseViewData{Authenticated: true, SuccessMessage: "Tack! Tilläggstjänsten har skickats."},
		Heading:      "Tilläggstjänst skickad",
		Reference:    payload.Reference,
		Total:        money.FormatKrona(payload.Price),
	})
}

func (s *server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	doc, number, ok := s.quoteDocument(w, r)
	if !ok {
		return
	}
	out, err := document.QuotePDF(doc)
	if err != nil {
		log.Printf("quote pdf: %v", err)
		http.Error(w, "failed to render pdf", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, "application/pdf", number+".pdf", out)
}

func (s *server) handleQuoteExcel(w http.ResponseWriter, r *http.Request) {
	doc, number, ok := s.quoteDocument(w, r)
	if !ok {
		return
	}
	out, err := document.QuoteExcel(doc)
	if err != nil {
		log.Printf("quote excel: %v", err)
		http.Error(w, "failed to render excel", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", number+".xlsx", out)
}

func (s *server) quoteDocument(w http.ResponseWriter, r *http.Request) (document.Document, string, bool) {
	state, ok := parseForm(w, r)
	if !ok {
		return document.Document{}, "", false
	}

	now := s.now()
	date := form.Text(state, form.FieldQuoteDate)
	if date == "" {
		date = now.Format("2006-01-02")
	}
	number := submission.QuoteNumber(now)
	in := form.QuoteInput(state)
	b := pricing.ComputeQuote(in, s.table)
	return document.FromQuote(number, date, in, b, s.table, workorder.Describe(in)), number, true
}

// forward relays payload and renders the failure page when delivery fails.
func (s *server) forward(w http.ResponseWriter, r *http.Request, kind string, payload any) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("submit %s: encode payload: %v", kind, err)
		http.Error(w, "failed to encode submission", http.StatusInternalServerError)
		return false
	}

	result, err := s.relay.Relay(r.Context(), body, relay.MetaFromRequest(r))
	if err != nil {
		log.Printf("submit %s: %v", kind, err)
		s.renderTemplate(w, relay.StatusFor(err), "result.html", resultViewData{
			baseViewData: baseViewData{Authenticated: true, ErrorMessage: msgSubmitFailed},
			Heading:      "Något gick fel",
		})
		return false
	}

	log.Printf("submit %s: delivered, webhook status %d", kind, result.RelayStatus)
	return true
}

func (s *server) renderInvalid(w http.ResponseWriter, heading string, errs form.Errors) {
	s.renderTemplate(w, http.StatusUnprocessableEntity, "result.html", resultViewData{
		baseViewData: baseViewData{Authenticated: true, ErrorMessage: msgInvalidForm},
		Heading:      heading,
		Errors:       errs,
	})
}

func parseForm(w http.ResponseWriter, r *http.Request) (form.State, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return nil, false
	}
	return form.FromValues(r.PostForm), true
}

func decodeState(w http.ResponseWriter, r *http.Request) (form.State, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return nil, false
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON format"})
		return nil, false
	}
	return form.FromMap(values), true
}

func formattedTotals(b pricing.PriceBreakdown) map[string]string {
	return map[string]string{
		"exklMoms":       money.FormatKrona(b.SubtotalExclVAT),
		"moms":           money.FormatKrona(b.VAT),
		"inklMoms":       money.FormatKrona(b.SubtotalInclVAT),
		"rotAvdrag":      money.FormatDeduction(b.LaborDeduction),
		"materialAvdrag": money.FormatKrona(b.MaterialDeduction),
		"slutsumma":      money.FormatKrona(b.FinalTotal),
	}
}

// floorChoices lists the floor rows with the top row shown as "N+".
func floorChoices(t *pricing.Table) []string {
	keys := sortedKeys(t.Windows.Floors)
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	if n := len(keys); n > 0 {
		keys[n-1] += "+"
	}
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("write json: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}

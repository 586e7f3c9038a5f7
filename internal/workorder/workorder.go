// Package workorder renders the customer-facing work description that
// accompanies a quote.
package workorder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/solidastad/anbud/internal/pricing"
)

// Placeholder is returned when nothing has been selected yet.
const Placeholder = "Välj tjänster under Anbud-fliken så genereras en detaljerad arbetsbeskrivning automatiskt här."

const (
	companyName  = "SOLIDA STÄD & FÖNSTERPUTS AB"
	homeCleaning = "hemstadning"
)

var separator = strings.Repeat("=", 60)

// SelectedService identifies one chosen cleaning service.
type SelectedService string

// Services converts service identifiers into selections.
func Services(ids ...string) []SelectedService {
	out := make([]SelectedService, 0, len(ids))
	for _, id := range ids {
		out = append(out, SelectedService(id))
	}
	return out
}

// Generate renders the cleaning work description. Blocks appear in a fixed
// order and empty fields are left out. Repeated services are rendered once.
func Generate(in pricing.QuoteInput, services []SelectedService) string {
	ids := make([]string, 0, len(services))
	for _, s := range services {
		ids = append(ids, strings.TrimSpace(string(s)))
	}
	ids = pricing.UniqueStrings(ids)

	if len(ids) == 0 && in.Cleaning.HomeType == "" {
		return Placeholder
	}

	var b strings.Builder
	b.WriteString(companyName + "\n")
	b.WriteString("ARBETSBESKRIVNING\n\n")

	writeAssignment(&b, in.Cleaning)

	for _, id := range ids {
		if tmpl, ok := serviceTemplates[id]; ok {
			b.WriteString(tmpl.Title + "\n\n")
			b.WriteString(tmpl.Content + "\n\n")
			b.WriteString(separator + "\n\n")
		}
		if id == pricing.ServiceWindowCleaning {
			writeWindowCleaning(&b, in.Cleaning.Windows)
		}
	}

	writeCustomer(&b, in.Customer)

	if in.Cleaning.Emergency {
		b.WriteString("AKUTTJÄNST:\n")
		b.WriteString("• Samma dag eller nästa dag-tjänst begärd\n")
		b.WriteString("• Pristillägg: +50%\n\n")
	}

	if slices.Contains(ids, homeCleaning) {
		writeSchedule(&b, in.Visit)
	}
	writeSite(&b, in.Visit)

	if len(ids) > 0 {
		b.WriteString("UTFÖRANDE OCH GARANTI:\n")
		b.WriteString("• Professionell städning utförs av erfaren personal\n")
		b.WriteString("• Användning av miljövänliga rengöringsmedel\n")
		b.WriteString("• All utrustning och material ingår\n")
		b.WriteString("• Kvalitetsgaranti på utfört arbete\n")
		b.WriteString("• RUT-avdrag kan tillämpas (50% skattereduktion)\n\n")
	}

	b.WriteString("UTFÖRANDE:\n")
	b.WriteString("• Professionell städning med erfaren personal\n")
	b.WriteString("• Miljövänliga rengöringsmedel används\n")
	b.WriteString("• All nödvändig utrustning ingår\n")
	b.WriteString("• Kvalitetsgaranti på utfört arbete\n\n")
	b.WriteString("Med vänliga hälsningar,\n")
	b.WriteString(companyName)

	return b.String()
}

func writeAssignment(b *strings.Builder, c pricing.CleaningSelection) {
	if c.HomeType == "" || c.Frequency == "" {
		return
	}
	b.WriteString("UPPDRAGSINFO:\n")
	fmt.Fprintf(b, "Bostadstyp: %s\n", HomeTypeLabel(c.HomeType))
	fmt.Fprintf(b, "Frekvens: %s\n", FrequencyLabel(c.Frequency))
	if c.Emergency {
		b.WriteString("AKUTTJÄNST: Ja (+50% tillägg)\n")
	}
	b.WriteString("\n" + separator + "\n\n")
}

func writeWindowCleaning(b *strings.Builder, w pricing.WindowCleaningInput) {
	if w.PropertyType == "" || w.WindowType == "" {
		return
	}

	b.WriteString("FÖNSTERPUTS TILLÄGG - DETALJER:\n")
	fmt.Fprintf(b, "• Fastighetstyp: %s\n", label(propertyLabels, w.PropertyType))
	fmt.Fprintf(b, "• Fönstertyp: %s\n", label(windowTypeLabels, w.WindowType))
	if w.Opening != "" {
		fmt.Fprintf(b, "• Öppning: %s\n", label(openingLabels, w.Opening))
	}
	if w.Scope != "" {
		fmt.Fprintf(b, "• Rengöringstyp: %s\n", label(scopeLabels, w.Scope))
	}
	if w.Count > 0 {
		fmt.Fprintf(b, "• Antal fönster: %d st\n", w.Count)
	}
	if w.Sides != "" {
		fmt.Fprintf(b, "• Antal sidor att putsa: %s sidor\n", w.Sides)
	}

	switch {
	case w.Mullions && w.MullionType != "":
		text := label(mullionLabels, w.MullionType)
		if w.MullionType == "fast" && w.Panes > 0 {
			text += fmt.Sprintf(" (%d små rutor per fönster)", w.Panes)
		}
		fmt.Fprintf(b, "• Spröjs: %s\n", text)
	case w.NoMullions:
		b.WriteString("• Spröjs: Inga spröjs\n")
	}

	var needs []string
	if w.Frames {
		needs = append(needs, "Fönsterkarmar rengörs och torkas")
	}
	if w.Ladder {
		needs = append(needs, "Stege behövs för åtkomst")
	}
	if w.Lift {
		needs = append(needs, "Skylift/kran behövs")
	}
	if len(needs) > 0 {
		fmt.Fprintf(b, "• Särskilda krav: %s\n", strings.Join(needs, ", "))
	}

	b.WriteString("\nFönsterputs utförs professionellt med miljövänliga rengöringsmedel. Priset inkluderar all utrustning och säker åtkomst till fönstren.\n\n")
}

func writeCustomer(b *strings.Builder, c pricing.Customer) {
	if c.Company == "" && c.Email == "" && c.Phone == "" {
		return
	}
	b.WriteString("KUNDINFORMATION:\n")
	writeLine(b, "Företag/Namn", c.Company)
	writeLine(b, "Kontaktperson", c.Contact)
	writeLine(b, "E-post", c.Email)
	writeLine(b, "Telefon", c.Phone)
	writeLine(b, "Adress", c.Address)
	writeLine(b, "Fastighetsbeteckning", c.PropertyDesignation)
	if c.PostalCode != "" && c.City != "" {
		fmt.Fprintf(b, "• Ort: %s %s\n", c.PostalCode, c.City)
	}
	b.WriteString("\n")
}

func writeSchedule(b *strings.Builder, v pricing.Visit) {
	if v.PreferredDay == "" && v.PreferredTime == "" && v.StartDate == "" {
		return
	}
	b.WriteString("SCHEMA HEMSTÄDNING:\n")
	writeLine(b, "Föredragen dag", v.PreferredDay)
	writeLine(b, "Föredragen tid", v.PreferredTime)
	writeLine(b, "Startdatum", v.StartDate)
	b.WriteString("\n")
}

func writeSite(b *strings.Builder, v pricing.Visit) {
	if v.AccessMethod != "" {
		b.WriteString("ÅTKOMST:\n")
		fmt.Fprintf(b, "• Åtkomst till fastigheten: %s\n\n", v.AccessMethod)
	}

	pets := v.Pets
	if pets == "nej" {
		pets = ""
	}
	if pets != "" || v.Allergies != "" {
		b.WriteString("SÄRSKILDA KRAV:\n")
		writeLine(b, "Husdjur", pets)
		writeLine(b, "Allergier/Önskemål", v.Allergies)
		b.WriteString("\n")
	}

	if v.Parking != "" {
		b.WriteString("PARKERING:\n")
		fmt.Fprintf(b, "• Parkeringsmöjligheter: %s\n\n", v.Parking)
	}
}

// GenerateWindowProject renders the work description of a window-washing job.
func GenerateWindowProject(in pricing.QuoteInput) string {
	var b strings.Builder
	b.WriteString("ARBETSBESKRIVNING - FÖNSTERPUTS\n\n")

	b.WriteString("OBJEKTSINFORMATION:\n\n")
	if in.Property.Floors != "" {
		fmt.Fprintf(&b, "• Byggnad: %s våningar\n", in.Property.Floors)
	}
	writeLine(&b, "Fastighetstyp", in.Property.Type)
	writeLine(&b, "Åtkomst", in.Property.Access)

	b.WriteString("\nFÖNSTERINFORMATION:\n\n")
	if in.Windows.Count > 0 {
		fmt.Fprintf(&b, "• Antal fönster att putsa: %d st\n", in.Windows.Count)
	}
	if types := pricing.UniqueStrings(in.Windows.Types); len(types) > 0 {
		fmt.Fprintf(&b, "• Fönstertyper: %s\n", strings.Join(types, ", "))
	}
	if in.Windows.Basement > 0 {
		fmt.Fprintf(&b, "• Källarfönster/gluggar: %d st\n", in.Windows.Basement)
	}
	if in.Windows.GlazedBalcony {
		b.WriteString("• Inglasad balkong: Ja\n")
	}
	if in.Windows.Interior {
		b.WriteString("• Invändig fönsterputs: Ja\n")
	}

	b.WriteString("\nUTFÖRANDE:\n\n")
	b.WriteString("• Professionell fönsterputs av alla angivna fönster\n")
	b.WriteString("• Rengöring av både glas och fönsterramar\n")
	b.WriteString("• Användning av miljövänliga rengöringsmedel\n")
	b.WriteString("• Säker hantering av all utrustning och material\n\n")

	b.WriteString("Solida Städ & Fönsterputs AB\nProfessionell fönsterputs med kvalitetsgaranti")
	return b.String()
}

func writeLine(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "• %s: %s\n", name, value)
}

// Describe picks the description that fits the quote: the cleaning
// description when cleaning is ordered, otherwise the window-washing one.
func Describe(in pricing.QuoteInput) string {
	if len(in.Cleaning.Services) > 0 || in.Cleaning.HomeType != "" {
		return Generate(in, Services(in.Cleaning.Services...))
	}
	if in.Windows.Count > 0 {
		return GenerateWindowProject(in)
	}
	return Placeholder
}

package workorder

import (
	"embed"
	"sort"
	"strings"
)

//go:embed services/*.txt
var serviceFS embed.FS

type serviceTemplate struct {
	Title   string
	Content string
}

var serviceTitles = map[string]string{
	"hemstadning":      "HEMSTÄDNING - VAD SOM INGÅR",
	"storstadning":     "STORSTÄDNING - VAD SOM INGÅR",
	"flyttstadning":    "FLYTTSTÄDNING - VAD SOM INGÅR",
	"visningsstadning": "VISNINGSSTÄDNING - VAD SOM INGÅR",
	"kontorsstadning":  "KONTORSSTÄDNING - VAD SOM INGÅR",
	"fonsterputs":      "FÖNSTERPUTS - VAD SOM INGÅR",
}

// ServiceNames maps service identifiers to the names shown on the form.
var ServiceNames = map[string]string{
	"hemstadning":      "Hemstädning",
	"storstadning":     "Storstädning",
	"flyttstadning":    "Flyttstädning",
	"visningsstadning": "Visningsstädning",
	"kontorsstadning":  "Kontorsstädning",
	"fonsterputs":      "Fönsterputs",
}

var homeTypeLabels = map[string]string{
	"1a_30kvm":             "1 rum och kök, ca 30 kvm",
	"1a_40kvm":             "1 rum och kök, ca 40 kvm",
	"2a_50kvm":             "2 rum och kök, ca 50 kvm",
	"2a_60kvm":             "2 rum och kök, ca 60 kvm",
	"3a_70kvm":             "3 rum och kök, ca 70 kvm",
	"4a_90kvm":             "4 rum och kök, ca 90 kvm",
	"enplansvilla_100kvm":  "Enplansvilla, ca 100 kvm",
	"tvåplansvilla_140kvm": "Tvåplansvilla, ca 140 kvm",
}

var frequencyLabels = map[string]string{
	"varje_vecka":       "Varje vecka",
	"varannan_vecka":    "Varannan vecka",
	"varje_manad":       "Varje månad",
	"endast_denna_gang": "Endast denna gång",
}

var propertyLabels = map[string]string{
	"villa_radhus":      "Villa/Radhus",
	"lagenhet":          "Lägenhet",
	"affarslokal":       "Affärslokal",
	"kommersiell_lokal": "Kommersiell lokal",
	"restaurang":        "Restaurang",
}

var windowTypeLabels = map[string]string{
	"standardfonster": "Standardfönster",
	"blandat":         "Blandat",
	"stora_partier":   "Stora fönsterpartier",
}

var openingLabels = map[string]string{
	"utat":         "Öppnas utåt",
	"inat":         "Öppnas inåt",
	"gar_ej_oppna": "Går ej att öppna",
}

var scopeLabels = map[string]string{
	"invandig_utvandig": "Invändig och utvändig rengöring",
	"bara_invandig":     "Bara invändig rengöring",
	"bara_utvandig":     "Bara utvändig rengöring",
}

var mullionLabels = map[string]string{
	"fast":       "Fönster med fast spröjs",
	"lostagbart": "Fönster med löstagbart spröjs",
}

var serviceTemplates = loadServiceTemplates()

func loadServiceTemplates() map[string]serviceTemplate {
	out := make(map[string]serviceTemplate, len(serviceTitles))
	for id, title := range serviceTitles {
		data, err := serviceFS.ReadFile("services/" + id + ".txt")
		if err != nil {
			panic("missing service template " + id)
		}
		out[id] = serviceTemplate{
			Title:   title,
			Content: "\n" + strings.TrimRight(string(data), "\n"),
		}
	}
	return out
}

// HasTemplate reports whether a service identifier has a description block.
func HasTemplate(id string) bool {
	_, ok := serviceTemplates[id]
	return ok
}

// HomeTypeLabel returns the display text of a home type.
func HomeTypeLabel(id string) string {
	return label(homeTypeLabels, id)
}

// FrequencyLabel returns the display text of a cleaning frequency.
func FrequencyLabel(id string) string {
	return label(frequencyLabels, id)
}

func label(m map[string]string, id string) string {
	if v, ok := m[id]; ok {
		return v
	}
	return id
}

// Choice is one option of a labelled select field.
type Choice struct {
	Value string
	Label string
}

var choiceSets = map[string]map[string]string{
	"homeType":   homeTypeLabels,
	"frequency":  frequencyLabels,
	"property":   propertyLabels,
	"windowType": windowTypeLabels,
	"opening":    openingLabels,
	"scope":      scopeLabels,
	"mullion":    mullionLabels,
	"service":    ServiceNames,
}

// Choices returns the options of a labelled field kind sorted by label, or
// nil for an unknown kind.
func Choices(kind string) []Choice {
	set, ok := choiceSets[kind]
	if !ok {
		return nil
	}
	out := make([]Choice, 0, len(set))
	for value, text := range set {
		out = append(out, Choice{Value: value, Label: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

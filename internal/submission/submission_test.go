package submission

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/solidastad/anbud/internal/form"
	"github.com/solidastad/anbud/internal/money"
	"github.com/solidastad/anbud/internal/pricing"
)

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func TestBuildQuote(t *testing.T) {
	table := pricing.DefaultTable()
	values := url.Values{
		form.FieldQuoteDate:   {"2026-05-04"},
		form.FieldCompany:     {"Andersson"},
		form.FieldEmail:       {"anna@example.se"},
		form.FieldCity:        {"Göteborg"},
		form.FieldFloors:      {"2"},
		form.FieldAccess:      {"Viss åtkomst med stege"},
		form.FieldWindowCount: {"15"},
		form.FieldServices:    {"storstadning", "storstadning", "okand"},
	}
	s := form.FromValues(values)
	in := form.QuoteInput(s)
	b := pricing.ComputeQuote(in, table)

	p := BuildQuote(s, in, b, table, fixedNow)

	if p.Type != TypeQuote {
		t.Fatalf("unexpected type %q", p.Type)
	}
	if p.QuoteNumber != "SM-"+strconv.FormatInt(fixedNow.UnixMilli(), 10) {
		t.Fatalf("unexpected quote number %q", p.QuoteNumber)
	}
	if p.Customer.Company != "Andersson" || p.Customer.City != "Göteborg" {
		t.Fatalf("unexpected customer %+v", p.Customer)
	}
	if len(p.Services) != 1 || p.Services[0].ServiceID != "storstadning" || p.Services[0].Total != 800 {
		t.Fatalf("unexpected services %+v", p.Services)
	}
	if p.Deduction.Shared != form.DefaultSharedAnswer || p.Deduction.MaterialPercent != form.DefaultMaterial {
		t.Fatalf("unexpected deduction answers %+v", p.Deduction)
	}
	if p.Totals.Final != money.FormatKrona(b.FinalTotal) {
		t.Fatalf("unexpected final total %q", p.Totals.Final)
	}

	encoded, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal quote payload: %v", err)
	}
	for _, key := range []string{`"anbudsNummer"`, `"kundInfo"`, `"företag"`, `"rutAvdrag"`, `"slutsumma"`} {
		if !bytes.Contains(encoded, []byte(key)) {
			t.Fatalf("expected key %s in %s", key, encoded)
		}
	}
}

func TestBuildWorkOrderFallsBackToGenerated(t *testing.T) {
	s := form.FromValues(url.Values{
		form.FieldWorkCompany: {"BRF Linden"},
		form.FieldWorkConsent: {"on"},
	})

	p := BuildWorkOrder(s, "generated text", fixedNow)
	if p.Type != TypeWorkOrder || p.Description != "generated text" || !p.Consent {
		t.Fatalf("unexpected payload %+v", p)
	}

	s = form.FromValues(url.Values{form.FieldWorkDescription: {"edited"}})
	if p := BuildWorkOrder(s, "generated text", fixedNow); p.Description != "edited" {
		t.Fatalf("expected edited description, got %q", p.Description)
	}
}

func TestAdditionalReference(t *testing.T) {
	cases := map[string]string{
		"Åsa Berg & Co": "SABERG",
		"ab":            "AB",
		"":              "NONAME",
		"---":           "NONAME",
	}
	for name, code := range cases {
		want := "TILLAGG-" + code + "-" + strconv.FormatInt(fixedNow.UnixMilli(), 10)
		if got := AdditionalReference(name, fixedNow); got != want {
			t.Fatalf("AdditionalReference(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestBuildAdditionalServiceWithoutSignature(t *testing.T) {
	s := form.FromMap(map[string]any{
		form.FieldExtraCompany: "Andersson",
		form.FieldExtraType:    "Balkongputs",
		form.FieldExtraPrice:   "450",
	})

	p, err := BuildAdditionalService(s, fixedNow)
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}
	if p.Signed || p.Signature != nil {
		t.Fatalf("expected unsigned payload")
	}
	if p.Price != 450 || p.Source != additionalSource {
		t.Fatalf("unexpected payload %+v", p)
	}

	encoded, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if !bytes.Contains(encoded, []byte(`"signatur_base64":null`)) {
		t.Fatalf("expected null signature in %s", encoded)
	}
}

func TestBuildAdditionalServiceFitsSignature(t *testing.T) {
	s := form.FromMap(map[string]any{
		form.FieldExtraCompany:   "Andersson",
		form.FieldExtraSignature: pngDataURL(t, 1200, 300),
	})

	p, err := BuildAdditionalService(s, fixedNow)
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}
	if !p.Signed || p.Signature == nil || p.SignatureImage == nil {
		t.Fatalf("expected signed payload")
	}

	img := decodeDataURL(t, *p.Signature)
	if got := img.Bounds().Size(); got.X != 600 || got.Y != 150 {
		t.Fatalf("expected 600x150 signature, got %v", got)
	}
}

func TestNormalizeSignatureKeepsSmallImages(t *testing.T) {
	out, err := NormalizeSignature(pngDataURL(t, 300, 100))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got := decodeDataURL(t, out).Bounds().Size(); got.X != 300 || got.Y != 100 {
		t.Fatalf("expected size to be kept, got %v", got)
	}
}

func TestNormalizeSignatureRejectsGarbage(t *testing.T) {
	for _, in := range []string{"hello", "data:text/plain;base64,aGk=", "data:image/png;base64,!!!"} {
		if _, err := NormalizeSignature(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeDataURL(t *testing.T, dataURL string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, dataURLPrefix))
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

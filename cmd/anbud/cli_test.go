package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/solidastad/anbud/internal/form"
	"github.com/solidastad/anbud/internal/pricing"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeState(t *testing.T, state map[string]any) string {
	t.Helper()
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("encode state: %v", err)
	}
	return writeFile(t, "state.json", data)
}

func windowState() map[string]any {
	return map[string]any{
		form.FieldFloors:      "2",
		form.FieldAccess:      "Viss åtkomst med stege",
		form.FieldWindowCount: 15,
	}
}

func TestQuoteJSON(t *testing.T) {
	input := writeState(t, windowState())

	stdout, stderr, err := run(t, "quote", "--input", input, "--json")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	var b pricing.PriceBreakdown
	if err := json.Unmarshal([]byte(stdout), &b); err != nil {
		t.Fatalf("decode breakdown: %v\n%s", err, stdout)
	}
	if b.SubtotalExclVAT != 1210 || b.VAT != 302.5 || b.FinalTotal != 1512.5 {
		t.Fatalf("unexpected breakdown %+v", b)
	}
	if !strings.Contains(stderr, "warning: "+form.FieldCompany) {
		t.Fatalf("expected validation warnings on stderr, got %q", stderr)
	}
}

func TestQuoteTextAndFiles(t *testing.T) {
	input := writeState(t, windowState())
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "anbud.pdf")
	xlsxPath := filepath.Join(dir, "anbud.xlsx")

	stdout, _, err := run(t, "quote", "--input", input, "--pdf", pdfPath, "--xlsx", xlsxPath)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	for _, expected := range []string{"Summa exkl. moms", "Att betala"} {
		if !strings.Contains(stdout, expected) {
			t.Fatalf("expected output to contain %q, got:\n%s", expected, stdout)
		}
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf file, err=%v", err)
	}
	xlsx, err := os.ReadFile(xlsxPath)
	if err != nil || !bytes.HasPrefix(xlsx, []byte("PK")) {
		t.Fatalf("expected xlsx file, err=%v", err)
	}
}

func TestQuoteUsesRatesFile(t *testing.T) {
	table := pricing.DefaultTable()
	table.Name = "dyr"
	table.Windows.Floors["2"] *= 2
	data, err := table.Encode()
	if err != nil {
		t.Fatalf("encode table: %v", err)
	}
	rates := writeFile(t, "rates.json", data)
	input := writeState(t, windowState())

	stdout, _, err := run(t, "quote", "--input", input, "--rates", rates, "--json")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	var b pricing.PriceBreakdown
	if err := json.Unmarshal([]byte(stdout), &b); err != nil {
		t.Fatalf("decode breakdown: %v", err)
	}
	if b.SubtotalExclVAT <= 1210 {
		t.Fatalf("expected custom rates to raise the subtotal, got %v", b.SubtotalExclVAT)
	}
}

func TestQuoteRejectsBadInput(t *testing.T) {
	input := writeFile(t, "state.json", []byte("{"))
	if _, _, err := run(t, "quote", "--input", input); err == nil {
		t.Fatalf("expected malformed state to fail")
	}
	if _, _, err := run(t, "quote"); err == nil {
		t.Fatalf("expected missing --input to fail")
	}
}

func TestDescribe(t *testing.T) {
	input := writeState(t, windowState())

	stdout, _, err := run(t, "describe", "--input", input)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !strings.HasPrefix(stdout, "ARBETSBESKRIVNING - FÖNSTERPUTS") {
		t.Fatalf("expected window project description, got %q", stdout)
	}

	cleaning := writeState(t, map[string]any{
		form.FieldServices: []any{"hemstadning"},
		form.FieldHomeType: "2a_50kvm",
	})
	stdout, _, err = run(t, "describe", "--input", cleaning)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !strings.Contains(stdout, "HEMSTÄDNING - VAD SOM INGÅR") {
		t.Fatalf("expected cleaning description, got %q", stdout)
	}
}

func TestRatesLoadDumpList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "anbud.db")
	rates := writeFile(t, "rates.json", pricing.DefaultTableJSON())

	if _, _, err := run(t, "--db", dbPath, "--name", "sommar", "rates", "dump"); err == nil {
		t.Fatalf("expected dump of a missing table to fail")
	}

	stdout, _, err := run(t, "--db", dbPath, "--name", "sommar", "rates", "load", rates)
	if err != nil {
		t.Fatalf("rates load: %v", err)
	}
	if !strings.Contains(stdout, `"sommar"`) {
		t.Fatalf("unexpected load output %q", stdout)
	}

	stdout, _, err = run(t, "--db", dbPath, "--name", "sommar", "rates", "dump")
	if err != nil {
		t.Fatalf("rates dump: %v", err)
	}
	table, err := pricing.ParseTable([]byte(stdout))
	if err != nil {
		t.Fatalf("parse dumped table: %v", err)
	}
	if table.Name != "sommar" {
		t.Fatalf("expected stored name, got %q", table.Name)
	}

	stdout, _, err = run(t, "--db", dbPath, "--name", "sommar", "rates", "list")
	if err != nil {
		t.Fatalf("rates list: %v", err)
	}
	if !strings.Contains(stdout, "NAME") || !strings.Contains(stdout, "sommar") {
		t.Fatalf("unexpected list output %q", stdout)
	}
}

func TestRatesDumpBuiltin(t *testing.T) {
	stdout, _, err := run(t, "rates", "dump", "--builtin")
	if err != nil {
		t.Fatalf("rates dump --builtin: %v", err)
	}
	if _, err := pricing.ParseTable([]byte(stdout)); err != nil {
		t.Fatalf("parse built-in dump: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "anbud.db")
	for i := 0; i < 2; i++ {
		stdout, _, err := run(t, "--db", dbPath, "--name", "standard", "migrate")
		if err != nil {
			t.Fatalf("migrate (iteration=%d): %v", i, err)
		}
		if !strings.HasPrefix(stdout, "schema version 1") {
			t.Fatalf("unexpected migrate output %q", stdout)
		}
	}
}

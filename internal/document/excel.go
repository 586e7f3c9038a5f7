package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Anbud"

// QuoteExcel renders d as a single-sheet workbook. Amounts are written as
// numbers so the sheet can be recalculated.
func QuoteExcel(d Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "A", 36); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 18); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(`#,##0 "kr"`)})
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	r := 1
	set := func(label string, value any) {
		f.SetCellValue(sheetName, cell("A", r), sanitizeExcelCell(label))
		if s, ok := value.(string); ok {
			value = sanitizeExcelCell(s)
		}
		f.SetCellValue(sheetName, cell("B", r), value)
		r++
	}

	set(companyName, d.Title)
	f.SetCellStyle(sheetName, "A1", "B1", boldStyle)
	set("Anbudsnummer", d.Number)
	set("Datum", d.Date)
	r++

	c := d.Customer
	for _, kv := range [][2]string{
		{"Kund", c.Company},
		{"Kontaktperson", c.Contact},
		{"E-post", c.Email},
		{"Telefon", c.Phone},
		{"Adress", c.Address},
		{"Postnummer", c.PostalCode},
		{"Ort", c.City},
		{"Fastighetsbeteckning", c.PropertyDesignation},
		{"Beräknad tid", d.EstimatedTime},
	} {
		if kv[1] != "" {
			set(kv[0], kv[1])
		}
	}
	r++

	f.SetCellValue(sheetName, cell("A", r), "Specifikation")
	f.SetCellValue(sheetName, cell("B", r), "Belopp")
	f.SetCellStyle(sheetName, cell("A", r), cell("B", r), boldStyle)
	r++
	for _, l := range append(append([]Line{}, d.Lines...), d.Totals...) {
		amount := l.Amount
		if l.Deduction {
			amount = -amount
		}
		set(l.Label, amount)
		f.SetCellStyle(sheetName, cell("B", r-1), cell("B", r-1), amountStyle)
	}
	f.SetCellStyle(sheetName, cell("A", r-1), cell("A", r-1), boldStyle)

	if d.Note != "" {
		set(d.Note, "")
	}

	if d.Description != "" {
		r++
		f.SetCellValue(sheetName, cell("A", r), "Arbetsbeskrivning")
		f.SetCellStyle(sheetName, cell("A", r), cell("A", r), boldStyle)
		r++
		for _, line := range strings.Split(d.Description, "\n") {
			f.SetCellValue(sheetName, cell("A", r), sanitizeExcelCell(line))
			r++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell defuses values a spreadsheet would read as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func cell(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}

func strPtr(s string) *string { return &s }

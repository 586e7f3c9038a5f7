package document

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	grey      = &props.Color{Red: 100, Green: 100, Blue: 100}
	shade     = &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	labelText = props.Text{Size: 9, Align: align.Left}
	valueText = props.Text{Size: 9, Align: align.Right}
)

// QuotePDF renders d as an A4 PDF.
func QuotePDF(d Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Sida {current} av {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   grey,
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, d)
	addPDFCustomer(m, d)
	addPDFLines(m, d.Lines)
	addPDFTotals(m, d)
	if d.Description != "" {
		addPDFDescription(m, d.Description)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate quote pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, d Document) {
	m.AddRows(
		row.New(12).Add(
			col.New(8).Add(text.New(companyName, props.Text{Size: 14, Style: fontstyle.Bold})),
			col.New(4).Add(text.New(d.Title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right})),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("Anbudsnummer: "+d.Number, props.Text{Size: 9, Color: grey})),
			col.New(6).Add(text.New("Datum: "+d.Date, props.Text{Size: 9, Color: grey, Align: align.Right})),
		),
	)
	m.AddRows(row.New(4))
}

func addPDFCustomer(m core.Maroto, d Document) {
	c := d.Customer
	fields := [][2]string{
		{"Kund", c.Company},
		{"Kontaktperson", c.Contact},
		{"E-post", c.Email},
		{"Telefon", c.Phone},
		{"Adress", strings.TrimSpace(c.Address + ", " + strings.TrimSpace(c.PostalCode+" "+c.City))},
		{"Fastighetsbeteckning", c.PropertyDesignation},
		{"Beräknad tid", d.EstimatedTime},
	}
	for _, f := range fields {
		if strings.Trim(f[1], ", ") == "" {
			continue
		}
		m.AddRows(row.New(5).Add(
			col.New(4).Add(text.New(f[0], props.Text{Size: 9, Style: fontstyle.Bold})),
			col.New(8).Add(text.New(f[1], labelText)),
		))
	}
	m.AddRows(row.New(4))
}

func addPDFLines(m core.Maroto, lines []Line) {
	m.AddRows(row.New(7).Add(
		col.New(8).Add(text.New("Specifikation", props.Text{Size: 10, Style: fontstyle.Bold})).WithStyle(shade),
		col.New(4).Add(text.New("Belopp", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})).WithStyle(shade),
	))
	for _, l := range lines {
		m.AddRows(row.New(5).Add(
			col.New(8).Add(text.New(l.Label, labelText)),
			col.New(4).Add(text.New(l.Text(), valueText)),
		))
	}
	m.AddRows(row.New(4))
}

func addPDFTotals(m core.Maroto, d Document) {
	for i, l := range d.Totals {
		style := props.Text{Size: 9, Align: align.Right}
		if i == len(d.Totals)-1 {
			style.Style = fontstyle.Bold
			style.Size = 11
		}
		m.AddRows(row.New(6).Add(
			col.New(8).Add(text.New(l.Label, style)),
			col.New(4).Add(text.New(l.Text(), style)),
		))
	}
	if d.Note != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(d.Note, props.Text{Size: 8, Color: grey}))))
	}
}

func addPDFDescription(m core.Maroto, description string) {
	m.AddRows(row.New(8))
	m.AddRows(row.New(7).Add(
		col.New(12).Add(text.New("Arbetsbeskrivning", props.Text{Size: 10, Style: fontstyle.Bold})).WithStyle(shade),
	))
	for _, line := range strings.Split(description, "\n") {
		if strings.TrimSpace(line) == "" {
			m.AddRows(row.New(3))
			continue
		}
		m.AddRows(row.New(4).Add(col.New(12).Add(text.New(line, props.Text{Size: 8}))))
	}
}

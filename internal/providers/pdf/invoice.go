package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// SupplierInvoiceData is the rendered form of a supplier invoice; all
// money fields arrive pre-formatted.
type SupplierInvoiceData struct {
	InvoiceNo    string
	SupplierName string
	CareHomeName string
	PeriodStart  string
	PeriodEnd    string
	IssuedAt     string

	Items []SupplierInvoiceItem

	Subtotal string
	VatTotal string
	Total    string
}

type SupplierInvoiceItem struct {
	Description string
	Qty         string
	UnitPrice   string
	VatRate     string
	LineTotal   string
}

// SalesInvoiceData is the rendered form of a vendor sales invoice.
type SalesInvoiceData struct {
	InvoiceNo    string
	VendorName   string
	CareHomeName string
	IssueDate    string

	Items []SalesInvoiceItem

	Total string
}

type SalesInvoiceItem struct {
	ResidentName string
	Description  string
	Price        string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateSupplierInvoice(ctx context.Context, data SupplierInvoiceData) (io.Reader, error) {
	m := newDocument()

	m.AddRow(12,
		text.NewCol(12, "Sundries Services Ltd", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(30,
		col.New(6).Add(
			text.New("Invoice No: "+data.InvoiceNo, props.Text{Top: 0}),
			text.New("Supplier: "+data.SupplierName, props.Text{Top: 5}),
			text.New("Care Home: "+data.CareHomeName, props.Text{Top: 10}),
			text.New("Period: "+data.PeriodStart+" - "+data.PeriodEnd, props.Text{Top: 15}),
			text.New("Issued: "+data.IssuedAt, props.Text{Top: 20}),
		),
		col.New(6),
	)

	m.AddRow(10,
		text.NewCol(12, "Items", props.Text{Size: 14, Style: fontstyle.Bold}),
	)

	m.AddRow(8,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "VAT%", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Line Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(7,
			text.NewCol(5, item.Description, props.Text{Size: 9}),
			text.NewCol(1, item.Qty, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.VatRate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.LineTotal, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 10}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "VAT", props.Text{Size: 10}),
		text.NewCol(2, data.VatTotal, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func (p *PDFProvider) GenerateSalesInvoice(ctx context.Context, data SalesInvoiceData) (io.Reader, error) {
	m := newDocument()

	m.AddRow(12,
		text.NewCol(12, "Sundries Services Ltd", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(22,
		col.New(6).Add(
			text.New("Invoice No: "+data.InvoiceNo, props.Text{Top: 0}),
			text.New("Vendor: "+data.VendorName, props.Text{Top: 5}),
			text.New("Care Home: "+data.CareHomeName, props.Text{Top: 10}),
			text.New("Date: "+data.IssueDate, props.Text{Top: 15}),
		),
		col.New(6),
	)

	m.AddRow(8,
		text.NewCol(5, "Resident", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(7,
			text.NewCol(5, item.ResidentName, props.Text{Size: 9}),
			text.NewCol(5, item.Description, props.Text{Size: 9}),
			text.NewCol(2, item.Price, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

package pdf

import (
	"bytes"
	"context"
	"io"
)

type Provider interface {
	GenerateSupplierInvoice(ctx context.Context, data SupplierInvoiceData) (io.Reader, error)
	GenerateSalesInvoice(ctx context.Context, data SalesInvoiceData) (io.Reader, error)
}

// NoOpProvider renders empty documents. Callers read the result, so
// both methods return a usable reader.
type NoOpProvider struct{}

func (p *NoOpProvider) GenerateSupplierInvoice(ctx context.Context, data SupplierInvoiceData) (io.Reader, error) {
	return bytes.NewReader(nil), nil
}

func (p *NoOpProvider) GenerateSalesInvoice(ctx context.Context, data SalesInvoiceData) (io.Reader, error) {
	return bytes.NewReader(nil), nil
}

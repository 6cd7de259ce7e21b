package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
)

type ListSalesRequest struct {
	CareHomeID string
	VendorID   string
	Invoiced   *bool
}

type CreateSaleRequest struct {
	CareHomeID       string
	RosterResidentID string
	VendorID         string
	PriceItemID      string
	Description      string
	Price            decimal.Decimal
	Date             time.Time
}

// BulkSelection is one ticked box on the reconciliation sheet.
type BulkSelection struct {
	ResidentConsentID string `json:"residentConsentId"`
	PriceItemID       string `json:"priceItemId"`
}

type BulkReconcileRequest struct {
	CareHomeID string
	VendorID   string
	Date       time.Time
	Items      []BulkSelection
}

type InvoiceSalesRequest struct {
	CareHomeID string
	VendorID   string
	From       *time.Time
	To         *time.Time
	ToEmail    string
}

type InvoiceSalesResult struct {
	InvoiceNo string `json:"invoiceNo"`
	ItemCount int    `json:"itemCount"`
}

type MiscExpenseRequest struct {
	CareHomeID        string
	ResidentConsentID string
	Type              string
	Date              time.Time
	Description       string
	Amount            decimal.Decimal
}

type MiscExpenseResult struct {
	InvoiceNo  string `json:"invoiceNo"`
	SaleItemID string `json:"saleItemId"`
}

type Service interface {
	List(ctx context.Context, req ListSalesRequest) ([]SaleItemDetail, error)
	Create(ctx context.Context, req CreateSaleRequest) (SaleItem, error)
	Delete(ctx context.Context, id string) error
	// BulkReconcile replaces the selected residents' sale items for one
	// (home, vendor, day) sheet in a single transaction and returns how
	// many items it wrote.
	BulkReconcile(ctx context.Context, req BulkReconcileRequest) (int, error)
	// InvoiceSales renders and emails a PDF for the uninvoiced items,
	// then marks them invoiced.
	InvoiceSales(ctx context.Context, req InvoiceSalesRequest) (InvoiceSalesResult, error)
	// PreviewInvoice renders the same PDF without sending mail or
	// marking anything.
	PreviewInvoice(ctx context.Context, req InvoiceSalesRequest) ([]byte, string, error)
	// ListInvoices groups invoiced sale items by invoice number.
	ListInvoices(ctx context.Context, careHomeID, vendorID string) ([]SalesInvoice, error)

	MiscResidents(ctx context.Context, careHomeID string) ([]residentdomain.ResidentConsent, error)
	CreateMiscExpense(ctx context.Context, req MiscExpenseRequest) (MiscExpenseResult, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidCareHome    = errors.New("invalid_care_home")
	ErrInvalidVendor      = errors.New("invalid_vendor")
	ErrInvalidResident    = errors.New("invalid_resident")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidDate        = errors.New("invalid_date")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidExpenseType = errors.New("invalid_expense_type")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrNotFound           = errors.New("sale_item_not_found")
	ErrItemInvoiced       = errors.New("sale_item_already_invoiced")
	ErrHomeOrVendor       = errors.New("Care home or vendor not found")
	ErrNoItemsToInvoice   = errors.New("No items to invoice")
	ErrPriceItemInactive  = errors.New("price_item_inactive")
	ErrResidentNotLinked  = errors.New("resident is not linked to the roster")
)

package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	if filter.SupplierID != 0 {
		stmt = stmt.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.CareHomeID != 0 {
		stmt = stmt.Where("care_home_id = ?", filter.CareHomeID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		stmt = stmt.Where("issued_at >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("issued_at <= ?", *filter.To)
	}

	var invoices []domain.Invoice
	err := stmt.
		Order("issued_at desc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) CountByPrefix(ctx context.Context, db *gorm.DB, supplierID snowflake.ID, prefix string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("supplier_id = ? AND invoice_no LIKE ?", supplierID, prefix+"%").
		Count(&count).Error
	return count, err
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.InvoiceItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) InvoicedVisitItemIDs(ctx context.Context, db *gorm.DB, visitItemIDs []snowflake.ID) (map[snowflake.ID]bool, error) {
	invoiced := make(map[snowflake.ID]bool)
	if len(visitItemIDs) == 0 {
		return invoiced, nil
	}
	var ids []snowflake.ID
	err := db.WithContext(ctx).
		Model(&domain.InvoiceItem{}).
		Where("visit_item_id IN ?", visitItemIDs).
		Pluck("visit_item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		invoiced[id] = true
	}
	return invoiced, nil
}

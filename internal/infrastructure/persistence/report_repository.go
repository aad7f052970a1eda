package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements billing.ReportRepository using GORM.
// All sums are taken over the invoices' amount_paid column, which only the
// ledger writes; pending claims therefore never show up as money received.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// OutstandingByStudent returns one payer's balance across all invoices.
// Returns nil when the student has no invoices.
func (r *GormReportRepository) OutstandingByStudent(ctx context.Context, studentID uuid.UUID) (*billing.StudentBalance, error) {
	var result struct {
		StudentName string
		Invoiced    decimal.Decimal
		Paid        decimal.Decimal
		Count       int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("MAX(student_name) as student_name, COALESCE(SUM(total_amount), 0) as invoiced, COALESCE(SUM(amount_paid), 0) as paid, COUNT(*) as count").
		Where("student_id = ?", studentID).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	if result.Count == 0 {
		return nil, nil
	}

	return &billing.StudentBalance{
		StudentID:   studentID,
		StudentName: result.StudentName,
		Invoiced:    result.Invoiced,
		Paid:        result.Paid,
		Outstanding: result.Invoiced.Sub(result.Paid),
	}, nil
}

// OutstandingSummary returns totals and per-status counts across the ledger
func (r *GormReportRepository) OutstandingSummary(ctx context.Context) (*billing.OutstandingSummary, error) {
	var totals struct {
		Invoiced decimal.Decimal
		Paid     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(total_amount), 0) as invoiced, COALESCE(SUM(amount_paid), 0) as paid").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	summary := &billing.OutstandingSummary{
		TotalInvoiced:    totals.Invoiced,
		TotalPaid:        totals.Paid,
		TotalOutstanding: totals.Invoiced.Sub(totals.Paid),
	}

	type statusCount struct {
		Status billing.InvoiceStatus
		Count  int64
	}
	var counts []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		switch c.Status {
		case billing.InvoiceStatusPending:
			summary.PendingCount = c.Count
		case billing.InvoiceStatusPartiallyPaid:
			summary.PartiallyPaidCount = c.Count
		case billing.InvoiceStatusPaid:
			summary.PaidCount = c.Count
		}
	}

	return summary, nil
}

// StudentBalances returns per-payer balances for payers with outstanding invoices
func (r *GormReportRepository) StudentBalances(ctx context.Context, filter shared.Filter) ([]billing.StudentBalance, error) {
	type row struct {
		StudentID   uuid.UUID
		StudentName string
		Invoiced    decimal.Decimal
		Paid        decimal.Decimal
	}
	var rows []row

	query := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("student_id, MAX(student_name) as student_name, COALESCE(SUM(total_amount), 0) as invoiced, COALESCE(SUM(amount_paid), 0) as paid").
		Group("student_id").
		Having("COALESCE(SUM(total_amount), 0) > COALESCE(SUM(amount_paid), 0)").
		Order("student_name ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	balances := make([]billing.StudentBalance, len(rows))
	for i, r := range rows {
		balances[i] = billing.StudentBalance{
			StudentID:   r.StudentID,
			StudentName: r.StudentName,
			Invoiced:    r.Invoiced,
			Paid:        r.Paid,
			Outstanding: r.Invoiced.Sub(r.Paid),
		}
	}
	return balances, nil
}

package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
)

// ReportService provides read-only reporting over the ledger. All sums come
// from the invoices' authoritative amount_paid column; pending claims never
// count as money received.
type ReportService struct {
	reportRepo billing.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo billing.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// GetOutstandingByStudent returns one payer's balance across all invoices
func (s *ReportService) GetOutstandingByStudent(ctx context.Context, studentID uuid.UUID) (*billing.StudentBalance, error) {
	balance, err := s.reportRepo.OutstandingByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Student has no invoices")
	}
	return balance, nil
}

// GetOutstandingSummary returns totals and per-status counts across the ledger
func (s *ReportService) GetOutstandingSummary(ctx context.Context) (*billing.OutstandingSummary, error) {
	return s.reportRepo.OutstandingSummary(ctx)
}

// ListStudentBalances lists per-payer balances for payers with outstanding invoices
func (s *ReportService) ListStudentBalances(ctx context.Context, filter shared.Filter) ([]billing.StudentBalance, error) {
	return s.reportRepo.StudentBalances(ctx, filter)
}

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	StudentID *uuid.UUID     // Filter by student
	Status    *InvoiceStatus // Filter by settlement state
	FromDate  *time.Time     // Filter by issue date range start
	ToDate    *time.Time     // Filter by issue date range end
	DueFrom   *time.Time     // Filter by due date range start
	DueTo     *time.Time     // Filter by due date range end
	Overdue   *bool          // Filter only overdue invoices
}

// InvoiceRepository defines the read/write interface for invoice persistence.
// Mutations of the paid aggregate never go through Save directly; they go
// through the Ledger so the recompute happens inside the owning transaction.
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its human-readable invoice number
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindAll finds invoices matching the filter
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// FindByStudent finds invoices for a student
	FindByStudent(ctx context.Context, studentID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// CountByStatus counts invoices in a given settlement state
	CountByStatus(ctx context.Context, status InvoiceStatus) (int64, error)

	// ExistsByNumber reports whether an invoice number is already taken
	ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error)
}

// PaymentRepository defines the read interface for payment persistence.
// Writes happen through the Ledger.
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByInvoice finds all payments against an invoice, newest first
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)

	// FindPendingClaims finds unresolved claims awaiting verification, oldest first
	FindPendingClaims(ctx context.Context, filter shared.Filter) ([]Payment, error)

	// CountPendingClaims counts unresolved claims
	CountPendingClaims(ctx context.Context) (int64, error)
}

// Ledger executes the transactional read-modify-write cycles that keep an
// invoice's paid aggregate consistent with its payment rows. Every method is
// one atomic unit of work; the invoice row is locked while its effective
// payment sum is recomputed so concurrent writers serialize.
type Ledger interface {
	// CreateInvoice persists an invoice and its line items atomically.
	// Returns DUPLICATE_INVOICE_NUMBER if the invoice number is taken.
	CreateInvoice(ctx context.Context, invoice *Invoice) error

	// RecordPayment appends an effective payment to an invoice and updates the
	// invoice's paid aggregate and status in the same transaction. Returns the
	// updated invoice.
	RecordPayment(ctx context.Context, payment *Payment) (*Invoice, error)

	// SubmitClaim persists a pending claim. The invoice is read (not mutated)
	// to validate that it can still accept payment.
	SubmitClaim(ctx context.Context, claim *Payment) error

	// VerifyClaim resolves a pending claim. On APPROVE the payment flip and the
	// invoice aggregate update commit atomically; on REJECT only the payment is
	// touched. A resolved claim fails with ALREADY_PROCESSED. The invoice is
	// returned only when it was updated.
	VerifyClaim(ctx context.Context, paymentID uuid.UUID, decision VerifyDecision, actor uuid.UUID) (*Payment, *Invoice, error)
}

// OutstandingSummary aggregates the read side of the ledger
type OutstandingSummary struct {
	TotalInvoiced      decimal.Decimal `json:"total_invoiced"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	TotalOutstanding   decimal.Decimal `json:"total_outstanding"`
	PendingCount       int64           `json:"pending_count"`
	PartiallyPaidCount int64           `json:"partially_paid_count"`
	PaidCount          int64           `json:"paid_count"`
}

// StudentBalance is the outstanding position of one payer
type StudentBalance struct {
	StudentID   uuid.UUID       `json:"student_id"`
	StudentName string          `json:"student_name"`
	Invoiced    decimal.Decimal `json:"invoiced"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// ReportRepository defines read-only aggregation over the ledger.
// Sums are taken over the invoices' authoritative amount_paid; pending claims
// must never show up as money received.
type ReportRepository interface {
	// OutstandingByStudent returns one payer's balance across all invoices
	OutstandingByStudent(ctx context.Context, studentID uuid.UUID) (*StudentBalance, error)

	// OutstandingSummary returns totals and per-status counts across the ledger
	OutstandingSummary(ctx context.Context) (*OutstandingSummary, error)

	// StudentBalances returns per-payer balances for payers with outstanding invoices
	StudentBalances(ctx context.Context, filter shared.Filter) ([]StudentBalance, error)
}

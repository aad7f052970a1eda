package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/domain/shared/valueobject"
	"github.com/schoolerp/backend/internal/domain/student"
	"github.com/shopspring/decimal"
)

// invoiceNumberAttempts bounds regeneration when a generated number collides
// with an existing row's unique index.
const invoiceNumberAttempts = 5

// InvoiceService provides application-level invoice operations
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	studentRepo student.Repository
	ledger      billing.Ledger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	studentRepo student.Repository,
	ledger billing.Ledger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		studentRepo: studentRepo,
		ledger:      ledger,
	}
}

// InvoiceItemRequest represents one line item in an invoice creation request
type InvoiceItemRequest struct {
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

// CreateInvoiceRequest represents a request to create a single invoice
type CreateInvoiceRequest struct {
	StudentID uuid.UUID            `json:"student_id" binding:"required"`
	IssueDate *time.Time           `json:"issue_date"`
	DueDate   *time.Time           `json:"due_date"`
	Items     []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateInvoicesForCohortRequest represents a cohort billing run. An empty
// Level bills every active student.
type CreateInvoicesForCohortRequest struct {
	Level     string               `json:"level"`
	IssueDate *time.Time           `json:"issue_date"`
	DueDate   *time.Time           `json:"due_date"`
	Items     []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                uuid.UUID             `json:"id"`
	InvoiceNumber     string                `json:"invoice_number"`
	StudentID         uuid.UUID             `json:"student_id"`
	StudentName       string                `json:"student_name"`
	IssueDate         time.Time             `json:"issue_date"`
	DueDate           *time.Time            `json:"due_date,omitempty"`
	TotalAmount       decimal.Decimal       `json:"total_amount"`
	AmountPaid        decimal.Decimal       `json:"amount_paid"`
	OutstandingAmount decimal.Decimal       `json:"outstanding_amount"`
	Status            string                `json:"status"`
	Overdue           bool                  `json:"overdue"`
	Items             []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Version           int                   `json:"version"`
}

// BulkInvoiceFailure records one recipient a cohort run could not bill
type BulkInvoiceFailure struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	Code        string    `json:"code"`
	Message     string    `json:"message"`
}

// BulkInvoiceResult is the outcome of a cohort billing run. Each invoice
// commits independently, so a run can partially succeed.
type BulkInvoiceResult struct {
	Created []InvoiceResponse    `json:"created"`
	Failed  []BulkInvoiceFailure `json:"failed"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	Search    string     `form:"search"`
	StudentID *uuid.UUID `form:"student_id"`
	Status    string     `form:"status"`
	FromDate  *time.Time `form:"from_date"`
	ToDate    *time.Time `form:"to_date"`
	Overdue   *bool      `form:"overdue"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

func buildItems(reqs []InvoiceItemRequest) ([]billing.InvoiceItem, error) {
	items := make([]billing.InvoiceItem, 0, len(reqs))
	for _, r := range reqs {
		amount, err := valueobject.NewMoneyNGNFromString(r.Amount)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ITEM", "Item amount must be a decimal number")
		}
		item, err := billing.NewInvoiceItem(r.Description, amount)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// CreateInvoice creates a single invoice for a student. The invoice number is
// generated here and regenerated on collision with the unique index.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	payer, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if payer == nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student not found")
	}

	items, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	inv, err := billing.NewInvoice(
		billing.NewInvoiceNumber(issueDate),
		payer.ID,
		payer.FullName,
		issueDate,
		req.DueDate,
		items,
	)
	if err != nil {
		return nil, err
	}

	if err := s.persistWithNumberRetry(ctx, inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// persistWithNumberRetry writes the invoice, regenerating the invoice number a
// bounded number of times when the unique index reports a collision.
func (s *InvoiceService) persistWithNumberRetry(ctx context.Context, inv *billing.Invoice) error {
	var lastErr error
	for attempt := 0; attempt < invoiceNumberAttempts; attempt++ {
		if attempt > 0 {
			inv.InvoiceNumber = billing.NewInvoiceNumber(inv.IssueDate)
		}
		lastErr = s.ledger.CreateInvoice(ctx, inv)
		if lastErr == nil {
			return nil
		}
		var domainErr *shared.DomainError
		if !errors.As(lastErr, &domainErr) || domainErr.Code != "DUPLICATE_INVOICE_NUMBER" {
			return lastErr
		}
	}
	return lastErr
}

// CreateInvoicesForCohort bills every active student in a level (or every
// active student when no level is given). Each invoice is its own unit of
// work: one student failing never rolls back the others.
func (s *InvoiceService) CreateInvoicesForCohort(ctx context.Context, req CreateInvoicesForCohortRequest) (*BulkInvoiceResult, error) {
	if _, err := buildItems(req.Items); err != nil {
		return nil, err
	}

	var (
		recipients []student.Student
		err        error
	)
	if req.Level == "" {
		recipients, err = s.studentRepo.FindActive(ctx)
	} else {
		recipients, err = s.studentRepo.FindActiveByLevel(ctx, req.Level)
	}
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, shared.NewDomainError("NO_RECIPIENTS", "No active students match the cohort")
	}

	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	result := &BulkInvoiceResult{
		Created: make([]InvoiceResponse, 0, len(recipients)),
		Failed:  make([]BulkInvoiceFailure, 0),
	}

	for i := range recipients {
		payer := &recipients[i]

		// items are rebuilt per invoice so each one owns its line item IDs
		items, err := buildItems(req.Items)
		if err != nil {
			return nil, err
		}

		inv, err := billing.NewInvoice(
			billing.NewInvoiceNumber(issueDate),
			payer.ID,
			payer.FullName,
			issueDate,
			req.DueDate,
			items,
		)
		if err != nil {
			result.Failed = append(result.Failed, toBulkFailure(payer, err))
			continue
		}

		if err := s.persistWithNumberRetry(ctx, inv); err != nil {
			result.Failed = append(result.Failed, toBulkFailure(payer, err))
			continue
		}

		result.Created = append(result.Created, *toInvoiceResponse(inv))
	}

	return result, nil
}

func toBulkFailure(payer *student.Student, err error) BulkInvoiceFailure {
	failure := BulkInvoiceFailure{
		StudentID:   payer.ID,
		StudentName: payer.FullName,
		Code:        "INTERNAL_ERROR",
		Message:     err.Error(),
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		failure.Code = domainErr.Code
		failure.Message = domainErr.Message
	}
	return failure
}

// GetInvoice gets an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return toInvoiceResponse(inv), nil
}

// GetInvoiceByNumber gets an invoice by its invoice number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := billing.InvoiceFilter{
		StudentID: filter.StudentID,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
		Overdue:   filter.Overdue,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		status := billing.InvoiceStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", "Unknown invoice status")
		}
		domainFilter.Status = &status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *toInvoiceResponse(&invoices[i])
	}

	return responses, total, nil
}

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentService provides application-level payment and claim operations.
// All writes go through the ledger so the invoice aggregate and its payment
// rows move together.
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	invoiceRepo billing.InvoiceRepository
	ledger      billing.Ledger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	invoiceRepo billing.InvoiceRepository,
	ledger billing.Ledger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		ledger:      ledger,
	}
}

// RecordPaymentRequest represents a direct payment recorded by staff
type RecordPaymentRequest struct {
	InvoiceID   uuid.UUID  `json:"invoice_id" binding:"required"`
	Amount      string     `json:"amount" binding:"required"`
	Method      string     `json:"method" binding:"required"`
	Reference   string     `json:"reference"`
	PaymentDate *time.Time `json:"payment_date"`
}

// SubmitClaimRequest represents a payer-submitted payment claim
type SubmitClaimRequest struct {
	InvoiceID   uuid.UUID  `json:"invoice_id" binding:"required"`
	Amount      string     `json:"amount" binding:"required"`
	Method      string     `json:"method" binding:"required"`
	Reference   string     `json:"reference"`
	PaymentDate *time.Time `json:"payment_date"`
}

// VerifyClaimRequest represents an administrator's ruling on a pending claim
type VerifyClaimRequest struct {
	PaymentID uuid.UUID `json:"payment_id" binding:"required"`
	Decision  string    `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	ActorID   uuid.UUID `json:"actor_id" binding:"required"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference,omitempty"`
	Status      string          `json:"status"`
	VerifiedAt  *time.Time      `json:"verified_at,omitempty"`
	VerifiedBy  *uuid.UUID      `json:"verified_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// PaymentResult pairs a payment with the invoice state after the ledger
// applied it. Invoice is nil when the operation did not touch the invoice.
type PaymentResult struct {
	Payment *PaymentResponse `json:"payment"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
}

func parseAmount(raw string) (valueobject.Money, error) {
	amount, err := valueobject.NewMoneyNGNFromString(raw)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Amount must be a decimal number")
	}
	return amount, nil
}

func paymentDateOrNow(d *time.Time) time.Time {
	if d != nil {
		return *d
	}
	return time.Now()
}

// RecordPayment records an immediately effective payment against an invoice.
// The ledger locks the invoice row, recomputes the effective sum and updates
// the settlement state in the same transaction.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResult, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	payment, err := billing.NewDirectPayment(
		req.InvoiceID,
		amount,
		billing.PaymentMethod(req.Method),
		req.Reference,
		paymentDateOrNow(req.PaymentDate),
	)
	if err != nil {
		return nil, err
	}

	inv, err := s.ledger.RecordPayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	return &PaymentResult{
		Payment: toPaymentResponse(payment),
		Invoice: toInvoiceResponse(inv),
	}, nil
}

// SubmitClaim records a payer-submitted claim. The claim has no ledger effect
// until an administrator approves it.
func (s *PaymentService) SubmitClaim(ctx context.Context, req SubmitClaimRequest) (*PaymentResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	claim, err := billing.NewClaim(
		req.InvoiceID,
		amount,
		billing.PaymentMethod(req.Method),
		req.Reference,
		paymentDateOrNow(req.PaymentDate),
	)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.SubmitClaim(ctx, claim); err != nil {
		return nil, err
	}

	return toPaymentResponse(claim), nil
}

// VerifyClaim resolves a pending claim. Approval flips the payment and
// updates the invoice aggregate atomically; a claim that was already resolved
// fails with ALREADY_PROCESSED no matter which way it was resolved.
func (s *PaymentService) VerifyClaim(ctx context.Context, req VerifyClaimRequest) (*PaymentResult, error) {
	decision := billing.VerifyDecision(req.Decision)
	if !decision.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Decision must be APPROVE or REJECT")
	}

	payment, inv, err := s.ledger.VerifyClaim(ctx, req.PaymentID, decision, req.ActorID)
	if err != nil {
		return nil, err
	}

	result := &PaymentResult{Payment: toPaymentResponse(payment)}
	if inv != nil {
		result.Invoice = toInvoiceResponse(inv)
	}
	return result, nil
}

// GetPayment gets a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
	}
	return toPaymentResponse(payment), nil
}

// ListPaymentsForInvoice lists all payments recorded against one invoice
func (s *PaymentService) ListPaymentsForInvoice(ctx context.Context, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}

	payments, err := s.paymentRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = *toPaymentResponse(&payments[i])
	}
	return responses, nil
}

// ListPendingClaims lists unresolved claims awaiting verification
func (s *PaymentService) ListPendingClaims(ctx context.Context, filter shared.Filter) ([]PaymentResponse, int64, error) {
	claims, err := s.paymentRepo.FindPendingClaims(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.CountPendingClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(claims))
	for i := range claims {
		responses[i] = *toPaymentResponse(&claims[i])
	}
	return responses, total, nil
}

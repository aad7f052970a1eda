package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the verification state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"  // Claimed by the payer, awaiting verification
	PaymentStatusApproved PaymentStatus = "APPROVED" // Effective; contributes to the invoice aggregate
	PaymentStatusRejected PaymentStatus = "REJECTED" // Terminal; never contributes
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the payment has been resolved either way
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusApproved || s == PaymentStatusRejected
}

// PaymentMethod represents how the money moved
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard,
		PaymentMethodMobileMoney, PaymentMethodCheque, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// VerifyDecision is an administrator's ruling on a pending claim
type VerifyDecision string

const (
	VerifyDecisionApprove VerifyDecision = "APPROVE"
	VerifyDecisionReject  VerifyDecision = "REJECT"
)

// IsValid checks if the decision is valid
func (d VerifyDecision) IsValid() bool {
	return d == VerifyDecisionApprove || d == VerifyDecisionReject
}

// Payment is a single money-movement record against one invoice.
// Direct (trusted) payments are born APPROVED; payer-submitted claims are born
// PENDING and transition exactly once via Approve or Reject.
type Payment struct {
	shared.BaseAggregateRoot
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference,omitempty"`
	Status      PaymentStatus   `json:"status"`
	VerifiedAt  *time.Time      `json:"verified_at,omitempty"`
	VerifiedBy  *uuid.UUID      `json:"verified_by,omitempty"`
}

func newPayment(
	invoiceID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	reference string,
	paymentDate time.Time,
	status PaymentStatus,
) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Payment method %q is not valid", method))
	}
	if len(reference) > 100 {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Payment reference cannot exceed 100 characters")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		Amount:            amount.Amount(),
		PaymentDate:       paymentDate,
		Method:            method,
		Reference:         reference,
		Status:            status,
	}, nil
}

// NewDirectPayment creates an immediately effective payment recorded by a
// trusted caller. It is born APPROVED and needs no verification.
func NewDirectPayment(
	invoiceID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	reference string,
	paymentDate time.Time,
) (*Payment, error) {
	p, err := newPayment(invoiceID, amount, method, reference, paymentDate, PaymentStatusApproved)
	if err != nil {
		return nil, err
	}
	p.AddDomainEvent(NewPaymentRecordedEvent(p))
	return p, nil
}

// NewClaim creates a payer-submitted payment claim awaiting verification.
// It has no ledger effect until approved.
func NewClaim(
	invoiceID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	reference string,
	paymentDate time.Time,
) (*Payment, error) {
	p, err := newPayment(invoiceID, amount, method, reference, paymentDate, PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	p.AddDomainEvent(NewClaimSubmittedEvent(p))
	return p, nil
}

// IsEffective returns true if the payment contributes to its invoice's
// amount paid. Only approved payments ever do.
func (p *Payment) IsEffective() bool {
	return p.Status == PaymentStatusApproved
}

// Approve marks a pending claim as verified and effective. It is the
// idempotency guard for the whole workflow: a payment that has already been
// resolved cannot be approved a second time.
func (p *Payment) Approve(actor uuid.UUID) error {
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Verifying actor ID is required")
	}
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("ALREADY_PROCESSED", fmt.Sprintf("Payment has already been resolved as %s", p.Status))
	}

	now := time.Now()
	p.Status = PaymentStatusApproved
	p.VerifiedAt = &now
	p.VerifiedBy = &actor
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewClaimApprovedEvent(p))

	return nil
}

// Reject marks a pending claim as refused. Terminal; no ledger effect.
func (p *Payment) Reject(actor uuid.UUID) error {
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Verifying actor ID is required")
	}
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("ALREADY_PROCESSED", fmt.Sprintf("Payment has already been resolved as %s", p.Status))
	}

	now := time.Now()
	p.Status = PaymentStatusRejected
	p.VerifiedAt = &now
	p.VerifiedBy = &actor
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewClaimRejectedEvent(p))

	return nil
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(p.Amount)
}

// IsPendingClaim returns true if the payment is an unresolved claim
func (p *Payment) IsPendingClaim() bool {
	return p.Status == PaymentStatusPending
}

// IsRejected returns true if the claim was refused
func (p *Payment) IsRejected() bool {
	return p.Status == PaymentStatusRejected
}

// sumEffective sums the amounts of effective payments in the slice.
// Pending and rejected claims never count.
func sumEffective(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for i := range payments {
		if payments[i].IsEffective() {
			sum = sum.Add(payments[i].Amount)
		}
	}
	return sum
}

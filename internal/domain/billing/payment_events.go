package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentRecordedEvent is raised when a trusted caller records a direct payment
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID   uuid.UUID       `json:"payment_id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	PaymentDate time.Time       `json:"payment_date"`
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return "PaymentRecorded"
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentRecorded", "Payment", p.ID),
		PaymentID:       p.ID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		Method:          p.Method,
		PaymentDate:     p.PaymentDate,
	}
}

// ClaimSubmittedEvent is raised when a payer submits a payment claim
type ClaimSubmittedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	Reference string          `json:"reference,omitempty"`
}

// EventType returns the event type name
func (e *ClaimSubmittedEvent) EventType() string {
	return "ClaimSubmitted"
}

// NewClaimSubmittedEvent creates a new ClaimSubmittedEvent
func NewClaimSubmittedEvent(p *Payment) *ClaimSubmittedEvent {
	return &ClaimSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ClaimSubmitted", "Payment", p.ID),
		PaymentID:       p.ID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		Method:          p.Method,
		Reference:       p.Reference,
	}
}

// ClaimApprovedEvent is raised when an administrator approves a pending claim
type ClaimApprovedEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Amount     decimal.Decimal `json:"amount"`
	VerifiedBy uuid.UUID       `json:"verified_by"`
}

// EventType returns the event type name
func (e *ClaimApprovedEvent) EventType() string {
	return "ClaimApproved"
}

// NewClaimApprovedEvent creates a new ClaimApprovedEvent
func NewClaimApprovedEvent(p *Payment) *ClaimApprovedEvent {
	var actor uuid.UUID
	if p.VerifiedBy != nil {
		actor = *p.VerifiedBy
	}
	return &ClaimApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ClaimApproved", "Payment", p.ID),
		PaymentID:       p.ID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		VerifiedBy:      actor,
	}
}

// ClaimRejectedEvent is raised when an administrator rejects a pending claim
type ClaimRejectedEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Amount     decimal.Decimal `json:"amount"`
	VerifiedBy uuid.UUID       `json:"verified_by"`
}

// EventType returns the event type name
func (e *ClaimRejectedEvent) EventType() string {
	return "ClaimRejected"
}

// NewClaimRejectedEvent creates a new ClaimRejectedEvent
func NewClaimRejectedEvent(p *Payment) *ClaimRejectedEvent {
	var actor uuid.UUID
	if p.VerifiedBy != nil {
		actor = *p.VerifiedBy
	}
	return &ClaimRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ClaimRejected", "Payment", p.ID),
		PaymentID:       p.ID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		VerifiedBy:      actor,
	}
}

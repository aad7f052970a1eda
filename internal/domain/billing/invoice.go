package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the settlement state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "PENDING"        // No effective payment yet
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID" // 0 < paid < total
	InvoiceStatusPaid          InvoiceStatus = "PAID"           // paid >= total
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPartiallyPaid, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// DeriveInvoiceStatus derives the settlement state from the aggregate alone.
// Status is never patched incrementally; it is always a pure function of
// (total, paid) so concurrent writers cannot make it drift.
func DeriveInvoiceStatus(total, paid decimal.Decimal) InvoiceStatus {
	switch {
	case paid.IsZero() || paid.IsNegative():
		return InvoiceStatusPending
	case paid.GreaterThanOrEqual(total):
		return InvoiceStatusPaid
	default:
		return InvoiceStatusPartiallyPaid
	}
}

// InvoiceItem is a line item within an invoice.
// It is a value object owned by the Invoice aggregate.
type InvoiceItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewInvoiceItem creates a validated invoice line item
func NewInvoiceItem(description string, amount valueobject.Money) (*InvoiceItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_ITEM", fmt.Sprintf("Item %q amount must be positive", description))
	}
	return &InvoiceItem{
		ID:          uuid.New(),
		Description: description,
		Amount:      amount.Amount(),
	}, nil
}

// GetAmountMoney returns the item amount as Money
func (i *InvoiceItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(i.Amount)
}

// Invoice is the billing aggregate root. It owes its settlement state entirely
// to the sum of its effective payments; AmountPaid is a denormalized copy of
// that sum and is only ever written together with a fresh recomputation.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string          `json:"invoice_number"`
	StudentID     uuid.UUID       `json:"student_id"`
	StudentName   string          `json:"student_name"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Status        InvoiceStatus   `json:"status"`
	Items         []InvoiceItem   `json:"items"`
}

// NewInvoice creates a new invoice for a student with the given line items.
// The total is computed from the items; the invoice starts unpaid.
func NewInvoice(
	invoiceNumber string,
	studentID uuid.UUID,
	studentName string,
	issueDate time.Time,
	dueDate *time.Time,
	items []InvoiceItem,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student ID cannot be empty")
	}
	if studentName == "" {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student name cannot be empty")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ITEMS", "Invoice must have at least one line item")
	}

	total := decimal.Zero
	for i := range items {
		if items[i].Description == "" {
			return nil, shared.NewDomainError("INVALID_ITEM", "Item description cannot be empty")
		}
		if !items[i].Amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_ITEM", fmt.Sprintf("Item %q amount must be positive", items[i].Description))
		}
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		total = total.Add(items[i].Amount)
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		StudentID:         studentID,
		StudentName:       studentName,
		IssueDate:         issueDate,
		DueDate:           dueDate,
		TotalAmount:       total,
		AmountPaid:        decimal.Zero,
		Status:            InvoiceStatusPending,
		Items:             items,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// ApplyLedger updates the invoice's aggregate from a freshly recomputed sum of
// its effective payments. The caller must compute effectivePaid inside the same
// transaction that holds the invoice row, never from a previously read value.
func (inv *Invoice) ApplyLedger(effectivePaid decimal.Decimal) error {
	if effectivePaid.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Effective paid amount cannot be negative")
	}
	if effectivePaid.GreaterThan(inv.TotalAmount) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING", fmt.Sprintf(
			"Effective paid amount %s exceeds invoice total %s",
			effectivePaid.String(), inv.TotalAmount.String()))
	}

	previous := inv.Status
	inv.AmountPaid = effectivePaid
	inv.Status = DeriveInvoiceStatus(inv.TotalAmount, inv.AmountPaid)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	if inv.Status != previous {
		switch inv.Status {
		case InvoiceStatusPaid:
			inv.AddDomainEvent(NewInvoiceSettledEvent(inv))
		case InvoiceStatusPartiallyPaid:
			inv.AddDomainEvent(NewInvoicePartiallyPaidEvent(inv))
		}
	}

	return nil
}

// OutstandingAmount returns the remaining balance on the invoice
func (inv *Invoice) OutstandingAmount() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.AmountPaid)
}

// CanAcceptPayment returns true if the invoice still has an outstanding balance
func (inv *Invoice) CanAcceptPayment() bool {
	return inv.Status != InvoiceStatusPaid
}

// GetTotalAmountMoney returns the invoice total as Money
func (inv *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(inv.TotalAmount)
}

// GetAmountPaidMoney returns the paid aggregate as Money
func (inv *Invoice) GetAmountPaidMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(inv.AmountPaid)
}

// GetOutstandingMoney returns the remaining balance as Money
func (inv *Invoice) GetOutstandingMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(inv.OutstandingAmount())
}

// IsPending returns true if no effective payment has been applied
func (inv *Invoice) IsPending() bool {
	return inv.Status == InvoiceStatusPending
}

// IsPartiallyPaid returns true if the invoice is partially settled
func (inv *Invoice) IsPartiallyPaid() bool {
	return inv.Status == InvoiceStatusPartiallyPaid
}

// IsPaid returns true if the invoice is fully settled
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// IsOverdue returns true if the invoice is past its due date and not settled
func (inv *Invoice) IsOverdue() bool {
	if inv.Status == InvoiceStatusPaid {
		return false
	}
	if inv.DueDate == nil {
		return false
	}
	return time.Now().After(*inv.DueDate)
}

// ItemCount returns the number of line items
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// amount_paid is only ever written alongside a fresh recomputation of the
// effective payment sum, inside the transaction that holds the row lock.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_number"`
	StudentID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	StudentName   string                `gorm:"type:varchar(200);not null"`
	IssueDate     time.Time             `gorm:"not null;index"`
	DueDate       *time.Time            `gorm:"index"`
	TotalAmount   decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	AmountPaid    decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Items         []InvoiceItemModel    `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is the persistence model for invoice line items
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	items := make([]billing.InvoiceItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = billing.InvoiceItem{
			ID:          item.ID,
			Description: item.Description,
			Amount:      item.Amount,
		}
	}

	return &billing.Invoice{
		BaseAggregateRoot: m.toAggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		StudentID:         m.StudentID,
		StudentName:       m.StudentName,
		IssueDate:         m.IssueDate,
		DueDate:           m.DueDate,
		TotalAmount:       m.TotalAmount,
		AmountPaid:        m.AmountPaid,
		Status:            m.Status,
		Items:             items,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.StudentID = inv.StudentID
	m.StudentName = inv.StudentName
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.TotalAmount = inv.TotalAmount
	m.AmountPaid = inv.AmountPaid
	m.Status = inv.Status
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = InvoiceItemModel{
			ID:          item.ID,
			InvoiceID:   inv.ID,
			Description: item.Description,
			Amount:      item.Amount,
		}
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate root
type PaymentModel struct {
	AggregateModel
	InvoiceID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	PaymentDate time.Time             `gorm:"not null;index"`
	Method      billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	Reference   string                `gorm:"type:varchar(100)"`
	Status      billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	VerifiedAt  *time.Time
	VerifiedBy  *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.toAggregateRoot(),
		InvoiceID:         m.InvoiceID,
		Amount:            m.Amount,
		PaymentDate:       m.PaymentDate,
		Method:            m.Method,
		Reference:         m.Reference,
		Status:            m.Status,
		VerifiedAt:        m.VerifiedAt,
		VerifiedBy:        m.VerifiedBy,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.Method = p.Method
	m.Reference = p.Reference
	m.Status = p.Status
	m.VerifiedAt = p.VerifiedAt
	m.VerifiedBy = p.VerifiedBy
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

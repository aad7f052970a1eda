package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedger implements billing.Ledger using GORM. Every mutation runs inside
// one transaction that takes a FOR UPDATE lock on the invoice row before the
// effective payment sum is recomputed, so concurrent writers against the same
// invoice serialize instead of applying stale aggregates.
type GormLedger struct {
	db *gorm.DB
}

// NewGormLedger creates a new GormLedger
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// CreateInvoice persists an invoice and its line items atomically
func (l *GormLedger) CreateInvoice(ctx context.Context, invoice *billing.Invoice) error {
	return withTransientRetry(ctx, func() error {
		err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			model := models.InvoiceModelFromDomain(invoice)
			return tx.Create(model).Error
		})
		return translateWriteError(err)
	})
}

// RecordPayment appends an effective payment and settles the invoice aggregate
// in the same transaction
func (l *GormLedger) RecordPayment(ctx context.Context, payment *billing.Payment) (*billing.Invoice, error) {
	if !payment.IsEffective() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only approved payments can be recorded directly")
	}

	var updated *billing.Invoice
	err := withTransientRetry(ctx, func() error {
		return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			inv, err := l.lockInvoice(tx, payment.InvoiceID)
			if err != nil {
				return err
			}
			if payment.Amount.GreaterThan(inv.OutstandingAmount()) {
				return shared.NewDomainError("EXCEEDS_OUTSTANDING", "Payment exceeds the invoice's outstanding balance")
			}

			if err := tx.Create(models.PaymentModelFromDomain(payment)).Error; err != nil {
				return translateConstraint(err)
			}

			updated, err = l.settleInvoice(tx, inv)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SubmitClaim persists a pending claim. The invoice is read to validate that
// it can still accept payment; the aggregate itself is untouched.
func (l *GormLedger) SubmitClaim(ctx context.Context, claim *billing.Payment) error {
	if !claim.IsPendingClaim() {
		return shared.NewDomainError("INVALID_STATE", "Only pending claims can be submitted")
	}

	return withTransientRetry(ctx, func() error {
		return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			inv, err := l.lockInvoice(tx, claim.InvoiceID)
			if err != nil {
				return err
			}
			if !inv.CanAcceptPayment() {
				return shared.NewDomainError("INVALID_STATE", "Invoice is already settled")
			}
			if claim.Amount.GreaterThan(inv.OutstandingAmount()) {
				return shared.NewDomainError("EXCEEDS_OUTSTANDING", "Claim exceeds the invoice's outstanding balance")
			}

			if err := tx.Create(models.PaymentModelFromDomain(claim)).Error; err != nil {
				return translateConstraint(err)
			}
			return nil
		})
	})
}

// VerifyClaim resolves a pending claim. The payment row is locked first so a
// concurrent verification of the same claim blocks, re-reads the resolved
// status and fails with ALREADY_PROCESSED.
func (l *GormLedger) VerifyClaim(ctx context.Context, paymentID uuid.UUID, decision billing.VerifyDecision, actor uuid.UUID) (*billing.Payment, *billing.Invoice, error) {
	var (
		resolved *billing.Payment
		updated  *billing.Invoice
	)
	err := withTransientRetry(ctx, func() error {
		resolved, updated = nil, nil
		return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var paymentModel models.PaymentModel
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&paymentModel, "id = ?", paymentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return shared.NewDomainError("NOT_FOUND", "Payment not found")
				}
				return err
			}
			payment := paymentModel.ToDomain()

			switch decision {
			case billing.VerifyDecisionApprove:
				if err := payment.Approve(actor); err != nil {
					return err
				}
			case billing.VerifyDecisionReject:
				if err := payment.Reject(actor); err != nil {
					return err
				}
			default:
				return shared.NewDomainError("VALIDATION_ERROR", "Decision must be APPROVE or REJECT")
			}

			if payment.IsEffective() {
				// approval touches the invoice aggregate; lock it before the
				// payment flip becomes visible to the recompute
				inv, err := l.lockInvoice(tx, payment.InvoiceID)
				if err != nil {
					return err
				}
				if payment.Amount.GreaterThan(inv.OutstandingAmount()) {
					return shared.NewDomainError("EXCEEDS_OUTSTANDING", "Approving this claim would overpay the invoice")
				}

				if err := l.savePayment(tx, payment); err != nil {
					return err
				}

				updated, err = l.settleInvoice(tx, inv)
				if err != nil {
					return err
				}
			} else {
				if err := l.savePayment(tx, payment); err != nil {
					return err
				}
			}

			resolved = payment
			return nil
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return resolved, updated, nil
}

// lockInvoice reads the invoice row FOR UPDATE with its items
func (l *GormLedger) lockInvoice(tx *gorm.DB, invoiceID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		First(&model, "id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// sumEffectivePayments recomputes the effective payment sum from the payment
// rows visible to this transaction
func (l *GormLedger) sumEffectivePayments(tx *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := tx.
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("invoice_id = ? AND status = ?", invoiceID, billing.PaymentStatusApproved).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// settleInvoice recomputes the aggregate off the locked row and writes the
// new amount_paid, status and version back
func (l *GormLedger) settleInvoice(tx *gorm.DB, inv *billing.Invoice) (*billing.Invoice, error) {
	effectivePaid, err := l.sumEffectivePayments(tx, inv.ID)
	if err != nil {
		return nil, err
	}
	if err := inv.ApplyLedger(effectivePaid); err != nil {
		return nil, err
	}

	result := tx.Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", inv.ID, inv.Version-1).
		Updates(map[string]any{
			"amount_paid": inv.AmountPaid,
			"status":      inv.Status,
			"version":     inv.Version,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The invoice has been modified by another transaction")
	}
	return inv, nil
}

// savePayment writes a resolved payment back with its version check
func (l *GormLedger) savePayment(tx *gorm.DB, payment *billing.Payment) error {
	result := tx.Model(&models.PaymentModel{}).
		Where("id = ? AND version = ?", payment.ID, payment.Version-1).
		Updates(map[string]any{
			"status":      payment.Status,
			"verified_at": payment.VerifiedAt,
			"verified_by": payment.VerifiedBy,
			"version":     payment.Version,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The payment has been modified by another transaction")
	}
	return nil
}

// translateConstraint maps payment write constraint errors
func translateConstraint(err error) error {
	if isConstraintViolation(err) || isUniqueViolation(err) {
		return shared.NewDomainError("CONSTRAINT_VIOLATION", "Write violated a store constraint")
	}
	return err
}

package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLedgerInvoice(t *testing.T, total, paid string) *billing.Invoice {
	t.Helper()
	amount, err := valueobject.NewMoneyNGNFromString(total)
	require.NoError(t, err)
	item, err := billing.NewInvoiceItem("Tuition", amount)
	require.NoError(t, err)

	inv, err := billing.NewInvoice("INV-2026-000042", uuid.New(), "Adaeze Okafor", time.Now(), nil, []billing.InvoiceItem{*item})
	require.NoError(t, err)
	if paid != "0" {
		require.NoError(t, inv.ApplyLedger(decimal.RequireFromString(paid)))
	}
	return inv
}

func newPaymentService() (*PaymentService, *MockPaymentRepository, *MockInvoiceRepository, *MockLedger) {
	paymentRepo := new(MockPaymentRepository)
	invoiceRepo := new(MockInvoiceRepository)
	ledger := new(MockLedger)
	return NewPaymentService(paymentRepo, invoiceRepo, ledger), paymentRepo, invoiceRepo, ledger
}

func TestPaymentService_RecordPayment_PartialSettlement(t *testing.T) {
	svc, _, _, ledger := newPaymentService()

	inv := newLedgerInvoice(t, "50000.00", "20000.00")
	ledger.On("RecordPayment", mock.Anything, mock.MatchedBy(func(p *billing.Payment) bool {
		return p.IsEffective() && p.Amount.Equal(decimal.RequireFromString("20000.00"))
	})).Return(inv, nil)

	result, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    "20000.00",
		Method:    "CASH",
	})

	require.NoError(t, err)
	assert.Equal(t, string(billing.PaymentStatusApproved), result.Payment.Status)
	require.NotNil(t, result.Invoice)
	assert.Equal(t, string(billing.InvoiceStatusPartiallyPaid), result.Invoice.Status)
	assert.Equal(t, "30000", result.Invoice.OutstandingAmount.String())
}

func TestPaymentService_RecordPayment_FullSettlement(t *testing.T) {
	svc, _, _, ledger := newPaymentService()

	inv := newLedgerInvoice(t, "50000.00", "50000.00")
	ledger.On("RecordPayment", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(inv, nil)

	result, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    "50000.00",
		Method:    "BANK_TRANSFER",
		Reference: "TRF/2026/0042",
	})

	require.NoError(t, err)
	assert.Equal(t, string(billing.InvoiceStatusPaid), result.Invoice.Status)
	assert.True(t, result.Invoice.OutstandingAmount.IsZero())
}

func TestPaymentService_RecordPayment_InvalidAmount(t *testing.T) {
	svc, _, _, ledger := newPaymentService()

	tests := []struct {
		name   string
		amount string
		code   string
	}{
		{"not a number", "fifty", "INVALID_AMOUNT"},
		{"zero", "0", "INVALID_AMOUNT"},
		{"negative", "-100.00", "INVALID_AMOUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
				InvoiceID: uuid.New(),
				Amount:    tt.amount,
				Method:    "CASH",
			})
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
	ledger.AssertNotCalled(t, "RecordPayment")
}

func TestPaymentService_RecordPayment_ExceedsOutstanding(t *testing.T) {
	svc, _, _, ledger := newPaymentService()

	ledger.On("RecordPayment", mock.Anything, mock.AnythingOfType("*billing.Payment")).
		Return(nil, shared.NewDomainError("EXCEEDS_OUTSTANDING", "Payment exceeds outstanding balance"))

	_, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID: uuid.New(),
		Amount:    "999999.00",
		Method:    "CASH",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXCEEDS_OUTSTANDING", domainErr.Code)
}

func TestPaymentService_SubmitClaim(t *testing.T) {
	svc, _, _, ledger := newPaymentService()

	invoiceID := uuid.New()
	ledger.On("SubmitClaim", mock.Anything, mock.MatchedBy(func(p *billing.Payment) bool {
		return p.IsPendingClaim() && p.InvoiceID == invoiceID
	})).Return(nil)

	resp, err := svc.SubmitClaim(context.Background(), SubmitClaimRequest{
		InvoiceID: invoiceID,
		Amount:    "20000.00",
		Method:    "BANK_TRANSFER",
		Reference: "TRF/2026/0099",
	})

	require.NoError(t, err)
	assert.Equal(t, string(billing.PaymentStatusPending), resp.Status)
	assert.Nil(t, resp.VerifiedAt)
	// a pending claim carries no invoice update
	ledger.AssertNotCalled(t, "RecordPayment")
}

func TestPaymentService_VerifyClaim_Approve(t *testing.T) {
	svc, _, _, ledger := newPaymentService()

	amount, err := valueobject.NewMoneyNGNFromString("20000.00")
	require.NoError(t, err)
	claim, err := billing.NewClaim(uuid.New(), amount, billing.PaymentMethodBankTransfer, "TRF/2026/0099", time.Now())
	require.NoError(t, err)
	actor := uuid.New()
	require.NoError(t, claim.Approve(actor))

	inv := newLedgerInvoice(t, "50000.00", "20000.00")
	ledger.On("VerifyClaim", mock.Anything, claim.ID, billing.VerifyDecisionApprove, actor).
		Return(claim, inv, nil)

	result, err := svc.VerifyClaim(context.Background(), VerifyClaimRequest{
		PaymentID: claim.ID,
		Decision:  "APPROVE",
		ActorID:   actor,
	})

	require.NoError(t, err)
	assert.Equal(t, string(billing.PaymentStatusApproved), result.Payment.Status)
	require.NotNil(t, result.Invoice)
	assert.Equal(t, string(billing.InvoiceStatusPartiallyPaid), result.Invoice.Status)
}

func TestPaymentService_VerifyClaim_Reject(t *testing.T) {
	svc, _, _, ledger := newPaymentService()

	amount, err := valueobject.NewMoneyNGNFromString("20000.00")
	require.NoError(t, err)
	claim, err := billing.NewClaim(uuid.New(), amount, billing.PaymentMethodBankTransfer, "", time.Now())
	require.NoError(t, err)
	actor := uuid.New()
	require.NoError(t, claim.Reject(actor))

	ledger.On("VerifyClaim", mock.Anything, claim.ID, billing.VerifyDecisionReject, actor).
		Return(claim, nil, nil)

	result, err := svc.VerifyClaim(context.Background(), VerifyClaimRequest{
		PaymentID: claim.ID,
		Decision:  "REJECT",
		ActorID:   actor,
	})

	require.NoError(t, err)
	assert.Equal(t, string(billing.PaymentStatusRejected), result.Payment.Status)
	assert.Nil(t, result.Invoice)
}

func TestPaymentService_VerifyClaim_AlreadyProcessed(t *testing.T) {
	svc, _, _, ledger := newPaymentService()

	paymentID := uuid.New()
	actor := uuid.New()
	ledger.On("VerifyClaim", mock.Anything, paymentID, billing.VerifyDecisionApprove, actor).
		Return(nil, nil, shared.NewDomainError("ALREADY_PROCESSED", "Payment has already been resolved as APPROVED"))

	_, err := svc.VerifyClaim(context.Background(), VerifyClaimRequest{
		PaymentID: paymentID,
		Decision:  "APPROVE",
		ActorID:   actor,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_PROCESSED", domainErr.Code)
}

func TestPaymentService_VerifyClaim_BadDecision(t *testing.T) {
	svc, _, _, ledger := newPaymentService()

	_, err := svc.VerifyClaim(context.Background(), VerifyClaimRequest{
		PaymentID: uuid.New(),
		Decision:  "MAYBE",
		ActorID:   uuid.New(),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	ledger.AssertNotCalled(t, "VerifyClaim")
}

func TestPaymentService_ListPaymentsForInvoice(t *testing.T) {
	svc, paymentRepo, invoiceRepo, _ := newPaymentService()

	inv := newLedgerInvoice(t, "50000.00", "0")
	amount, err := valueobject.NewMoneyNGNFromString("20000.00")
	require.NoError(t, err)
	p1, err := billing.NewDirectPayment(inv.ID, amount, billing.PaymentMethodCash, "", time.Now())
	require.NoError(t, err)
	p2, err := billing.NewClaim(inv.ID, amount, billing.PaymentMethodBankTransfer, "TRF/1", time.Now())
	require.NoError(t, err)

	invoiceRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)
	paymentRepo.On("FindByInvoice", mock.Anything, inv.ID).Return([]billing.Payment{*p1, *p2}, nil)

	responses, err := svc.ListPaymentsForInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, string(billing.PaymentStatusApproved), responses[0].Status)
	assert.Equal(t, string(billing.PaymentStatusPending), responses[1].Status)
}

func TestPaymentService_ListPaymentsForInvoice_InvoiceNotFound(t *testing.T) {
	svc, _, invoiceRepo, _ := newPaymentService()

	id := uuid.New()
	invoiceRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.ListPaymentsForInvoice(context.Background(), id)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestPaymentService_ListPendingClaims(t *testing.T) {
	svc, paymentRepo, _, _ := newPaymentService()

	amount, err := valueobject.NewMoneyNGNFromString("20000.00")
	require.NoError(t, err)
	claim, err := billing.NewClaim(uuid.New(), amount, billing.PaymentMethodMobileMoney, "", time.Now())
	require.NoError(t, err)

	paymentRepo.On("FindPendingClaims", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]billing.Payment{*claim}, nil)
	paymentRepo.On("CountPendingClaims", mock.Anything).Return(int64(1), nil)

	claims, total, err := svc.ListPendingClaims(context.Background(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, claims, 1)
	assert.Equal(t, string(billing.PaymentStatusPending), claims[0].Status)
}

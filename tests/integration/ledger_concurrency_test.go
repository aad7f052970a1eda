// Package integration concurrency tests for the billing ledger. These drive
// two real database sessions against the same invoice to verify that the
// FOR UPDATE lock plus sum recompute keeps the paid aggregate exact under
// contention.
package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/domain/shared/valueobject"
	"github.com/schoolerp/backend/internal/infrastructure/persistence"
)

type ledgerTestSetup struct {
	DB          *TestDB
	Ledger      *persistence.GormLedger
	InvoiceRepo billing.InvoiceRepository
	PaymentRepo billing.PaymentRepository
	StudentID   uuid.UUID
}

func newLedgerTestSetup(t *testing.T) *ledgerTestSetup {
	t.Helper()

	testDB := NewTestDB(t)

	studentID := uuid.New()
	testDB.CreateTestStudent(studentID, "Adaeze Okafor")

	return &ledgerTestSetup{
		DB:          testDB,
		Ledger:      persistence.NewGormLedger(testDB.DB),
		InvoiceRepo: persistence.NewGormInvoiceRepository(testDB.DB),
		PaymentRepo: persistence.NewGormPaymentRepository(testDB.DB),
		StudentID:   studentID,
	}
}

func (s *ledgerTestSetup) createInvoice(t *testing.T, number, total string) *billing.Invoice {
	t.Helper()

	item, err := billing.NewInvoiceItem("Tuition", integrationMoney(t, total))
	require.NoError(t, err)
	inv, err := billing.NewInvoice(number, s.StudentID, "Adaeze Okafor", time.Now(), nil, []billing.InvoiceItem{*item})
	require.NoError(t, err)
	require.NoError(t, s.Ledger.CreateInvoice(context.Background(), inv))
	return inv
}

func integrationMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyNGNFromString(s)
	require.NoError(t, err)
	return m
}

// Two writers record payments against the same invoice at the same time. The
// second writer must see the first writer's committed payment when it
// recomputes, so neither update is lost.
func TestLedger_ConcurrentPayments_NoLostUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newLedgerTestSetup(t)
	inv := setup.createInvoice(t, "INV-2026-000501", "10000.00")

	amounts := []string{"3000.00", "2500.00"}
	errs := make([]error, len(amounts))
	var wg sync.WaitGroup

	for i, amt := range amounts {
		wg.Add(1)
		go func(i int, amt string) {
			defer wg.Done()
			payment, err := billing.NewDirectPayment(
				inv.ID, integrationMoney(t, amt), billing.PaymentMethodBankTransfer, "", time.Now())
			if err != nil {
				errs[i] = err
				return
			}
			_, errs[i] = setup.Ledger.RecordPayment(context.Background(), payment)
		}(i, amt)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d failed", i)
	}

	final, err := setup.InvoiceRepo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	require.NotNil(t, final)

	assert.True(t, final.AmountPaid.Equal(decimal.RequireFromString("5500.00")),
		"amount paid must equal the sum of both payments, got %s", final.AmountPaid)
	assert.Equal(t, billing.InvoiceStatusPartiallyPaid, final.Status)
	assert.Equal(t, 3, final.Version, "each settle must bump the version")

	payments, err := setup.PaymentRepo.FindByInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

// A payment that settles the invoice exactly must flip it to PAID even when it
// races another writer.
func TestLedger_ConcurrentPayments_SettleToPaid(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newLedgerTestSetup(t)
	inv := setup.createInvoice(t, "INV-2026-000502", "5000.00")

	amounts := []string{"2000.00", "3000.00"}
	errs := make([]error, len(amounts))
	var wg sync.WaitGroup

	for i, amt := range amounts {
		wg.Add(1)
		go func(i int, amt string) {
			defer wg.Done()
			payment, err := billing.NewDirectPayment(
				inv.ID, integrationMoney(t, amt), billing.PaymentMethodCash, "", time.Now())
			if err != nil {
				errs[i] = err
				return
			}
			_, errs[i] = setup.Ledger.RecordPayment(context.Background(), payment)
		}(i, amt)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d failed", i)
	}

	final, err := setup.InvoiceRepo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	require.NotNil(t, final)
	assert.True(t, final.AmountPaid.Equal(decimal.RequireFromString("5000.00")))
	assert.Equal(t, billing.InvoiceStatusPaid, final.Status)
}

// Two verifiers race to resolve the same claim. The payment row lock makes the
// loser re-read the resolved row, so exactly one approval lands.
func TestLedger_ConcurrentVerify_SameClaimResolvesOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	setup := newLedgerTestSetup(t)
	inv := setup.createInvoice(t, "INV-2026-000503", "8000.00")

	claim, err := billing.NewClaim(inv.ID, integrationMoney(t, "4000.00"), billing.PaymentMethodMobileMoney, "MM/77", time.Now())
	require.NoError(t, err)
	require.NoError(t, setup.Ledger.SubmitClaim(context.Background(), claim))

	actor := uuid.New()
	errs := make([]error, 2)
	var wg sync.WaitGroup

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = setup.Ledger.VerifyClaim(context.Background(), claim.ID, billing.VerifyDecisionApprove, actor)
		}(i)
	}
	wg.Wait()

	var succeeded, alreadyProcessed int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_PROCESSED", domainErr.Code)
		alreadyProcessed++
	}
	assert.Equal(t, 1, succeeded, "exactly one verifier must win")
	assert.Equal(t, 1, alreadyProcessed)

	final, err := setup.InvoiceRepo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	require.NotNil(t, final)
	assert.True(t, final.AmountPaid.Equal(decimal.RequireFromString("4000.00")),
		"the approved claim must count exactly once, got %s", final.AmountPaid)
	assert.Equal(t, billing.InvoiceStatusPartiallyPaid, final.Status)
}

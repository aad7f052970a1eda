package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/domain/student"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByStudent(ctx context.Context, studentID uuid.UUID, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	args := m.Called(ctx, studentID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByStatus(ctx context.Context, status billing.InvoiceStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPendingClaims(ctx context.Context, filter shared.Filter) ([]billing.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountPendingClaims(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*student.Student, error) {
	args := m.Called(ctx, admissionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context, filter student.Filter) ([]student.Student, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindActive(ctx context.Context) ([]student.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindActiveByLevel(ctx context.Context, level string) ([]student.Student, error) {
	args := m.Called(ctx, level)
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStudentRepository) Count(ctx context.Context, filter student.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepository) Save(ctx context.Context, s *student.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) CreateInvoice(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockLedger) RecordPayment(ctx context.Context, payment *billing.Payment) (*billing.Invoice, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockLedger) SubmitClaim(ctx context.Context, claim *billing.Payment) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockLedger) VerifyClaim(ctx context.Context, paymentID uuid.UUID, decision billing.VerifyDecision, actor uuid.UUID) (*billing.Payment, *billing.Invoice, error) {
	args := m.Called(ctx, paymentID, decision, actor)
	var payment *billing.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*billing.Payment)
	}
	var invoice *billing.Invoice
	if args.Get(1) != nil {
		invoice = args.Get(1).(*billing.Invoice)
	}
	return payment, invoice, args.Error(2)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) OutstandingByStudent(ctx context.Context, studentID uuid.UUID) (*billing.StudentBalance, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.StudentBalance), args.Error(1)
}

func (m *MockReportRepository) OutstandingSummary(ctx context.Context) (*billing.OutstandingSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.OutstandingSummary), args.Error(1)
}

func (m *MockReportRepository) StudentBalances(ctx context.Context, filter shared.Filter) ([]billing.StudentBalance, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.StudentBalance), args.Error(1)
}

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a gorm DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func invoiceColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version",
		"invoice_number", "student_id", "student_name",
		"issue_date", "due_date", "total_amount", "amount_paid", "status",
	}
}

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	t.Run("finds existing invoice with items", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		invoiceID := uuid.New()
		studentID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(invoiceColumns()).
			AddRow(invoiceID, now, now, 1,
				"INV-2026-000042", studentID, "Adaeze Okafor",
				now, nil, decimal.RequireFromString("50000.00"), decimal.RequireFromString("20000.00"), "PARTIALLY_PAID")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(rows)

		itemRows := sqlmock.NewRows([]string{"id", "invoice_id", "description", "amount", "created_at"}).
			AddRow(uuid.New(), invoiceID, "Tuition", decimal.RequireFromString("50000.00"), now)
		mock.ExpectQuery(`SELECT \* FROM "invoice_items" WHERE "invoice_items"\."invoice_id" = \$1`).
			WithArgs(invoiceID).
			WillReturnRows(itemRows)

		inv, err := repo.FindByID(context.Background(), invoiceID)

		require.NoError(t, err)
		require.NotNil(t, inv)
		assert.Equal(t, "INV-2026-000042", inv.InvoiceNumber)
		assert.Equal(t, billing.InvoiceStatusPartiallyPaid, inv.Status)
		assert.True(t, inv.OutstandingAmount().Equal(decimal.RequireFromString("30000.00")))
		require.Len(t, inv.Items, 1)
		assert.Equal(t, "Tuition", inv.Items[0].Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for missing invoice", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		invoiceID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		inv, err := repo.FindByID(context.Background(), invoiceID)

		assert.NoError(t, err)
		assert.Nil(t, inv)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_CountByStatus(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormInvoiceRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE status = \$1`).
		WithArgs("PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByStatus(context.Background(), billing.InvoiceStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInvoiceRepository_ExistsByNumber(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormInvoiceRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE invoice_number = \$1`).
		WithArgs("INV-2026-000042").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByNumber(context.Background(), "INV-2026-000042")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/schoolerp/backend/internal/domain/shared"
)

// Postgres SQLSTATE codes the ledger cares about.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// transientAttempts bounds automatic retries of a transaction that failed
// with a serialization or deadlock error.
const transientAttempts = 3

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isConstraintViolation(err error) bool {
	switch pgErrorCode(err) {
	case pgForeignKeyViolation, pgCheckViolation:
		return true
	}
	return false
}

func isTransient(err error) bool {
	switch pgErrorCode(err) {
	case pgSerializationFailure, pgDeadlockDetected:
		return true
	}
	return false
}

// withTransientRetry runs fn, retrying a bounded number of times when the
// store reports a serialization failure or deadlock. Domain errors pass
// through untouched; an exhausted retry budget surfaces as TRANSIENT_STORE.
func withTransientRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < transientAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil || !isTransient(lastErr) {
			return lastErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return shared.NewDomainError("TRANSIENT_STORE", "Store conflict persisted across retries")
}

// translateWriteError maps low-level store errors onto the domain taxonomy
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return shared.NewDomainError("DUPLICATE_INVOICE_NUMBER", "Invoice number already exists")
	}
	if isConstraintViolation(err) {
		return shared.NewDomainError("CONSTRAINT_VIOLATION", "Write violated a store constraint")
	}
	return err
}

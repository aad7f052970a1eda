package billing

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceNumberFor(t *testing.T) {
	issue := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV-2026-000007", InvoiceNumberFor(issue, 7))
	assert.Equal(t, "INV-2026-999999", InvoiceNumberFor(issue, 999999))
}

func TestNewInvoiceNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-2026-\d{6}$`)
	issue := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		n := NewInvoiceNumber(issue)
		assert.True(t, pattern.MatchString(n), "unexpected invoice number %q", n)
	}
}

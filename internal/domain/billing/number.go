package billing

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// invoiceNumberSuffixSpace is the size of the random suffix space.
// Collisions are possible; callers must rely on the store's unique constraint
// and regenerate on violation.
const invoiceNumberSuffixSpace = 1_000_000

// InvoiceNumberFor builds an invoice number for the given issue date and suffix.
// Format: INV-<year>-<6-digit suffix>.
func InvoiceNumberFor(issueDate time.Time, suffix int) string {
	return fmt.Sprintf("INV-%d-%06d", issueDate.Year(), suffix%invoiceNumberSuffixSpace)
}

// NewInvoiceNumber draws a fresh random invoice number for the given issue date.
func NewInvoiceNumber(issueDate time.Time) string {
	return InvoiceNumberFor(issueDate, rand.IntN(invoiceNumberSuffixSpace))
}

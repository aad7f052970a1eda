// Package billing provides domain models for the school fee ledger.
//
// This package implements the billing bounded context, which is responsible for:
//   - Issuing invoices with line items to enrolled students
//   - Recording direct payments and payer-submitted payment claims
//   - Verifying claims through a two-phase submit/verify workflow
//   - Keeping invoice settlement status consistent with the effective payment sum
//
// Key Aggregates:
//   - Invoice: A bill issued to a student, with line items and a settlement status
//   - Payment: A payment or payment claim applied against one invoice
//
// Settlement status is never adjusted incrementally. Whenever a payment is
// recorded or a claim is verified, the effective payment sum is recomputed
// from the payment rows and the invoice is resettled from that sum.
package billing

package billing

import (
	"github.com/schoolerp/backend/internal/domain/billing"
)

func toInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Amount:      item.Amount,
		}
	}

	return &InvoiceResponse{
		ID:                inv.ID,
		InvoiceNumber:     inv.InvoiceNumber,
		StudentID:         inv.StudentID,
		StudentName:       inv.StudentName,
		IssueDate:         inv.IssueDate,
		DueDate:           inv.DueDate,
		TotalAmount:       inv.TotalAmount,
		AmountPaid:        inv.AmountPaid,
		OutstandingAmount: inv.OutstandingAmount(),
		Status:            string(inv.Status),
		Overdue:           inv.IsOverdue(),
		Items:             items,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
		Version:           inv.Version,
	}
}

func toPaymentResponse(p *billing.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      string(p.Method),
		Reference:   p.Reference,
		Status:      string(p.Status),
		VerifiedAt:  p.VerifiedAt,
		VerifiedBy:  p.VerifiedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

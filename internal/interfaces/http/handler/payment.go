package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/schoolerp/backend/internal/application/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
)

// PaymentHandler handles payment and claim API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// VerifyClaimBody is the request body for verifying a claim. The payment ID
// comes from the URL path.
type VerifyClaimBody struct {
	Decision string    `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	ActorID  uuid.UUID `json:"actor_id" binding:"required"`
}

// RecordPayment godoc
// @Summary      Record a payment
// @Description  Record an immediately effective payment against an invoice. The invoice's paid amount and settlement status are updated in the same transaction.
// @Tags         billing-payments
// @Accept       json
// @Produce      json
// @Param        request body billingapp.RecordPaymentRequest true "Payment data"
// @Success      201 {object} dto.Response{data=billingapp.PaymentResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetPayment godoc
// @Summary      Get payment by ID
// @Tags         billing-payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// ListPaymentsForInvoice godoc
// @Summary      List payments for an invoice
// @Description  Retrieve all payments and claims recorded against an invoice, newest first
// @Tags         billing-payments
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]billingapp.PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/invoices/{id}/payments [get]
func (h *PaymentHandler) ListPaymentsForInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	payments, err := h.paymentService.ListPaymentsForInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// SubmitClaim godoc
// @Summary      Submit a payment claim
// @Description  Submit a payer-reported payment for later verification. The claim does not affect the invoice balance until approved.
// @Tags         billing-claims
// @Accept       json
// @Produce      json
// @Param        request body billingapp.SubmitClaimRequest true "Claim data"
// @Success      201 {object} dto.Response{data=billingapp.PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/claims [post]
func (h *PaymentHandler) SubmitClaim(c *gin.Context) {
	var req billingapp.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	claim, err := h.paymentService.SubmitClaim(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, claim)
}

// VerifyClaim godoc
// @Summary      Verify a payment claim
// @Description  Approve or reject a pending claim. Approval applies the claim to the invoice balance. A claim can be verified exactly once.
// @Tags         billing-claims
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body VerifyClaimBody true "Verification decision"
// @Success      200 {object} dto.Response{data=billingapp.PaymentResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/claims/{id}/verify [post]
func (h *PaymentHandler) VerifyClaim(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var body VerifyClaimBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.VerifyClaim(c.Request.Context(), billingapp.VerifyClaimRequest{
		PaymentID: paymentID,
		Decision:  body.Decision,
		ActorID:   body.ActorID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListPendingClaims godoc
// @Summary      List pending claims
// @Description  Retrieve the verification queue of unresolved claims, oldest first
// @Tags         billing-claims
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]billingapp.PaymentResponse,meta=dto.Meta}
// @Router       /billing/claims/pending [get]
func (h *PaymentHandler) ListPendingClaims(c *gin.Context) {
	var page struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	if page.Page > 0 {
		filter.Page = page.Page
	}
	if page.PageSize > 0 {
		filter.PageSize = page.PageSize
	}

	claims, total, err := h.paymentService.ListPendingClaims(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, claims, total, filter.Page, filter.PageSize)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/schoolerp/backend/internal/application/billing"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// CreateInvoice godoc
// @Summary      Create an invoice
// @Description  Create a single invoice for a student with one or more line items
// @Tags         billing-invoices
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CreateInvoiceRequest true "Invoice data"
// @Success      201 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// CreateInvoicesForCohort godoc
// @Summary      Create invoices for a cohort
// @Description  Bill every active student, or every active student at a level, with the same line items. Each invoice commits independently so the run can partially succeed.
// @Tags         billing-invoices
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CreateInvoicesForCohortRequest true "Cohort billing data"
// @Success      201 {object} dto.Response{data=billingapp.BulkInvoiceResult}
// @Success      207 {object} dto.Response{data=billingapp.BulkInvoiceResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/invoices/cohort [post]
func (h *InvoiceHandler) CreateInvoicesForCohort(c *gin.Context) {
	var req billingapp.CreateInvoicesForCohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.CreateInvoicesForCohort(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if len(result.Failed) > 0 {
		h.MultiStatus(c, result)
		return
	}
	h.Created(c, result)
}

// GetInvoice godoc
// @Summary      Get invoice by ID
// @Description  Retrieve an invoice with its line items and settlement state
// @Tags         billing-invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// GetInvoiceByNumber godoc
// @Summary      Get invoice by number
// @Description  Retrieve an invoice by its human-readable invoice number
// @Tags         billing-invoices
// @Produce      json
// @Param        number path string true "Invoice number" example(INV-2026-000042)
// @Success      200 {object} dto.Response{data=billingapp.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/invoices/number/{number} [get]
func (h *InvoiceHandler) GetInvoiceByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ListInvoices godoc
// @Summary      List invoices
// @Description  Retrieve a paginated list of invoices with filtering
// @Tags         billing-invoices
// @Produce      json
// @Param        search query string false "Search term (invoice number, student name)"
// @Param        student_id query string false "Student ID" format(uuid)
// @Param        status query string false "Status" Enums(PENDING, PARTIALLY_PAID, PAID)
// @Param        from_date query string false "Issued from (ISO 8601)" format(date)
// @Param        to_date query string false "Issued to (ISO 8601)" format(date)
// @Param        overdue query boolean false "Filter overdue only"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]billingapp.InvoiceResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

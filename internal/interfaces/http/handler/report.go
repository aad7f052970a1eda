package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/schoolerp/backend/internal/application/billing"
	"github.com/schoolerp/backend/internal/domain/billing"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReportHandler handles billing report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *billingapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *billingapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// OutstandingSummaryResponse represents school-wide billing totals
type OutstandingSummaryResponse struct {
	TotalInvoiced      decimal.Decimal `json:"total_invoiced"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	TotalOutstanding   decimal.Decimal `json:"total_outstanding"`
	PendingCount       int64           `json:"pending_count"`
	PartiallyPaidCount int64           `json:"partially_paid_count"`
	PaidCount          int64           `json:"paid_count"`
}

// StudentBalanceResponse represents one student's billing position
type StudentBalanceResponse struct {
	StudentID   uuid.UUID       `json:"student_id"`
	StudentName string          `json:"student_name"`
	Invoiced    decimal.Decimal `json:"invoiced"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

func toStudentBalanceResponse(b *billing.StudentBalance) StudentBalanceResponse {
	return StudentBalanceResponse{
		StudentID:   b.StudentID,
		StudentName: b.StudentName,
		Invoiced:    b.Invoiced,
		Paid:        b.Paid,
		Outstanding: b.Outstanding,
	}
}

// GetOutstandingSummary godoc
// @Summary      Get billing summary
// @Description  School-wide invoiced, paid and outstanding totals with per-status invoice counts
// @Tags         billing-reports
// @Produce      json
// @Success      200 {object} dto.Response{data=OutstandingSummaryResponse}
// @Router       /billing/reports/summary [get]
func (h *ReportHandler) GetOutstandingSummary(c *gin.Context) {
	summary, err := h.reportService.GetOutstandingSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, OutstandingSummaryResponse{
		TotalInvoiced:      summary.TotalInvoiced,
		TotalPaid:          summary.TotalPaid,
		TotalOutstanding:   summary.TotalOutstanding,
		PendingCount:       summary.PendingCount,
		PartiallyPaidCount: summary.PartiallyPaidCount,
		PaidCount:          summary.PaidCount,
	})
}

// GetStudentBalance godoc
// @Summary      Get a student's balance
// @Description  Invoiced, paid and outstanding totals for a single student
// @Tags         billing-reports
// @Produce      json
// @Param        id path string true "Student ID" format(uuid)
// @Success      200 {object} dto.Response{data=StudentBalanceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /billing/reports/students/{id} [get]
func (h *ReportHandler) GetStudentBalance(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID format")
		return
	}

	balance, err := h.reportService.GetOutstandingByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStudentBalanceResponse(balance))
}

// ListStudentBalances godoc
// @Summary      List students with outstanding balances
// @Description  Per-student billing positions for students who still owe, ordered by name
// @Tags         billing-reports
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]StudentBalanceResponse}
// @Router       /billing/reports/balances [get]
func (h *ReportHandler) ListStudentBalances(c *gin.Context) {
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

	balances, err := h.reportService.ListStudentBalances(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]StudentBalanceResponse, 0, len(balances))
	for i := range balances {
		responses = append(responses, toStudentBalanceResponse(&balances[i]))
	}
	h.Success(c, responses)
}

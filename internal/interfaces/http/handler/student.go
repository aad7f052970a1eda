package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	studentapp "github.com/schoolerp/backend/internal/application/student"
)

// StudentHandler handles student enrollment API endpoints
type StudentHandler struct {
	BaseHandler
	studentService *studentapp.StudentService
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(studentService *studentapp.StudentService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
	}
}

// EnrollStudent godoc
// @Summary      Enroll a student
// @Description  Register a new student with a unique admission number
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        request body studentapp.EnrollStudentRequest true "Student data"
// @Success      201 {object} dto.Response{data=studentapp.StudentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /students [post]
func (h *StudentHandler) EnrollStudent(c *gin.Context) {
	var req studentapp.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	student, err := h.studentService.EnrollStudent(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, student)
}

// GetStudent godoc
// @Summary      Get student by ID
// @Tags         students
// @Produce      json
// @Param        id path string true "Student ID" format(uuid)
// @Success      200 {object} dto.Response{data=studentapp.StudentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID format")
		return
	}

	student, err := h.studentService.GetStudent(c.Request.Context(), studentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, student)
}

// ListStudents godoc
// @Summary      List students
// @Description  Retrieve a paginated list of students with filtering
// @Tags         students
// @Produce      json
// @Param        search query string false "Search term (name, admission number)"
// @Param        level query string false "Level/class"
// @Param        status query string false "Status" Enums(active, inactive, graduated)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]studentapp.StudentResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var filter studentapp.StudentListFilter
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

	students, total, err := h.studentService.ListStudents(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, students, total, filter.Page, filter.PageSize)
}

// PromoteStudent godoc
// @Summary      Promote a student
// @Description  Move an active student to a new level
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id path string true "Student ID" format(uuid)
// @Param        request body studentapp.PromoteStudentRequest true "Target level"
// @Success      200 {object} dto.Response{data=studentapp.StudentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /students/{id}/promote [post]
func (h *StudentHandler) PromoteStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID format")
		return
	}

	var req studentapp.PromoteStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	student, err := h.studentService.PromoteStudent(c.Request.Context(), studentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, student)
}

// DeactivateStudent godoc
// @Summary      Deactivate a student
// @Description  Mark a student as inactive. Inactive students are skipped by cohort billing runs.
// @Tags         students
// @Produce      json
// @Param        id path string true "Student ID" format(uuid)
// @Success      200 {object} dto.Response{data=studentapp.StudentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /students/{id}/deactivate [post]
func (h *StudentHandler) DeactivateStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID format")
		return
	}

	student, err := h.studentService.DeactivateStudent(c.Request.Context(), studentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, student)
}

// ReactivateStudent godoc
// @Summary      Reactivate a student
// @Tags         students
// @Produce      json
// @Param        id path string true "Student ID" format(uuid)
// @Success      200 {object} dto.Response{data=studentapp.StudentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /students/{id}/reactivate [post]
func (h *StudentHandler) ReactivateStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid student ID format")
		return
	}

	student, err := h.studentService.ReactivateStudent(c.Request.Context(), studentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, student)
}

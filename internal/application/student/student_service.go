package student

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/domain/student"
)

// StudentService provides application-level enrollment operations
type StudentService struct {
	repo student.Repository
}

// NewStudentService creates a new StudentService
func NewStudentService(repo student.Repository) *StudentService {
	return &StudentService{repo: repo}
}

// EnrollStudentRequest represents a request to enroll a student
type EnrollStudentRequest struct {
	AdmissionNumber string `json:"admission_number" binding:"required"`
	FullName        string `json:"full_name" binding:"required"`
	Level           string `json:"level" binding:"required"`
	GuardianName    string `json:"guardian_name"`
	GuardianPhone   string `json:"guardian_phone"`
	GuardianEmail   string `json:"guardian_email"`
}

// PromoteStudentRequest represents a request to move a student to a new level
type PromoteStudentRequest struct {
	Level string `json:"level" binding:"required"`
}

// StudentResponse represents a student in API responses
type StudentResponse struct {
	ID              uuid.UUID `json:"id"`
	AdmissionNumber string    `json:"admission_number"`
	FullName        string    `json:"full_name"`
	Level           string    `json:"level"`
	GuardianName    string    `json:"guardian_name,omitempty"`
	GuardianPhone   string    `json:"guardian_phone,omitempty"`
	GuardianEmail   string    `json:"guardian_email,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StudentListFilter defines filtering options for student list queries
type StudentListFilter struct {
	Search   string `form:"search"`
	Level    string `form:"level"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func toStudentResponse(s *student.Student) *StudentResponse {
	return &StudentResponse{
		ID:              s.ID,
		AdmissionNumber: s.AdmissionNumber,
		FullName:        s.FullName,
		Level:           s.Level,
		GuardianName:    s.GuardianName,
		GuardianPhone:   s.GuardianPhone,
		GuardianEmail:   s.GuardianEmail,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// EnrollStudent enrolls a new student
func (s *StudentService) EnrollStudent(ctx context.Context, req EnrollStudentRequest) (*StudentResponse, error) {
	existing, err := s.repo.FindByAdmissionNumber(ctx, req.AdmissionNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Admission number is already in use")
	}

	enrolled, err := student.NewStudent(req.AdmissionNumber, req.FullName, req.Level)
	if err != nil {
		return nil, err
	}
	if req.GuardianName != "" || req.GuardianPhone != "" || req.GuardianEmail != "" {
		if err := enrolled.UpdateGuardian(req.GuardianName, req.GuardianPhone, req.GuardianEmail); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, enrolled); err != nil {
		return nil, err
	}

	return toStudentResponse(enrolled), nil
}

// GetStudent gets a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id uuid.UUID) (*StudentResponse, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Student not found")
	}
	return toStudentResponse(found), nil
}

// ListStudents lists students with filtering
func (s *StudentService) ListStudents(ctx context.Context, filter StudentListFilter) ([]StudentResponse, int64, error) {
	domainFilter := student.Filter{}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	if filter.Level != "" {
		domainFilter.Level = &filter.Level
	}
	if filter.Status != "" {
		status := student.Status(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("VALIDATION_ERROR", "Unknown student status")
		}
		domainFilter.Status = &status
	}

	students, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StudentResponse, len(students))
	for i := range students {
		responses[i] = *toStudentResponse(&students[i])
	}
	return responses, total, nil
}

// PromoteStudent moves a student to a new level
func (s *StudentService) PromoteStudent(ctx context.Context, id uuid.UUID, req PromoteStudentRequest) (*StudentResponse, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Student not found")
	}

	if err := found.Promote(req.Level); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, found); err != nil {
		return nil, err
	}
	return toStudentResponse(found), nil
}

// DeactivateStudent withdraws a student from billing runs
func (s *StudentService) DeactivateStudent(ctx context.Context, id uuid.UUID) (*StudentResponse, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Student not found")
	}

	if err := found.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, found); err != nil {
		return nil, err
	}
	return toStudentResponse(found), nil
}

// ReactivateStudent re-enrolls an inactive student
func (s *StudentService) ReactivateStudent(ctx context.Context, id uuid.UUID) (*StudentResponse, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Student not found")
	}

	if err := found.Reactivate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, found); err != nil {
		return nil, err
	}
	return toStudentResponse(found), nil
}

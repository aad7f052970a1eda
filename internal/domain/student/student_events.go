package student

import (
	"github.com/schoolerp/backend/internal/domain/shared"
)

// StudentEnrolledEvent is raised when a new student is enrolled
type StudentEnrolledEvent struct {
	shared.BaseDomainEvent
	AdmissionNumber string `json:"admission_number"`
	FullName        string `json:"full_name"`
	Level           string `json:"level"`
}

// NewStudentEnrolledEvent creates a new StudentEnrolledEvent
func NewStudentEnrolledEvent(s *Student) *StudentEnrolledEvent {
	return &StudentEnrolledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("StudentEnrolled", "Student", s.ID),
		AdmissionNumber: s.AdmissionNumber,
		FullName:        s.FullName,
		Level:           s.Level,
	}
}

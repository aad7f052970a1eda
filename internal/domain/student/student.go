package student

import (
	"regexp"
	"strings"

	"github.com/schoolerp/backend/internal/domain/shared"
)

// Status represents the enrollment status of a student
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"  // Withdrawn or on leave
	StatusGraduated Status = "graduated" // Completed the final level
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusGraduated:
		return true
	}
	return false
}

// Student represents an enrolled student in the billing context.
// It is the aggregate root for enrollment-related operations and the payer
// every invoice is addressed to.
type Student struct {
	shared.BaseAggregateRoot
	AdmissionNumber string `gorm:"type:varchar(50);not null;uniqueIndex"`
	FullName        string `gorm:"type:varchar(200);not null"`
	Level           string `gorm:"type:varchar(50);not null;index"` // Class or year group, e.g. JSS1, SS3
	GuardianName    string `gorm:"type:varchar(200)"`
	GuardianPhone   string `gorm:"type:varchar(50)"`
	GuardianEmail   string `gorm:"type:varchar(200);index"`
	Status          Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Student) TableName() string {
	return "students"
}

var admissionNumberPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9/-]{1,49}$`)

// NewStudent creates a new student with required fields
func NewStudent(admissionNumber, fullName, level string) (*Student, error) {
	admissionNumber = strings.ToUpper(strings.TrimSpace(admissionNumber))
	if !admissionNumberPattern.MatchString(admissionNumber) {
		return nil, shared.NewDomainError("INVALID_ADMISSION_NUMBER", "Admission number must be 2-50 characters of letters, digits, '/' or '-'")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student name cannot be empty")
	}
	if len(fullName) > 200 {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student name cannot exceed 200 characters")
	}
	if strings.TrimSpace(level) == "" {
		return nil, shared.NewDomainError("INVALID_LEVEL", "Level cannot be empty")
	}

	s := &Student{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AdmissionNumber:   admissionNumber,
		FullName:          strings.TrimSpace(fullName),
		Level:             strings.TrimSpace(level),
		Status:            StatusActive,
	}

	s.AddDomainEvent(NewStudentEnrolledEvent(s))

	return s, nil
}

// UpdateGuardian updates the guardian contact details
func (s *Student) UpdateGuardian(name, phone, email string) error {
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_GUARDIAN", "Guardian name cannot exceed 200 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_GUARDIAN", "Guardian phone cannot exceed 50 characters")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_GUARDIAN", "Guardian email cannot exceed 200 characters")
	}

	s.GuardianName = strings.TrimSpace(name)
	s.GuardianPhone = strings.TrimSpace(phone)
	s.GuardianEmail = strings.TrimSpace(email)
	s.IncrementVersion()

	return nil
}

// Promote moves the student to a new level
func (s *Student) Promote(level string) error {
	if strings.TrimSpace(level) == "" {
		return shared.NewDomainError("INVALID_LEVEL", "Level cannot be empty")
	}
	if s.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active students can be promoted")
	}

	s.Level = strings.TrimSpace(level)
	s.IncrementVersion()

	return nil
}

// Deactivate marks the student as withdrawn. Existing invoices stay on the
// ledger; the student just stops appearing in cohort billing runs.
func (s *Student) Deactivate() error {
	if s.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Student is not active")
	}
	s.Status = StatusInactive
	s.IncrementVersion()
	return nil
}

// Reactivate re-enrolls an inactive student
func (s *Student) Reactivate() error {
	if s.Status != StatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Only inactive students can be reactivated")
	}
	s.Status = StatusActive
	s.IncrementVersion()
	return nil
}

// IsActive returns true if the student is billable
func (s *Student) IsActive() bool {
	return s.Status == StatusActive
}

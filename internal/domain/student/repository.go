package student

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/shared"
)

// Filter defines filtering options for student queries
type Filter struct {
	shared.Filter
	Level  *string
	Status *Status
}

// Repository defines the interface for student persistence
type Repository interface {
	// FindByID finds a student by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)

	// FindByAdmissionNumber finds a student by admission number
	FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*Student, error)

	// FindAll finds students matching the filter
	FindAll(ctx context.Context, filter Filter) ([]Student, error)

	// FindActive finds all billable students
	FindActive(ctx context.Context) ([]Student, error)

	// FindActiveByLevel finds billable students in one level
	FindActiveByLevel(ctx context.Context, level string) ([]Student, error)

	// Count counts students matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// Save persists a student
	Save(ctx context.Context, s *Student) error
}

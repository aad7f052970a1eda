package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/student"
	"gorm.io/gorm"
)

// GormStudentRepository implements student.Repository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// FindByID finds a student by ID. Returns nil when no row matches.
func (r *GormStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	var s student.Student
	if err := r.db.WithContext(ctx).
		First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// FindByAdmissionNumber finds a student by admission number
func (r *GormStudentRepository) FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*student.Student, error) {
	var s student.Student
	if err := r.db.WithContext(ctx).
		Where("admission_number = ?", strings.ToUpper(strings.TrimSpace(admissionNumber))).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds students matching the filter
func (r *GormStudentRepository) FindAll(ctx context.Context, filter student.Filter) ([]student.Student, error) {
	var students []student.Student
	query := r.db.WithContext(ctx).Model(&student.Student{})
	query = r.applyStudentFilter(query, filter)

	if err := query.Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// FindActive finds all billable students
func (r *GormStudentRepository) FindActive(ctx context.Context) ([]student.Student, error) {
	var students []student.Student
	if err := r.db.WithContext(ctx).
		Where("status = ?", student.StatusActive).
		Order("full_name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// FindActiveByLevel finds billable students in one level
func (r *GormStudentRepository) FindActiveByLevel(ctx context.Context, level string) ([]student.Student, error) {
	var students []student.Student
	if err := r.db.WithContext(ctx).
		Where("status = ? AND level = ?", student.StatusActive, level).
		Order("full_name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// Count counts students matching the filter
func (r *GormStudentRepository) Count(ctx context.Context, filter student.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&student.Student{})
	query = r.applyStudentFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a student
func (r *GormStudentRepository) Save(ctx context.Context, s *student.Student) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *GormStudentRepository) applyStudentFilter(query *gorm.DB, filter student.Filter) *gorm.DB {
	query = r.applyStudentFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("full_name ASC")
	}

	return query
}

func (r *GormStudentRepository) applyStudentFilterWithoutPagination(query *gorm.DB, filter student.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR admission_number ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Level != nil {
		query = query.Where("level = ?", *filter.Level)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

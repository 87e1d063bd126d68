package repository

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Exists(ctx context.Context, tx *gorm.DB, studentID, courseID uint64) (bool, error)
	// Create writes the ownership facts for a completed placement. A
	// duplicate pair fails with ErrConflict.
	Create(ctx context.Context, tx *gorm.DB, enrollments []*domain.Enrollment) error
}

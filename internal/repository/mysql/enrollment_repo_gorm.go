package mysql

import (
	"context"
	"fmt"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"gorm.io/gorm"
)

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepository(db *gorm.DB, baseLog *logger.Logger) repository.EnrollmentRepository {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepository")}
}

func (r *enrollmentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *enrollmentRepo) Exists(ctx context.Context, tx *gorm.DB, studentID, courseID uint64) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*domain.Enrollment) error {
	if len(enrollments) == 0 {
		return nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&enrollments).Error; err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: course already owned", domain.ErrConflict)
		}
		return err
	}
	return nil
}

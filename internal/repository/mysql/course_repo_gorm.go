package mysql

import (
	"context"
	"fmt"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"gorm.io/gorm"
)

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepository(db *gorm.DB, baseLog *logger.Logger) repository.CourseRepository {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepository")}
}

func (r *courseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, course *domain.Course) error {
	course.IsOpen = course.EnrolledCount < course.MaxSeats
	if err := r.conn(tx).WithContext(ctx).Create(course).Error; err != nil {
		return translate(err, "course")
	}
	return nil
}

// UpdateInfo touches only the descriptive columns and max_seats. The WHERE
// guard keeps enrolled_count <= max_seats without reading the row first;
// is_open is recomputed in the same statement so a capacity raise can
// reopen a full course. The zero-rows check requires clientFoundRows in
// the DSN (RowsAffected = matched rows); otherwise an unchanged payload
// would read as a failed guard.
func (r *courseRepo) UpdateInfo(ctx context.Context, tx *gorm.DB, course *domain.Course) error {
	res := r.conn(tx).WithContext(ctx).Exec(
		`UPDATE courses
		    SET name = ?, description = ?, price = ?, max_seats = ?,
		        is_open = (enrolled_count < ?) AND NOT manually_closed
		  WHERE id = ? AND enrolled_count <= ?`,
		course.Name, course.Description, course.Price, course.MaxSeats,
		course.MaxSeats, course.ID, course.MaxSeats,
	)
	if res.Error != nil {
		return translate(res.Error, "course")
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, tx, course.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: max seats below current enrollment", domain.ErrPreconditionFailed)
	}
	return nil
}

func (r *courseRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Course, error) {
	var c domain.Course
	if err := r.conn(tx).WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "course")
	}
	return &c, nil
}

func (r *courseRepo) FindByIDs(ctx context.Context, tx *gorm.DB, ids []uint64) ([]domain.Course, error) {
	var out []domain.Course
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.conn(tx).WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) FindAll(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) FindAvailable(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	if err := r.db.WithContext(ctx).Where("is_open = ?", true).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) FindEnrolledByStudent(ctx context.Context, studentID uint64) ([]domain.Course, error) {
	var out []domain.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", studentID).
		Order("courses.id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReserveSeat is the check-and-increment. One conditional UPDATE takes the
// row lock, verifies the course is open with a free seat, consumes it and
// closes the course when the last seat goes, all before any concurrent
// reservation can read the count. Zero rows affected means either the
// course is gone or the seat race was lost; the follow-up read tells the
// two apart.
func (r *courseRepo) ReserveSeat(ctx context.Context, tx *gorm.DB, id uint64) error {
	res := r.conn(tx).WithContext(ctx).Exec(
		`UPDATE courses
		    SET enrolled_count = enrolled_count + 1,
		        is_open = (enrolled_count + 1 < max_seats)
		  WHERE id = ? AND is_open AND enrolled_count < max_seats`,
		id,
	)
	if res.Error != nil {
		return translate(res.Error, "course")
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, tx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: course %d has no seats left", domain.ErrConflict, id)
	}
	return nil
}

// ReleaseSeat never drives enrolled_count negative, and only reopens the
// course when it was closed by fullness rather than by the teacher.
func (r *courseRepo) ReleaseSeat(ctx context.Context, tx *gorm.DB, id uint64) error {
	res := r.conn(tx).WithContext(ctx).Exec(
		`UPDATE courses
		    SET enrolled_count = enrolled_count - 1,
		        is_open = NOT manually_closed
		  WHERE id = ? AND enrolled_count > 0`,
		id,
	)
	if res.Error != nil {
		return translate(res.Error, "course")
	}
	if res.RowsAffected == 0 {
		r.log.Warn("release on empty course ignored", "courseID", id)
	}
	return nil
}

func (r *courseRepo) SetAvailability(ctx context.Context, id uint64, open bool) error {
	if !open {
		res := r.db.WithContext(ctx).Exec(
			`UPDATE courses SET is_open = FALSE, manually_closed = TRUE WHERE id = ?`, id)
		if res.Error != nil {
			return translate(res.Error, "course")
		}
		if res.RowsAffected == 0 {
			return r.mustExist(ctx, id)
		}
		return nil
	}
	// A manual open is refused, not clamped silently, while the course is
	// at capacity. Zero matched rows (clientFoundRows) means missing or
	// full; re-opening an already-open course matches and succeeds.
	res := r.db.WithContext(ctx).Exec(
		`UPDATE courses SET is_open = TRUE, manually_closed = FALSE
		  WHERE id = ? AND enrolled_count < max_seats`, id)
	if res.Error != nil {
		return translate(res.Error, "course")
	}
	if res.RowsAffected == 0 {
		if err := r.mustExist(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: course %d is at capacity", domain.ErrPreconditionFailed, id)
	}
	return nil
}

// mustExist distinguishes "row missing" from "condition not met" after a
// zero-row update.
func (r *courseRepo) mustExist(ctx context.Context, id uint64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Course{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: course %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Course{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repository

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"gorm.io/gorm"
)

// CourseRepository is the catalog plus the seat-capacity ledger.
//
// ReserveSeat and ReleaseSeat are the only ways enrolled_count moves; both
// are single conditional updates, never a read-then-write pair, so the
// capacity bound holds under concurrent placements.
type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *domain.Course) error
	// UpdateInfo rewrites name/description/price/max_seats. Shrinking
	// max_seats below the current enrolled count fails with
	// ErrPreconditionFailed.
	UpdateInfo(ctx context.Context, tx *gorm.DB, course *domain.Course) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Course, error)
	FindByIDs(ctx context.Context, tx *gorm.DB, ids []uint64) ([]domain.Course, error)
	FindAll(ctx context.Context) ([]domain.Course, error)
	FindAvailable(ctx context.Context) ([]domain.Course, error)
	FindEnrolledByStudent(ctx context.Context, studentID uint64) ([]domain.Course, error)

	// ReserveSeat atomically consumes one seat. ErrNotFound if the course
	// does not exist, ErrConflict if it is closed or full.
	ReserveSeat(ctx context.Context, tx *gorm.DB, id uint64) error
	// ReleaseSeat returns one seat and reopens the course unless the
	// teacher closed it manually. No-op at zero, never goes negative.
	ReleaseSeat(ctx context.Context, tx *gorm.DB, id uint64) error
	// SetAvailability is the manual open/close toggle. Opening a full
	// course fails with ErrPreconditionFailed.
	SetAvailability(ctx context.Context, id uint64, open bool) error

	Count(ctx context.Context) (int64, error)
}

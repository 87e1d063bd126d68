package repository

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"gorm.io/gorm"
)

type CartRepository interface {
	// FindByStudent returns the cart with its lines, or ErrNotFound if the
	// student has none yet.
	FindByStudent(ctx context.Context, tx *gorm.DB, studentID uint64) (*domain.Cart, error)
	// FindByStudentForUpdate is FindByStudent holding a row lock on the
	// cart for the remainder of the transaction.
	FindByStudentForUpdate(ctx context.Context, tx *gorm.DB, studentID uint64) (*domain.Cart, error)
	Create(ctx context.Context, tx *gorm.DB, cart *domain.Cart) error
	// AddLine inserts one (cart, course) line; a duplicate fails with
	// ErrConflict via the unique index.
	AddLine(ctx context.Context, tx *gorm.DB, cartID, courseID uint64) error
	// RemoveLine fails with ErrNotFound when the course is not in the cart.
	RemoveLine(ctx context.Context, tx *gorm.DB, cartID, courseID uint64) error
	ClearLines(ctx context.Context, tx *gorm.DB, cartID uint64) error
	SaveTotal(ctx context.Context, tx *gorm.DB, cartID uint64, total int64) error
	// Delete removes the cart row itself; the caller clears the lines
	// first.
	Delete(ctx context.Context, tx *gorm.DB, cartID uint64) error
}

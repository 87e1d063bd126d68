package repository

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create persists the order together with its lines. A collision on
	// the order code fails with ErrConflict; the caller regenerates the
	// code and retries a bounded number of times.
	Create(ctx context.Context, tx *gorm.DB, order *domain.Order) error
	FindByCode(ctx context.Context, code string) (*domain.Order, error)
	FindByStudent(ctx context.Context, studentID uint64) ([]domain.Order, error)
	ExistsForStudent(ctx context.Context, studentID uint64) (bool, error)
}

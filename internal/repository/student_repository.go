package repository

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, student *domain.Student) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Student, error)
	FindAll(ctx context.Context) ([]domain.Student, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint64) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint64) error
	Count(ctx context.Context) (int64, error)
}

package repository

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"gorm.io/gorm"
)

type TeacherRepository interface {
	Create(ctx context.Context, tx *gorm.DB, teacher *domain.Teacher) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Teacher, error)
	FindAll(ctx context.Context) ([]domain.Teacher, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

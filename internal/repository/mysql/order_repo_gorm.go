package mysql

import (
	"context"
	"fmt"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"gorm.io/gorm"
)

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepository(db *gorm.DB, baseLog *logger.Logger) repository.OrderRepository {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepository")}
}

func (r *orderRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts the order and its lines in one go; gorm cascades the
// Lines association. The unique index on code turns a generator collision
// into ErrConflict for the caller's retry loop.
func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *domain.Order) error {
	if err := r.conn(tx).WithContext(ctx).Create(order).Error; err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: order code %s", domain.ErrConflict, order.Code)
		}
		return translate(err, "order")
	}
	return nil
}

func (r *orderRepo) FindByCode(ctx context.Context, code string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("code = ?", code).
		First(&o).Error
	if err != nil {
		return nil, translate(err, "order")
	}
	return &o, nil
}

func (r *orderRepo) FindByStudent(ctx context.Context, studentID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) ExistsForStudent(ctx context.Context, studentID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

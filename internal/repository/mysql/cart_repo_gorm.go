package mysql

import (
	"context"
	"fmt"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepository(db *gorm.DB, baseLog *logger.Logger) repository.CartRepository {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepository")}
}

func (r *cartRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *cartRepo) FindByStudent(ctx context.Context, tx *gorm.DB, studentID uint64) (*domain.Cart, error) {
	return r.find(ctx, r.conn(tx), studentID)
}

// FindByStudentForUpdate locks the cart row so a placement and a cart
// mutation for the same student serialize against each other.
func (r *cartRepo) FindByStudentForUpdate(ctx context.Context, tx *gorm.DB, studentID uint64) (*domain.Cart, error) {
	return r.find(ctx, r.conn(tx).Clauses(clause.Locking{Strength: "UPDATE"}), studentID)
}

func (r *cartRepo) find(ctx context.Context, conn *gorm.DB, studentID uint64) (*domain.Cart, error) {
	var cart domain.Cart
	err := conn.WithContext(ctx).
		Preload("Lines").
		Where("student_id = ?", studentID).
		First(&cart).Error
	if err != nil {
		return nil, translate(err, "cart")
	}
	return &cart, nil
}

func (r *cartRepo) Create(ctx context.Context, tx *gorm.DB, cart *domain.Cart) error {
	if err := r.conn(tx).WithContext(ctx).Create(cart).Error; err != nil {
		return translate(err, "cart")
	}
	return nil
}

func (r *cartRepo) AddLine(ctx context.Context, tx *gorm.DB, cartID, courseID uint64) error {
	line := domain.CartLine{CartID: cartID, CourseID: courseID}
	if err := r.conn(tx).WithContext(ctx).Create(&line).Error; err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: course %d already in cart", domain.ErrConflict, courseID)
		}
		return translate(err, "cart line")
	}
	return nil
}

func (r *cartRepo) RemoveLine(ctx context.Context, tx *gorm.DB, cartID, courseID uint64) error {
	res := r.conn(tx).WithContext(ctx).
		Where("cart_id = ? AND course_id = ?", cartID, courseID).
		Delete(&domain.CartLine{})
	if res.Error != nil {
		return translate(res.Error, "cart line")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: course %d not in cart", domain.ErrNotFound, courseID)
	}
	return nil
}

func (r *cartRepo) ClearLines(ctx context.Context, tx *gorm.DB, cartID uint64) error {
	err := r.conn(tx).WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&domain.CartLine{}).Error
	return translate(err, "cart line")
}

func (r *cartRepo) Delete(ctx context.Context, tx *gorm.DB, cartID uint64) error {
	err := r.conn(tx).WithContext(ctx).Delete(&domain.Cart{}, cartID).Error
	return translate(err, "cart")
}

func (r *cartRepo) SaveTotal(ctx context.Context, tx *gorm.DB, cartID uint64, total int64) error {
	err := r.conn(tx).WithContext(ctx).
		Model(&domain.Cart{}).
		Where("id = ?", cartID).
		Update("total_price", total).Error
	return translate(err, "cart")
}

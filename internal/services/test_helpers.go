package services

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"gorm.io/gorm"
)

// passthroughTxManager runs the callback directly with a nil handle; the
// mock repositories ignore the tx parameter, so service logic is exercised
// without a database.
type passthroughTxManager struct{}

func (passthroughTxManager) Do(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// fixedTxManager hands fn a distinguishable non-nil handle, for tests
// that assert whether a call ran inside or outside the transaction.
type fixedTxManager struct {
	tx *gorm.DB
}

func (m fixedTxManager) Do(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(m.tx)
}

func makeCourse(id uint64, name string, price int64, maxSeats, enrolled int) *domain.Course {
	return &domain.Course{
		ID:            id,
		Name:          name,
		Price:         price,
		MaxSeats:      maxSeats,
		EnrolledCount: enrolled,
		IsOpen:        enrolled < maxSeats,
		TeacherID:     TestTeacherID,
	}
}

func makeCart(id, studentID uint64, courseIDs ...uint64) *domain.Cart {
	cart := &domain.Cart{ID: id, StudentID: studentID}
	for _, courseID := range courseIDs {
		cart.Lines = append(cart.Lines, domain.CartLine{CartID: id, CourseID: courseID})
	}
	return cart
}

const (
	TestStudentID = uint64(1)
	TestTeacherID = uint64(7)
	TestCartID    = uint64(11)
)

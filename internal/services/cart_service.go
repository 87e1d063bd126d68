package services

import (
	"context"
	"fmt"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"gorm.io/gorm"
)

// CartService maintains each student's pending selection. Availability
// checks here are advisory only; seats are consumed exclusively by the
// order service at placement time.
type CartService struct {
	tx          repository.TxManager
	carts       repository.CartRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	students    repository.StudentRepository
	log         *logger.Logger
}

func NewCartService(
	tx repository.TxManager,
	carts repository.CartRepository,
	courses repository.CourseRepository,
	enrollments repository.EnrollmentRepository,
	students repository.StudentRepository,
	baseLog *logger.Logger,
) *CartService {
	return &CartService{
		tx:          tx,
		carts:       carts,
		courses:     courses,
		enrollments: enrollments,
		students:    students,
		log:         baseLog.With("service", "CartService"),
	}
}

// GetCart returns the student's cart, creating an empty one on first
// access. Creation is idempotent: the unique index on student_id means a
// concurrent first access falls back to reading the winner's row.
func (s *CartService) GetCart(ctx context.Context, studentID uint64) (*domain.CartView, error) {
	var view *domain.CartView
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		cart, err := s.getOrCreateCart(ctx, tx, studentID)
		if err != nil {
			return err
		}
		view, err = s.buildView(ctx, tx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) AddCourse(ctx context.Context, studentID, courseID uint64) (*domain.CartView, error) {
	var view *domain.CartView
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		cart, err := s.getOrCreateCart(ctx, tx, studentID)
		if err != nil {
			return err
		}

		course, err := s.courses.FindByID(ctx, tx, courseID)
		if err != nil {
			return err
		}

		owned, err := s.enrollments.Exists(ctx, tx, studentID, courseID)
		if err != nil {
			return err
		}
		if owned {
			return fmt.Errorf("%w: course %q already owned", domain.ErrConflict, course.Name)
		}
		if !course.CanEnroll() {
			return fmt.Errorf("%w: course %q is not open for enrollment", domain.ErrConflict, course.Name)
		}
		if cart.ContainsCourse(courseID) {
			return fmt.Errorf("%w: course %q already in cart", domain.ErrConflict, course.Name)
		}

		if err := s.carts.AddLine(ctx, tx, cart.ID, courseID); err != nil {
			return err
		}
		cart.Lines = append(cart.Lines, domain.CartLine{CartID: cart.ID, CourseID: courseID})

		view, err = s.recomputeTotal(ctx, tx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) RemoveCourse(ctx context.Context, studentID, courseID uint64) (*domain.CartView, error) {
	var view *domain.CartView
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		cart, err := s.carts.FindByStudent(ctx, tx, studentID)
		if err != nil {
			return err
		}
		if err := s.carts.RemoveLine(ctx, tx, cart.ID, courseID); err != nil {
			return err
		}
		remaining := cart.Lines[:0]
		for _, line := range cart.Lines {
			if line.CourseID != courseID {
				remaining = append(remaining, line)
			}
		}
		cart.Lines = remaining

		view, err = s.recomputeTotal(ctx, tx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) Clear(ctx context.Context, studentID uint64) (*domain.CartView, error) {
	var view *domain.CartView
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		cart, err := s.carts.FindByStudent(ctx, tx, studentID)
		if err != nil {
			return err
		}
		if err := s.carts.ClearLines(ctx, tx, cart.ID); err != nil {
			return err
		}
		cart.Lines = nil

		view, err = s.recomputeTotal(ctx, tx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ReplaceAll swaps the whole selection in one shot. Each incoming course
// goes through the same advisory checks as AddCourse.
func (s *CartService) ReplaceAll(ctx context.Context, studentID uint64, courseIDs []uint64) (*domain.CartView, error) {
	var view *domain.CartView
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		cart, err := s.getOrCreateCart(ctx, tx, studentID)
		if err != nil {
			return err
		}
		if err := s.carts.ClearLines(ctx, tx, cart.ID); err != nil {
			return err
		}
		cart.Lines = nil

		seen := make(map[uint64]bool, len(courseIDs))
		for _, courseID := range courseIDs {
			if seen[courseID] {
				return fmt.Errorf("%w: course %d listed twice", domain.ErrConflict, courseID)
			}
			seen[courseID] = true

			course, err := s.courses.FindByID(ctx, tx, courseID)
			if err != nil {
				return err
			}
			owned, err := s.enrollments.Exists(ctx, tx, studentID, courseID)
			if err != nil {
				return err
			}
			if owned {
				return fmt.Errorf("%w: course %q already owned", domain.ErrConflict, course.Name)
			}
			if !course.CanEnroll() {
				return fmt.Errorf("%w: course %q is not open for enrollment", domain.ErrConflict, course.Name)
			}
			if err := s.carts.AddLine(ctx, tx, cart.ID, courseID); err != nil {
				return err
			}
			cart.Lines = append(cart.Lines, domain.CartLine{CartID: cart.ID, CourseID: courseID})
		}

		view, err = s.recomputeTotal(ctx, tx, cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) getOrCreateCart(ctx context.Context, tx *gorm.DB, studentID uint64) (*domain.Cart, error) {
	cart, err := s.carts.FindByStudent(ctx, tx, studentID)
	if err == nil {
		return cart, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	if ok, err := s.students.Exists(ctx, tx, studentID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: student %d", domain.ErrNotFound, studentID)
	}

	fresh := &domain.Cart{StudentID: studentID}
	if err := s.carts.Create(ctx, tx, fresh); err != nil {
		// Lost the creation race; the other writer's cart is ours too.
		// The duplicate-key error proves the winning insert is committed,
		// but under REPEATABLE READ this transaction's snapshot may
		// pre-date it, so the re-read goes outside the transaction.
		if isConflict(err) {
			return s.carts.FindByStudent(ctx, nil, studentID)
		}
		return nil, err
	}
	s.log.Debug("cart created", "studentID", studentID, "cartID", fresh.ID)
	return fresh, nil
}

// recomputeTotal reprices the cart from the courses' current prices and
// persists the new total before returning the view.
func (s *CartService) recomputeTotal(ctx context.Context, tx *gorm.DB, cart *domain.Cart) (*domain.CartView, error) {
	view, err := s.buildView(ctx, tx, cart)
	if err != nil {
		return nil, err
	}
	if err := s.carts.SaveTotal(ctx, tx, cart.ID, view.TotalPrice); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) buildView(ctx context.Context, tx *gorm.DB, cart *domain.Cart) (*domain.CartView, error) {
	courses, err := s.courses.FindByIDs(ctx, tx, cart.CourseIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]domain.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	view := &domain.CartView{
		ID:        cart.ID,
		StudentID: cart.StudentID,
		Lines:     make([]domain.CartLineView, 0, len(cart.Lines)),
	}
	for _, line := range cart.Lines {
		course := byID[line.CourseID]
		view.Lines = append(view.Lines, domain.CartLineView{
			CourseID:   line.CourseID,
			CourseName: course.Name,
			Price:      course.Price,
		})
		view.TotalPrice += course.Price
	}
	return view, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RegistryService is the thin student/teacher CRUD boundary plus the
// aggregate stats projection. None of this carries fulfillment logic.
type RegistryService struct {
	tx       repository.TxManager
	students repository.StudentRepository
	teachers repository.TeacherRepository
	courses  repository.CourseRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	log      *logger.Logger
}

func NewRegistryService(
	tx repository.TxManager,
	students repository.StudentRepository,
	teachers repository.TeacherRepository,
	courses repository.CourseRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	baseLog *logger.Logger,
) *RegistryService {
	return &RegistryService{
		tx:       tx,
		students: students,
		teachers: teachers,
		courses:  courses,
		carts:    carts,
		orders:   orders,
		log:      baseLog.With("service", "RegistryService"),
	}
}

func (s *RegistryService) GetStudent(ctx context.Context, id uint64) (*domain.Student, error) {
	return s.students.FindByID(ctx, nil, id)
}

func (s *RegistryService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	return s.students.FindAll(ctx)
}

// DeleteStudent refuses to drop a student with purchase history or a
// non-empty cart; orders are the system's bookkeeping and must survive.
func (s *RegistryService) DeleteStudent(ctx context.Context, id uint64) error {
	return s.tx.Do(ctx, func(tx *gorm.DB) error {
		if ok, err := s.students.Exists(ctx, tx, id); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: student %d", domain.ErrNotFound, id)
		}

		hasOrders, err := s.orders.ExistsForStudent(ctx, id)
		if err != nil {
			return err
		}
		if hasOrders {
			return fmt.Errorf("%w: student %d has orders", domain.ErrConflict, id)
		}

		cart, err := s.carts.FindByStudent(ctx, tx, id)
		if err != nil && !isNotFound(err) {
			return err
		}
		if cart != nil {
			if len(cart.Lines) > 0 {
				return fmt.Errorf("%w: student %d has a non-empty cart", domain.ErrConflict, id)
			}
			if err := s.carts.ClearLines(ctx, tx, cart.ID); err != nil {
				return err
			}
			// Drop the cart row too; leaving it would orphan its
			// student_id.
			if err := s.carts.Delete(ctx, tx, cart.ID); err != nil {
				return err
			}
		}

		return s.students.Delete(ctx, tx, id)
	})
}

func (s *RegistryService) GetTeacher(ctx context.Context, id uint64) (*domain.Teacher, error) {
	return s.teachers.FindByID(ctx, nil, id)
}

func (s *RegistryService) ListTeachers(ctx context.Context) ([]domain.Teacher, error) {
	return s.teachers.FindAll(ctx)
}

type Stats struct {
	Students int64 `json:"students"`
	Teachers int64 `json:"teachers"`
	Courses  int64 `json:"courses"`
}

// GetStats fans the three counts out concurrently; they are independent
// reads.
func (s *RegistryService) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.students.Count(gctx)
		stats.Students = n
		return err
	})
	g.Go(func() error {
		n, err := s.teachers.Count(gctx)
		stats.Teachers = n
		return err
	})
	g.Go(func() error {
		n, err := s.courses.Count(gctx)
		stats.Courses = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	rabbit "github.com/atfskmn/-Course-Management-Api/internal/infra/rabbitmq"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// orderCodeAttempts bounds the regenerate-and-retry loop on an order code
// collision before the placement fails with ErrConflict.
const orderCodeAttempts = 3

// OrderService owns order placement: converting a student's cart into a
// completed order while consuming seats and recording enrollment, as one
// transaction.
type OrderService struct {
	tx          repository.TxManager
	orders      repository.OrderRepository
	carts       repository.CartRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	students    repository.StudentRepository
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
	log         *logger.Logger
}

func NewOrderService(
	tx repository.TxManager,
	orders repository.OrderRepository,
	carts repository.CartRepository,
	courses repository.CourseRepository,
	enrollments repository.EnrollmentRepository,
	students repository.StudentRepository,
	publisher rabbit.PublisherInterface,
	baseLog *logger.Logger,
) *OrderService {
	return &OrderService{
		tx:          tx,
		orders:      orders,
		carts:       carts,
		courses:     courses,
		enrollments: enrollments,
		students:    students,
		publisher:   publisher,
		log:         baseLog.With("service", "OrderService"),
	}
}

func (s *OrderService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// PlaceOrder runs the fulfillment transaction for one student:
//
//  1. load and lock the cart; an empty cart aborts with ErrInvalidState
//  2. re-validate every line: the course must still be open and the
//     student must not already own it (the add-to-cart check was advisory
//     and time has passed since)
//  3. reserve one seat per course, in ascending course-ID order so
//     concurrent placements take row locks in the same order; if any
//     reservation loses the race, release the seats already taken in this
//     attempt and abort with ErrConflict
//  4. create the order (unique code, frozen line prices, COMPLETED),
//     write the enrollments, clear the cart
//
// Every step runs inside one database transaction, so a failure anywhere
// leaves no partial order, no stray seat consumption and no enrollment.
// The completion event and cache invalidation happen after commit and are
// best-effort.
func (s *OrderService) PlaceOrder(ctx context.Context, studentID uint64) (*domain.Order, error) {
	var placed *domain.Order
	err := s.tx.Do(ctx, func(tx *gorm.DB) error {
		if ok, err := s.students.Exists(ctx, tx, studentID); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: student %d", domain.ErrNotFound, studentID)
		}

		cart, err := s.carts.FindByStudentForUpdate(ctx, tx, studentID)
		if err != nil {
			return err
		}
		if len(cart.Lines) == 0 {
			return fmt.Errorf("%w: cart is empty", domain.ErrInvalidState)
		}

		courseIDs := cart.CourseIDs()
		sort.Slice(courseIDs, func(i, j int) bool { return courseIDs[i] < courseIDs[j] })

		courses, err := s.courses.FindByIDs(ctx, tx, courseIDs)
		if err != nil {
			return err
		}
		byID := make(map[uint64]domain.Course, len(courses))
		for _, c := range courses {
			byID[c.ID] = c
		}

		for _, id := range courseIDs {
			course, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: course %d", domain.ErrNotFound, id)
			}
			owned, err := s.enrollments.Exists(ctx, tx, studentID, id)
			if err != nil {
				return err
			}
			if owned {
				return fmt.Errorf("%w: course %q already owned", domain.ErrConflict, course.Name)
			}
			if !course.CanEnroll() {
				return fmt.Errorf("%w: course %q is not open for enrollment", domain.ErrInvalidState, course.Name)
			}
		}

		reserved := make([]uint64, 0, len(courseIDs))
		for _, id := range courseIDs {
			if err := s.courses.ReserveSeat(ctx, tx, id); err != nil {
				s.releaseReserved(ctx, tx, reserved)
				return err
			}
			reserved = append(reserved, id)
		}

		order := &domain.Order{
			StudentID: studentID,
			Status:    domain.OrderStatusCompleted,
		}
		for _, id := range courseIDs {
			price := byID[id].Price
			order.Lines = append(order.Lines, domain.OrderLine{CourseID: id, Price: price})
			order.TotalPrice += price
		}
		if err := s.createWithFreshCode(ctx, tx, order); err != nil {
			s.releaseReserved(ctx, tx, reserved)
			return err
		}

		enrollments := make([]*domain.Enrollment, 0, len(courseIDs))
		for _, id := range courseIDs {
			enrollments = append(enrollments, &domain.Enrollment{StudentID: studentID, CourseID: id})
		}
		if err := s.enrollments.Create(ctx, tx, enrollments); err != nil {
			s.releaseReserved(ctx, tx, reserved)
			return err
		}

		if err := s.carts.ClearLines(ctx, tx, cart.ID); err != nil {
			return err
		}
		if err := s.carts.SaveTotal(ctx, tx, cart.ID, 0); err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order placed", "orderCode", placed.Code, "studentID", studentID, "totalPrice", placed.TotalPrice)
	go s.publishOrderCompleted(context.Background(), placed)
	s.invalidateCatalogCache(ctx)

	return placed, nil
}

// releaseReserved undoes the seats taken so far in this attempt, newest
// first. The surrounding transaction rollback reverses persistence anyway;
// the explicit release keeps the compensation correct even when a caller
// runs the service over a store without multi-row transactions.
func (s *OrderService) releaseReserved(ctx context.Context, tx *gorm.DB, reserved []uint64) {
	for i := len(reserved) - 1; i >= 0; i-- {
		if err := s.courses.ReleaseSeat(ctx, tx, reserved[i]); err != nil {
			s.log.Error("seat release failed during rollback", "courseID", reserved[i], "error", err)
		}
	}
}

func (s *OrderService) createWithFreshCode(ctx context.Context, tx *gorm.DB, order *domain.Order) error {
	for attempt := 0; attempt < orderCodeAttempts; attempt++ {
		order.Code = domain.NewOrderCode()
		err := s.orders.Create(ctx, tx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		s.log.Warn("order code collision, regenerating", "code", order.Code, "attempt", attempt+1)
	}
	return fmt.Errorf("%w: could not allocate a unique order code", domain.ErrConflict)
}

func (s *OrderService) publishOrderCompleted(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderCompletedEvent{
		OrderID:    order.ID,
		OrderCode:  order.Code,
		StudentID:  order.StudentID,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
	}
	for _, line := range order.Lines {
		evt.CourseIDs = append(evt.CourseIDs, line.CourseID)
	}
	if err := s.publisher.Publish(ctx, "order.completed", evt); err != nil {
		s.log.Error("failed to publish order.completed", "orderCode", order.Code, "error", err)
	}
}

// invalidateCatalogCache drops the cached available-courses listing after a
// placement consumed seats. Losing the race here only means a stale listing
// until the TTL expires; the commit-time re-validation stays authoritative.
func (s *OrderService) invalidateCatalogCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.log.Warn("catalog cache invalidation failed", "error", err)
	}
}

func (s *OrderService) GetOrderByCode(ctx context.Context, code string) (*domain.Order, error) {
	return s.orders.FindByCode(ctx, code)
}

func (s *OrderService) GetOrdersForStudent(ctx context.Context, studentID uint64) ([]domain.Order, error) {
	if ok, err := s.students.Exists(ctx, nil, studentID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: student %d", domain.ErrNotFound, studentID)
	}
	return s.orders.FindByStudent(ctx, studentID)
}

package mocks

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, tx *gorm.DB, course *domain.Course) error {
	args := m.Called(ctx, tx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) UpdateInfo(ctx context.Context, tx *gorm.DB, course *domain.Course) error {
	args := m.Called(ctx, tx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Course, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) FindByIDs(ctx context.Context, tx *gorm.DB, ids []uint64) ([]domain.Course, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) FindAll(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) FindAvailable(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) FindEnrolledByStudent(ctx context.Context, studentID uint64) ([]domain.Course, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) ReserveSeat(ctx context.Context, tx *gorm.DB, id uint64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockCourseRepository) ReleaseSeat(ctx context.Context, tx *gorm.DB, id uint64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockCourseRepository) SetAvailability(ctx context.Context, id uint64, open bool) error {
	args := m.Called(ctx, id, open)
	return args.Error(0)
}

func (m *MockCourseRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByStudent(ctx context.Context, tx *gorm.DB, studentID uint64) (*domain.Cart, error) {
	args := m.Called(ctx, tx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByStudentForUpdate(ctx context.Context, tx *gorm.DB, studentID uint64) (*domain.Cart, error) {
	args := m.Called(ctx, tx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) Create(ctx context.Context, tx *gorm.DB, cart *domain.Cart) error {
	args := m.Called(ctx, tx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) AddLine(ctx context.Context, tx *gorm.DB, cartID, courseID uint64) error {
	args := m.Called(ctx, tx, cartID, courseID)
	return args.Error(0)
}

func (m *MockCartRepository) RemoveLine(ctx context.Context, tx *gorm.DB, cartID, courseID uint64) error {
	args := m.Called(ctx, tx, cartID, courseID)
	return args.Error(0)
}

func (m *MockCartRepository) ClearLines(ctx context.Context, tx *gorm.DB, cartID uint64) error {
	args := m.Called(ctx, tx, cartID)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, tx *gorm.DB, cartID uint64) error {
	args := m.Called(ctx, tx, cartID)
	return args.Error(0)
}

func (m *MockCartRepository) SaveTotal(ctx context.Context, tx *gorm.DB, cartID uint64, total int64) error {
	args := m.Called(ctx, tx, cartID, total)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *domain.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByCode(ctx context.Context, code string) (*domain.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStudent(ctx context.Context, studentID uint64) ([]domain.Order, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsForStudent(ctx context.Context, studentID uint64) (bool, error) {
	args := m.Called(ctx, studentID)
	return args.Bool(0), args.Error(1)
}

type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Exists(ctx context.Context, tx *gorm.DB, studentID, courseID uint64) (bool, error) {
	args := m.Called(ctx, tx, studentID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, tx *gorm.DB, enrollments []*domain.Enrollment) error {
	args := m.Called(ctx, tx, enrollments)
	return args.Error(0)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, tx *gorm.DB, student *domain.Student) error {
	args := m.Called(ctx, tx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Student, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context) ([]domain.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockStudentRepository) Exists(ctx context.Context, tx *gorm.DB, id uint64) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) Delete(ctx context.Context, tx *gorm.DB, id uint64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockStudentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTeacherRepository struct {
	mock.Mock
}

func (m *MockTeacherRepository) Create(ctx context.Context, tx *gorm.DB, teacher *domain.Teacher) error {
	args := m.Called(ctx, tx, teacher)
	return args.Error(0)
}

func (m *MockTeacherRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Teacher, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) FindAll(ctx context.Context) ([]domain.Teacher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) Exists(ctx context.Context, tx *gorm.DB, id uint64) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeacherRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, tx *gorm.DB, user *domain.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	args := m.Called(ctx, tx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	args := m.Called(ctx, tx, email)
	return args.Bool(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"github.com/go-redis/redis/v8"
)

const (
	catalogCacheKey = "courses:available"
	catalogCacheTTL = 10 * time.Second
)

// CourseService is the catalog: teacher-side course management and the
// student-facing availability listing. The availability listing is served
// through a short-TTL redis cache; every capacity or catalog mutation
// drops the cached entry.
type CourseService struct {
	courses     repository.CourseRepository
	teachers    repository.TeacherRepository
	redisClient *redis.Client
	log         *logger.Logger
}

func NewCourseService(courses repository.CourseRepository, teachers repository.TeacherRepository, baseLog *logger.Logger) *CourseService {
	return &CourseService{
		courses:  courses,
		teachers: teachers,
		log:      baseLog.With("service", "CourseService"),
	}
}

func (s *CourseService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

type CourseInput struct {
	Name        string
	Description string
	Price       int64
	MaxSeats    int
}

func (s *CourseService) CreateCourse(ctx context.Context, teacherID uint64, in CourseInput) (*domain.Course, error) {
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrPreconditionFailed)
	}
	if in.MaxSeats <= 0 {
		return nil, fmt.Errorf("%w: max seats must be positive", domain.ErrPreconditionFailed)
	}
	if ok, err := s.teachers.Exists(ctx, nil, teacherID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: teacher %d", domain.ErrNotFound, teacherID)
	}

	course := &domain.Course{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		MaxSeats:    in.MaxSeats,
		TeacherID:   teacherID,
	}
	if err := s.courses.Create(ctx, nil, course); err != nil {
		return nil, err
	}
	s.invalidateCatalogCache(ctx)
	s.log.Info("course created", "courseID", course.ID, "teacherID", teacherID)
	return course, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, teacherID, courseID uint64, in CourseInput) (*domain.Course, error) {
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrPreconditionFailed)
	}
	if in.MaxSeats <= 0 {
		return nil, fmt.Errorf("%w: max seats must be positive", domain.ErrPreconditionFailed)
	}
	course, err := s.ownedCourse(ctx, teacherID, courseID)
	if err != nil {
		return nil, err
	}

	course.Name = in.Name
	course.Description = in.Description
	course.Price = in.Price
	course.MaxSeats = in.MaxSeats
	if err := s.courses.UpdateInfo(ctx, nil, course); err != nil {
		return nil, err
	}
	s.invalidateCatalogCache(ctx)
	return s.courses.FindByID(ctx, nil, courseID)
}

// SetAvailability is the manual open/close toggle for the course owner.
// Opening a full course is refused by the repository with
// ErrPreconditionFailed.
func (s *CourseService) SetAvailability(ctx context.Context, teacherID, courseID uint64, open bool) (*domain.Course, error) {
	if _, err := s.ownedCourse(ctx, teacherID, courseID); err != nil {
		return nil, err
	}
	if err := s.courses.SetAvailability(ctx, courseID, open); err != nil {
		return nil, err
	}
	s.invalidateCatalogCache(ctx)
	s.log.Info("course availability toggled", "courseID", courseID, "open", open)
	return s.courses.FindByID(ctx, nil, courseID)
}

func (s *CourseService) ownedCourse(ctx context.Context, teacherID, courseID uint64) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, nil, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, fmt.Errorf("%w: course %d belongs to another teacher", domain.ErrUnauthorized, courseID)
	}
	return course, nil
}

func (s *CourseService) GetAllCourses(ctx context.Context) ([]domain.Course, error) {
	return s.courses.FindAll(ctx)
}

// GetAvailableCourses reads the IsOpen projection only; it never reserves
// anything, so a listed course can still be gone by checkout time.
func (s *CourseService) GetAvailableCourses(ctx context.Context) ([]domain.Course, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var courses []domain.Course
			if err := json.Unmarshal([]byte(cached), &courses); err == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.courses.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(courses); err == nil {
			s.redisClient.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
		}
	}
	return courses, nil
}

func (s *CourseService) GetCoursesForStudent(ctx context.Context, studentID uint64) ([]domain.Course, error) {
	return s.courses.FindEnrolledByStudent(ctx, studentID)
}

// WarmupCatalogCache primes the availability listing at boot so the first
// requests after a restart do not stampede the database.
func (s *CourseService) WarmupCatalogCache(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}
	courses, err := s.courses.FindAvailable(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, catalogCacheKey, data, catalogCacheTTL).Err()
}

func (s *CourseService) invalidateCatalogCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.log.Warn("catalog cache invalidation failed", "error", err)
	}
}

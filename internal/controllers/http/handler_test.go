package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/mocks"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type passthroughTx struct{}

func (passthroughTx) Do(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// testEnv wires the real services over mock repositories so requests
// exercise the full route, middleware and error-mapping path.
type testEnv struct {
	router       *gin.Engine
	users        *mocks.MockUserRepository
	students     *mocks.MockStudentRepository
	teachers     *mocks.MockTeacherRepository
	courses      *mocks.MockCourseRepository
	carts        *mocks.MockCartRepository
	orders       *mocks.MockOrderRepository
	enrollments  *mocks.MockEnrollmentRepository
	auth         *services.AuthService
	studentToken string
	teacherToken string
}

func newTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	env := &testEnv{
		users:       new(mocks.MockUserRepository),
		students:    new(mocks.MockStudentRepository),
		teachers:    new(mocks.MockTeacherRepository),
		courses:     new(mocks.MockCourseRepository),
		carts:       new(mocks.MockCartRepository),
		orders:      new(mocks.MockOrderRepository),
		enrollments: new(mocks.MockEnrollmentRepository),
	}

	env.auth = services.NewAuthService(passthroughTx{}, env.users, env.students, env.teachers, "route-test-secret", time.Hour, log)
	cartService := services.NewCartService(passthroughTx{}, env.carts, env.courses, env.enrollments, env.students, log)
	courseService := services.NewCourseService(env.courses, env.teachers, log)
	orderService := services.NewOrderService(passthroughTx{}, env.orders, env.carts, env.courses, env.enrollments, env.students, new(mocks.MockPublisher), log)
	registryService := services.NewRegistryService(passthroughTx{}, env.students, env.teachers, env.courses, env.carts, env.orders, log)

	handler := NewHandler(env.auth, cartService, courseService, orderService, registryService, log)
	env.router = gin.New()
	handler.RegisterRoutes(env.router)

	env.studentToken = env.registerToken(t, "student-user", "student@example.com", domain.RoleStudent, 1)
	env.teacherToken = env.registerToken(t, "teacher-user", "teacher@example.com", domain.RoleTeacher, 7)
	return env
}

func (e *testEnv) registerToken(t *testing.T, username, email string, role domain.Role, entityID uint64) string {
	t.Helper()
	e.users.On("UsernameExists", mock.Anything, mock.Anything, username).Return(false, nil).Once()
	e.users.On("EmailExists", mock.Anything, mock.Anything, email).Return(false, nil).Once()
	if role == domain.RoleStudent {
		e.students.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Student")).
			Return(nil).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Student).ID = entityID
		}).Once()
	} else {
		e.teachers.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Teacher")).
			Return(nil).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Teacher).ID = entityID
		}).Once()
	}
	e.users.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	result, err := e.auth.Register(context.Background(), services.RegisterInput{
		Username: username,
		Password: "s3cret",
		Name:     username,
		Email:    email,
		Role:     role,
	})
	assert.NoError(t, err)
	return result.Token
}

func (e *testEnv) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRoutes_Authentication(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing token", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/carts/student/1", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/carts/student/1", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("teacher token on a student route", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/carts/student/1", env.teacherToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("student token on a teacher route", func(t *testing.T) {
		w := env.request(http.MethodPost, "/api/courses", env.studentToken,
			gin.H{"name": "Algebra", "price": 1000, "maxSeats": 30})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRoutes_StudentOperatesOnOwnResourcesOnly(t *testing.T) {
	env := newTestEnv(t)

	env.carts.On("FindByStudent", mock.Anything, mock.Anything, uint64(1)).
		Return(&domain.Cart{ID: 11, StudentID: 1}, nil)
	env.courses.On("FindByIDs", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Course{}, nil)

	w := env.request(http.MethodGet, "/api/carts/student/1", env.studentToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(http.MethodGet, "/api/carts/student/2", env.studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoutes_PlaceOrder_EmptyCartMapsTo422(t *testing.T) {
	env := newTestEnv(t)

	env.students.On("Exists", mock.Anything, mock.Anything, uint64(1)).Return(true, nil)
	env.carts.On("FindByStudentForUpdate", mock.Anything, mock.Anything, uint64(1)).
		Return(&domain.Cart{ID: 11, StudentID: 1}, nil)

	w := env.request(http.MethodPost, "/api/orders/student/1/place", env.studentToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRoutes_GetOrderByCode_ForeignOrderIsForbidden(t *testing.T) {
	env := newTestEnv(t)

	env.orders.On("FindByCode", mock.Anything, "ORD-AAAA1111").
		Return(&domain.Order{ID: 1, Code: "ORD-AAAA1111", StudentID: 2}, nil)

	w := env.request(http.MethodGet, "/api/orders/code/ORD-AAAA1111", env.studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoutes_TeacherCreatesCourse(t *testing.T) {
	env := newTestEnv(t)

	env.teachers.On("Exists", mock.Anything, mock.Anything, uint64(7)).Return(true, nil)
	env.courses.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Course")).
		Return(nil).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.Course).ID = 2
	})

	w := env.request(http.MethodPost, "/api/courses", env.teacherToken,
		gin.H{"name": "Algebra", "description": "intro", "price": 1000, "maxSeats": 30})

	assert.Equal(t, http.StatusCreated, w.Code)
	var created domain.Course
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, uint64(2), created.ID)
	assert.Equal(t, uint64(7), created.TeacherID)
}

func TestRoutes_AvailableCoursesIsPublic(t *testing.T) {
	env := newTestEnv(t)

	env.courses.On("FindAvailable", mock.Anything).
		Return([]domain.Course{{ID: 2, Name: "Algebra", IsOpen: true}}, nil)

	w := env.request(http.MethodGet, "/api/courses/available", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_Registry(t *testing.T) {
	env := newTestEnv(t)

	t.Run("teacher lists students", func(t *testing.T) {
		env.students.On("FindAll", mock.Anything).
			Return([]domain.Student{{ID: 1, Name: "Alice"}}, nil)
		w := env.request(http.MethodGet, "/api/students", env.teacherToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("student cannot list students", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/students", env.studentToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("teacher listing is public", func(t *testing.T) {
		env.teachers.On("FindAll", mock.Anything).
			Return([]domain.Teacher{{ID: 7, Name: "Prof"}}, nil)
		w := env.request(http.MethodGet, "/api/teachers", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deleting an account with orders is refused", func(t *testing.T) {
		env.students.On("Exists", mock.Anything, mock.Anything, uint64(1)).Return(true, nil)
		env.orders.On("ExistsForStudent", mock.Anything, uint64(1)).Return(true, nil)
		w := env.request(http.MethodDelete, "/api/students/1", env.studentToken, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestWriteError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{log: logger.NewNop()}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("%w: course 9", domain.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: already owned", domain.ErrConflict), http.StatusConflict},
		{"invalid state", fmt.Errorf("%w: cart is empty", domain.ErrInvalidState), http.StatusUnprocessableEntity},
		{"precondition failed", fmt.Errorf("%w: negative price", domain.ErrPreconditionFailed), http.StatusPreconditionFailed},
		{"unauthorized", fmt.Errorf("%w: invalid token", domain.ErrUnauthorized), http.StatusUnauthorized},
		{"unclassified", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			h.writeError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

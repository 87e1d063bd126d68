package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/mocks"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-signing-secret"

func newAuthServiceForTest(
	users *mocks.MockUserRepository,
	students *mocks.MockStudentRepository,
	teachers *mocks.MockTeacherRepository,
) *AuthService {
	return NewAuthService(passthroughTxManager{}, users, students, teachers, testSecret, time.Hour, logger.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	t.Run("registers a student and returns a usable token", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		students := new(mocks.MockStudentRepository)

		users.On("UsernameExists", mock.Anything, mock.Anything, "alice").Return(false, nil)
		users.On("EmailExists", mock.Anything, mock.Anything, "alice@example.com").Return(false, nil)
		students.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Student")).
			Return(nil).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Student).ID = TestStudentID
		})
		users.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(nil).Run(func(args mock.Arguments) {
			user := args.Get(2).(*domain.User)
			assert.NotEqual(t, "s3cret", user.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
		})

		service := newAuthServiceForTest(users, students, new(mocks.MockTeacherRepository))
		result, err := service.Register(context.Background(), RegisterInput{
			Username: "alice",
			Password: "s3cret",
			Name:     "Alice",
			Email:    "alice@example.com",
			Role:     domain.RoleStudent,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, result.Role)
		assert.Equal(t, TestStudentID, result.EntityID)
		assert.NotEmpty(t, result.Token)

		claims, err := service.ParseToken(result.Token)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, claims.Role)
		assert.Equal(t, TestStudentID, claims.EntityID)
		assert.Equal(t, "alice", claims.Subject)
		users.AssertExpectations(t)
		students.AssertExpectations(t)
	})

	t.Run("registers a teacher against the teacher registry", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		teachers := new(mocks.MockTeacherRepository)

		users.On("UsernameExists", mock.Anything, mock.Anything, "bob").Return(false, nil)
		users.On("EmailExists", mock.Anything, mock.Anything, "bob@example.com").Return(false, nil)
		teachers.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Teacher")).
			Return(nil).Run(func(args mock.Arguments) {
			args.Get(2).(*domain.Teacher).ID = TestTeacherID
		})
		users.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		service := newAuthServiceForTest(users, new(mocks.MockStudentRepository), teachers)
		result, err := service.Register(context.Background(), RegisterInput{
			Username: "bob",
			Password: "s3cret",
			Name:     "Bob",
			Email:    "bob@example.com",
			Role:     domain.RoleTeacher,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleTeacher, result.Role)
		assert.Equal(t, TestTeacherID, result.EntityID)
		teachers.AssertExpectations(t)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		service := newAuthServiceForTest(new(mocks.MockUserRepository), new(mocks.MockStudentRepository), new(mocks.MockTeacherRepository))
		_, err := service.Register(context.Background(), RegisterInput{
			Username: "eve", Password: "x", Role: domain.Role("admin"),
		})
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("UsernameExists", mock.Anything, mock.Anything, "alice").Return(true, nil)

		service := newAuthServiceForTest(users, new(mocks.MockStudentRepository), new(mocks.MockTeacherRepository))
		_, err := service.Register(context.Background(), RegisterInput{
			Username: "alice", Password: "x", Email: "a@example.com", Role: domain.RoleStudent,
		})

		assert.ErrorIs(t, err, domain.ErrConflict)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &domain.User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
		EntityID:     TestStudentID,
	}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		service := newAuthServiceForTest(users, new(mocks.MockStudentRepository), new(mocks.MockTeacherRepository))
		result, err := service.Login(context.Background(), "alice", "s3cret")

		assert.NoError(t, err)
		assert.Equal(t, TestStudentID, result.EntityID)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		service := newAuthServiceForTest(users, new(mocks.MockStudentRepository), new(mocks.MockTeacherRepository))
		_, err := service.Login(context.Background(), "alice", "wrong")

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown username maps to the same unauthorized error", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByUsername", mock.Anything, "mallory").
			Return(nil, fmt.Errorf("%w: user", domain.ErrNotFound))

		service := newAuthServiceForTest(users, new(mocks.MockStudentRepository), new(mocks.MockTeacherRepository))
		_, err := service.Login(context.Background(), "mallory", "s3cret")

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthService_ParseToken(t *testing.T) {
	service := newAuthServiceForTest(new(mocks.MockUserRepository), new(mocks.MockStudentRepository), new(mocks.MockTeacherRepository))

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ParseToken("not.a.token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := newAuthServiceForTest(new(mocks.MockUserRepository), new(mocks.MockStudentRepository), new(mocks.MockTeacherRepository))
		other.secret = []byte("some-other-secret")
		token, err := other.signToken(&domain.User{Username: "alice", Role: domain.RoleStudent, EntityID: 1})
		assert.NoError(t, err)

		_, err = service.ParseToken(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

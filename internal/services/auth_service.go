package services

import (
	"context"
	"fmt"
	"time"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	gormdb "gorm.io/gorm"
)

// AuthService issues and verifies the tokens the HTTP layer trusts for the
// resolved studentId/teacherId. Registration creates the Student or
// Teacher row together with the credentials row.
type AuthService struct {
	tx       repository.TxManager
	users    repository.UserRepository
	students repository.StudentRepository
	teachers repository.TeacherRepository
	secret   []byte
	tokenTTL time.Duration
	log      *logger.Logger
}

func NewAuthService(
	tx repository.TxManager,
	users repository.UserRepository,
	students repository.StudentRepository,
	teachers repository.TeacherRepository,
	secret string,
	tokenTTL time.Duration,
	baseLog *logger.Logger,
) *AuthService {
	return &AuthService{
		tx:       tx,
		users:    users,
		students: students,
		teachers: teachers,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		log:      baseLog.With("service", "AuthService"),
	}
}

type Claims struct {
	Role     domain.Role `json:"role"`
	EntityID uint64      `json:"entityId"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Role     domain.Role
}

type LoginResult struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	EntityID uint64      `json:"entityId"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*LoginResult, error) {
	if in.Role != domain.RoleStudent && in.Role != domain.RoleTeacher {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrPreconditionFailed, in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = s.tx.Do(ctx, func(tx *gormdb.DB) error {
		if taken, err := s.users.UsernameExists(ctx, tx, in.Username); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("%w: username %q already exists", domain.ErrConflict, in.Username)
		}
		if taken, err := s.users.EmailExists(ctx, tx, in.Email); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("%w: email %q already exists", domain.ErrConflict, in.Email)
		}

		var entityID uint64
		switch in.Role {
		case domain.RoleStudent:
			student := &domain.Student{Name: in.Name, Email: in.Email}
			if err := s.students.Create(ctx, tx, student); err != nil {
				return err
			}
			entityID = student.ID
		case domain.RoleTeacher:
			teacher := &domain.Teacher{Name: in.Name, Email: in.Email}
			if err := s.teachers.Create(ctx, tx, teacher); err != nil {
				return err
			}
			entityID = teacher.ID
		}

		user = &domain.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: string(hash),
			Role:         in.Role,
			EntityID:     entityID,
		}
		return s.users.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "username", user.Username, "role", user.Role)
	return s.loginResult(user)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	return s.loginResult(user)
}

func (s *AuthService) loginResult(user *domain.User) (*LoginResult, error) {
	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		EntityID: user.EntityID,
	}, nil
}

func (s *AuthService) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:     user.Role,
		EntityID: user.EntityID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	return claims, nil
}

package mysql

import (
	"context"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/repository"
	"gorm.io/gorm"
)

// Student, teacher and user rows are thin CRUD; one file covers the three.

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepository(db *gorm.DB, baseLog *logger.Logger) repository.StudentRepository {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepository")}
}

func (r *studentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *studentRepo) Create(ctx context.Context, tx *gorm.DB, student *domain.Student) error {
	return translate(r.conn(tx).WithContext(ctx).Create(student).Error, "student")
}

func (r *studentRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Student, error) {
	var s domain.Student
	if err := r.conn(tx).WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err, "student")
	}
	return &s, nil
}

func (r *studentRepo) FindAll(ctx context.Context) ([]domain.Student, error) {
	var out []domain.Student
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *studentRepo) Exists(ctx context.Context, tx *gorm.DB, id uint64) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&domain.Student{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *studentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint64) error {
	return translate(r.conn(tx).WithContext(ctx).Delete(&domain.Student{}, id).Error, "student")
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Student{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type teacherRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeacherRepository(db *gorm.DB, baseLog *logger.Logger) repository.TeacherRepository {
	return &teacherRepo{db: db, log: baseLog.With("repo", "TeacherRepository")}
}

func (r *teacherRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *teacherRepo) Create(ctx context.Context, tx *gorm.DB, teacher *domain.Teacher) error {
	return translate(r.conn(tx).WithContext(ctx).Create(teacher).Error, "teacher")
}

func (r *teacherRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint64) (*domain.Teacher, error) {
	var t domain.Teacher
	if err := r.conn(tx).WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err, "teacher")
	}
	return &t, nil
}

func (r *teacherRepo) FindAll(ctx context.Context) ([]domain.Teacher, error) {
	var out []domain.Teacher
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *teacherRepo) Exists(ctx context.Context, tx *gorm.DB, id uint64) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&domain.Teacher{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *teacherRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Teacher{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepository(db *gorm.DB, baseLog *logger.Logger) repository.UserRepository {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepository")}
}

func (r *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *domain.User) error {
	return translate(r.conn(tx).WithContext(ctx).Create(user).Error, "user")
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *userRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/mocks"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newCartServiceForTest(
	carts *mocks.MockCartRepository,
	courses *mocks.MockCourseRepository,
	enrollments *mocks.MockEnrollmentRepository,
	students *mocks.MockStudentRepository,
) *CartService {
	return NewCartService(passthroughTxManager{}, carts, courses, enrollments, students, logger.NewNop())
}

func TestCartService_GetCart_CreatesOnFirstAccess(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	courses := new(mocks.MockCourseRepository)
	students := new(mocks.MockStudentRepository)

	carts.On("FindByStudent", mock.Anything, mock.Anything, TestStudentID).
		Return(nil, fmt.Errorf("%w: cart for student %d", domain.ErrNotFound, TestStudentID)).Once()
	students.On("Exists", mock.Anything, mock.Anything, TestStudentID).Return(true, nil)
	carts.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Cart")).
		Return(nil).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.Cart).ID = TestCartID
	})
	courses.On("FindByIDs", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Course{}, nil)

	service := newCartServiceForTest(carts, courses, new(mocks.MockEnrollmentRepository), students)
	view, err := service.GetCart(context.Background(), TestStudentID)

	assert.NoError(t, err)
	assert.Equal(t, TestCartID, view.ID)
	assert.Equal(t, TestStudentID, view.StudentID)
	assert.Empty(t, view.Lines)
	assert.Equal(t, int64(0), view.TotalPrice)
	carts.AssertExpectations(t)
}

// The loser of the cart creation race must read the winner's committed
// row. Inside the transaction the snapshot can pre-date the winning
// insert, so the fallback read has to bypass the transaction handle.
func TestCartService_GetCart_LostCreationRace(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	courses := new(mocks.MockCourseRepository)
	students := new(mocks.MockStudentRepository)

	txHandle := &gorm.DB{}
	notFound := fmt.Errorf("%w: cart", domain.ErrNotFound)
	carts.On("FindByStudent", mock.Anything, txHandle, TestStudentID).Return(nil, notFound).Once()
	students.On("Exists", mock.Anything, txHandle, TestStudentID).Return(true, nil)
	carts.On("Create", mock.Anything, txHandle, mock.AnythingOfType("*domain.Cart")).
		Return(fmt.Errorf("%w: duplicate cart", domain.ErrConflict))
	carts.On("FindByStudent", mock.Anything, (*gorm.DB)(nil), TestStudentID).
		Return(makeCart(TestCartID, TestStudentID), nil).Once()
	courses.On("FindByIDs", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Course{}, nil)

	service := NewCartService(fixedTxManager{tx: txHandle}, carts, courses, new(mocks.MockEnrollmentRepository), students, logger.NewNop())
	view, err := service.GetCart(context.Background(), TestStudentID)

	assert.NoError(t, err)
	assert.Equal(t, TestCartID, view.ID)
	carts.AssertExpectations(t)
}

func TestCartService_GetCart_UnknownStudent(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	students := new(mocks.MockStudentRepository)

	carts.On("FindByStudent", mock.Anything, mock.Anything, uint64(99)).
		Return(nil, fmt.Errorf("%w: cart", domain.ErrNotFound))
	students.On("Exists", mock.Anything, mock.Anything, uint64(99)).Return(false, nil)

	service := newCartServiceForTest(carts, new(mocks.MockCourseRepository), new(mocks.MockEnrollmentRepository), students)
	_, err := service.GetCart(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_AddCourse(t *testing.T) {
	algebra := makeCourse(2, "Algebra", 1000, 10, 0)

	tests := []struct {
		name         string
		course       *domain.Course
		cart         *domain.Cart
		owned        bool
		expectedKind error
	}{
		{
			name:   "adds an open course",
			course: algebra,
			cart:   makeCart(TestCartID, TestStudentID),
		},
		{
			name:         "rejects a course already in the cart",
			course:       algebra,
			cart:         makeCart(TestCartID, TestStudentID, 2),
			expectedKind: domain.ErrConflict,
		},
		{
			name:         "rejects a course the student already owns",
			course:       algebra,
			cart:         makeCart(TestCartID, TestStudentID),
			owned:        true,
			expectedKind: domain.ErrConflict,
		},
		{
			name:         "rejects a closed course",
			course:       makeCourse(2, "Algebra", 1000, 5, 5),
			cart:         makeCart(TestCartID, TestStudentID),
			expectedKind: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(mocks.MockCartRepository)
			courses := new(mocks.MockCourseRepository)
			enrollments := new(mocks.MockEnrollmentRepository)

			carts.On("FindByStudent", mock.Anything, mock.Anything, TestStudentID).Return(tt.cart, nil)
			courses.On("FindByID", mock.Anything, mock.Anything, uint64(2)).Return(tt.course, nil)
			enrollments.On("Exists", mock.Anything, mock.Anything, TestStudentID, uint64(2)).
				Return(tt.owned, nil).Maybe()

			if tt.expectedKind == nil {
				carts.On("AddLine", mock.Anything, mock.Anything, TestCartID, uint64(2)).Return(nil)
				courses.On("FindByIDs", mock.Anything, mock.Anything, []uint64{2}).
					Return([]domain.Course{*tt.course}, nil)
				carts.On("SaveTotal", mock.Anything, mock.Anything, TestCartID, tt.course.Price).Return(nil)
			}

			service := newCartServiceForTest(carts, courses, enrollments, new(mocks.MockStudentRepository))
			view, err := service.AddCourse(context.Background(), TestStudentID, 2)

			if tt.expectedKind != nil {
				assert.ErrorIs(t, err, tt.expectedKind)
				assert.Nil(t, view)
				carts.AssertNotCalled(t, "AddLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Len(t, view.Lines, 1)
				assert.Equal(t, "Algebra", view.Lines[0].CourseName)
				assert.Equal(t, tt.course.Price, view.TotalPrice)
			}
			carts.AssertExpectations(t)
		})
	}
}

func TestCartService_RemoveCourse(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	courses := new(mocks.MockCourseRepository)

	carts.On("FindByStudent", mock.Anything, mock.Anything, TestStudentID).
		Return(makeCart(TestCartID, TestStudentID, 2, 3), nil)
	carts.On("RemoveLine", mock.Anything, mock.Anything, TestCartID, uint64(2)).Return(nil)
	courses.On("FindByIDs", mock.Anything, mock.Anything, []uint64{3}).
		Return([]domain.Course{*makeCourse(3, "Geometry", 2000, 10, 0)}, nil)
	carts.On("SaveTotal", mock.Anything, mock.Anything, TestCartID, int64(2000)).Return(nil)

	service := newCartServiceForTest(carts, courses, new(mocks.MockEnrollmentRepository), new(mocks.MockStudentRepository))
	view, err := service.RemoveCourse(context.Background(), TestStudentID, 2)

	assert.NoError(t, err)
	assert.Len(t, view.Lines, 1)
	assert.Equal(t, uint64(3), view.Lines[0].CourseID)
	assert.Equal(t, int64(2000), view.TotalPrice)
	carts.AssertExpectations(t)
}

func TestCartService_RemoveCourse_NotInCart(t *testing.T) {
	carts := new(mocks.MockCartRepository)

	carts.On("FindByStudent", mock.Anything, mock.Anything, TestStudentID).
		Return(makeCart(TestCartID, TestStudentID, 3), nil)
	carts.On("RemoveLine", mock.Anything, mock.Anything, TestCartID, uint64(2)).
		Return(fmt.Errorf("%w: course 2 not in cart", domain.ErrNotFound))

	service := newCartServiceForTest(carts, new(mocks.MockCourseRepository), new(mocks.MockEnrollmentRepository), new(mocks.MockStudentRepository))
	_, err := service.RemoveCourse(context.Background(), TestStudentID, 2)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartService_Clear(t *testing.T) {
	carts := new(mocks.MockCartRepository)
	courses := new(mocks.MockCourseRepository)

	carts.On("FindByStudent", mock.Anything, mock.Anything, TestStudentID).
		Return(makeCart(TestCartID, TestStudentID, 2, 3), nil)
	carts.On("ClearLines", mock.Anything, mock.Anything, TestCartID).Return(nil)
	courses.On("FindByIDs", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Course{}, nil)
	carts.On("SaveTotal", mock.Anything, mock.Anything, TestCartID, int64(0)).Return(nil)

	service := newCartServiceForTest(carts, courses, new(mocks.MockEnrollmentRepository), new(mocks.MockStudentRepository))
	view, err := service.Clear(context.Background(), TestStudentID)

	assert.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, int64(0), view.TotalPrice)
	carts.AssertExpectations(t)
}

func TestCartService_ReplaceAll(t *testing.T) {
	t.Run("replaces the selection wholesale", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		courses := new(mocks.MockCourseRepository)
		enrollments := new(mocks.MockEnrollmentRepository)

		algebra := makeCourse(2, "Algebra", 1000, 10, 0)
		geometry := makeCourse(3, "Geometry", 2000, 10, 0)

		carts.On("FindByStudent", mock.Anything, mock.Anything, TestStudentID).
			Return(makeCart(TestCartID, TestStudentID, 9), nil)
		carts.On("ClearLines", mock.Anything, mock.Anything, TestCartID).Return(nil)
		courses.On("FindByID", mock.Anything, mock.Anything, uint64(2)).Return(algebra, nil)
		courses.On("FindByID", mock.Anything, mock.Anything, uint64(3)).Return(geometry, nil)
		enrollments.On("Exists", mock.Anything, mock.Anything, TestStudentID, mock.Anything).Return(false, nil)
		carts.On("AddLine", mock.Anything, mock.Anything, TestCartID, uint64(2)).Return(nil)
		carts.On("AddLine", mock.Anything, mock.Anything, TestCartID, uint64(3)).Return(nil)
		courses.On("FindByIDs", mock.Anything, mock.Anything, []uint64{2, 3}).
			Return([]domain.Course{*algebra, *geometry}, nil)
		carts.On("SaveTotal", mock.Anything, mock.Anything, TestCartID, int64(3000)).Return(nil)

		service := newCartServiceForTest(carts, courses, enrollments, new(mocks.MockStudentRepository))
		view, err := service.ReplaceAll(context.Background(), TestStudentID, []uint64{2, 3})

		assert.NoError(t, err)
		assert.Len(t, view.Lines, 2)
		assert.Equal(t, int64(3000), view.TotalPrice)
		carts.AssertExpectations(t)
	})

	t.Run("rejects a duplicated course id", func(t *testing.T) {
		carts := new(mocks.MockCartRepository)
		courses := new(mocks.MockCourseRepository)
		enrollments := new(mocks.MockEnrollmentRepository)

		algebra := makeCourse(2, "Algebra", 1000, 10, 0)

		carts.On("FindByStudent", mock.Anything, mock.Anything, TestStudentID).
			Return(makeCart(TestCartID, TestStudentID), nil)
		carts.On("ClearLines", mock.Anything, mock.Anything, TestCartID).Return(nil)
		courses.On("FindByID", mock.Anything, mock.Anything, uint64(2)).Return(algebra, nil)
		enrollments.On("Exists", mock.Anything, mock.Anything, TestStudentID, uint64(2)).Return(false, nil)
		carts.On("AddLine", mock.Anything, mock.Anything, TestCartID, uint64(2)).Return(nil)

		service := newCartServiceForTest(carts, courses, enrollments, new(mocks.MockStudentRepository))
		_, err := service.ReplaceAll(context.Background(), TestStudentID, []uint64{2, 2})

		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

package http

import (
	"errors"
	"net/http"

	"github.com/atfskmn/-Course-Management-Api/internal/domain"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	"github.com/atfskmn/-Course-Management-Api/internal/services"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth     *services.AuthService
	carts    *services.CartService
	courses  *services.CourseService
	orders   *services.OrderService
	registry *services.RegistryService
	log      *logger.Logger
}

func NewHandler(
	auth *services.AuthService,
	carts *services.CartService,
	courses *services.CourseService,
	orders *services.OrderService,
	registry *services.RegistryService,
	baseLog *logger.Logger,
) *Handler {
	return &Handler{
		auth:     auth,
		carts:    carts,
		courses:  courses,
		orders:   orders,
		registry: registry,
		log:      baseLog.With("component", "http"),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/stats", h.GetStats)
	api.GET("/courses", h.GetAllCourses)
	api.GET("/courses/available", h.GetAvailableCourses)
	api.GET("/teachers", h.ListTeachers)
	api.GET("/teachers/:teacherId", h.GetTeacher)

	teacher := api.Group("", h.RequireRole(domain.RoleTeacher))
	teacher.POST("/courses", h.CreateCourse)
	teacher.PUT("/courses/:courseId", h.UpdateCourse)
	teacher.PATCH("/courses/:courseId/availability", h.SetCourseAvailability)
	teacher.GET("/students", h.ListStudents)
	teacher.GET("/students/:studentId", h.GetStudent)

	student := api.Group("", h.RequireRole(domain.RoleStudent))
	student.DELETE("/students/:studentId", h.DeleteStudent)
	student.GET("/courses/student/:studentId", h.GetCoursesForStudent)
	student.GET("/carts/student/:studentId", h.GetCart)
	student.PUT("/carts/student/:studentId", h.ReplaceCart)
	student.POST("/carts/student/:studentId/courses/:courseId", h.AddCourseToCart)
	student.DELETE("/carts/student/:studentId/courses/:courseId", h.RemoveCourseFromCart)
	student.DELETE("/carts/student/:studentId/empty", h.EmptyCart)
	student.POST("/orders/student/:studentId/place", h.PlaceOrder)
	student.GET("/orders/student/:studentId", h.GetOrdersForStudent)
	// gin cannot mix a wildcard with the static "student" segment on the
	// same method, hence /orders/code/ rather than /orders/:orderCode.
	student.GET("/orders/code/:orderCode", h.GetOrderByCode)
}

// writeError maps the domain error kinds onto HTTP statuses so a client
// can tell "remove the offending line and retry" (409) apart from
// "nothing to retry" (404/422).
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPreconditionFailed):
		status = http.StatusPreconditionFailed
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

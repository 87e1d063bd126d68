package http

import (
	"net/http"

	"github.com/atfskmn/-Course-Management-Api/internal/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetAllCourses(c *gin.Context) {
	courses, err := h.courses.GetAllCourses(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) GetAvailableCourses(c *gin.Context) {
	courses, err := h.courses.GetAvailableCourses(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) GetCoursesForStudent(c *gin.Context) {
	studentID, ok := h.studentFromPath(c)
	if !ok {
		return
	}
	courses, err := h.courses.GetCoursesForStudent(c.Request.Context(), studentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	claims := claimsFrom(c)
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course, err := h.courses.CreateCourse(c.Request.Context(), claims.EntityID, services.CourseInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		MaxSeats:    req.MaxSeats,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	claims := claimsFrom(c)
	courseID, ok := courseFromPath(c)
	if !ok {
		return
	}
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course, err := h.courses.UpdateCourse(c.Request.Context(), claims.EntityID, courseID, services.CourseInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		MaxSeats:    req.MaxSeats,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) SetCourseAvailability(c *gin.Context) {
	claims := claimsFrom(c)
	courseID, ok := courseFromPath(c)
	if !ok {
		return
	}
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course, err := h.courses.SetAvailability(c.Request.Context(), claims.EntityID, courseID, *req.Open)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.registry.GetStats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

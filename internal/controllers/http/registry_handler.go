package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListTeachers(c *gin.Context) {
	teachers, err := h.registry.ListTeachers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, teachers)
}

func (h *Handler) GetTeacher(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("teacherId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher id"})
		return
	}
	teacher, err := h.registry.GetTeacher(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher)
}

func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.registry.ListStudents(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

func (h *Handler) GetStudent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("studentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	student, err := h.registry.GetStudent(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent lets a student close their own account; the service
// refuses while orders or cart lines exist.
func (h *Handler) DeleteStudent(c *gin.Context) {
	studentID, ok := h.studentFromPath(c)
	if !ok {
		return
	}
	if err := h.registry.DeleteStudent(c.Request.Context(), studentID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

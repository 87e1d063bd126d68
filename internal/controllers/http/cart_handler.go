package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCart(c *gin.Context) {
	studentID, ok := h.studentFromPath(c)
	if !ok {
		return
	}
	cart, err := h.carts.GetCart(c.Request.Context(), studentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) AddCourseToCart(c *gin.Context) {
	studentID, ok := h.studentFromPath(c)
	if !ok {
		return
	}
	courseID, ok := courseFromPath(c)
	if !ok {
		return
	}
	cart, err := h.carts.AddCourse(c.Request.Context(), studentID, courseID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) RemoveCourseFromCart(c *gin.Context) {
	studentID, ok := h.studentFromPath(c)
	if !ok {
		return
	}
	courseID, ok := courseFromPath(c)
	if !ok {
		return
	}
	cart, err := h.carts.RemoveCourse(c.Request.Context(), studentID, courseID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) EmptyCart(c *gin.Context) {
	studentID, ok := h.studentFromPath(c)
	if !ok {
		return
	}
	cart, err := h.carts.Clear(c.Request.Context(), studentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) ReplaceCart(c *gin.Context) {
	studentID, ok := h.studentFromPath(c)
	if !ok {
		return
	}
	var req ReplaceCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.carts.ReplaceAll(c.Request.Context(), studentID, req.CourseIDs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

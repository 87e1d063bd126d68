package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) PlaceOrder(c *gin.Context) {
	studentID, ok := h.studentFromPath(c)
	if !ok {
		return
	}
	order, err := h.orders.PlaceOrder(c.Request.Context(), studentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrderByCode(c *gin.Context) {
	code := c.Param("orderCode")
	order, err := h.orders.GetOrderByCode(c.Request.Context(), code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	claims := claimsFrom(c)
	if claims == nil || claims.EntityID != order.StudentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrdersForStudent(c *gin.Context) {
	studentID, ok := h.studentFromPath(c)
	if !ok {
		return
	}
	orders, err := h.orders.GetOrdersForStudent(c.Request.Context(), studentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

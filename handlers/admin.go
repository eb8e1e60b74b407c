package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns every order, most recent first (admin only)
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	orders, err := h.Orders.GetAllOrders(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to retrieve orders.", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

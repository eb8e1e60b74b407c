package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bunshack-api/middleware"
	"bunshack-api/models"
	"bunshack-api/store"

	"github.com/gin-gonic/gin"
)

const msgEmptyOrder = "Order must contain at least one menu item."

type OrderLineRequest struct {
	MenuID   string `json:"menuId" binding:"required"`
	Quantity int    `json:"quantity"`
}

type OrderRequest struct {
	OrderMenus []OrderLineRequest `json:"orderMenus" binding:"dive"`
}

// lines validates the submitted line set and converts it to order lines.
func (r OrderRequest) lines() ([]models.OrderMenu, string) {
	if len(r.OrderMenus) == 0 {
		return nil, msgEmptyOrder
	}
	seen := make(map[string]bool, len(r.OrderMenus))
	lines := make([]models.OrderMenu, 0, len(r.OrderMenus))
	for _, l := range r.OrderMenus {
		if l.Quantity < 1 {
			return nil, fmt.Sprintf("Quantity for menu item with ID %s must be at least 1.", l.MenuID)
		}
		if seen[l.MenuID] {
			return nil, fmt.Sprintf("Menu item with ID %s appears more than once.", l.MenuID)
		}
		seen[l.MenuID] = true
		lines = append(lines, models.OrderMenu{MenuID: l.MenuID, Quantity: l.Quantity})
	}
	return lines, ""
}

func orderNotFound(id string) string {
	return fmt.Sprintf("Order with ID %s not found.", id)
}

// bindOrder reads the request and prices it; on failure the response is written.
func (h *Handler) bindOrder(c *gin.Context, failMsg string) (*models.Order, bool) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order.", "errors": bindingMessages(err)})
		return nil, false
	}
	lines, msg := req.lines()
	if msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return nil, false
	}

	total, err := TotalPrice(c.Request.Context(), h.Menus, lines)
	if err != nil {
		if errors.Is(err, store.ErrMenuNotFound) {
			respondError(c, http.StatusBadRequest, err.Error())
			return nil, false
		}
		respondInternal(c, failMsg, err)
		return nil, false
	}
	return &models.Order{TotalPrice: total, OrderMenus: lines}, true
}

// loadOwnedOrder fetches the order behind :id if the caller may see it.
// Orders belonging to someone else are reported as missing.
func (h *Handler) loadOwnedOrder(c *gin.Context, failMsg string) (*models.Order, bool) {
	id := c.Param("id")
	order, err := h.Orders.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, orderNotFound(id))
			return nil, false
		}
		respondInternal(c, failMsg, err)
		return nil, false
	}
	if !middleware.CanAccess(middleware.CurrentUser(c), order.UserID) {
		respondError(c, http.StatusNotFound, orderNotFound(id))
		return nil, false
	}
	return order, true
}

// GetMyOrders returns the caller's orders, most recent first
func (h *Handler) GetMyOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orders, err := h.Orders.GetOrdersByUserID(c.Request.Context(), user.ID)
	if err != nil {
		respondInternal(c, "Failed to retrieve orders.", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order with its lines
func (h *Handler) GetOrder(c *gin.Context) {
	order, ok := h.loadOwnedOrder(c, "Failed to retrieve order.")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// PlaceOrder creates an order for the caller
func (h *Handler) PlaceOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	order, ok := h.bindOrder(c, "Failed to place order.")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	order.UserID = user.ID
	order.CustomerName = user.Name
	order.OrderDate = time.Now().UTC()

	placed, err := h.Orders.PlaceOrder(ctx, order)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrMenuNotFound):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrUserNotFound):
			respondError(c, http.StatusUnauthorized, middleware.MsgNotLoggedIn)
		default:
			respondInternal(c, "Failed to place order.", err)
		}
		return
	}
	h.Metrics.OrderPlaced()

	stored, err := h.Orders.GetOrderByID(ctx, placed.ID)
	if err != nil {
		respondInternal(c, "Failed to place order.", err)
		return
	}
	c.Header("Location", "/api/Orders/"+stored.ID)
	c.JSON(http.StatusCreated, stored)
}

// ModifyOrder replaces the line set of an order and reprices it. Owner,
// customer name and order date stay as stored.
func (h *Handler) ModifyOrder(c *gin.Context) {
	existing, ok := h.loadOwnedOrder(c, "Failed to update order.")
	if !ok {
		return
	}
	order, ok := h.bindOrder(c, "Failed to update order.")
	if !ok {
		return
	}

	order.ID = existing.ID
	order.UserID = existing.UserID
	order.CustomerName = existing.CustomerName
	order.OrderDate = existing.OrderDate

	updated, err := h.Orders.ModifyOrder(c.Request.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrMenuNotFound):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			respondError(c, http.StatusNotFound, orderNotFound(existing.ID))
		default:
			respondInternal(c, "Failed to update order.", err)
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelOrder deletes an order and its lines
func (h *Handler) CancelOrder(c *gin.Context) {
	existing, ok := h.loadOwnedOrder(c, "Failed to cancel order.")
	if !ok {
		return
	}
	order, err := h.Orders.CancelOrder(c.Request.Context(), existing.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, orderNotFound(existing.ID))
			return
		}
		respondInternal(c, "Failed to cancel order.", err)
		return
	}
	h.Metrics.OrderCancelled()
	c.JSON(http.StatusOK, order)
}

// GetOrderMenus returns the lines of an order
func (h *Handler) GetOrderMenus(c *gin.Context) {
	order, ok := h.loadOwnedOrder(c, "Failed to retrieve menus.")
	if !ok {
		return
	}
	lines, err := h.Orders.GetOrderMenusByOrderID(c.Request.Context(), order.ID)
	if err != nil {
		if errors.Is(err, store.ErrNoOrderLines) {
			respondError(c, http.StatusNotFound, fmt.Sprintf("No menu items found for order with ID %s.", order.ID))
			return
		}
		respondInternal(c, "Failed to retrieve menus.", err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

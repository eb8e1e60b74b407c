package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"bunshack-api/models"
	"bunshack-api/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ── Menu management ─────────────────────────────────────────────────────────

type MenuRequest struct {
	FoodName string          `json:"foodName" binding:"required,max=100"`
	Price    decimal.Decimal `json:"price"`
}

func (r MenuRequest) validate() string {
	if r.Price.IsNegative() {
		return "Price must not be negative."
	}
	if !r.Price.Equal(r.Price.Round(2)) {
		return "Price must have at most two decimal places."
	}
	return ""
}

func menuNotFound(id string) string {
	return fmt.Sprintf("Menu with ID %s not found.", id)
}

// ListMenus returns every menu item, public
func (h *Handler) ListMenus(c *gin.Context) {
	menus, err := h.Menus.GetAllMenus(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to retrieve menus.", err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

// GetMenu returns one menu item
func (h *Handler) GetMenu(c *gin.Context) {
	id := c.Param("id")
	menu, err := h.Menus.GetMenuByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusBadRequest, menuNotFound(id))
			return
		}
		respondInternal(c, "Failed to retrieve menu.", err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// CreateMenu adds a menu item (admin only)
func (h *Handler) CreateMenu(c *gin.Context) {
	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu.", "errors": bindingMessages(err)})
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return
	}

	menu, err := h.Menus.AddMenu(c.Request.Context(), &models.Menu{FoodName: req.FoodName, Price: req.Price})
	if err != nil {
		respondInternal(c, "Failed to add menu.", err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// UpdateMenu replaces name and price of a menu item (admin only)
func (h *Handler) UpdateMenu(c *gin.Context) {
	id := c.Param("id")
	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu.", "errors": bindingMessages(err)})
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return
	}

	menu, err := h.Menus.UpdateMenuByID(c.Request.Context(), id, models.Menu{FoodName: req.FoodName, Price: req.Price})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusBadRequest, menuNotFound(id))
			return
		}
		respondInternal(c, "Failed to update menu.", err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// DeleteMenu removes a menu item no order references (admin only)
func (h *Handler) DeleteMenu(c *gin.Context) {
	id := c.Param("id")
	menu, err := h.Menus.DeleteMenuByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(c, http.StatusBadRequest, menuNotFound(id))
		case errors.Is(err, store.ErrMenuInUse):
			respondError(c, http.StatusBadRequest, fmt.Sprintf("Menu with ID %s is part of existing orders and cannot be deleted.", id))
		default:
			respondInternal(c, "Failed to delete menu.", err)
		}
		return
	}
	c.JSON(http.StatusOK, menu)
}

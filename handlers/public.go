package handlers

import (
	"net/http"

	"pizza-store/repository"
	"pizza-store/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports that the server is up and the database answers.
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.Repo.Conn().Gorm().DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Pizza Store API",
	})
}

// ListStores returns every store, open ones first (public)
func (h *Handler) ListStores(c *gin.Context) {
	stores, err := h.Repo.ListStores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(stores),
		"stores": stores,
	})
}

// GetMenu returns menu items, optionally filtered by type and maximum price and sorted
// by price (public)
func (h *Handler) GetMenu(c *gin.Context) {
	f := repository.MenuFilter{
		Type: c.Query("type"),
		Sort: repository.ParseSortOrder(c.Query("sort")),
	}
	if raw := c.Query("max_price"); raw != "" {
		limit, err := repository.ParsePrice(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		f.MaxPrice = &limit
	}

	items, err := h.Repo.BrowseMenu(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"menu":  items,
	})
}

// GetStateMachineInfo returns the order status transitions and who may make them
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine": info,
		"description":   "Pizza order status lifecycle",
	})
}

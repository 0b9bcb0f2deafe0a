package handlers

import (
	"errors"
	"net/http"

	"pizza-store/logger"
	"pizza-store/middleware"
	"pizza-store/models"
	"pizza-store/repository"
	"pizza-store/statemachine"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order along the status state machine (driver, manager)
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	s := middleware.GetSession(c)
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, err := h.Repo.UpdateOrderStatus(c.Request.Context(), s, id, req.Status)
	if errors.Is(err, repository.ErrInvalidTransition) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    from,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(from, s.Role),
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info(s, "order status updated", zap.Int64("order_id", id), zap.String("status", string(req.Status)))
	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        id,
		"previous_status": from,
		"current_status":  req.Status,
	})
}

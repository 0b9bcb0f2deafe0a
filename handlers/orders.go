package handlers

import (
	"net/http"

	"pizza-store/logger"
	"pizza-store/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlaceOrderRequest struct {
	StoreID int `json:"store_id" binding:"required"`
	Items   []struct {
		ItemName string `json:"item_name" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates an order in one transaction. Any rejected line discards the
// whole order.
func (h *Handler) PlaceOrder(c *gin.Context) {
	s := middleware.GetSession(c)
	ctx := c.Request.Context()

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.Repo.BeginOrder(ctx, s, req.StoreID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer draft.Abort()

	for _, it := range req.Items {
		if _, err := draft.AddItem(ctx, it.ItemName, it.Quantity); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "item_name": it.ItemName})
			return
		}
	}

	detail, err := draft.Finalize(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info(s, "order placed",
		zap.Int64("order_id", detail.Order.OrderID),
		zap.String("total", detail.Order.TotalPrice.StringFixed(2)))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   detail,
	})
}

// GetOrders returns the caller's order history. Drivers and managers see every order.
func (h *Handler) GetOrders(c *gin.Context) {
	table, err := h.Repo.OrderHistory(c.Request.Context(), middleware.GetSession(c), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": table.Len(), "orders": table.Records()})
}

// GetRecentOrders returns the five most recent orders visible to the caller
func (h *Handler) GetRecentOrders(c *gin.Context) {
	table, err := h.Repo.RecentOrders(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": table.Len(), "orders": table.Records()})
}

func (h *Handler) GetOrderDetail(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	detail, err := h.Repo.OrderDetail(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": detail})
}

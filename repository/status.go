package repository

import (
	"context"
	"fmt"
	"strings"

	"pizza-store/models"
	"pizza-store/session"
	"pizza-store/statemachine"
)

// GetOrderStatus returns an order's current status for a driver or manager.
func (r *Repository) GetOrderStatus(ctx context.Context, s *session.Session, orderID int64) (models.OrderStatus, error) {
	if !s.CanUpdateOrderStatus() {
		return "", ErrForbidden
	}
	order, err := r.getOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	return models.OrderStatus(strings.TrimSpace(string(order.OrderStatus))), nil
}

// UpdateOrderStatus moves an order to a new status if the session's role allows the
// transition. The previous status is returned.
func (r *Repository) UpdateOrderStatus(ctx context.Context, s *session.Session, orderID int64, to models.OrderStatus) (models.OrderStatus, error) {
	from, err := r.GetOrderStatus(ctx, s, orderID)
	if err != nil {
		return "", err
	}
	if err := statemachine.CanTransition(from, to, s.Role); err != nil {
		return from, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	err = r.conn.ExecUpdate(ctx, `UPDATE foodorder SET orderstatus = ? WHERE orderid = ?`, string(to), orderID)
	if err != nil {
		return from, fmt.Errorf("update order status: %w", err)
	}
	return from, nil
}

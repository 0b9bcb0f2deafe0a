package console

import (
	"context"
	"errors"

	"pizza-store/logger"
	"pizza-store/repository"
	"pizza-store/session"
	"pizza-store/statemachine"

	"go.uber.org/zap"
)

// UpdateOrderStatus lets a driver or manager move an order to another status.
func (a *App) UpdateOrderStatus(ctx context.Context, s *session.Session) error {
	id, err := a.p.ReadInt("Enter the order ID: ")
	if err != nil {
		return err
	}
	current, err := a.repo.GetOrderStatus(ctx, s, int64(id))
	if errors.Is(err, repository.ErrOrderNotFound) {
		a.p.Printf("Order %d does not exist.\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	a.p.Println("Current status: " + string(current))
	nexts := statemachine.ValidTransitionsFrom(current, s.Role)
	if len(nexts) == 0 {
		a.p.Println("There are no status changes you can make to this order.")
		return nil
	}
	for i, st := range nexts {
		a.p.Printf("%d. Mark as %s\n", i+1, st)
	}
	a.p.Printf("%d. Cancel\n", len(nexts)+1)

	choice, err := a.p.ReadChoice()
	if err != nil {
		return err
	}
	if choice < 1 || choice > len(nexts) {
		a.p.Println("Status left unchanged.")
		return nil
	}

	to := nexts[choice-1]
	if _, err := a.repo.UpdateOrderStatus(ctx, s, int64(id), to); err != nil {
		return err
	}
	logger.Info(s, "order status updated", zap.Int("order_id", id), zap.String("status", string(to)))
	a.p.Printf("Order %d is now %s.\n", id, to)
	return nil
}

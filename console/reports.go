package console

import (
	"context"
	"errors"

	"pizza-store/database"
	"pizza-store/repository"
	"pizza-store/session"
)

// ViewAllOrders prints the full order history visible to the session.
func (a *App) ViewAllOrders(ctx context.Context, s *session.Session) error {
	table, err := a.repo.OrderHistory(ctx, s, 0)
	if err != nil {
		return err
	}
	return a.printOrders("ORDER HISTORY", table)
}

// ViewRecentOrders prints the five most recent orders visible to the session.
func (a *App) ViewRecentOrders(ctx context.Context, s *session.Session) error {
	table, err := a.repo.RecentOrders(ctx, s)
	if err != nil {
		return err
	}
	return a.printOrders("RECENT ORDERS", table)
}

func (a *App) printOrders(title string, table *database.Table) error {
	a.p.Heading(title)
	if table.Len() == 0 {
		a.p.Println("No orders found.")
		return nil
	}
	return table.Print(a.p.Out())
}

// ViewOrderInfo prints one order with its line items. Customers may only see their own.
func (a *App) ViewOrderInfo(ctx context.Context, s *session.Session) error {
	id, err := a.p.ReadInt("Enter the order ID: ")
	if err != nil {
		return err
	}

	detail, err := a.repo.OrderDetail(ctx, s, int64(id))
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		a.p.Printf("Order %d does not exist.\n", id)
		return nil
	case errors.Is(err, repository.ErrForbidden):
		a.p.Println("You can only view your own orders.")
		return nil
	case err != nil:
		return err
	}

	o := detail.Order
	a.p.Heading("ORDER INFORMATION")
	a.p.Printf("Order ID: %d\n", o.OrderID)
	a.p.Println("Customer: " + o.Login)
	a.p.Printf("Store ID: %d\n", o.StoreID)
	a.p.Println("Placed: " + o.OrderTimestamp.Format("2006-01-02 15:04:05"))
	a.p.Println("Status: " + string(o.OrderStatus))
	a.p.Println("")
	if len(detail.Lines) == 0 {
		a.p.Println("No items recorded for this order.")
	}
	a.printLines(detail.Lines)
	a.p.Println("")
	a.p.Println("Items total: $" + detail.ComputedTotal.StringFixed(2))
	a.p.Println("Order total: $" + o.TotalPrice.StringFixed(2))
	if !detail.ComputedTotal.Equal(o.TotalPrice) {
		a.p.Println("Warning: stored total differs from the sum of the items.")
	}
	return nil
}

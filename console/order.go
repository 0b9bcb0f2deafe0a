package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"pizza-store/logger"
	"pizza-store/models"
	"pizza-store/repository"
	"pizza-store/session"

	"go.uber.org/zap"
)

// doneKeyword ends item entry while placing an order.
const doneKeyword = "done"

// PlaceOrder walks the operator through choosing an open store, adding line items and
// finalizing. An order that ends up with no items is never stored.
func (a *App) PlaceOrder(ctx context.Context, s *session.Session) error {
	stores, err := a.repo.ListStores(ctx)
	if err != nil {
		return err
	}
	open := map[int]bool{}
	for _, st := range stores {
		if st.IsOpen {
			open[st.StoreID] = true
		}
	}
	a.printStores(stores)
	if len(open) == 0 {
		a.p.Println("No stores are open right now. Please try again later.")
		return nil
	}

	storeID, err := a.p.ReadInt("Enter the ID of the store to order from: ")
	if err != nil {
		return err
	}
	if !open[storeID] {
		a.p.Printf("Store %d is not open or does not exist. Order cancelled.\n", storeID)
		return nil
	}

	draft, err := a.repo.BeginOrder(ctx, s, storeID)
	if err != nil {
		return err
	}
	// no-op once finalized
	defer draft.Abort()

	if err := a.collectItems(ctx, draft); err != nil {
		return err
	}

	detail, err := draft.Finalize(ctx)
	if errors.Is(err, repository.ErrEmptyOrder) {
		a.p.Println("No items were added. Order cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info(s, "order placed",
		zap.Int64("order_id", detail.Order.OrderID),
		zap.String("total", detail.Order.TotalPrice.StringFixed(2)))
	a.p.Heading("ORDER SUMMARY")
	a.p.Printf("Order ID: %d\n", detail.Order.OrderID)
	a.p.Printf("Store ID: %d\n", detail.Order.StoreID)
	a.printLines(detail.Lines)
	a.p.Println("Total: $" + detail.Order.TotalPrice.StringFixed(2))
	a.p.Println("Order placed successfully!")
	return nil
}

func (a *App) collectItems(ctx context.Context, draft *repository.OrderDraft) error {
	for {
		groups, err := draft.Catalog(ctx)
		if err != nil {
			return err
		}
		a.printCatalog(groups)
		a.p.Println("Running total: $" + draft.Total().StringFixed(2))

		name, err := a.p.ReadLine("Enter an item name to add, or '" + doneKeyword + "' to finish: ")
		if err != nil {
			return err
		}
		if strings.EqualFold(name, doneKeyword) {
			return nil
		}
		if name == "" {
			continue
		}

		if _, err := draft.LookupItem(ctx, name); err != nil {
			if errors.Is(err, repository.ErrUnknownItem) {
				a.p.Println("\"" + name + "\" is not on the menu. Please try again.")
				continue
			}
			return err
		}
		qty, err := a.p.ReadPositiveInt("Enter quantity: ")
		if err != nil {
			return err
		}
		line, err := draft.AddItem(ctx, name, qty)
		if err != nil {
			return err
		}
		a.p.Printf("Added %d x %s. %s now on order: %d ($%s)\n",
			qty, line.ItemName, line.ItemName, line.Quantity, line.Subtotal.StringFixed(2))
	}
}

func (a *App) printCatalog(groups []repository.ItemGroup) {
	a.p.Heading("MENU")
	for _, g := range groups {
		a.p.Println("[" + g.Type + "]")
		for _, it := range g.Items {
			a.p.Println("  " + it.ItemName + " - $" + it.Price.StringFixed(2))
		}
	}
}

func (a *App) printLines(lines []models.OrderLine) {
	for _, l := range lines {
		a.p.Println(l.ItemName + " x" + strconv.Itoa(l.Quantity) +
			" @ $" + l.UnitPrice.StringFixed(2) + " = $" + l.Subtotal.StringFixed(2))
	}
}

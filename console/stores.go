package console

import (
	"context"
	"strconv"

	"pizza-store/models"
	"pizza-store/session"
)

// ViewStores lists every store, open ones first.
func (a *App) ViewStores(ctx context.Context, s *session.Session) error {
	stores, err := a.repo.ListStores(ctx)
	if err != nil {
		return err
	}
	a.printStores(stores)
	return nil
}

func (a *App) printStores(stores []models.Store) {
	if len(stores) == 0 {
		a.p.Println("No stores available.")
		return
	}
	a.p.Heading("AVAILABLE STORES")
	for _, st := range stores {
		status := "CLOSED"
		if st.IsOpen {
			status = "OPEN"
		}
		a.p.Println("Store ID: " + strconv.Itoa(st.StoreID))
		a.p.Println("Location: " + st.Address + ", " + st.City + ", " + st.State)
		a.p.Println("Review Score: " + st.ReviewScore.String())
		a.p.Println("Status: " + status)
		a.p.Println("----------------")
	}
}

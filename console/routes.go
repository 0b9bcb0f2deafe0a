package console

import (
	"context"
	"strconv"

	"pizza-store/logger"
	"pizza-store/session"
)

const logoutChoice = 20

// menuEntry is one line of the logged-in menu. allowed gates both visibility and use;
// a nil allowed means every logged-in user.
type menuEntry struct {
	choice  int
	label   string
	action  string
	allowed func(*session.Session) bool
	denied  string
	run     func(context.Context, *session.Session) error
}

func (a *App) userMenuEntries() []menuEntry {
	return []menuEntry{
		{choice: 1, label: "View Profile", action: "retrieving user profile", run: a.ViewProfile},
		{choice: 2, label: "Update Profile", action: "updating profile", run: a.UpdateProfile},
		{choice: 3, label: "View Menu", action: "viewing menu", run: a.ViewMenu},
		{choice: 4, label: "Place Order", action: "placing order", run: a.PlaceOrder},
		{choice: 5, label: "View Full Order ID History", action: "viewing order history", run: a.ViewAllOrders},
		{choice: 6, label: "View Past 5 Order IDs", action: "viewing recent orders", run: a.ViewRecentOrders},
		{choice: 7, label: "View Order Information", action: "viewing order information", run: a.ViewOrderInfo},
		{choice: 8, label: "View Stores", action: "viewing stores", run: a.ViewStores},
		{
			choice: 9, label: "Update Order Status", action: "updating order status",
			allowed: (*session.Session).CanUpdateOrderStatus,
			denied:  "Unauthorized access! Only drivers and managers can update order status.",
			run:     a.UpdateOrderStatus,
		},
		{
			choice: 10, label: "Update Menu", action: "updating menu",
			allowed: (*session.Session).IsManager,
			denied:  "Unauthorized access! Only managers can update the menu.",
			run:     a.UpdateMenu,
		},
		{
			choice: 11, label: "Update User", action: "updating user",
			allowed: (*session.Session).IsManager,
			denied:  "Unauthorized access! Only managers can update users.",
			run:     a.UpdateUser,
		},
	}
}

func (e menuEntry) permits(s *session.Session) bool {
	return e.allowed == nil || e.allowed(s)
}

// userMenu runs the logged-in menu until logout. The session is reset on logout.
func (a *App) userMenu(ctx context.Context, s *session.Session) error {
	entries := a.userMenuEntries()
	for {
		a.p.Println("")
		a.p.Println("MAIN MENU")
		a.p.Println("---------")
		for _, e := range entries {
			if e.permits(s) {
				a.p.Println(strconv.Itoa(e.choice) + ". " + e.label)
			}
		}
		a.p.Println(".........................")
		a.p.Printf("%d. Log out\n", logoutChoice)

		choice, err := a.p.ReadChoice()
		if err != nil {
			return err
		}
		if choice == logoutChoice {
			logger.Info(s, "logged out")
			s.Reset()
			return nil
		}

		var entry *menuEntry
		for i := range entries {
			if entries[i].choice == choice {
				entry = &entries[i]
				break
			}
		}
		switch {
		case entry == nil:
			a.p.Println("Unrecognized choice!")
		case !entry.permits(s):
			a.p.Println(entry.denied)
		default:
			if err := a.report(s, entry.action, entry.run(ctx, s)); err != nil {
				return err
			}
		}
	}
}

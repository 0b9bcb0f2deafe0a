package console

import (
	"context"

	"pizza-store/models"
	"pizza-store/repository"
	"pizza-store/session"
)

// ViewMenu browses the menu. Filters set here last until they are reset or the operator
// leaves the screen.
func (a *App) ViewMenu(ctx context.Context, s *session.Session) error {
	var f repository.MenuFilter
	for {
		a.p.Heading("STORE MENU")
		a.p.Println("Current Filters:")
		a.p.Println("Type: " + orDefault(f.Type, "Any"))
		price := "Any"
		if f.MaxPrice != nil {
			price = "$" + f.MaxPrice.StringFixed(2)
		}
		a.p.Println("Price: " + price)
		a.p.Println("Sort: " + orDefault(string(f.Sort), "None"))
		a.p.Println("")
		a.p.Println("0. View items (w/ filters)")
		a.p.Println("1. Filter by type")
		a.p.Println("2. Filter by price (maximum)")
		a.p.Println("3. Sort by price (Lowest to Highest)")
		a.p.Println("4. Sort by price (Highest to Lowest)")
		a.p.Println("5. Reset all filters")
		a.p.Println(".........................")
		a.p.Println("6. Go back")

		choice, err := a.p.ReadChoice()
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			items, err := a.repo.BrowseMenu(ctx, f)
			if err != nil {
				return err
			}
			a.printItems(items)
		case 1:
			t, err := a.p.ReadLine("Enter type to filter (e.g., 'drinks', 'sides'): ")
			if err != nil {
				return err
			}
			f.Type = t
			a.p.Println("Filter set to type: " + t)
		case 2:
			raw, err := a.p.ReadLine("Enter maximum price to filter (e.g., 10.00): ")
			if err != nil {
				return err
			}
			if raw == "" {
				f.MaxPrice = nil
				a.p.Println("Price filter cleared.")
				continue
			}
			limit, err := repository.ParsePrice(raw)
			if err != nil {
				a.p.Println("Invalid price: " + raw)
				continue
			}
			f.MaxPrice = &limit
			a.p.Println("Filter set to price: $" + limit.StringFixed(2))
		case 3:
			f.Sort = repository.SortAsc
			a.p.Println("Sorting by price: Lowest to Highest")
		case 4:
			f.Sort = repository.SortDesc
			a.p.Println("Sorting by price: Highest to Lowest")
		case 5:
			f.Reset()
			a.p.Println("Filters reset.")
		case 6:
			return nil
		default:
			a.p.Println("Unrecognized choice!")
		}
	}
}

func (a *App) printItems(items []models.Item) {
	if len(items) == 0 {
		a.p.Println("")
		a.p.Println("No items available in the menu. Please select a different filter.")
		return
	}
	for _, it := range items {
		a.p.Println("Item: " + it.ItemName)
		a.p.Println("Ingredients: " + it.Ingredients)
		a.p.Println("Type: " + it.TypeOfItem)
		a.p.Println("Price: $" + it.Price.StringFixed(2))
		a.p.Println("Description: " + it.DescriptionOr("No description available."))
		a.p.Println("-----------")
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

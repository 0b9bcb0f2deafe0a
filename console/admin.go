package console

import (
	"context"
	"errors"

	"pizza-store/logger"
	"pizza-store/models"
	"pizza-store/repository"
	"pizza-store/session"

	"go.uber.org/zap"
)

// UpdateMenu is the manager's menu maintenance screen.
func (a *App) UpdateMenu(ctx context.Context, s *session.Session) error {
	for {
		a.p.Heading("UPDATE MENU")
		a.p.Println("1. Update an existing item")
		a.p.Println("2. Add a new item")
		a.p.Println(".........................")
		a.p.Println("3. Go back")

		choice, err := a.p.ReadChoice()
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = a.report(s, "updating item", a.updateItem(ctx, s))
		case 2:
			err = a.report(s, "adding item", a.addItem(ctx, s))
		case 3:
			return nil
		default:
			a.p.Println("Unrecognized choice!")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) updateItem(ctx context.Context, s *session.Session) error {
	name, err := a.p.ReadLine("Enter the name of the item to update: ")
	if err != nil {
		return err
	}
	item, err := a.repo.GetItem(ctx, name)
	if errors.Is(err, repository.ErrItemNotFound) {
		a.p.Println("Item \"" + name + "\" does not exist.")
		return nil
	}
	if err != nil {
		return err
	}

	a.p.Println("1. Ingredients (" + item.Ingredients + ")")
	a.p.Println("2. Type (" + item.TypeOfItem + ")")
	a.p.Println("3. Price ($" + item.Price.StringFixed(2) + ")")
	a.p.Println("4. Description (" + item.DescriptionOr("none") + ")")
	a.p.Println("5. Cancel")
	choice, err := a.p.ReadChoice()
	if err != nil {
		return err
	}

	var (
		field  repository.ItemField
		prompt string
	)
	switch choice {
	case 1:
		field, prompt = repository.ItemIngredients, "Enter new ingredients: "
	case 2:
		field, prompt = repository.ItemType, "Enter new type: "
	case 3:
		field, prompt = repository.ItemPrice, "Enter new price: "
	case 4:
		field, prompt = repository.ItemDescription, "Enter new description: "
	default:
		a.p.Println("Item left unchanged.")
		return nil
	}

	value, err := a.p.ReadLine(prompt)
	if err != nil {
		return err
	}
	if err := a.repo.UpdateItemField(ctx, item.ItemName, field, value); err != nil {
		return err
	}
	logger.Info(s, "menu item updated", zap.String("item", item.ItemName), zap.String("field", string(field)))
	a.p.Println("Item updated successfully!")
	return nil
}

func (a *App) addItem(ctx context.Context, s *session.Session) error {
	name, err := a.p.ReadLine("Enter the new item's name: ")
	if err != nil {
		return err
	}
	if _, err := a.repo.GetItem(ctx, name); err == nil {
		a.p.Println("Item \"" + name + "\" already exists. Use the update option instead.")
		return nil
	} else if !errors.Is(err, repository.ErrItemNotFound) {
		return err
	}

	in := repository.NewItem{ItemName: name}
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter ingredients: ", &in.Ingredients},
		{"Enter type of item: ", &in.TypeOfItem},
		{"Enter price: ", &in.Price},
		{"Enter description (optional): ", &in.Description},
	}
	for _, f := range fields {
		if *f.dst, err = a.p.ReadLine(f.prompt); err != nil {
			return err
		}
	}

	item, err := a.repo.CreateItem(ctx, in)
	if err != nil {
		return err
	}
	logger.Info(s, "menu item added", zap.String("item", item.ItemName))
	a.p.Println("Item \"" + item.ItemName + "\" added to the menu.")
	return nil
}

// UpdateUser lets a manager edit any user's password, role, favourites or phone number.
func (a *App) UpdateUser(ctx context.Context, s *session.Session) error {
	target, err := a.selectUser(ctx)
	if err != nil || target == "" {
		return err
	}

	for {
		a.p.Heading("UPDATE USER: " + target)
		a.p.Println("1. Update password")
		a.p.Println("2. Update role")
		a.p.Println("3. Update favorite items")
		a.p.Println("4. Update phone number")
		a.p.Println("5. Select a different user")
		a.p.Println(".........................")
		a.p.Println("6. Go back")

		choice, err := a.p.ReadChoice()
		if err != nil {
			return err
		}

		var (
			field  repository.UserField
			prompt string
		)
		switch choice {
		case 1:
			field, prompt = repository.UserPassword, "Enter new password: "
		case 2:
			field, prompt = repository.UserRole, "Enter new role (customer, driver, manager): "
		case 3:
			field, prompt = repository.UserFavorites, "Enter favorite items: "
		case 4:
			field, prompt = repository.UserPhone, "Enter new phone number: "
		case 5:
			next, err := a.selectUser(ctx)
			if err != nil {
				return err
			}
			if next != "" {
				target = next
			}
			continue
		case 6:
			return nil
		default:
			a.p.Println("Unrecognized choice!")
			continue
		}

		value, err := a.p.ReadLine(prompt)
		if err != nil {
			return err
		}
		err = a.repo.UpdateUserField(ctx, target, field, value)
		if err == nil {
			logger.Info(s, "user updated", zap.String("target", target), zap.String("field", string(field)))
			a.p.Println("User updated successfully!")
			if field == repository.UserRole && target == s.Login {
				s.Role = models.UserRole(value)
				if !s.IsManager() {
					a.p.Printf("Your role is now %s. Leaving user administration.\n", s.Role)
					return nil
				}
			}
			continue
		}
		if err := a.report(s, "updating user", err); err != nil {
			return err
		}
	}
}

// selectUser prompts until an existing login is entered. Empty input returns "".
func (a *App) selectUser(ctx context.Context) (string, error) {
	for {
		login, err := a.p.ReadLine("Enter the login of the user to update (blank to go back): ")
		if err != nil || login == "" {
			return "", err
		}
		ok, err := a.repo.UserExists(ctx, login)
		if err != nil {
			return "", err
		}
		if ok {
			return login, nil
		}
		a.p.Println("User \"" + login + "\" does not exist. Please try again.")
	}
}

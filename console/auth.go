package console

import (
	"context"
	"errors"

	"pizza-store/logger"
	"pizza-store/repository"
	"pizza-store/session"
)

// CreateUser registers a new customer account.
func (a *App) CreateUser(ctx context.Context, s *session.Session) error {
	a.p.Heading("CREATE USER")
	login, err := a.p.ReadLine("Enter your login: ")
	if err != nil {
		return err
	}
	password, err := a.p.ReadLine("Enter your password: ")
	if err != nil {
		return err
	}
	phone, err := a.p.ReadLine("Enter your phone number: ")
	if err != nil {
		return err
	}

	if _, err := a.repo.CreateUser(ctx, repository.NewUser{Login: login, Password: password, PhoneNum: phone}); err != nil {
		return err
	}
	a.p.Println("User created successfully in the database!")
	a.p.Println("")
	return nil
}

// LogIn checks credentials and, on success, fills s.
func (a *App) LogIn(ctx context.Context, s *session.Session) error {
	a.p.Heading("LOGIN")
	login, err := a.p.ReadLine("Enter your login: ")
	if err != nil {
		return err
	}
	password, err := a.p.ReadLine("Enter your password: ")
	if err != nil {
		return err
	}

	user, err := a.repo.Authenticate(ctx, login, password)
	if errors.Is(err, repository.ErrInvalidCredentials) {
		a.p.Println("Invalid login or password. Please try again.")
		return nil
	}
	if err != nil {
		return err
	}

	*s = *session.New(user.Login, user.Role)
	logger.Info(s, "logged in")
	a.p.Println("Login successful!")
	a.p.Printf("Welcome, %s! Your role is: %s\n", user.Login, user.Role)
	return nil
}

// ViewProfile prints the current user's profile.
func (a *App) ViewProfile(ctx context.Context, s *session.Session) error {
	user, err := a.repo.GetUser(ctx, s.Login)
	if errors.Is(err, repository.ErrUserNotFound) {
		a.p.Println("No profile found for the user: " + s.Login)
		return nil
	}
	if err != nil {
		return err
	}

	favorites := "None"
	if user.FavoriteItems != nil && *user.FavoriteItems != "" {
		favorites = *user.FavoriteItems
	}
	a.p.Heading("USER PROFILE")
	a.p.Println("Login: " + user.Login)
	a.p.Println("Role: " + string(user.Role))
	a.p.Println("Phone Number: " + user.PhoneNum)
	a.p.Println("Favorite Items: " + favorites)
	a.p.Println("-------------")
	return nil
}

// UpdateProfile lets the current user change their password, phone number or favourites.
func (a *App) UpdateProfile(ctx context.Context, s *session.Session) error {
	for {
		a.p.Heading("UPDATE PROFILE")
		a.p.Println("0. View profile")
		a.p.Println("1. Update password")
		a.p.Println("2. Update phone number")
		a.p.Println("3. Update favorite items")
		a.p.Println(".........................")
		a.p.Println("4. Go back")

		choice, err := a.p.ReadChoice()
		if err != nil {
			return err
		}

		var (
			field  repository.UserField
			prompt string
			done   string
		)
		switch choice {
		case 0:
			if err := a.ViewProfile(ctx, s); err != nil {
				return err
			}
			continue
		case 1:
			field, prompt, done = repository.UserPassword, "Enter new password: ", "Password updated successfully!"
		case 2:
			field, prompt, done = repository.UserPhone, "Enter new phone number: ", "Phone number updated successfully!"
		case 3:
			field, prompt, done = repository.UserFavorites, "Enter your favorite items (comma-separated): ", "Favorite items updated successfully!"
		case 4:
			return nil
		default:
			a.p.Println("Unrecognized choice!")
			continue
		}

		value, err := a.p.ReadLine(prompt)
		if err != nil {
			return err
		}
		if err := a.repo.UpdateUserField(ctx, s.Login, field, value); err != nil {
			return err
		}
		a.p.Println(done)
	}
}

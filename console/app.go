// Package console is the interactive, menu-driven front end of the pizza store.
package console

import (
	"context"
	"errors"
	"io"

	"pizza-store/logger"
	"pizza-store/repository"
	"pizza-store/session"
)

// App runs the console menus against a repository.
type App struct {
	repo *repository.Repository
	p    *Prompter
}

// NewApp returns an App that talks to the operator through p.
func NewApp(repo *repository.Repository, p *Prompter) *App {
	return &App{repo: repo, p: p}
}

// Greeting prints the banner shown at startup.
func Greeting(w io.Writer) {
	io.WriteString(w, "\n\n*******************************************************\n"+
		"              User Interface                           \n"+
		"*******************************************************\n\n")
}

// expected errors are the operator's doing, not the system's
var expected = []error{
	repository.ErrNotLoggedIn,
	repository.ErrForbidden,
	repository.ErrInvalidInput,
	repository.ErrLoginTaken,
	repository.ErrUserNotFound,
	repository.ErrInvalidRole,
	repository.ErrItemNotFound,
	repository.ErrItemExists,
	repository.ErrInvalidPrice,
	repository.ErrStoreNotOpen,
	repository.ErrOrderNotFound,
	repository.ErrInvalidTransition,
}

func isExpected(err error) bool {
	for _, e := range expected {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// report prints a workflow failure and swallows it so the caller's menu continues.
// End of input is passed through.
func (a *App) report(s *session.Session, action string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return err
	}
	a.p.Errorf("Error %s: %v\n", action, err)
	if isExpected(err) {
		logger.Warn(s, "workflow rejected", logger.Action(action), logger.Err(err))
	} else {
		logger.Error(s, "workflow failed", err, logger.Action(action))
	}
	return nil
}

// Run drives the top-level menu until the operator exits or input ends.
func (a *App) Run(ctx context.Context) error {
	s := &session.Session{}
	for {
		a.p.Println("MAIN MENU")
		a.p.Println("---------")
		a.p.Println("1. Create user")
		a.p.Println("2. Log in")
		a.p.Println("9. < EXIT")

		choice, err := a.p.ReadChoice()
		if err != nil {
			return endOfInput(err)
		}
		switch choice {
		case 1:
			err = a.report(s, "creating user", a.CreateUser(ctx, s))
		case 2:
			err = a.report(s, "during login", a.LogIn(ctx, s))
		case 9:
			return nil
		default:
			a.p.Println("Unrecognized choice!")
		}
		if err != nil {
			return endOfInput(err)
		}

		if s.LoggedIn() {
			if err := a.userMenu(ctx, s); err != nil {
				return endOfInput(err)
			}
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

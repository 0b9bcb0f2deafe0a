// Package repository implements every data operation of the pizza store on top of gorm and
// the database statement layer.
package repository

import (
	"errors"
	"fmt"

	"pizza-store/database"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Errors
var (
	ErrNotLoggedIn        = errors.New("no user is logged in")
	ErrForbidden          = errors.New("not permitted for this role")
	ErrInvalidInput       = errors.New("invalid input")
	ErrLoginTaken         = errors.New("login already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUserNotFound       = errors.New("no such user")
	ErrInvalidRole        = errors.New("role must be customer, driver or manager")
	ErrItemNotFound       = errors.New("no such menu item")
	ErrItemExists         = errors.New("a menu item with that name already exists")
	ErrInvalidPrice       = errors.New("price must be a non-negative number")
	ErrStoreNotOpen       = errors.New("store is not open or does not exist")
	ErrUnknownItem        = errors.New("item is not on the menu")
	ErrInvalidQuantity    = errors.New("quantity must be a positive whole number")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrDraftClosed        = errors.New("order was already finalized or aborted")
	ErrOrderNotFound      = errors.New("no such order")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

var validate = validator.New()

func validateInput(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// Repository is the data layer over one gorm handle.
type Repository struct {
	db   *gorm.DB
	conn *database.Conn
}

// New returns a Repository over db.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db, conn: database.New(db)}
}

// Conn exposes the statement layer the repository runs on.
func (r *Repository) Conn() *database.Conn {
	return r.conn
}

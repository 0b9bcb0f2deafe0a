// Package session holds the identity of whoever is currently logged in.
// A zero Session means nobody is.
package session

import (
	"pizza-store/models"

	"github.com/google/uuid"
)

type Session struct {
	ID    string
	Login string
	Role  models.UserRole
}

// New starts a session for login with the given role.
func New(login string, role models.UserRole) *Session {
	return &Session{ID: uuid.NewString(), Login: login, Role: role}
}

// Reset logs the session out.
func (s *Session) Reset() {
	*s = Session{}
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Login != "" && s.Role != ""
}

func (s *Session) IsCustomer() bool {
	return s.LoggedIn() && s.Role == models.RoleCustomer
}

// CanUpdateOrderStatus is true for drivers and managers.
func (s *Session) CanUpdateOrderStatus() bool {
	return s.LoggedIn() && (s.Role == models.RoleDriver || s.Role == models.RoleManager)
}

func (s *Session) IsManager() bool {
	return s.LoggedIn() && s.Role == models.RoleManager
}

// SeesAllOrders reports whether order reports include every login's orders.
func (s *Session) SeesAllOrders() bool {
	return s.CanUpdateOrderStatus()
}

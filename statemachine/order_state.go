package statemachine

import (
	"errors"
	"strings"

	"pizza-store/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Drivers and managers mark an order complete
	{From: models.StatusIncomplete, To: models.StatusComplete, Actor: models.RoleDriver},
	{From: models.StatusIncomplete, To: models.StatusComplete, Actor: models.RoleManager},
	// Only a manager can reopen a completed order
	{From: models.StatusComplete, To: models.StatusIncomplete, Actor: models.RoleManager},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns the next states actor may move an order to from status.
// An empty actor means any actor.
func ValidTransitionsFrom(status models.OrderStatus, actor models.UserRole) []models.OrderStatus {
	nexts := []models.OrderStatus{}
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From != status || seen[t.To] {
			continue
		}
		if actor != "" && t.Actor != actor {
			continue
		}
		nexts = append(nexts, t.To)
		seen[t.To] = true
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor models.UserRole) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for " + string(actor) + ". " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from, actor),
	)
}

func describeValidFrom(status models.OrderStatus, actor models.UserRole) string {
	nexts := ValidTransitionsFrom(status, actor)
	if len(nexts) == 0 {
		return "none"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

package statemachine

import (
	"errors"

	"github.com/ombahiwal/tabme-min/models"
)

// Transition defines a valid state change
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// validTransitions is the authoritative state machine definition.
// The happy path runs created → accepted → preparing → ready → served →
// paid; cancellation is only possible while the order is still "created".
var validTransitions = []Transition{
	{From: models.StatusCreated, To: models.StatusAccepted},
	{From: models.StatusCreated, To: models.StatusCancelled},
	{From: models.StatusAccepted, To: models.StatusPreparing},
	{From: models.StatusPreparing, To: models.StatusReady},
	{From: models.StatusReady, To: models.StatusServed},
	{From: models.StatusServed, To: models.StatusPaid},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// IsTerminal reports whether no outbound transition exists from status.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusPaid || status == models.StatusCancelled
}

// NextStatuses returns all valid next states from a given state
func NextStatuses(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether an order may move from one state to another
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := NextStatuses(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

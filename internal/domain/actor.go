package domain

import "strings"

// Action is a capability an actor may hold
type Action string

const (
	// ActionApprove allows accepting and rejecting pending reservations
	ActionApprove Action = "approve"
	// ActionAdmin allows editing and deleting reservations owned by others
	ActionAdmin Action = "admin"
)

// Actor is the authenticated person performing an operation
type Actor struct {
	PersonID     int64
	capabilities map[Action]struct{}
}

// NewActor creates an actor with the given capabilities
func NewActor(personID int64, actions ...Action) Actor {
	caps := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		caps[a] = struct{}{}
	}
	return Actor{PersonID: personID, capabilities: caps}
}

// ParseActions parses a comma separated capability list, unknown values are ignored
func ParseActions(raw string) []Action {
	var actions []Action
	for _, part := range strings.Split(raw, ",") {
		switch a := Action(strings.ToLower(strings.TrimSpace(part))); a {
		case ActionApprove, ActionAdmin:
			actions = append(actions, a)
		}
	}
	return actions
}

// Can returns true if the actor holds the capability
func (a Actor) Can(action Action) bool {
	_, ok := a.capabilities[action]
	return ok
}

// CanModify returns true if the actor owns the reservation or is an admin
func (a Actor) CanModify(r *Reservation) bool {
	return r.IsOwnedBy(a.PersonID) || a.Can(ActionAdmin)
}

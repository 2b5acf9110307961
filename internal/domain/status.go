package domain

import "fmt"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// allowedTransitions is the lifecycle state machine. Closed is terminal.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusResolved, TicketStatusOpen, TicketStatusClosed},
	TicketStatusResolved:   {TicketStatusClosed, TicketStatusInProgress},
	TicketStatusClosed:     {},
}

var statusLabels = map[TicketStatus]string{
	TicketStatusOpen:       "Open",
	TicketStatusInProgress: "In Progress",
	TicketStatusResolved:   "Resolved",
	TicketStatusClosed:     "Closed",
}

// ParseTicketStatus validates a raw status value.
func ParseTicketStatus(value string) (TicketStatus, error) {
	status := TicketStatus(value)
	if _, ok := statusLabels[status]; !ok {
		return "", fmt.Errorf("invalid ticket status %q", value)
	}
	return status, nil
}

// TicketStatusValues returns all valid status values.
func TicketStatusValues() []TicketStatus {
	return []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed}
}

func (s TicketStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is a known variant.
func (s TicketStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable form.
func (s TicketStatus) Label() string {
	return statusLabels[s]
}

// CanTransitionTo consults the transition table. Same-state moves are not
// part of the table; Ticket.SetStatus short-circuits them before calling here.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

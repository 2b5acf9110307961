package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is the aggregate for support requests. A ticket belongs to exactly
// one user, fixed at construction.
type Ticket struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTicket constructs a ticket owned by the given user. Status always starts
// at open; an empty priority defaults to medium. The ticket registers itself
// in the owner's convenience collection.
func NewTicket(title, description string, owner *User, priority TicketPriority) *Ticket {
	if priority == "" {
		priority = TicketPriorityMedium
	}
	now := time.Now()
	ticket := &Ticket{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       title,
		Description: description,
		Status:      TicketStatusOpen,
		Priority:    priority,
		OwnerID:     owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	owner.AddTicket(ticket)
	return ticket
}

// SetTitle replaces the title and refreshes UpdatedAt.
func (t *Ticket) SetTitle(title string) {
	t.Title = title
	t.touch()
}

// SetDescription replaces the description and refreshes UpdatedAt.
func (t *Ticket) SetDescription(description string) {
	t.Description = description
	t.touch()
}

// SetPriority replaces the priority and refreshes UpdatedAt.
func (t *Ticket) SetPriority(priority TicketPriority) {
	t.Priority = priority
	t.touch()
}

// SetStatus moves the ticket through its lifecycle. Setting the current
// status is a no-op and does not refresh UpdatedAt. A disallowed transition
// leaves the ticket unchanged and returns InvalidStatusTransitionError.
func (t *Ticket) SetStatus(next TicketStatus) error {
	if t.Status == next {
		return nil
	}
	if !t.Status.CanTransitionTo(next) {
		return &InvalidStatusTransitionError{Current: t.Status, Attempted: next}
	}
	t.Status = next
	t.touch()
	return nil
}

// BelongsTo reports whether the given user owns the ticket. Used purely for
// authorization decisions.
func (t *Ticket) BelongsTo(user *User) bool {
	return user != nil && t.OwnerID == user.ID
}

// IsOpen reports whether the ticket is in the open state.
func (t *Ticket) IsOpen() bool {
	return t.Status == TicketStatusOpen
}

// IsClosed reports whether the ticket reached its terminal state.
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}

func (t *Ticket) touch() {
	t.UpdatedAt = time.Now()
}

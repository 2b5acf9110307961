package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoleUser is the base role granted to every registered user.
const RoleUser = "ROLE_USER"

// User is the domain model for end-users who submit tickets.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time

	// Tickets is a convenience back-reference populated when a ticket is
	// created for this user. The repository's by-owner query is the
	// authoritative index; authorization never consults this slice.
	Tickets []*Ticket
}

// NewUser constructs a user with the base role.
func NewUser(email, name string) *User {
	return &User{
		ID:        uuid.Must(uuid.NewV7()),
		Email:     email,
		Name:      name,
		Roles:     []string{RoleUser},
		CreatedAt: time.Now(),
	}
}

// AddTicket appends to the convenience collection, skipping duplicates.
func (u *User) AddTicket(ticket *Ticket) {
	for _, existing := range u.Tickets {
		if existing.ID == ticket.ID {
			return
		}
	}
	u.Tickets = append(u.Tickets, ticket)
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

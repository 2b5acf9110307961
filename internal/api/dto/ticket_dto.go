package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Validate applies the creation rules. The entity itself trusts its inputs;
// request validation lives here.
func (r CreateTicketRequest) Validate() map[string]any {
	details := map[string]any{}
	if len(r.Title) < 5 || len(r.Title) > 255 {
		details["title"] = "title must be between 5 and 255 characters"
	}
	if len(r.Description) < 10 {
		details["description"] = "description must be at least 10 characters"
	}
	if r.Priority != "" && !domain.TicketPriority(r.Priority).IsValid() {
		details["priority"] = "invalid priority value"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// UpdateTicketRequest is a partial update; absent fields stay untouched.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// HasChanges reports whether any field is present.
func (r UpdateTicketRequest) HasChanges() bool {
	return r.Title != nil || r.Description != nil || r.Status != nil || r.Priority != nil
}

// Validate applies the update rules to the fields that are present.
func (r UpdateTicketRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.Title != nil && (len(*r.Title) < 5 || len(*r.Title) > 255) {
		details["title"] = "title must be between 5 and 255 characters"
	}
	if r.Description != nil && len(*r.Description) < 10 {
		details["description"] = "description must be at least 10 characters"
	}
	if r.Status != nil && !domain.TicketStatus(*r.Status).IsValid() {
		details["status"] = "invalid status value"
	}
	if r.Priority != nil && !domain.TicketPriority(*r.Priority).IsValid() {
		details["priority"] = "invalid priority value"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// TicketResponse is the serialized ticket representation.
type TicketResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"status_label"`
	Priority      string    `json:"priority"`
	PriorityLabel string    `json:"priority_label"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromTicket maps a domain ticket onto the response shape.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID.String(),
		Title:         ticket.Title,
		Description:   ticket.Description,
		Status:        ticket.Status.String(),
		StatusLabel:   ticket.Status.Label(),
		Priority:      ticket.Priority.String(),
		PriorityLabel: ticket.Priority.Label(),
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}

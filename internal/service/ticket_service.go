package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/cache"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// TicketService is the single authorization and workflow choke-point for all
// ticket operations. The HTTP layer never touches ticket mutation directly.
type TicketService struct {
	tickets repository.TicketRepository
	cache   *cache.TicketCache
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Cache      *cache.TicketCache
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketUpdateInput describes a partial update. Nil fields are left untouched.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
}

// HasChanges reports whether any field is present.
func (in TicketUpdateInput) HasChanges() bool {
	return in.Title != nil || in.Description != nil || in.Status != nil || in.Priority != nil
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets: deps.TicketRepo,
		cache:   deps.Cache,
	}
}

// CreateTicket constructs and persists a ticket for the owner.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput, owner *domain.User) (*domain.Ticket, error) {
	ticket := domain.NewTicket(input.Title, input.Description, owner, input.Priority)
	if err := s.tickets.Save(ctx, ticket); err != nil {
		return nil, domain.NewStorageError("ticket create", err)
	}
	s.cache.Set(ctx, ticket)
	return ticket, nil
}

// ListTicketsForUser returns the user's tickets, most recently created first.
func (s *TicketService) ListTicketsForUser(ctx context.Context, owner *domain.User) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, domain.NewStorageError("ticket list", err)
	}
	return tickets, nil
}

// GetTicket resolves the identifier and enforces ownership. The existence
// check strictly precedes the ownership check, so a ticket owned by someone
// else yields access-denied rather than not-found.
func (s *TicketService) GetTicket(ctx context.Context, id string, requester *domain.User) (*domain.Ticket, error) {
	ticket, err := s.findTicketOrFail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUserOwnsTicket(ticket, requester); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateTicket applies a partial update atomically: the requested status
// change is validated against the live ticket before any field is mutated, so
// a rejected transition leaves the entity untouched and skips persistence.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput, requester *domain.User) (*domain.Ticket, error) {
	ticket, err := s.findTicketOrFail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUserOwnsTicket(ticket, requester); err != nil {
		return nil, err
	}

	if input.Status != nil && *input.Status != ticket.Status && !ticket.Status.CanTransitionTo(*input.Status) {
		return nil, &domain.InvalidStatusTransitionError{Current: ticket.Status, Attempted: *input.Status}
	}

	if input.Title != nil {
		ticket.SetTitle(*input.Title)
	}
	if input.Description != nil {
		ticket.SetDescription(*input.Description)
	}
	if input.Status != nil {
		if err := ticket.SetStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Priority != nil {
		ticket.SetPriority(*input.Priority)
	}

	if err := s.tickets.Save(ctx, ticket); err != nil {
		s.cache.Invalidate(ctx, ticket.ID)
		return nil, domain.NewStorageError("ticket update", err)
	}
	s.cache.Set(ctx, ticket)
	return ticket, nil
}

// DeleteTicket removes the ticket permanently after the ownership check.
func (s *TicketService) DeleteTicket(ctx context.Context, id string, requester *domain.User) error {
	ticket, err := s.findTicketOrFail(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureUserOwnsTicket(ticket, requester); err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The row is already gone; drop any cached copy so reads
			// stop serving the deleted ticket.
			s.cache.Invalidate(ctx, ticket.ID)
			return domain.NewTicketNotFound(id)
		}
		return domain.NewStorageError("ticket delete", err)
	}
	s.cache.Invalidate(ctx, ticket.ID)
	return nil
}

// findTicketOrFail treats a malformed identifier the same as an unknown one.
func (s *TicketService) findTicketOrFail(ctx context.Context, id string) (*domain.Ticket, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.NewTicketNotFound(id)
	}
	if cached, _ := s.cache.Get(ctx, ticketID); cached != nil {
		return cached, nil
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewTicketNotFound(id)
		}
		return nil, domain.NewStorageError("ticket lookup", err)
	}
	s.cache.Set(ctx, ticket)
	return ticket, nil
}

func (s *TicketService) ensureUserOwnsTicket(ticket *domain.Ticket, user *domain.User) error {
	if !ticket.BelongsTo(user) {
		return domain.ErrAccessDenied
	}
	return nil
}

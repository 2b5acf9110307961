package domain

import (
	"errors"
	"fmt"
)

// ErrAccessDenied signals that the requester does not own the ticket.
var ErrAccessDenied = errors.New("access denied to this ticket")

// TicketNotFoundError signals a missing or unresolvable ticket identifier.
type TicketNotFoundError struct {
	ID string
}

func (e *TicketNotFoundError) Error() string {
	return fmt.Sprintf("ticket with id %q not found", e.ID)
}

// NewTicketNotFound builds a not-found error for the given raw identifier.
func NewTicketNotFound(id string) error {
	return &TicketNotFoundError{ID: id}
}

// InvalidStatusTransitionError signals a status change that violates the
// lifecycle table. It carries both sides of the rejected move.
type InvalidStatusTransitionError struct {
	Current   TicketStatus
	Attempted TicketStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("cannot transition ticket from %q to %q", e.Current, e.Attempted)
}

// StorageError wraps a persistence collaborator failure. The core surfaces
// these without retrying.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failing operation name.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

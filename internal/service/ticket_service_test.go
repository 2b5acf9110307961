package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

type fakeTicketRepo struct {
	tickets     map[uuid.UUID]domain.Ticket
	saveCalls   int
	deleteCalls int
	saveErr     error
	getErr      error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uuid.UUID]domain.Ticket)}
}

func (r *fakeTicketRepo) Save(_ context.Context, ticket *domain.Ticket) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Ticket, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.OwnerID == ownerID {
			result = append(result, ticket)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		result = append(result, ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, ticket *domain.Ticket) error {
	r.deleteCalls++
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, ticket.ID)
	return nil
}

func newTicketService(repo *fakeTicketRepo) *TicketService {
	return NewTicketService(TicketDependencies{TicketRepo: repo})
}

func TestCreateTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
		Priority:    domain.TicketPriorityHigh,
	}, owner)

	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityHigh, ticket.Priority)
	assert.Equal(t, owner.ID, ticket.OwnerID)
	assert.Equal(t, 1, repo.saveCalls)
}

func TestCreateTicketStorageFailure(t *testing.T) {
	repo := newFakeTicketRepo()
	repo.saveErr = errors.New("connection reset")
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")

	_, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
}

func TestListTicketsForUserOrdersByCreationDesc(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	other := domain.NewUser("u2@example.com", "User Two")

	older := domain.NewTicket("Older ticket", "First reported problem", owner, "")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := domain.NewTicket("Newer ticket", "Second reported problem", owner, "")
	foreign := domain.NewTicket("Foreign ticket", "Someone else's problem", other, "")
	for _, ticket := range []*domain.Ticket{older, newer, foreign} {
		require.NoError(t, repo.Save(context.Background(), ticket))
	}

	tickets, err := svc.ListTicketsForUser(context.Background(), owner)

	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, newer.ID, tickets[0].ID)
	assert.Equal(t, older.ID, tickets[1].ID)
}

func TestGetTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)
	require.NoError(t, err)

	got, err := svc.GetTicket(context.Background(), ticket.ID.String(), owner)

	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)
}

func TestGetTicketNotFound(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")

	_, err := svc.GetTicket(context.Background(), uuid.NewString(), owner)

	var notFound *domain.TicketNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetTicketMalformedIDIsNotFound(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")

	_, err := svc.GetTicket(context.Background(), "not-a-uuid", owner)

	var notFound *domain.TicketNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "not-a-uuid", notFound.ID)
}

func TestGetTicketAccessDenied(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	stranger := domain.NewUser("u2@example.com", "User Two")
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)
	require.NoError(t, err)

	_, err = svc.GetTicket(context.Background(), ticket.ID.String(), stranger)

	require.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestUpdateTicketAppliesPartialChanges(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)
	require.NoError(t, err)

	title := "Printer issue (3rd floor)"
	priority := domain.TicketPriorityCritical
	updated, err := svc.UpdateTicket(context.Background(), ticket.ID.String(), TicketUpdateInput{
		Title:    &title,
		Priority: &priority,
	}, owner)

	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, priority, updated.Priority)
	assert.Equal(t, "Printer on 3rd floor jammed", updated.Description)
	assert.Equal(t, 2, repo.saveCalls)
}

func TestUpdateTicketStatusAndTitleTogether(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)
	require.NoError(t, err)

	// walk the ticket to resolved first
	for _, status := range []domain.TicketStatus{domain.TicketStatusInProgress, domain.TicketStatusResolved} {
		s := status
		_, err := svc.UpdateTicket(context.Background(), ticket.ID.String(), TicketUpdateInput{Status: &s}, owner)
		require.NoError(t, err)
	}
	savesBefore := repo.saveCalls

	title := "x"
	closed := domain.TicketStatusClosed
	updated, err := svc.UpdateTicket(context.Background(), ticket.ID.String(), TicketUpdateInput{
		Title:  &title,
		Status: &closed,
	}, owner)

	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, updated.Status)
	assert.Equal(t, "x", updated.Title)
	assert.Equal(t, savesBefore+1, repo.saveCalls, "update must persist exactly once")
}

func TestUpdateTicketRejectedTransitionIsAtomic(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)
	require.NoError(t, err)
	savesBefore := repo.saveCalls

	title := "Should not stick"
	resolved := domain.TicketStatusResolved
	_, err = svc.UpdateTicket(context.Background(), ticket.ID.String(), TicketUpdateInput{
		Title:  &title,
		Status: &resolved,
	}, owner)

	var transitionErr *domain.InvalidStatusTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.TicketStatusOpen, transitionErr.Current)
	assert.Equal(t, domain.TicketStatusResolved, transitionErr.Attempted)
	assert.Equal(t, savesBefore, repo.saveCalls, "rejected update must not hit the repository")

	stored, err := repo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Printer issue", stored.Title, "no partial write on rejected transition")
	assert.Equal(t, domain.TicketStatusOpen, stored.Status)
}

func TestUpdateTicketSameStatusIsPermittedNoOp(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)
	require.NoError(t, err)

	open := domain.TicketStatusOpen
	updated, err := svc.UpdateTicket(context.Background(), ticket.ID.String(), TicketUpdateInput{Status: &open}, owner)

	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, updated.Status)
}

func TestUpdateTicketAccessDenied(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	stranger := domain.NewUser("u2@example.com", "User Two")
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.UpdateTicket(context.Background(), ticket.ID.String(), TicketUpdateInput{Title: &title}, stranger)

	require.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestDeleteTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTicket(context.Background(), ticket.ID.String(), owner))
	assert.Equal(t, 1, repo.deleteCalls)

	_, err = svc.GetTicket(context.Background(), ticket.ID.String(), owner)
	var notFound *domain.TicketNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteTicketAccessDenied(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")
	stranger := domain.NewUser("u2@example.com", "User Two")
	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Printer issue",
		Description: "Printer on 3rd floor jammed",
	}, owner)
	require.NoError(t, err)

	err = svc.DeleteTicket(context.Background(), ticket.ID.String(), stranger)

	require.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Equal(t, 0, repo.deleteCalls)
}

func TestGetTicketStorageFailure(t *testing.T) {
	repo := newFakeTicketRepo()
	repo.getErr = errors.New("connection reset")
	svc := newTicketService(repo)
	owner := domain.NewUser("u1@example.com", "User One")

	_, err := svc.GetTicket(context.Background(), uuid.NewString(), owner)

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
}

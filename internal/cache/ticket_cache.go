package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const keyPrefix = "ticket:"

// TicketCache is a redis-backed read-through cache for single-ticket lookups.
// All methods are nil-safe so the service can run without redis configured.
type TicketCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTicketCache wraps a redis client with the given entry TTL.
func NewTicketCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *TicketCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TicketCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached ticket or (nil, nil) on a miss. Cache failures are
// logged and reported as misses; the repository remains the source of truth.
func (c *TicketCache) Get(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		c.logger.Warn("ticket cache read failed", zap.String("ticket_id", id.String()), zap.Error(err))
		return nil, nil
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(payload, &ticket); err != nil {
		c.logger.Warn("ticket cache entry corrupt", zap.String("ticket_id", id.String()), zap.Error(err))
		_ = c.client.Del(ctx, keyPrefix+id.String()).Err()
		return nil, nil
	}
	return &ticket, nil
}

// Set stores the ticket under its id with the configured TTL.
func (c *TicketCache) Set(ctx context.Context, ticket *domain.Ticket) {
	if c == nil || c.client == nil || ticket == nil {
		return
	}
	payload, err := json.Marshal(ticket)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+ticket.ID.String(), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("ticket cache write failed", zap.String("ticket_id", ticket.ID.String()), zap.Error(err))
	}
}

// Invalidate drops the cached entry for the given ticket id.
func (c *TicketCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		c.logger.Warn("ticket cache invalidation failed", zap.String("ticket_id", id.String()), zap.Error(err))
	}
}

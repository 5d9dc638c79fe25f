package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nurak20/smart-pos-web/internal/domain"
)

// SnapshotTTL matches the 7-day expiry of the original cart cookie. Every
// save re-arms it.
const SnapshotTTL = 7 * 24 * time.Hour

func NewRedisSlot(client *redis.Client, terminalID string) *RedisSlot {
	return &RedisSlot{
		client: client,
		key:    slotKey(terminalID),
		ttl:    SnapshotTTL,
	}
}

// RedisSlot stores the cart snapshot as JSON under a per-terminal key.
type RedisSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (r *RedisSlot) Save(ctx context.Context, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot failed: %w", err)
	}

	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisSlot) Load(ctx context.Context) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		// Never resurface a broken snapshot: drop the slot before reporting.
		if delErr := r.client.Del(ctx, r.key).Err(); delErr != nil {
			log.Printf("failed to clear corrupt cart snapshot: %v", delErr)
		}
		return nil, ErrCorruptSnapshot
	}

	return lines, nil
}

func (r *RedisSlot) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func slotKey(terminalID string) string {
	return fmt.Sprintf("pos_cart:%s", terminalID)
}

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StateTTL bounds how long an OAuth redirect round-trip may take.
const StateTTL = 10 * time.Minute

// StateStore keeps the state nonces that tie an OAuth callback to the
// redirect that initiated it. Entries live only for the duration of the
// handshake.
type StateStore struct {
	rdb *redis.Client
}

func NewStateStore(rdb *redis.Client) *StateStore {
	return &StateStore{rdb: rdb}
}

// Issue stores a fresh state nonce and returns it.
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	state := uuid.New().String()
	if err := s.rdb.Set(ctx, "oauth_state:"+state, "1", StateTTL).Err(); err != nil {
		return "", err
	}
	return state, nil
}

// Consume checks a state nonce and removes it so it cannot be replayed.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	n, err := s.rdb.Del(ctx, "oauth_state:"+state).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

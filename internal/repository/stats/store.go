// Package stats keeps per-user usage counters (fetches, expands,
// searches) as Redis hashes with atomic increments.
package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"
)

// Stat names the counters tracked per user.
type Stat string

const (
	StatFetch  Stat = "fetch_count"
	StatExpand Stat = "expand_count"
	StatSearch Stat = "search_count"
)

// Stats is one user's counter snapshot.
type Stats struct {
	UserID      int64
	UserName    string
	FetchCount  int64
	ExpandCount int64
	SearchCount int64
}

// Config holds connection parameters for the stats store.
type Config struct {
	Addrs     []string
	Username  string
	Password  string
	KeyPrefix string
}

// Store tracks usage counters in Redis.
type Store struct {
	client rueidis.Client
	prefix string
}

// NewStore creates a stats store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, prefix: cfg.KeyPrefix}, nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

func (s *Store) key(userID int64) string {
	return fmt.Sprintf("%suser:%d", s.prefix, userID)
}

// RecordUser upserts the user's display name.
func (s *Store) RecordUser(ctx context.Context, userID int64, userName string) error {
	cmd := s.client.B().Hset().Key(s.key(userID)).
		FieldValue().FieldValue("user_name", userName).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("record user %d: %w", userID, err)
	}
	return nil
}

// Increment bumps one counter atomically.
func (s *Store) Increment(ctx context.Context, userID int64, stat Stat) error {
	cmd := s.client.B().Hincrby().Key(s.key(userID)).Field(string(stat)).Increment(1).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("increment %s for user %d: %w", stat, userID, err)
	}
	return nil
}

// UserStats returns the user's counter snapshot. Absent counters read as 0.
func (s *Store) UserStats(ctx context.Context, userID int64) (Stats, error) {
	cmd := s.client.B().Hgetall().Key(s.key(userID)).Build()
	fields, err := s.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return Stats{}, fmt.Errorf("stats for user %d: %w", userID, err)
	}

	st := Stats{UserID: userID, UserName: fields["user_name"]}
	st.FetchCount = parseCount(fields[string(StatFetch)])
	st.ExpandCount = parseCount(fields[string(StatExpand)])
	st.SearchCount = parseCount(fields[string(StatSearch)])
	return st, nil
}

func parseCount(v string) int64 {
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

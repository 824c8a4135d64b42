package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace = "supboard"
	itemsKey     = keyNamespace + ":notifications:items"
	byTimeKey    = keyNamespace + ":notifications:by_time"

	// historyCap bounds the stored history; the oldest records are pruned
	// once the cap is exceeded.
	historyCap = 100
)

// cmdable is the slice of the redis client the store needs. Tests swap in
// an in-memory implementation.
type cmdable interface {
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	ZRem(ctx context.Context, key string, members ...any) *redis.IntCmd
	ZCard(ctx context.Context, key string) *redis.IntCmd
	ZRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	ZRevRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// Store keeps the capped notification history in Redis: a hash of records
// by id plus a sorted set ordered by receive time.
type Store struct {
	rdb cmdable
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Insert saves a record and prunes the oldest entries beyond the cap. The
// trim runs after the insert without a transaction; a concurrent insert can
// briefly leave the history above the cap, which converges on the next one.
func (s *Store) Insert(ctx context.Context, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode notification failed: %w", err)
	}

	if err := s.rdb.HSet(ctx, itemsKey, rec.ID, raw).Err(); err != nil {
		return fmt.Errorf("store notification failed: %w", err)
	}
	score := float64(rec.Timestamp.UnixMilli())
	if err := s.rdb.ZAdd(ctx, byTimeKey, redis.Z{Score: score, Member: rec.ID}).Err(); err != nil {
		return fmt.Errorf("index notification failed: %w", err)
	}

	return s.trim(ctx)
}

func (s *Store) trim(ctx context.Context) error {
	count, err := s.rdb.ZCard(ctx, byTimeKey).Result()
	if err != nil {
		return fmt.Errorf("count notifications failed: %w", err)
	}
	excess := count - historyCap
	if excess <= 0 {
		return nil
	}

	oldest, err := s.rdb.ZRange(ctx, byTimeKey, 0, excess-1).Result()
	if err != nil {
		return fmt.Errorf("find oldest notifications failed: %w", err)
	}
	if len(oldest) == 0 {
		return nil
	}
	return s.remove(ctx, oldest)
}

// ReadAll returns the full history, newest first.
func (s *Store) ReadAll(ctx context.Context) ([]Record, error) {
	ids, err := s.rdb.ZRevRange(ctx, byTimeKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notification ids failed: %w", err)
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}

	values, err := s.rdb.HMGet(ctx, itemsKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load notifications failed: %w", err)
	}

	records := make([]Record, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a record; skip, reconcile cleans these.
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode notification failed: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	raw, err := s.rdb.HGet(ctx, itemsKey, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get notification failed: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode notification failed: %w", err)
	}
	return &rec, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, []string{id})
}

// MarkRead flags a record as read in place.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec.Read {
		return nil
	}
	rec.Read = true

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode notification failed: %w", err)
	}
	if err := s.rdb.HSet(ctx, itemsKey, id, raw).Err(); err != nil {
		return fmt.Errorf("update notification failed: %w", err)
	}
	return nil
}

// Reconcile prunes every stored record whose id is not in the
// authoritative list. It never adds records; the sync is one-way.
func (s *Store) Reconcile(ctx context.Context, keepIDs []string) (removed int, err error) {
	stored, err := s.rdb.ZRange(ctx, byTimeKey, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("list notification ids failed: %w", err)
	}

	keep := make(map[string]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = struct{}{}
	}

	var stale []string
	for _, id := range stored {
		if _, ok := keep[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err := s.remove(ctx, stale); err != nil {
		return 0, err
	}
	return len(stale), nil
}

func (s *Store) remove(ctx context.Context, ids []string) error {
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := s.rdb.ZRem(ctx, byTimeKey, members...).Err(); err != nil {
		return fmt.Errorf("unindex notifications failed: %w", err)
	}
	if err := s.rdb.HDel(ctx, itemsKey, ids...).Err(); err != nil {
		return fmt.Errorf("delete notifications failed: %w", err)
	}
	return nil
}

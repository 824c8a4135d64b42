package notification

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type zMember struct {
	member string
	score  float64
}

// mockCmdable is an in-memory stand-in for the redis client.
type mockCmdable struct {
	hashes map[string]map[string]string
	zsets  map[string][]zMember
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		hashes: make(map[string]map[string]string),
		zsets:  make(map[string][]zMember),
	}
}

func (m *mockCmdable) hash(key string) map[string]string {
	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string]string)
	}
	return m.hashes[key]
}

func (m *mockCmdable) sorted(key string) []zMember {
	members := append([]zMember{}, m.zsets[key]...)
	sort.SliceStable(members, func(i, j int) bool { return members[i].score < members[j].score })
	return members
}

func (m *mockCmdable) HSet(ctx context.Context, key string, values ...any) *redis.IntCmd {
	h := m.hash(key)
	for i := 0; i+1 < len(values); i += 2 {
		field := fmt.Sprint(values[i])
		switch v := values[i+1].(type) {
		case []byte:
			h[field] = string(v)
		default:
			h[field] = fmt.Sprint(v)
		}
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (m *mockCmdable) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	if v, ok := m.hash(key)[field]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *mockCmdable) HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd {
	h := m.hash(key)
	values := make([]any, len(fields))
	for i, field := range fields {
		if v, ok := h[field]; ok {
			values[i] = v
		}
	}
	return redis.NewSliceResult(values, nil)
}

func (m *mockCmdable) HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd {
	h := m.hash(key)
	var removed int64
	for _, field := range fields {
		if _, ok := h[field]; ok {
			delete(h, field)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func (m *mockCmdable) ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd {
	for _, z := range members {
		member := fmt.Sprint(z.Member)
		replaced := false
		for i := range m.zsets[key] {
			if m.zsets[key][i].member == member {
				m.zsets[key][i].score = z.Score
				replaced = true
				break
			}
		}
		if !replaced {
			m.zsets[key] = append(m.zsets[key], zMember{member: member, score: z.Score})
		}
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (m *mockCmdable) ZRem(ctx context.Context, key string, members ...any) *redis.IntCmd {
	var removed int64
	for _, raw := range members {
		member := fmt.Sprint(raw)
		for i, z := range m.zsets[key] {
			if z.member == member {
				m.zsets[key] = append(m.zsets[key][:i], m.zsets[key][i+1:]...)
				removed++
				break
			}
		}
	}
	return redis.NewIntResult(removed, nil)
}

func (m *mockCmdable) ZCard(ctx context.Context, key string) *redis.IntCmd {
	return redis.NewIntResult(int64(len(m.zsets[key])), nil)
}

func (m *mockCmdable) ZRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(m.rangeMembers(key, start, stop, false), nil)
}

func (m *mockCmdable) ZRevRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(m.rangeMembers(key, start, stop, true), nil)
}

func (m *mockCmdable) rangeMembers(key string, start, stop int64, reverse bool) []string {
	members := m.sorted(key)
	if reverse {
		for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
			members[i], members[j] = members[j], members[i]
		}
	}
	n := int64(len(members))
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = n + start
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		return nil
	}
	out := make([]string, 0, stop-start+1)
	for _, z := range members[start : stop+1] {
		out = append(out, z.member)
	}
	return out
}

func testRecord(id string, ts time.Time) Record {
	return Record{
		ID:        id,
		Title:     "test",
		Body:      "body " + id,
		Priority:  PriorityMedium,
		Timestamp: ts,
	}
}

func TestStoreInsertAndReadAll(t *testing.T) {
	ctx := context.Background()
	store := &Store{rdb: newMockCmdable()}

	base := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := testRecord(fmt.Sprintf("n-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Insert(ctx, rec))
	}

	records, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Newest first.
	require.Equal(t, "n-2", records[0].ID)
	require.Equal(t, "n-0", records[2].ID)
}

func TestStoreCapTrimsOldest(t *testing.T) {
	ctx := context.Background()
	store := &Store{rdb: newMockCmdable()}

	base := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < historyCap+5; i++ {
		rec := testRecord(fmt.Sprintf("n-%03d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Insert(ctx, rec))
	}

	records, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, historyCap)

	// The five oldest are gone; the newest survives.
	require.Equal(t, fmt.Sprintf("n-%03d", historyCap+4), records[0].ID)
	require.Equal(t, "n-005", records[len(records)-1].ID)

	_, err = store.Get(ctx, "n-000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := &Store{rdb: newMockCmdable()}

	rec := testRecord("n-1", time.Now().UTC())
	require.NoError(t, store.Insert(ctx, rec))
	require.NoError(t, store.Delete(ctx, "n-1"))

	records, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStoreMarkRead(t *testing.T) {
	ctx := context.Background()
	store := &Store{rdb: newMockCmdable()}

	require.NoError(t, store.Insert(ctx, testRecord("n-1", time.Now().UTC())))
	require.NoError(t, store.MarkRead(ctx, "n-1"))

	rec, err := store.Get(ctx, "n-1")
	require.NoError(t, err)
	require.True(t, rec.Read)

	// Idempotent.
	require.NoError(t, store.MarkRead(ctx, "n-1"))

	require.ErrorIs(t, store.MarkRead(ctx, "missing"), ErrNotFound)
}

func TestStoreReconcilePrunesOneWay(t *testing.T) {
	ctx := context.Background()
	store := &Store{rdb: newMockCmdable()}

	base := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	for _, id := range []string{"n-1", "n-2", "n-3"} {
		require.NoError(t, store.Insert(ctx, testRecord(id, base)))
		base = base.Add(time.Minute)
	}

	// The client only knows n-2; ids the server never had are ignored.
	removed, err := store.Reconcile(ctx, []string{"n-2", "n-99"})
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	records, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "n-2", records[0].ID)

	// Nothing was added for n-99.
	_, err = store.Get(ctx, "n-99")
	require.ErrorIs(t, err, ErrNotFound)
}

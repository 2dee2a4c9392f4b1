package notify

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeenStore persists the "last notice seen" marker across restarts. Only
// the marker survives a reload; the counters themselves are recomputed.
type SeenStore interface {
	LastNoticeSeen() (time.Time, bool)
	SetLastNoticeSeen(t time.Time) error
}

// MemorySeenStore keeps the marker in memory. Used in tests and for
// sessions that do not need persistence.
type MemorySeenStore struct {
	marker time.Time
	set    bool
}

func (m *MemorySeenStore) LastNoticeSeen() (time.Time, bool) {
	return m.marker, m.set
}

func (m *MemorySeenStore) SetLastNoticeSeen(t time.Time) error {
	m.marker = t
	m.set = true
	return nil
}

// FileSeenStore persists the marker as a small JSON file, mirroring the
// client-side key-value store of the host application.
type FileSeenStore struct {
	Path string
}

type seenFilePayload struct {
	LastNoticeSeenAt time.Time `json:"last_notice_seen_at"`
}

func (f *FileSeenStore) LastNoticeSeen() (time.Time, bool) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return time.Time{}, false
	}
	var payload seenFilePayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.LastNoticeSeenAt.IsZero() {
		return time.Time{}, false
	}
	return payload.LastNoticeSeenAt, true
}

func (f *FileSeenStore) SetLastNoticeSeen(t time.Time) error {
	data, err := json.Marshal(seenFilePayload{LastNoticeSeenAt: t})
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}

// RedisSeenStore keeps the marker in redis, keyed per user, for sessions
// mediated through the server.
type RedisSeenStore struct {
	Redis  *redis.Client
	UserID string
	Ctx    context.Context
}

func NewRedisSeenStore(rdb *redis.Client, userID string) *RedisSeenStore {
	return &RedisSeenStore{Redis: rdb, UserID: userID, Ctx: context.Background()}
}

func (r *RedisSeenStore) key() string {
	return "notice_seen:" + r.UserID
}

func (r *RedisSeenStore) LastNoticeSeen() (time.Time, bool) {
	value, err := r.Redis.Get(r.Ctx, r.key()).Result()
	if errors.Is(err, redis.Nil) || err != nil {
		return time.Time{}, false
	}
	marker, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return marker, true
}

func (r *RedisSeenStore) SetLastNoticeSeen(t time.Time) error {
	return r.Redis.Set(r.Ctx, r.key(), t.Format(time.RFC3339Nano), 0).Err()
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
	pkgredis "github.com/dreshoplabs/dreshop-backend/pkg/redis"
	"github.com/redis/go-redis/v9"
)

// Repository stores one JSON snapshot per session in Redis.
type Repository struct {
	store pkgredis.SnapshotStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewRepository constructs a snapshot repository. The ttl bounds how long an
// idle session's state survives. The logger may be nil.
func NewRepository(store pkgredis.SnapshotStore, ttl time.Duration, logg *logger.Logger) (*Repository, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot store is required")
	}
	return &Repository{store: store, ttl: ttl, logg: logg}, nil
}

// Load returns the stored snapshot for a session. The second return value is
// false when no usable snapshot exists. A snapshot that no longer parses is
// logged and treated as absent; the session starts over rather than erroring
// until the key expires.
func (r *Repository) Load(ctx context.Context, sessionID string) (Snapshot, bool, error) {
	raw, err := r.store.Get(ctx, r.store.SnapshotKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		if r.logg != nil {
			r.logg.Error(r.logg.WithSessionID(ctx, sessionID), "discarding corrupt session snapshot", err)
		}
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save writes the snapshot, refreshing its TTL.
func (r *Repository) Save(ctx context.Context, sessionID string, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session snapshot")
	}
	if err := r.store.Set(ctx, r.store.SnapshotKey(sessionID), payload, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session snapshot")
	}
	return nil
}

// Delete removes the stored snapshot if any.
func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	if err := r.store.Del(ctx, r.store.SnapshotKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete session snapshot")
	}
	return nil
}

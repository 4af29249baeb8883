package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository"
	apperrors "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/errors"
)

// KeyPrefix namespaces cart snapshots in storage.
const KeyPrefix = "vv:cart:"

// StorageKey returns the storage key of a session's cart.
func StorageKey(sessionID string) string {
	return KeyPrefix + sessionID
}

// syncTracker is implemented by persisters that know whether a key's latest
// state has reached storage.
type syncTracker interface {
	Unsynced(key string) bool
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Registry owns one Store per session. Stores are rehydrated from storage on
// first access and dropped from memory after a period of inactivity; their
// snapshots stay in storage. A store whose latest state has not reached
// storage is kept until it has, so a later Get never rehydrates an older cart.
type Registry struct {
	repo      repository.SnapshotRepository
	persister Persister
	idle      time.Duration
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry creates a registry. idle <= 0 disables eviction.
func NewRegistry(repo repository.SnapshotRepository, persister Persister, idle time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		repo:      repo,
		persister: persister,
		idle:      idle,
		logger:    logger,
		now:       time.Now,
		entries:   make(map[string]*entry),
	}
}

// Get returns the store of sessionID, rehydrating it if it is not in memory.
// Storage problems never fail the call: the session gets an empty cart.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	r.mu.Lock()
	if e, ok := r.entries[sessionID]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.store, nil
	}
	r.mu.Unlock()

	items := r.rehydrate(ctx, sessionID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sessionID]; ok {
		e.lastSeen = r.now()
		return e.store, nil
	}
	store := NewStore(StorageKey(sessionID), r.persister, items)
	r.entries[sessionID] = &entry{store: store, lastSeen: r.now()}
	liveSessions.Inc()
	return store, nil
}

func (r *Registry) rehydrate(ctx context.Context, sessionID string) []domain.LineItem {
	key := StorageKey(sessionID)

	data, err := r.repo.Load(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		rehydrateFailures.WithLabelValues("unavailable").Inc()
		r.logger.WarnContext(ctx, "cart storage unavailable, starting empty",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	items, err := Decode(data)
	if err != nil {
		rehydrateFailures.WithLabelValues("corrupt").Inc()
		r.logger.WarnContext(ctx, "discarding corrupt cart snapshot",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	r.logger.DebugContext(ctx, "cart rehydrated",
		slog.String("session_id", sessionID),
		slog.Int("lines", len(items)),
	)
	return items
}

// evict drops the in-memory store of sessionID.
func (r *Registry) evict(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked(sessionID)
}

func (r *Registry) evictLocked(sessionID string) bool {
	if _, ok := r.entries[sessionID]; !ok {
		return false
	}
	delete(r.entries, sessionID)
	liveSessions.Dec()
	return true
}

// Len returns the number of stores held in memory.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Sweep evicts stores idle for longer than the idle period and returns how
// many were evicted. Stores with unsynced snapshots are skipped.
func (r *Registry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)

	tracker, _ := r.persister.(syncTracker)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, e := range r.entries {
		if !e.lastSeen.Before(cutoff) {
			continue
		}
		if tracker != nil && tracker.Unsynced(e.store.Key()) {
			continue
		}
		if r.evictLocked(id) {
			evicted++
		}
	}
	return evicted
}

// Run sweeps idle stores periodically until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	if r.idle <= 0 {
		return
	}
	interval := r.idle / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("evicted idle carts", slog.Int("count", n))
			}
		}
	}
}

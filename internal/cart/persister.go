package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository"
)

// DefaultWriteTimeout bounds a single snapshot write.
const DefaultWriteTimeout = 2 * time.Second

// pendingWrite is an encoded snapshot, or a delete when data is nil.
type pendingWrite struct {
	data []byte
}

// AsyncPersister is a write-behind Persister. Persist encodes and queues the
// snapshot and returns immediately; a single worker writes queued snapshots to
// the repository. A newer snapshot for a key replaces an older pending one,
// so storage always ends with the last state of each session. Failed writes
// are logged and counted, never retried.
type AsyncPersister struct {
	repo    repository.SnapshotRepository
	timeout time.Duration
	logger  *slog.Logger

	mu       sync.Mutex
	pending  map[string]pendingWrite
	order    []string
	inflight string
	failed   map[string]struct{}
	closed   bool
	started  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewAsyncPersister creates a persister writing to repo. Call Start to launch
// the worker and Close to flush on shutdown.
func NewAsyncPersister(repo repository.SnapshotRepository, timeout time.Duration, logger *slog.Logger) *AsyncPersister {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &AsyncPersister{
		repo:    repo,
		timeout: timeout,
		logger:  logger,
		pending: make(map[string]pendingWrite),
		failed:  make(map[string]struct{}),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Persist queues items for key. An empty cart deletes the slot.
func (p *AsyncPersister) Persist(key string, items []domain.LineItem) {
	var w pendingWrite
	if len(items) > 0 {
		data, err := Encode(items)
		if err != nil {
			persistFailures.Inc()
			p.logger.Warn("cart snapshot encode failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			return
		}
		w.data = data
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Warn("cart snapshot dropped after shutdown", slog.String("key", key))
		return
	}
	if _, queued := p.pending[key]; queued {
		persistCoalesced.Inc()
	} else {
		p.order = append(p.order, key)
	}
	p.pending[key] = w
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of snapshots waiting to be written.
func (p *AsyncPersister) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}

// Unsynced reports whether storage may hold an older state of key than the
// last one handed to Persist: a write is queued or running, or the last
// write failed.
func (p *AsyncPersister) Unsynced(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.pending[key]; ok {
		return true
	}
	if _, ok := p.failed[key]; ok {
		return true
	}
	return p.inflight == key
}

// Start launches the background writer.
func (p *AsyncPersister) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true
	go p.loop()
}

// Close stops accepting snapshots and waits until the queue is flushed or
// ctx expires.
func (p *AsyncPersister) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	started := p.started
	p.mu.Unlock()

	if !started {
		p.drain()
		return nil
	}

	close(p.stop)
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flush cart snapshots (%d pending): %w", p.Pending(), ctx.Err())
	}
}

func (p *AsyncPersister) loop() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.stop:
			p.drain()
			return
		}
	}
}

func (p *AsyncPersister) drain() {
	for {
		p.mu.Lock()
		if len(p.order) == 0 {
			p.mu.Unlock()
			return
		}
		key := p.order[0]
		p.order = p.order[1:]
		w := p.pending[key]
		delete(p.pending, key)
		p.inflight = key
		p.mu.Unlock()

		err := p.write(key, w)

		p.mu.Lock()
		p.inflight = ""
		if err != nil {
			p.failed[key] = struct{}{}
		} else {
			delete(p.failed, key)
		}
		p.mu.Unlock()
	}
}

func (p *AsyncPersister) write(key string, w pendingWrite) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	var err error
	if w.data == nil {
		err = p.repo.Delete(ctx, key)
	} else {
		err = p.repo.Save(ctx, key, w.data)
	}
	if err != nil {
		persistFailures.Inc()
		p.logger.Warn("cart snapshot write failed",
			slog.String("key", key),
			slog.Bool("delete", w.data == nil),
			slog.String("error", err.Error()),
		)
	}
	return err
}

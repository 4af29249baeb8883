package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository/memory"
)

func lineOf(qty int) []domain.LineItem {
	return []domain.LineItem{{ProductID: "P1", UnitPrice: 100, Quantity: qty}}
}

func TestAsyncPersister_CoalescesPendingWrites(t *testing.T) {
	repo := new(mockSnapshotRepo)
	final, err := Encode(lineOf(3))
	require.NoError(t, err)
	repo.On("Save", mock.Anything, "k1", final).Return(nil).Once()

	p := NewAsyncPersister(repo, time.Second, discardLogger())
	before := testutil.ToFloat64(persistCoalesced)

	p.Persist("k1", lineOf(1))
	p.Persist("k1", lineOf(2))
	p.Persist("k1", lineOf(3))
	assert.Equal(t, 1, p.Pending())

	require.NoError(t, p.Close(context.Background()))
	repo.AssertExpectations(t)
	assert.Equal(t, before+2, testutil.ToFloat64(persistCoalesced))
}

func TestAsyncPersister_EmptyCartDeletesSlot(t *testing.T) {
	repo := new(mockSnapshotRepo)
	repo.On("Delete", mock.Anything, "k1").Return(nil).Once()

	p := NewAsyncPersister(repo, time.Second, discardLogger())
	p.Persist("k1", lineOf(1))
	p.Persist("k1", nil)

	require.NoError(t, p.Close(context.Background()))
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestAsyncPersister_FailureIsCountedNotRetried(t *testing.T) {
	repo := new(mockSnapshotRepo)
	repo.On("Save", mock.Anything, "k1", mock.Anything).Return(errors.New("redis down")).Once()

	p := NewAsyncPersister(repo, time.Second, discardLogger())
	before := testutil.ToFloat64(persistFailures)

	p.Persist("k1", lineOf(1))
	require.NoError(t, p.Close(context.Background()))

	repo.AssertNumberOfCalls(t, "Save", 1)
	assert.Equal(t, before+1, testutil.ToFloat64(persistFailures))
}

func TestAsyncPersister_WorkerWritesInBackground(t *testing.T) {
	repo := memory.NewSnapshotRepository()
	p := NewAsyncPersister(repo, time.Second, discardLogger())
	p.Start()
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	p.Persist("k1", lineOf(2))
	p.Persist("k2", lineOf(4))

	require.Eventually(t, func() bool { return repo.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	data, err := repo.Load(context.Background(), "k2")
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, lineOf(4), got)
}

// blockingRepo holds every Save until release is closed.
type blockingRepo struct {
	*memory.SnapshotRepository
	release chan struct{}
	once    sync.Once
	started chan struct{}
}

func (b *blockingRepo) Save(ctx context.Context, key string, data []byte) error {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.SnapshotRepository.Save(ctx, key, data)
}

func TestAsyncPersister_PersistNeverBlocksOnStorage(t *testing.T) {
	repo := &blockingRepo{
		SnapshotRepository: memory.NewSnapshotRepository(),
		release:            make(chan struct{}),
		started:            make(chan struct{}),
	}
	p := NewAsyncPersister(repo, time.Second, discardLogger())
	p.Start()

	p.Persist("k1", lineOf(1))
	<-repo.started

	done := make(chan struct{})
	go func() {
		for i := 2; i <= 20; i++ {
			p.Persist("k1", lineOf(i))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Persist blocked while storage was busy")
	}

	close(repo.release)
	require.NoError(t, p.Close(context.Background()))

	data, err := repo.Load(context.Background(), "k1")
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, lineOf(20), got, "last writer wins")
}

func TestAsyncPersister_CloseHonoursDeadline(t *testing.T) {
	repo := &blockingRepo{
		SnapshotRepository: memory.NewSnapshotRepository(),
		release:            make(chan struct{}),
		started:            make(chan struct{}),
	}
	defer close(repo.release)

	p := NewAsyncPersister(repo, time.Second, discardLogger())
	p.Start()
	p.Persist("k1", lineOf(1))
	<-repo.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Close(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestAsyncPersister_DropsAfterClose(t *testing.T) {
	repo := new(mockSnapshotRepo)
	p := NewAsyncPersister(repo, time.Second, discardLogger())
	require.NoError(t, p.Close(context.Background()))

	p.Persist("k1", lineOf(1))
	assert.Equal(t, 0, p.Pending())
	require.NoError(t, p.Close(context.Background()))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestAsyncPersister_UnsyncedTracksQueuedRunningAndFailedWrites(t *testing.T) {
	repo := &blockingRepo{
		SnapshotRepository: memory.NewSnapshotRepository(),
		release:            make(chan struct{}),
		started:            make(chan struct{}),
	}
	p := NewAsyncPersister(repo, time.Second, discardLogger())
	assert.False(t, p.Unsynced("k1"))

	p.Persist("k1", lineOf(1))
	assert.True(t, p.Unsynced("k1"), "queued")
	assert.False(t, p.Unsynced("k2"))

	p.Start()
	<-repo.started
	assert.True(t, p.Unsynced("k1"), "being written")

	close(repo.release)
	require.Eventually(t, func() bool { return !p.Unsynced("k1") }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, p.Close(context.Background()))

	failing := new(mockSnapshotRepo)
	failing.On("Save", mock.Anything, "k3", mock.Anything).Return(errors.New("redis down")).Once()
	failing.On("Delete", mock.Anything, "k3").Return(nil).Once()
	fp := NewAsyncPersister(failing, time.Second, discardLogger())

	fp.Persist("k3", lineOf(1))
	fp.drain()
	assert.True(t, fp.Unsynced("k3"), "last write failed")

	fp.Persist("k3", nil)
	fp.drain()
	assert.False(t, fp.Unsynced("k3"))
	failing.AssertExpectations(t)
}

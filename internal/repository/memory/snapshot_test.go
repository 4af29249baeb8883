package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/errors"
)

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	repo := NewSnapshotRepository()
	ctx := context.Background()

	_, err := repo.Load(ctx, "k")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	buf := []byte("snapshot")
	require.NoError(t, repo.Save(ctx, "k", buf))
	buf[0] = 'X'

	got, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("snapshot"), got)
	assert.Equal(t, 1, repo.Len())

	require.NoError(t, repo.Delete(ctx, "k"))
	assert.Equal(t, 0, repo.Len())
}

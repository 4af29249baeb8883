package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository/static"
	apperrors "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/errors"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Related_SameCategoryBestsellersFirst(t *testing.T) {
	svc := NewService(static.NewProductRepository([]domain.Product{
		{ID: "k1", Slug: "k1", Category: domain.CategoryKurtas},
		{ID: "k2", Slug: "k2", Category: domain.CategoryKurtas},
		{ID: "k3", Slug: "k3", Category: domain.CategoryKurtas, IsBestseller: true},
		{ID: "s1", Slug: "s1", Category: domain.CategorySarees, IsBestseller: true},
	}), testLogger())

	related, err := svc.Related(context.Background(), "k1", 0)
	require.NoError(t, err)

	ids := make([]string, 0, len(related))
	for _, p := range related {
		ids = append(ids, p.ID)
	}
	require.Len(t, ids, 2)
	assert.Equal(t, "k3", ids[0])
	assert.NotContains(t, ids, "k1")
	assert.NotContains(t, ids, "s1")
}

func TestService_Related_Limit(t *testing.T) {
	svc := NewService(static.NewProductRepository(static.SeedCatalog()), testLogger())

	related, err := svc.Related(context.Background(), "sar-001", 2)
	require.NoError(t, err)
	assert.Len(t, related, 2)
}

func TestService_Related_UnknownProduct(t *testing.T) {
	svc := NewService(static.NewProductRepository(nil), testLogger())

	_, err := svc.Related(context.Background(), "nope", 4)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestService_Get_RequiresID(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewService(repo, testLogger())

	_, err := svc.Get(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = svc.GetBySlug(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_List_WrapsRepositoryError(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, 0, errors.New("db down"))
	svc := NewService(repo, testLogger())

	_, _, err := svc.List(context.Background(), repository.ProductFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list products: db down")
	repo.AssertExpectations(t)
}

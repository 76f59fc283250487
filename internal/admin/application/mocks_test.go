package application

import (
	"context"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) SetStatus(ctx context.Context, id string, status domain.ReviewStatus, now time.Time) (*domain.Review, error) {
	args := m.Called(ctx, id, status, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) FindByGallery(ctx context.Context, galleryID string, status domain.ReviewStatus) ([]domain.Review, error) {
	args := m.Called(ctx, galleryID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) FindByStatus(ctx context.Context, status domain.ReviewStatus) ([]domain.Review, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type mockGalleryRepository struct {
	mock.Mock
}

func (m *mockGalleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

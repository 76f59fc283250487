package application

import (
	"context"
	"errors"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
)

type reviewService struct {
	reviews  ReviewRepository
	gallery  GalleryRepository
	notifier ReviewNotifier
	now      func() time.Time
}

// NewReviewService creates a ReviewService. notifier may be nil.
func NewReviewService(reviews ReviewRepository, gallery GalleryRepository, notifier ReviewNotifier) ReviewService {
	return &reviewService{
		reviews:  reviews,
		gallery:  gallery,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *reviewService) Create(ctx context.Context, cmd CreateReviewCommand) (*domain.Review, error) {
	review, err := domain.NewReview(cmd.GalleryID, cmd.UserID, cmd.UserEmail, cmd.ReviewText, cmd.Rating, s.now())
	if err != nil {
		return nil, err
	}

	item, err := s.gallery.FindByID(ctx, review.GalleryID)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return nil, domain.NewValidationError("galleryId", vErr.Message)
		}
		return nil, err
	}
	if item == nil {
		return nil, domain.NewValidationError("galleryId", "gallery item does not exist")
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		submitted := *review
		target := *item
		go s.notifier.ReviewSubmitted(context.Background(), submitted, target)
	}
	return review, nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

// Update はオーナー編集を適用する。状態は常に pending に戻る。
func (s *reviewService) Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	changes, err := domain.PrepareEdit(patch, s.now())
	if err != nil {
		return nil, err
	}
	return s.reviews.Update(ctx, id, changes)
}

func (s *reviewService) Delete(ctx context.Context, id string) (bool, error) {
	return s.reviews.Delete(ctx, id)
}

func (s *reviewService) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	return s.reviews.FindByUser(ctx, userID)
}

func (s *reviewService) ListByGallery(ctx context.Context, galleryID string, status domain.ReviewStatus) ([]domain.Review, error) {
	return s.reviews.FindByGallery(ctx, galleryID, status)
}

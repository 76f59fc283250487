package application

import (
	"context"
	"strings"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
)

type moderationService struct {
	repo ReviewRepository
	now  func() time.Time
}

func NewModerationService(repo ReviewRepository) ModerationService {
	return &moderationService{repo: repo, now: time.Now}
}

// Queue は status で絞り込んだレビューを新しい順に返す。空文字なら全件。
func (s *moderationService) Queue(ctx context.Context, status string) ([]domain.Review, error) {
	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStatus(ctx, filter)
}

func (s *moderationService) Detail(ctx context.Context, id string) (*domain.Review, error) {
	return s.repo.FindByID(ctx, id)
}

// SetStatus は遷移元を問わず任意の有効な状態へ移す。存在しなければ nil を返す。
func (s *moderationService) SetStatus(ctx context.Context, id string, status string) (*domain.Review, error) {
	next, err := domain.Moderate(status)
	if err != nil {
		return nil, err
	}
	return s.repo.SetStatus(ctx, id, next, s.now().UTC())
}

func (s *moderationService) ListByGallery(ctx context.Context, galleryID string, status string) ([]domain.Review, error) {
	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByGallery(ctx, galleryID, filter)
}

func parseStatusFilter(value string) (domain.ReviewStatus, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return domain.ParseReviewStatus(value)
}

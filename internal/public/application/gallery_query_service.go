package application

import (
	"context"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultFanoutLimit は一覧取得時にレビューを並行取得する上限。
const DefaultFanoutLimit = 8

type galleryQueryService struct {
	gallery     GalleryRepository
	reviews     ReviewRepository
	fanoutLimit int
}

// NewGalleryQueryService creates a GalleryQueryService.
func NewGalleryQueryService(gallery GalleryRepository, reviews ReviewRepository, fanoutLimit int) GalleryQueryService {
	if fanoutLimit <= 0 {
		fanoutLimit = DefaultFanoutLimit
	}
	return &galleryQueryService{
		gallery:     gallery,
		reviews:     reviews,
		fanoutLimit: fanoutLimit,
	}
}

// List は項目ごとに approved レビューを取得して集計を付与する。
// どれか 1 件でも取得に失敗したら一覧全体を失敗とする。
func (s *galleryQueryService) List(ctx context.Context) ([]domain.RatedGalleryItem, error) {
	items, err := s.gallery.Find(ctx)
	if err != nil {
		return nil, err
	}

	rated := make([]domain.RatedGalleryItem, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanoutLimit)
	for i := range items {
		i := i
		g.Go(func() error {
			summary, err := s.summarize(gctx, items[i].ID)
			if err != nil {
				return err
			}
			rated[i] = domain.RatedGalleryItem{GalleryItem: items[i], Rating: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rated, nil
}

func (s *galleryQueryService) Detail(ctx context.Context, id string) (*domain.RatedGalleryItem, error) {
	item, err := s.gallery.FindByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	summary, err := s.summarize(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return &domain.RatedGalleryItem{GalleryItem: *item, Rating: summary}, nil
}

func (s *galleryQueryService) summarize(ctx context.Context, galleryID string) (domain.RatingSummary, error) {
	reviews, err := s.reviews.FindByGallery(ctx, galleryID, domain.StatusApproved)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return domain.SummarizeRatings(reviews), nil
}

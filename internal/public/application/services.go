package application

import (
	"context"

	"github.com/sngm3741/granite-company/api/internal/domain"
)

// ReviewRepository はレビューの永続化ポート。存在しない ID の参照は nil, nil を返す。
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	Update(ctx context.Context, id string, changes domain.ReviewChanges) (*domain.Review, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Review, error)
	FindByGallery(ctx context.Context, galleryID string, status domain.ReviewStatus) ([]domain.Review, error)
}

// GalleryRepository は Public コンテキストで施工事例を読み取るためのポート。
type GalleryRepository interface {
	Find(ctx context.Context) ([]domain.GalleryItem, error)
	FindByID(ctx context.Context, id string) (*domain.GalleryItem, error)
}

// ReviewNotifier は新規投稿を管理者へ知らせる。失敗は呼び出し元へ返さない。
type ReviewNotifier interface {
	ReviewSubmitted(ctx context.Context, review domain.Review, item domain.GalleryItem)
}

// ReviewService はレビュー投稿・編集・削除と一覧のユースケース。
type ReviewService interface {
	Create(ctx context.Context, cmd CreateReviewCommand) (*domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)
	ListByGallery(ctx context.Context, galleryID string, status domain.ReviewStatus) ([]domain.Review, error)
}

// GalleryQueryService は評価集計付きの施工事例を返すリーダーモデル。
type GalleryQueryService interface {
	List(ctx context.Context) ([]domain.RatedGalleryItem, error)
	Detail(ctx context.Context, id string) (*domain.RatedGalleryItem, error)
}

// CreateReviewCommand captures authenticated review input.
type CreateReviewCommand struct {
	GalleryID  string
	UserID     string
	UserEmail  string
	ReviewText string
	Rating     int
}

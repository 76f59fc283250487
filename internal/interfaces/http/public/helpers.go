package public

import (
	"github.com/sngm3741/granite-company/api/internal/domain"
)

func buildGalleryItemResponse(item domain.RatedGalleryItem) galleryItemResponse {
	var images map[string]galleryImagePayload
	if len(item.Images) > 0 {
		images = make(map[string]galleryImagePayload, len(item.Images))
		for key, image := range item.Images {
			images[key] = galleryImagePayload{
				URL:             image.URL.String(),
				ExternalAssetID: image.ExternalAssetID,
				IsMain:          image.IsMain,
			}
		}
	}
	specs := make([]specificationPayload, 0, len(item.Specifications))
	for _, spec := range item.Specifications {
		specs = append(specs, specificationPayload{Key: spec.Key, Value: spec.Value})
	}
	return galleryItemResponse{
		ID:             item.ID,
		Title:          item.Title,
		Category:       item.Category,
		Material:       item.Material,
		Description:    item.Description,
		MainImageURL:   item.MainImageURL,
		Images:         images,
		Client:         item.Client,
		Location:       item.Location,
		Specifications: specs,
		AverageRating:  item.Rating.AverageRating,
		ReviewCount:    item.Rating.ReviewCount,
		CreatedAt:      item.CreatedAt,
	}
}

// buildReviewResponse は公開一覧ではメールアドレスを含めない。
func buildReviewResponse(review domain.Review, includeEmail bool) reviewResponse {
	resp := reviewResponse{
		ID:         review.ID,
		GalleryID:  review.GalleryID,
		UserID:     review.UserID,
		ReviewText: review.ReviewText.String(),
		Rating:     review.Rating.Int(),
		Status:     review.Status.String(),
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
	if includeEmail {
		resp.UserEmail = review.UserEmail.String()
	}
	return resp
}

func buildReviewListResponse(reviews []domain.Review, includeEmail bool) reviewListResponse {
	items := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, buildReviewResponse(review, includeEmail))
	}
	return reviewListResponse{Items: items}
}

package admin

import (
	adminapp "github.com/sngm3741/granite-company/api/internal/admin/application"
	"github.com/sngm3741/granite-company/api/internal/domain"
)

// adminReviewToResponse は管理画面向けにメールアドレスも含めて返す。
func adminReviewToResponse(review domain.Review) adminReviewResponse {
	return adminReviewResponse{
		ID:         review.ID,
		GalleryID:  review.GalleryID,
		UserID:     review.UserID,
		UserEmail:  review.UserEmail.String(),
		ReviewText: review.ReviewText.String(),
		Rating:     review.Rating.Int(),
		Status:     review.Status.String(),
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}

func adminReviewListToResponse(reviews []domain.Review) adminReviewListResponse {
	items := make([]adminReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, adminReviewToResponse(review))
	}
	return adminReviewListResponse{Items: items}
}

func buildCreateGalleryCommand(req createGalleryItemRequest) adminapp.CreateGalleryItemCommand {
	cmd := adminapp.CreateGalleryItemCommand{
		Title:        req.Title,
		Category:     req.Category,
		Material:     req.Material,
		Description:  req.Description,
		MainImageURL: req.MainImageURL,
		Client:       req.Client,
		Location:     req.Location,
	}
	if len(req.Images) > 0 {
		cmd.Images = make(map[string]adminapp.GalleryImageCommand, len(req.Images))
		for key, image := range req.Images {
			cmd.Images[key] = adminapp.GalleryImageCommand{
				URL:             image.URL,
				ExternalAssetID: image.ExternalAssetID,
				IsMain:          image.IsMain,
			}
		}
	}
	for _, spec := range req.Specifications {
		cmd.Specifications = append(cmd.Specifications, adminapp.SpecificationCommand{Key: spec.Key, Value: spec.Value})
	}
	return cmd
}

func adminGalleryItemToResponse(item domain.GalleryItem) adminGalleryItemResponse {
	resp := adminGalleryItemResponse{
		ID:           item.ID,
		Title:        item.Title,
		Category:     item.Category,
		Material:     item.Material,
		Description:  item.Description,
		MainImageURL: item.MainImageURL,
		Client:       item.Client,
		Location:     item.Location,
		CreatedAt:    item.CreatedAt,
	}
	if len(item.Images) > 0 {
		resp.Images = make(map[string]adminGalleryImageResponse, len(item.Images))
		for key, image := range item.Images {
			resp.Images[key] = adminGalleryImageResponse{
				URL:             image.URL.String(),
				ExternalAssetID: image.ExternalAssetID,
				IsMain:          image.IsMain,
			}
		}
	}
	for _, spec := range item.Specifications {
		resp.Specifications = append(resp.Specifications, adminSpecificationResponse{Key: spec.Key, Value: spec.Value})
	}
	return resp
}

package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/granite-company/api/internal/domain"
	"github.com/sngm3741/granite-company/api/internal/interfaces/http/common"
)

func (h *Handler) galleryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		items, err := h.galleryQueries.List(ctx)
		if err != nil {
			common.WriteServiceError(h.logger, w, "gallery list fetch", err)
			return
		}

		resp := galleryListResponse{Items: make([]galleryItemResponse, 0, len(items))}
		for _, item := range items {
			resp.Items = append(resp.Items, buildGalleryItemResponse(item))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, resp)
	}
}

func (h *Handler) galleryDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		item, err := h.galleryQueries.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteServiceError(h.logger, w, "gallery detail fetch", err)
			return
		}
		if item == nil {
			common.WriteError(h.logger, w, http.StatusNotFound, "施工事例が見つかりません")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildGalleryItemResponse(*item))
	}
}

// galleryReviewsHandler は承認済みレビューだけを返す。
func (h *Handler) galleryReviewsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		reviews, err := h.reviews.ListByGallery(ctx, chi.URLParam(r, "id"), domain.StatusApproved)
		if err != nil {
			common.WriteServiceError(h.logger, w, "gallery review list fetch", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildReviewListResponse(reviews, false))
	}
}

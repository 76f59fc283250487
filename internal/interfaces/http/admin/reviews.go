package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/granite-company/api/internal/interfaces/http/common"
	"github.com/sngm3741/granite-company/api/internal/observability"
)

// reviewQueueHandler はモデレーション待ち行列を返す。?status= 省略時は全件。
func (h *Handler) reviewQueueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		reviews, err := h.moderation.Queue(ctx, r.URL.Query().Get("status"))
		if err != nil {
			common.WriteServiceError(h.logger, w, "admin review queue fetch", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminReviewListToResponse(reviews))
	}
}

func (h *Handler) reviewDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		review, err := h.moderation.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteServiceError(h.logger, w, "admin review detail fetch", err)
			return
		}
		if review == nil {
			common.WriteError(h.logger, w, http.StatusNotFound, "レビューが見つかりません")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminReviewToResponse(*review))
	}
}

func (h *Handler) reviewStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteServiceError(h.logger, w, "admin review status decode", err)
			return
		}
		if err := common.Validate(req); err != nil {
			common.WriteServiceError(h.logger, w, "admin review status validate", err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		review, err := h.moderation.SetStatus(ctx, id, req.Status)
		if err != nil {
			common.WriteServiceError(h.logger, w, "admin review status update", err)
			return
		}
		if review == nil {
			common.WriteError(h.logger, w, http.StatusNotFound, "レビューが見つかりません")
			return
		}

		if h.logger != nil {
			h.logger.Printf("レビューの状態を変更: id=%s status=%s", id, review.Status)
		}
		observability.ReviewStatusChanges.WithLabelValues(review.Status.String(), "admin").Inc()
		common.WriteJSON(h.logger, w, http.StatusOK, adminReviewToResponse(*review))
	}
}

func (h *Handler) galleryReviewsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		reviews, err := h.moderation.ListByGallery(ctx, chi.URLParam(r, "id"), r.URL.Query().Get("status"))
		if err != nil {
			common.WriteServiceError(h.logger, w, "admin gallery review list fetch", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminReviewListToResponse(reviews))
	}
}

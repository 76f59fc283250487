package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/granite-company/api/internal/domain"
	"github.com/sngm3741/granite-company/api/internal/interfaces/http/common"
	"github.com/sngm3741/granite-company/api/internal/observability"
	publicapp "github.com/sngm3741/granite-company/api/internal/public/application"
)

func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証が必要です")
			return
		}

		var req createReviewRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteServiceError(h.logger, w, "review create decode", err)
			return
		}
		if err := common.Validate(req); err != nil {
			common.WriteServiceError(h.logger, w, "review create validate", err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		review, err := h.reviews.Create(ctx, publicapp.CreateReviewCommand{
			GalleryID:  chi.URLParam(r, "id"),
			UserID:     user.ID,
			UserEmail:  user.Email,
			ReviewText: req.ReviewText,
			Rating:     req.Rating,
		})
		if err != nil {
			common.WriteServiceError(h.logger, w, "review create", err)
			return
		}

		observability.ReviewsSubmitted.Inc()
		common.WriteJSON(h.logger, w, http.StatusCreated, buildReviewResponse(*review, true))
	}
}

// myReviewsHandler はダッシュボード向けに本人のレビューを状態付きで返す。
func (h *Handler) myReviewsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証が必要です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		reviews, err := h.reviews.ListByUser(ctx, user.ID)
		if err != nil {
			common.WriteServiceError(h.logger, w, "my review list fetch", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildReviewListResponse(reviews, true))
	}
}

func (h *Handler) reviewUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証が必要です")
			return
		}

		var req updateReviewRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteServiceError(h.logger, w, "review update decode", err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		if !h.authorizeOwner(ctx, w, user, id) {
			return
		}

		review, err := h.reviews.Update(ctx, id, domain.ReviewPatch{
			ReviewText: req.ReviewText,
			Rating:     req.Rating,
		})
		if err != nil {
			common.WriteServiceError(h.logger, w, "review update", err)
			return
		}
		if review == nil {
			common.WriteError(h.logger, w, http.StatusNotFound, "レビューが見つかりません")
			return
		}

		observability.ReviewStatusChanges.WithLabelValues(review.Status.String(), "owner").Inc()
		common.WriteJSON(h.logger, w, http.StatusOK, buildReviewResponse(*review, true))
	}
}

func (h *Handler) reviewDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証が必要です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		if !h.authorizeOwner(ctx, w, user, id) {
			return
		}

		removed, err := h.reviews.Delete(ctx, id)
		if err != nil {
			common.WriteServiceError(h.logger, w, "review delete", err)
			return
		}
		if !removed {
			common.WriteError(h.logger, w, http.StatusNotFound, "レビューが見つかりません")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// authorizeOwner は存在確認と本人確認を行い、失敗時はレスポンスを書いて false を返す。
func (h *Handler) authorizeOwner(ctx context.Context, w http.ResponseWriter, user common.AuthenticatedUser, id string) bool {
	review, err := h.reviews.Get(ctx, id)
	if err != nil {
		common.WriteServiceError(h.logger, w, "review lookup", err)
		return false
	}
	if review == nil {
		common.WriteError(h.logger, w, http.StatusNotFound, "レビューが見つかりません")
		return false
	}
	if !review.OwnedBy(user.ID) {
		common.WriteServiceError(h.logger, w, "review ownership", domain.ErrForbidden)
		return false
	}
	return true
}

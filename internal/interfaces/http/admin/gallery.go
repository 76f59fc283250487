package admin

import (
	"context"
	"net/http"

	"github.com/sngm3741/granite-company/api/internal/interfaces/http/common"
)

func (h *Handler) galleryCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGalleryItemRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteServiceError(h.logger, w, "admin gallery create decode", err)
			return
		}
		if err := common.Validate(req); err != nil {
			common.WriteServiceError(h.logger, w, "admin gallery create validate", err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		item, err := h.galleryService.Create(ctx, buildCreateGalleryCommand(req))
		if err != nil {
			common.WriteServiceError(h.logger, w, "admin gallery create", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, adminGalleryItemToResponse(*item))
	}
}

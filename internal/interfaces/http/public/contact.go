package public

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sngm3741/granite-company/api/internal/interfaces/http/common"
	"github.com/sngm3741/granite-company/api/internal/observability"
)

const (
	contactRequiredMessage = "Name, email, and message are required"
	contactSuccessMessage  = "Message received! We will contact you soon."
	contactFailureMessage  = "Failed to process your message. Please try again."
)

func newContactReference() string {
	return uuid.NewString()
}

// contactHandler は問い合わせを保存せずにメッセンジャーへ中継する。
// 中継先が未設定なら内容をログに残して成功扱いにする。
func (h *Handler) contactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteServiceError(h.logger, w, "contact decode", err)
			return
		}
		req.normalize()
		if req.Name == "" || req.Email == "" || req.Message == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, contactRequiredMessage)
			return
		}
		if err := common.Validate(req); err != nil {
			common.WriteServiceError(h.logger, w, "contact validate", err)
			return
		}

		reference := h.newReference()
		text := buildContactMessage(reference, req)

		if h.contactRelay == nil || !h.contactRelay.Configured() || h.contactDestination == "" {
			if h.logger != nil {
				h.logger.Printf("問い合わせを受信 (中継先未設定): reference=%s name=%s email=%s", reference, req.Name, req.Email)
			}
			observability.ContactRelays.WithLabelValues("logged").Inc()
			h.writeContactSuccess(w, reference)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		if err := h.contactRelay.SendWithRetry(ctx, h.contactDestination, "contact-"+reference, text, 2, 200*time.Millisecond); err != nil {
			if h.logger != nil {
				h.logger.Printf("問い合わせの中継に失敗: reference=%s err=%v", reference, err)
			}
			observability.ContactRelays.WithLabelValues("failed").Inc()
			common.WriteError(h.logger, w, http.StatusInternalServerError, contactFailureMessage)
			return
		}

		observability.ContactRelays.WithLabelValues("delivered").Inc()
		h.writeContactSuccess(w, reference)
	}
}

func (h *Handler) writeContactSuccess(w http.ResponseWriter, reference string) {
	common.WriteJSON(h.logger, w, http.StatusOK, contactResponse{
		Success:   true,
		Message:   contactSuccessMessage,
		Reference: reference,
	})
}

func (req *contactRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.ProjectType = strings.TrimSpace(req.ProjectType)
	req.Message = strings.TrimSpace(req.Message)
}

func buildContactMessage(reference string, req contactRequest) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("**%s** さんからお問い合わせがあります。\n", req.Name))
	builder.WriteString(fmt.Sprintf("- 受付番号: %s\n", reference))
	builder.WriteString(fmt.Sprintf("- メール: %s\n", req.Email))
	if req.Phone != "" {
		builder.WriteString(fmt.Sprintf("- 電話: %s\n", req.Phone))
	}
	if req.ProjectType != "" {
		builder.WriteString(fmt.Sprintf("- 種別: %s\n", req.ProjectType))
	}
	builder.WriteString(fmt.Sprintf("- 内容: %s\n", req.Message))
	return builder.String()
}

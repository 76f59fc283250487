package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sngm3741/granite-company/api/internal/domain"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// WriteError writes {"error": message}.
func WriteError(logger *log.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, map[string]string{"error": message})
}

// WriteServiceError はユースケースのエラーを HTTP ステータスへ対応付ける。
// ストア障害の詳細はログにだけ残し、レスポンスには含めない。
func WriteServiceError(logger *log.Logger, w http.ResponseWriter, op string, err error) {
	var (
		vErr   *domain.ValidationError
		reqErr *RequestValidationError
	)
	switch {
	case errors.As(err, &reqErr):
		WriteJSON(logger, w, http.StatusBadRequest, map[string]any{
			"error":  reqErr.Error(),
			"fields": reqErr.Fields(),
		})
	case errors.As(err, &vErr):
		WriteError(logger, w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, domain.ErrValidation):
		WriteError(logger, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteError(logger, w, http.StatusForbidden, "forbidden")
	default:
		if logger != nil {
			logger.Printf("%s に失敗: %v", op, err)
		}
		WriteError(logger, w, http.StatusInternalServerError, "internal server error")
	}
}

// DecodeJSON は本文サイズを制限して JSON を読み込む。未知フィールドは拒否する。
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBody)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return domain.NewValidationError("", "invalid JSON payload")
	}
	return nil
}

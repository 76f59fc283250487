package domain

import (
	"strings"
	"time"
)

// ReviewStatus はモデレーション状態。公開集計に含まれるのは StatusApproved のみ。
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

// ParseReviewStatus は既知の 3 状態以外を ValidationError として拒否する。
func ParseReviewStatus(value string) (ReviewStatus, error) {
	status := ReviewStatus(strings.ToLower(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", NewValidationError("status", "must be one of pending, approved, rejected")
	}
	return status, nil
}

func (s ReviewStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s ReviewStatus) String() string {
	return string(s)
}

// Review はギャラリー項目に対するユーザーレビュー。GalleryID と UserID は作成後に変更しない。
type Review struct {
	ID         string
	GalleryID  string
	UserID     string
	UserEmail  Email
	ReviewText ReviewText
	Rating     Rating
	Status     ReviewStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewReview は入力を検証し、pending 状態の新規レビューを組み立てる。ID はストアが採番する。
func NewReview(galleryID, userID, userEmail, text string, rating int, now time.Time) (*Review, error) {
	galleryID = strings.TrimSpace(galleryID)
	if galleryID == "" {
		return nil, NewValidationError("galleryId", "is required")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, NewValidationError("userId", "is required")
	}
	email, err := NewEmail(userEmail)
	if err != nil {
		return nil, err
	}
	reviewText, err := NewReviewText(text)
	if err != nil {
		return nil, err
	}
	value, err := NewRating(rating)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Review{
		GalleryID:  galleryID,
		UserID:     userID,
		UserEmail:  email,
		ReviewText: reviewText,
		Rating:     value,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// OwnedBy はレビューの作成者かどうかを返す。
func (r Review) OwnedBy(userID string) bool {
	return userID != "" && r.UserID == userID
}

// ReviewPatch はオーナー編集で変更可能な項目。nil は「変更なし」。
type ReviewPatch struct {
	ReviewText *string
	Rating     *int
}

// ReviewChanges は検証済みの編集内容。Status は常に pending になる。
type ReviewChanges struct {
	ReviewText *ReviewText
	Rating     *Rating
	Status     ReviewStatus
	UpdatedAt  time.Time
}

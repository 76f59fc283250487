package domain

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	MinRating = 1
	MaxRating = 5

	// MaxReviewTextRunes はレビュー本文の上限文字数。
	MaxReviewTextRunes = 2000
)

type Rating int

func NewRating(value int) (Rating, error) {
	if value < MinRating || value > MaxRating {
		return 0, NewValidationError("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	return Rating(value), nil
}

func (r Rating) Int() int {
	return int(r)
}

type ReviewText string

// NewReviewText は前後の空白を除去し、空文字と上限超過を拒否する。
func NewReviewText(value string) (ReviewText, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewValidationError("reviewText", "is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxReviewTextRunes {
		return "", NewValidationError("reviewText", fmt.Sprintf("must be at most %d characters", MaxReviewTextRunes))
	}
	return ReviewText(trimmed), nil
}

func (t ReviewText) String() string {
	return string(t)
}

type Email string

// NewEmail は空文字を許容し、値がある場合のみ形式を検証する。
func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > 254 {
		return "", NewValidationError("email", "must be at most 254 characters")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", NewValidationError("email", "is not a valid address")
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}

type ImageURL string

func NewImageURL(value string) (ImageURL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewValidationError("url", "is required")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", NewValidationError("url", "is not a valid URL")
	}
	return ImageURL(trimmed), nil
}

func (u ImageURL) String() string {
	return string(u)
}

package domain

import "time"

// モデレーションの遷移規則:
//   - 作成時は常に pending
//   - オーナー編集はどの状態からでも pending に戻す
//   - 管理者操作はどの状態からでも任意の有効な状態へ移せる
//
// 終端状態はない。

// PrepareEdit はオーナー編集の入力を検証し、pending への差し戻しを含む変更内容を返す。
func PrepareEdit(patch ReviewPatch, now time.Time) (ReviewChanges, error) {
	if patch.ReviewText == nil && patch.Rating == nil {
		return ReviewChanges{}, NewValidationError("", "no changes supplied")
	}

	changes := ReviewChanges{
		Status:    StatusPending,
		UpdatedAt: now.UTC(),
	}
	if patch.ReviewText != nil {
		text, err := NewReviewText(*patch.ReviewText)
		if err != nil {
			return ReviewChanges{}, err
		}
		changes.ReviewText = &text
	}
	if patch.Rating != nil {
		rating, err := NewRating(*patch.Rating)
		if err != nil {
			return ReviewChanges{}, err
		}
		changes.Rating = &rating
	}
	return changes, nil
}

// Apply は変更内容をレビューへ反映する。CreatedAt・GalleryID・UserID には触れない。
func (r *Review) Apply(changes ReviewChanges) {
	if changes.ReviewText != nil {
		r.ReviewText = *changes.ReviewText
	}
	if changes.Rating != nil {
		r.Rating = *changes.Rating
	}
	if changes.Status != "" {
		r.Status = changes.Status
	}
	if !changes.UpdatedAt.IsZero() {
		r.UpdatedAt = changes.UpdatedAt
	}
}

// Moderate は管理者による状態変更を検証する。遷移元の状態は問わない。
func Moderate(next string) (ReviewStatus, error) {
	return ParseReviewStatus(next)
}

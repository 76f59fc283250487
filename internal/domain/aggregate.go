package domain

// RatingSummary はギャラリー項目の公開集計。保存せず、読み取りのたびに計算する。
type RatingSummary struct {
	AverageRating float64
	ReviewCount   int
}

// SummarizeRatings は approved のレビューだけを対象に件数と平均評価を求める。
// 対象が 0 件なら平均も 0 を返す。
func SummarizeRatings(reviews []Review) RatingSummary {
	sum := 0
	count := 0
	for _, review := range reviews {
		if review.Status != StatusApproved {
			continue
		}
		sum += review.Rating.Int()
		count++
	}
	if count == 0 {
		return RatingSummary{}
	}
	return RatingSummary{
		AverageRating: float64(sum) / float64(count),
		ReviewCount:   count,
	}
}

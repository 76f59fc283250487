package domain

import (
	"sort"
	"strings"
	"time"
)

// GalleryItem は施工事例 1 件。平均評価とレビュー件数は持たない (RatedGalleryItem を参照)。
type GalleryItem struct {
	ID             string
	Title          string
	Category       string
	Material       string
	Description    string
	MainImageURL   string
	Images         map[string]GalleryImage
	Client         string
	Location       string
	Specifications []Specification
	CreatedAt      time.Time
}

// GalleryImage は外部アセットサービスに置かれた画像の参照。
type GalleryImage struct {
	URL             ImageURL
	ExternalAssetID string
	IsMain          bool
}

// Specification は順序付きのキー/値。
type Specification struct {
	Key   string
	Value string
}

// RatedGalleryItem は公開向けの読み取りモデル。Rating は approved レビューから都度計算する。
type RatedGalleryItem struct {
	GalleryItem
	Rating RatingSummary
}

// Normalize は入力値を整形し、必須項目を検証する。
// MainImageURL が空なら isMain の画像から補完する。
func (g *GalleryItem) Normalize() error {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return NewValidationError("title", "is required")
	}
	g.Category = strings.TrimSpace(g.Category)
	g.Material = strings.TrimSpace(g.Material)
	g.Description = strings.TrimSpace(g.Description)
	g.Client = strings.TrimSpace(g.Client)
	g.Location = strings.TrimSpace(g.Location)

	mainCount := 0
	for key, image := range g.Images {
		if strings.TrimSpace(key) == "" {
			return NewValidationError("images", "image key must not be empty")
		}
		if _, err := NewImageURL(image.URL.String()); err != nil {
			return NewValidationError("images."+key, "url is not a valid URL")
		}
		if image.IsMain {
			mainCount++
		}
	}
	if mainCount > 1 {
		return NewValidationError("images", "only one image can be marked as main")
	}

	specs := make([]Specification, 0, len(g.Specifications))
	for _, spec := range g.Specifications {
		key := strings.TrimSpace(spec.Key)
		if key == "" {
			return NewValidationError("specifications", "key must not be empty")
		}
		specs = append(specs, Specification{Key: key, Value: strings.TrimSpace(spec.Value)})
	}
	g.Specifications = specs

	g.MainImageURL = strings.TrimSpace(g.MainImageURL)
	if g.MainImageURL == "" {
		g.MainImageURL = g.mainImageFromImages()
	}
	if g.MainImageURL != "" {
		if _, err := NewImageURL(g.MainImageURL); err != nil {
			return NewValidationError("mainImageUrl", "is not a valid URL")
		}
	}
	return nil
}

// mainImageFromImages はキー順に走査して最初の isMain 画像を返す。
func (g *GalleryItem) mainImageFromImages() string {
	keys := make([]string, 0, len(g.Images))
	for key := range g.Images {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if g.Images[key].IsMain {
			return g.Images[key].URL.String()
		}
	}
	return ""
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryItem_Normalize(t *testing.T) {
	item := GalleryItem{
		Title:    "  Kitchen island  ",
		Material: " Granite ",
		Images: map[string]GalleryImage{
			"b": {URL: "https://cdn.example.com/b.jpg"},
			"a": {URL: "https://cdn.example.com/a.jpg", IsMain: true},
		},
		Specifications: []Specification{{Key: " Thickness ", Value: " 3cm "}},
	}

	require.NoError(t, item.Normalize())
	assert.Equal(t, "Kitchen island", item.Title)
	assert.Equal(t, "Granite", item.Material)
	assert.Equal(t, "https://cdn.example.com/a.jpg", item.MainImageURL)
	assert.Equal(t, []Specification{{Key: "Thickness", Value: "3cm"}}, item.Specifications)
}

func TestGalleryItem_NormalizeRejects(t *testing.T) {
	cases := map[string]GalleryItem{
		"missing title": {Title: " "},
		"bad image url": {Title: "x", Images: map[string]GalleryImage{"a": {URL: "not a url"}}},
		"two main images": {Title: "x", Images: map[string]GalleryImage{
			"a": {URL: "https://cdn.example.com/a.jpg", IsMain: true},
			"b": {URL: "https://cdn.example.com/b.jpg", IsMain: true},
		}},
		"blank spec key": {Title: "x", Specifications: []Specification{{Key: "", Value: "v"}}},
		"bad main image": {Title: "x", MainImageURL: "::"},
	}
	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, item.Normalize(), ErrValidation)
		})
	}
}

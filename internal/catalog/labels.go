// Package catalog turns a snapshot of products and categories into the
// filtered, grouped and suggested views shown by both the admin and the
// client product browsers. Nothing here performs I/O or returns errors.
package catalog

import (
	"strings"

	"catalog-service/internal/domain"
)

const uncategorizedLabel = "Uncategorized"

// builtinLabels covers the seed categories so they render even before the
// category table has been read.
var builtinLabels = map[string]string{
	"cctv":         "CCTV",
	"access_point": "Access point",
	"switch":       "Switch",
}

// Labels resolves category slugs to display labels. Build it once per
// query cycle with NewLabels and reuse it for every product.
type Labels struct {
	bySlug map[string]string
}

// NewLabels layers the stored categories over the built-in table.
func NewLabels(categories []domain.ProductCategory) *Labels {
	bySlug := make(map[string]string, len(builtinLabels)+len(categories))
	for slug, label := range builtinLabels {
		bySlug[slug] = label
	}
	for _, c := range categories {
		if label := strings.TrimSpace(c.Label); label != "" {
			bySlug[c.Name] = label
		}
	}
	return &Labels{bySlug: bySlug}
}

// Resolve never returns an empty string. Unknown slugs are humanized and
// the result is memoized.
func (l *Labels) Resolve(slug string) string {
	if label, ok := l.bySlug[slug]; ok {
		return label
	}
	label := domain.HumanizeSlug(slug)
	if label == "" {
		label = uncategorizedLabel
	}
	l.bySlug[slug] = label
	return label
}

package domain

import (
	"strings"
	"time"
	"unicode"
)

const (
	msgNameAndLabelRequired = "Name and label are required."
	msgLabelRequired        = "Label cannot be empty."
)

// ProductCategory is a flat category. Name is the slug and never changes
// after creation; Label is free to change.
type ProductCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type UpdateCategoryRequest struct {
	Label string `json:"label"`
}

// DeriveSlug lower-cases raw, turns each whitespace run into a single
// underscore and drops everything outside [a-z0-9_].
func DeriveSlug(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	joined := strings.Join(fields, "_")

	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewCategory derives and validates the stored form of a category.
func NewCategory(rawName, rawLabel string) (ProductCategory, error) {
	name := DeriveSlug(rawName)
	label := strings.TrimSpace(rawLabel)
	if name == "" || label == "" {
		return ProductCategory{}, NewValidationError(msgNameAndLabelRequired)
	}
	return ProductCategory{Name: name, Label: label}, nil
}

func ValidateCategoryLabel(rawLabel string) (string, error) {
	label := strings.TrimSpace(rawLabel)
	if label == "" {
		return "", NewValidationError(msgLabelRequired)
	}
	return label, nil
}

// HumanizeSlug turns "night_vision_kit" into "Night Vision Kit".
func HumanizeSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '_' || unicode.IsSpace(r) })
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

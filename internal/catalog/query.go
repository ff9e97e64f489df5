package catalog

import (
	"sort"
	"strings"

	"catalog-service/internal/domain"
)

const DefaultSuggestionLimit = 8

type Query struct {
	Categories map[string]struct{}
	Term       string
}

// NewQuery builds a query from repeated category parameters and a search
// term. Blank slugs are ignored.
func NewQuery(categories []string, term string) Query {
	q := Query{Categories: make(map[string]struct{}, len(categories)), Term: term}
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			q.Categories[c] = struct{}{}
		}
	}
	return q
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// matchesTerm expects an already normalized, non-empty term.
func matchesTerm(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	return p.Description != "" && strings.Contains(strings.ToLower(p.Description), term)
}

// Filter keeps products whose category is selected (when any are) and whose
// name or description contains the term (when one is given). Input order
// is preserved.
func Filter(products []domain.Product, q Query) []domain.Product {
	term := normalizeTerm(q.Term)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if len(q.Categories) > 0 {
			if _, ok := q.Categories[p.Category]; !ok {
				continue
			}
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Suggest returns the first limit products matching term in list order.
// An empty term yields no suggestions; limit <= 0 means the default of 8.
func Suggest(products []domain.Product, term string, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	term = normalizeTerm(term)
	out := []domain.Product{}
	if term == "" {
		return out
	}
	for _, p := range products {
		if len(out) == limit {
			break
		}
		if matchesTerm(p, term) {
			out = append(out, p)
		}
	}
	return out
}

type Group struct {
	Category string           `json:"category"`
	Label    string           `json:"label"`
	Items    []domain.Product `json:"items"`
}

// KnownSlugs is every stored category name plus every slug carried by a
// product, in first-seen order.
func KnownSlugs(products []domain.Product, categories []domain.ProductCategory) []string {
	seen := make(map[string]struct{}, len(categories))
	slugs := make([]string, 0, len(categories))
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		slugs = append(slugs, s)
	}
	for _, c := range categories {
		add(c.Name)
	}
	for _, p := range products {
		add(p.Category)
	}
	return slugs
}

// GroupByCategory buckets filtered products by category. Groups without
// items are dropped and the rest are sorted by label, case-insensitively.
// A product whose slug is missing from known still gets its own group.
func GroupByCategory(filtered []domain.Product, known []string, labels *Labels) []Group {
	index := make(map[string]int, len(known))
	groups := make([]Group, 0, len(known))
	for _, slug := range known {
		if _, ok := index[slug]; ok {
			continue
		}
		index[slug] = len(groups)
		groups = append(groups, Group{Category: slug, Label: labels.Resolve(slug)})
	}

	for _, p := range filtered {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, Group{Category: p.Category, Label: labels.Resolve(p.Category)})
		}
		groups[i].Items = append(groups[i].Items, p)
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Items) > 0 {
			out = append(out, g)
		}
	}
	sortByLabel(out, func(i int) (string, string) { return out[i].Label, out[i].Category })
	return out
}

type Option struct {
	Category string `json:"category"`
	Label    string `json:"label"`
}

// Options lists every known category for the filter controls, ordered the
// same way as groups. The empty slug is left out since a query cannot
// select it.
func Options(known []string, labels *Labels) []Option {
	out := make([]Option, 0, len(known))
	for _, slug := range known {
		if slug == "" {
			continue
		}
		out = append(out, Option{Category: slug, Label: labels.Resolve(slug)})
	}
	sortByLabel(out, func(i int) (string, string) { return out[i].Label, out[i].Category })
	return out
}

// sortByLabel sorts case-insensitively by label, breaking ties by slug so
// the order is deterministic.
func sortByLabel[T any](items []T, key func(i int) (label, slug string)) {
	sort.SliceStable(items, func(i, j int) bool {
		li, si := key(i)
		lj, sj := key(j)
		li, lj = strings.ToLower(li), strings.ToLower(lj)
		if li != lj {
			return li < lj
		}
		return si < sj
	})
}

package catalog

import "catalog-service/internal/domain"

// Snapshot is the caller's copy of catalog state. It is never written back.
type Snapshot struct {
	Products   []domain.Product
	Categories []domain.ProductCategory
}

type View struct {
	Results     []domain.Product `json:"results"`
	Groups      []Group          `json:"groups"`
	Suggestions []domain.Product `json:"suggestions"`
	Options     []Option         `json:"categories"`
	Total       int              `json:"total"`
}

// Run computes every view for one query cycle. Labels are resolved once
// and shared between groups and options.
func Run(s Snapshot, q Query) View {
	labels := NewLabels(s.Categories)
	known := KnownSlugs(s.Products, s.Categories)
	results := Filter(s.Products, q)

	return View{
		Results:     results,
		Groups:      GroupByCategory(results, known, labels),
		Suggestions: Suggest(s.Products, q.Term, DefaultSuggestionLimit),
		Options:     Options(known, labels),
		Total:       len(s.Products),
	}
}

package recipes

import (
	"context"
	"strings"
)

// MockRecipes is the dataset served when no search endpoint is configured.
func MockRecipes() []Recipe {
	return []Recipe{
		{ID: "1", Title: "Lasagna", Rating: 4},
		{ID: "2", Title: "Apple Pie", Rating: 5},
		{ID: "3", Title: "Burger", Rating: 3},
	}
}

// StaticSearcher filters a fixed list by case-insensitive title substring. An empty query
// matches everything.
type StaticSearcher struct {
	recipes []Recipe
}

var _ Searcher = (*StaticSearcher)(nil)

func NewStaticSearcher(list []Recipe) *StaticSearcher {
	return &StaticSearcher{recipes: append([]Recipe(nil), list...)}
}

func (s *StaticSearcher) Search(ctx context.Context, query string) ([]Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if needle == "" || strings.Contains(strings.ToLower(r.Title), needle) {
			results = append(results, r)
		}
	}
	return results, nil
}

// Package recipes backs the SpiceRack recipe browser: recipe search against an external endpoint
// (or a built-in mock dataset), client-side sorting and per-recipe favourites.
package recipes

import (
	"context"
	"sort"
	"strings"
)

// Recipe is one search result.
type Recipe struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Rating   int    `json:"rating"`
	Favorite bool   `json:"favorite"`
}

// Searcher looks recipes up by free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Recipe, error)
}

// SortMode selects the client-side ordering of results.
type SortMode string

const (
	SortNone   SortMode = ""
	SortRating SortMode = "rating"
)

// ParseSortMode accepts "rating"; anything else keeps the endpoint's order.
func ParseSortMode(s string) SortMode {
	if strings.EqualFold(strings.TrimSpace(s), string(SortRating)) {
		return SortRating
	}
	return SortNone
}

// SortByRating orders recipes by rating, highest first. Equal ratings keep their relative order.
func SortByRating(list []Recipe) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Rating > list[j].Rating
	})
}

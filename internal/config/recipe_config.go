package config

import (
	"strings"
	"time"
)

const (
	EmptyQueryNone = "none" // empty query shows nothing and makes no request
	EmptyQueryAll  = "all"  // empty query is sent as-is and lists everything
)

type RecipeConfig interface {
	GetRecipeSearchURL() string
	GetRecipeSearchTimeout() time.Duration
	GetRecipeSearchRPS() float64
	GetRecipeEmptyQueryPolicy() string
}

type Recipes struct{}

var _ RecipeConfig = Recipes{}

// GetRecipeSearchURL is the external search endpoint. Empty selects the built-in mock dataset.
func (Recipes) GetRecipeSearchURL() string {
	return GetEnv("RECIPE_SEARCH_URL", "")
}

func (Recipes) GetRecipeSearchTimeout() time.Duration {
	return GetEnvDuration("RECIPE_SEARCH_TIMEOUT", 5*time.Second)
}

func (Recipes) GetRecipeSearchRPS() float64 {
	return GetEnvFloat("RECIPE_SEARCH_RPS", 2)
}

func (Recipes) GetRecipeEmptyQueryPolicy() string {
	if strings.EqualFold(GetEnv("RECIPE_EMPTY_QUERY", EmptyQueryNone), EmptyQueryAll) {
		return EmptyQueryAll
	}
	return EmptyQueryNone
}

package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// HTTPClient queries an external recipe search endpoint: GET {endpoint}?query=... returning a
// JSON array of {id, title, rating}. Every failure is reported as ErrSearchUnavailable.
type HTTPClient struct {
	httpClient *http.Client
	endpoint   string
	limiter    *rate.Limiter
	sanitizer  *bluemonday.Policy
}

var _ Searcher = (*HTTPClient)(nil)

// NewHTTPClient returns a client allowing at most rps requests per second (burst 1).
// rps <= 0 disables throttling.
func NewHTTPClient(endpoint string, httpClient *http.Client, rps float64) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HTTPClient{
		httpClient: httpClient,
		endpoint:   endpoint,
		limiter:    rate.NewLimiter(limit, 1),
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// wireRecipe accepts numeric or string ids.
type wireRecipe struct {
	ID     any    `json:"id"`
	Title  string `json:"title"`
	Rating int    `json:"rating"`
}

// recipeID returns the id as text. Missing, null and non-scalar ids yield "".
func (w wireRecipe) recipeID() string {
	switch id := w.ID.(type) {
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	default:
		return ""
	}
}

func (c *HTTPClient) Search(ctx context.Context, query string) ([]Recipe, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, perrors.Wrapf(perrors.ErrSearchUnavailable, "[recipes Search] throttled: %v", err)
	}

	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, perrors.Wrapf(perrors.ErrSearchUnavailable, "[recipes Search] endpoint: %v", err)
	}
	q := reqURL.Query()
	q.Set("query", query)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, perrors.Wrapf(perrors.ErrSearchUnavailable, "[recipes Search] request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("Recipe search request failed")
		return nil, perrors.Wrapf(perrors.ErrSearchUnavailable, "[recipes Search] %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("query", query).Msg("Recipe search returned an error status")
		return nil, perrors.Wrapf(perrors.ErrSearchUnavailable, "[recipes Search] status %d", resp.StatusCode)
	}

	var wire []wireRecipe
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	dec.UseNumber()
	if err := dec.Decode(&wire); err != nil {
		return nil, perrors.Wrapf(perrors.ErrSearchUnavailable, "[recipes Search] decode: %v", err)
	}

	seen := make(map[string]struct{}, len(wire))
	results := make([]Recipe, 0, len(wire))
	for _, w := range wire {
		id := w.recipeID()
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		results = append(results, Recipe{
			ID:     id,
			Title:  c.plainText(w.Title),
			Rating: w.Rating,
		})
	}
	return results, nil
}

// plainText strips markup from endpoint-provided text; templates escape the result again.
func (c *HTTPClient) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.sanitizer.Sanitize(s)))
}

func (c *HTTPClient) String() string {
	return fmt.Sprintf("recipes.HTTPClient(%s)", c.endpoint)
}

package recipes

import (
	"context"
	"strings"
	"sync"

	"github.com/jrsteele09/cds-portal/internal/config"
	perrors "github.com/jrsteele09/cds-portal/internal/errors"
)

// Browser is the SpiceRack state: last query, results, sort mode and favourites. Searches only
// happen on an explicit Search call. It is safe for concurrent use; the network call is made
// without holding the lock and only the newest search's results are kept.
type Browser struct {
	mu          sync.Mutex
	searcher    Searcher
	emptyPolicy string

	query     string
	results   []Recipe
	favorites map[string]bool
	sortMode  SortMode
	searched  bool
	err       error
	seq       int
}

// NewBrowser returns an empty browser. emptyQueryPolicy is config.EmptyQueryNone or
// config.EmptyQueryAll.
func NewBrowser(searcher Searcher, emptyQueryPolicy string) *Browser {
	return &Browser{
		searcher:    searcher,
		emptyPolicy: emptyQueryPolicy,
		favorites:   make(map[string]bool),
	}
}

// Search runs query against the searcher and replaces the results. On failure the results are
// cleared and the error (ErrSearchUnavailable) is both returned and kept for rendering.
func (b *Browser) Search(ctx context.Context, query string) error {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.query = query
	b.searched = true
	b.err = nil
	if strings.TrimSpace(query) == "" && b.emptyPolicy != config.EmptyQueryAll {
		b.results = nil
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	results, err := b.searcher.Search(ctx, query)
	if err != nil && !perrors.Is(err, perrors.ErrSearchUnavailable) {
		err = perrors.Wrapf(perrors.ErrSearchUnavailable, "[recipes Browser] %v", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		return err
	}
	b.err = err
	if err != nil {
		b.results = nil
		return err
	}
	b.results = results
	return nil
}

func (b *Browser) SetSort(mode SortMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sortMode = mode
}

// ToggleFavorite flips the favourite flag of a listed recipe and returns the new value.
func (b *Browser) ToggleFavorite(id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.results {
		if r.ID == id {
			b.favorites[id] = !b.favorites[id]
			return b.favorites[id], nil
		}
	}
	return false, perrors.Wrapf(perrors.ErrNotFound, "[recipes ToggleFavorite] recipe %q", id)
}

// View is a render snapshot of the browser.
type View struct {
	Query    string
	Recipes  []Recipe
	Sort     SortMode
	Searched bool
	Err      error
}

func (b *Browser) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := make([]Recipe, len(b.results))
	copy(list, b.results)
	for i := range list {
		list[i].Favorite = b.favorites[list[i].ID]
	}
	if b.sortMode == SortRating {
		SortByRating(list)
	}
	return View{
		Query:    b.query,
		Recipes:  list,
		Sort:     b.sortMode,
		Searched: b.searched,
		Err:      b.err,
	}
}

// Titles lists the rendered titles in display order.
func (v View) Titles() []string {
	titles := make([]string, 0, len(v.Recipes))
	for _, r := range v.Recipes {
		titles = append(titles, r.Title)
	}
	return titles
}

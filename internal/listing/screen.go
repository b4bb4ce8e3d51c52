// Package listing is the restaurant list screen: it owns the current sort
// option and search query and rebuilds the visible rows from a fresh catalog
// load on every user action.
package listing

import (
	"context"

	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/catalog"
	"github.com/chrisdamba/takeaway/internal/favorites"
	"github.com/chrisdamba/takeaway/internal/models"
	"github.com/chrisdamba/takeaway/internal/ordering"
	"github.com/chrisdamba/takeaway/internal/search"
)

// Row is one line of the list as the user sees it.
type Row struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	StatusColor string `json:"statusColor,omitempty"`
	SortLabel   string `json:"sortLabel"`
	Favorite    bool   `json:"favorite"`
}

// Choice is an entry of the sort picker.
type Choice struct {
	Option   models.SortOption
	Label    string
	Key      string
	Selected bool
}

// Screen is not safe for concurrent use.
type Screen struct {
	source    catalog.Source
	favorites *favorites.Service
	logger    *zap.Logger

	sortOption  models.SortOption
	query       string
	restaurants []models.Restaurant
}

type Option func(*Screen)

func WithSortOption(o models.SortOption) Option {
	return func(s *Screen) { s.sortOption = o }
}

// New loads favorites and the catalog and runs the first sort.
func New(ctx context.Context, source catalog.Source, favs *favorites.Service, logger *zap.Logger, opts ...Option) *Screen {
	s := &Screen{
		source:     source,
		favorites:  favs,
		logger:     logger,
		sortOption: models.DefaultSortOption,
	}
	for _, opt := range opts {
		opt(s)
	}

	favs.Load(ctx)
	s.refresh(ctx)
	return s
}

// refresh is the whole reload, sort, filter cycle.
func (s *Screen) refresh(ctx context.Context) {
	loaded := s.source.Load(ctx)
	sorted := ordering.Sort(loaded, s.sortOption, s.favorites)
	s.restaurants = search.Filter(sorted, s.query)

	s.logger.Debug("list refreshed",
		zap.Int("catalog", len(loaded)),
		zap.Int("visible", len(s.restaurants)),
		zap.Stringer("sort", s.sortOption),
		zap.String("query", s.query),
	)
}

func (s *Screen) SortOption() models.SortOption { return s.sortOption }
func (s *Screen) Query() string                 { return s.query }

func (s *Screen) SetSortOption(ctx context.Context, o models.SortOption) {
	s.sortOption = o
	s.refresh(ctx)
}

// Search applies query to a freshly loaded and sorted catalog. An empty
// query shows everything.
func (s *Screen) Search(ctx context.Context, query string) {
	s.query = query
	s.refresh(ctx)
}

// ToggleFavorite flips name and re-sorts. A persistence failure is logged;
// the toggle still shows.
func (s *Screen) ToggleFavorite(ctx context.Context, name string) bool {
	favorite, err := s.favorites.Toggle(ctx, name)
	if err != nil {
		s.logger.Warn("favorite change not saved", zap.String("name", name), zap.Error(err))
	}
	s.refresh(ctx)
	return favorite
}

// Restaurants is the visible list in display order.
func (s *Screen) Restaurants() []models.Restaurant {
	return append([]models.Restaurant(nil), s.restaurants...)
}

// Visible reports whether name is in the visible list.
func (s *Screen) Visible(name string) bool {
	for _, r := range s.restaurants {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (s *Screen) Rows() []Row {
	rows := make([]Row, len(s.restaurants))
	for i, r := range s.restaurants {
		rows[i] = Row{
			Name:        r.Name,
			Status:      r.Status.String(),
			StatusLabel: r.Status.Label(),
			StatusColor: r.Status.Color(),
			SortLabel:   s.sortOption.Format(r),
			Favorite:    s.favorites.Contains(r.Name),
		}
	}
	return rows
}

func (s *Screen) SortChoices() []Choice {
	opts := models.SortOptions()
	choices := make([]Choice, len(opts))
	for i, o := range opts {
		choices[i] = Choice{
			Option:   o,
			Label:    o.String(),
			Key:      o.Key(),
			Selected: o == s.sortOption,
		}
	}
	return choices
}

// Package ordering ranks a restaurant catalog for display.
//
// The order is a single key tuple compared lexicographically:
// favorite tier, then status tier, then the selected metric ascending.
// Restaurants equal on all three keep their catalog order.
package ordering

import (
	"cmp"
	"slices"

	"github.com/chrisdamba/takeaway/internal/models"
)

// Favorites reports whether a restaurant name is a favorite.
type Favorites interface {
	Contains(name string) bool
}

type noFavorites struct{}

func (noFavorites) Contains(string) bool { return false }

type key struct {
	favoriteTier int
	statusTier   int
	metric       float64
}

func keyOf(r models.Restaurant, option models.SortOption, favorites Favorites) key {
	k := key{
		favoriteTier: 1,
		statusTier:   r.Status.Rank(),
		metric:       option.Value(r),
	}
	if favorites.Contains(r.Name) {
		k.favoriteTier = 0
	}
	return k
}

func compareKeys(a, b key) int {
	if c := cmp.Compare(a.favoriteTier, b.favoriteTier); c != 0 {
		return c
	}
	if c := cmp.Compare(a.statusTier, b.statusTier); c != 0 {
		return c
	}
	return cmp.Compare(a.metric, b.metric)
}

// Compare orders a before b (negative), after b (positive) or treats them as
// equal (zero). favorites may be nil.
func Compare(a, b models.Restaurant, option models.SortOption, favorites Favorites) int {
	if favorites == nil {
		favorites = noFavorites{}
	}
	return compareKeys(keyOf(a, option, favorites), keyOf(b, option, favorites))
}

// Sort returns a sorted copy of restaurants. favorites may be nil.
func Sort(restaurants []models.Restaurant, option models.SortOption, favorites Favorites) []models.Restaurant {
	if favorites == nil {
		favorites = noFavorites{}
	}

	type ranked struct {
		r models.Restaurant
		k key
	}
	items := make([]ranked, len(restaurants))
	for i, r := range restaurants {
		items[i] = ranked{r: r, k: keyOf(r, option, favorites)}
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		return compareKeys(a.k, b.k)
	})

	sorted := make([]models.Restaurant, len(items))
	for i, it := range items {
		sorted[i] = it.r
	}
	return sorted
}

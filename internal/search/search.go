package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/chrisdamba/takeaway/internal/models"
)

// Filter keeps the restaurants whose name contains query, compared under
// Unicode case folding. Order is preserved. An empty query returns
// restaurants unchanged.
func Filter(restaurants []models.Restaurant, query string) []models.Restaurant {
	if query == "" {
		return restaurants
	}

	fold := cases.Fold()
	needle := fold.String(query)

	matches := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if strings.Contains(fold.String(r.Name), needle) {
			matches = append(matches, r)
		}
	}
	return matches
}

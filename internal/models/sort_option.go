package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownSortOption = errors.New("unknown sort option")

// SortOption selects the metric used to order restaurants within the same
// favorite and status tier.
type SortOption int

const (
	SortBestMatch SortOption = iota
	SortNewest
	SortRatingAverage
	SortDistance
	SortPopularity
	SortAverageProductPrice
	SortDeliveryCosts
	SortMinCost
)

const DefaultSortOption = SortBestMatch

var sortOptionLabels = [...]string{
	SortBestMatch:           "Best Match",
	SortNewest:              "Newest",
	SortRatingAverage:       "Rating Average",
	SortDistance:            "Distance",
	SortPopularity:          "Popularity",
	SortAverageProductPrice: "Average Product Price",
	SortDeliveryCosts:       "Delivery Costs",
	SortMinCost:             "Min Cost",
}

var sortOptionKeys = [...]string{
	SortBestMatch:           "bestMatch",
	SortNewest:              "newest",
	SortRatingAverage:       "ratingAverage",
	SortDistance:            "distance",
	SortPopularity:          "popularity",
	SortAverageProductPrice: "averageProductPrice",
	SortDeliveryCosts:       "deliveryCosts",
	SortMinCost:             "minCost",
}

// SortOptions lists every option in display order.
func SortOptions() []SortOption {
	opts := make([]SortOption, len(sortOptionLabels))
	for i := range opts {
		opts[i] = SortOption(i)
	}
	return opts
}

// ParseSortOption accepts either the display label ("Rating Average") or the
// catalog key ("ratingAverage"), ignoring case and surrounding spaces.
func ParseSortOption(s string) (SortOption, error) {
	needle := strings.TrimSpace(s)
	for i := range sortOptionLabels {
		if strings.EqualFold(needle, sortOptionLabels[i]) || strings.EqualFold(needle, sortOptionKeys[i]) {
			return SortOption(i), nil
		}
	}
	return DefaultSortOption, fmt.Errorf("%w: %q", ErrUnknownSortOption, s)
}

func (o SortOption) valid() bool {
	return o >= 0 && int(o) < len(sortOptionLabels)
}

func (o SortOption) String() string {
	if !o.valid() {
		return fmt.Sprintf("SortOption(%d)", int(o))
	}
	return sortOptionLabels[o]
}

// Key is the catalog field name of the metric.
func (o SortOption) Key() string {
	if !o.valid() {
		return ""
	}
	return sortOptionKeys[o]
}

// Value reads the selected metric from r.
func (o SortOption) Value(r Restaurant) float64 {
	v := r.SortingValues
	switch o {
	case SortNewest:
		return v.Newest
	case SortRatingAverage:
		return v.RatingAverage
	case SortDistance:
		return float64(v.Distance)
	case SortPopularity:
		return v.Popularity
	case SortAverageProductPrice:
		return float64(v.AverageProductPrice)
	case SortDeliveryCosts:
		return float64(v.DeliveryCosts)
	case SortMinCost:
		return float64(v.MinCost)
	default:
		return v.BestMatch
	}
}

// FormatValue renders the metric the way the list shows it: fractional
// metrics always carry a decimal point, whole-number metrics never do.
func (o SortOption) FormatValue(r Restaurant) string {
	v := r.SortingValues
	switch o {
	case SortDistance:
		return strconv.Itoa(v.Distance)
	case SortAverageProductPrice:
		return strconv.Itoa(v.AverageProductPrice)
	case SortDeliveryCosts:
		return strconv.Itoa(v.DeliveryCosts)
	case SortMinCost:
		return strconv.Itoa(v.MinCost)
	}
	s := strconv.FormatFloat(o.Value(r), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Format renders "<label>: <value>" for r.
func (o SortOption) Format(r Restaurant) string {
	return o.String() + ": " + o.FormatValue(r)
}

func (o SortOption) MarshalText() ([]byte, error) {
	if !o.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSortOption, int(o))
	}
	return []byte(o.Key()), nil
}

func (o *SortOption) UnmarshalText(text []byte) error {
	parsed, err := ParseSortOption(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Restaurant struct {
	Name          string        `json:"name"`
	Status        Status        `json:"status"`
	SortingValues SortingValues `json:"sortingValues"`
}

type SortingValues struct {
	BestMatch           float64 `json:"bestMatch"`
	Newest              float64 `json:"newest"`
	RatingAverage       float64 `json:"ratingAverage"`
	Distance            int     `json:"distance"`
	Popularity          float64 `json:"popularity"`
	AverageProductPrice int     `json:"averageProductPrice"`
	DeliveryCosts       int     `json:"deliveryCosts"`
	MinCost             int     `json:"minCost"`
}

// Status is the opening state of a restaurant. A missing, null or unknown
// status string decodes to StatusUnknown.
type Status int

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusOrderAhead
	StatusClosed
)

// ParseStatus maps the catalog wire value to a Status.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RestaurantStatusOpen:
		return StatusOpen
	case RestaurantStatusOrderAhead:
		return StatusOrderAhead
	case RestaurantStatusClosed:
		return StatusClosed
	default:
		return StatusUnknown
	}
}

// String returns the wire value, empty for StatusUnknown.
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return RestaurantStatusOpen
	case StatusOrderAhead:
		return RestaurantStatusOrderAhead
	case StatusClosed:
		return RestaurantStatusClosed
	default:
		return ""
	}
}

// Rank orders statuses for display: open, then order ahead, then the rest.
func (s Status) Rank() int {
	switch s {
	case StatusOpen:
		return 0
	case StatusOrderAhead:
		return 1
	default:
		return 2
	}
}

func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusOrderAhead:
		return "Order Ahead"
	case StatusClosed:
		return "Closed"
	default:
		return ""
	}
}

// Color is the hex display color of the status label.
func (s Status) Color() string {
	switch s {
	case StatusOpen:
		return ColorOpen
	case StatusOrderAhead:
		return ColorOrderAhead
	case StatusClosed:
		return ColorClosed
	default:
		return ""
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	if s == StatusUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a string or null. Strings it does not know decode to
// StatusUnknown; any other JSON type is an error.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string or null: %w", err)
	}
	if raw == nil {
		*s = StatusUnknown
		return nil
	}
	*s = ParseStatus(*raw)
	return nil
}

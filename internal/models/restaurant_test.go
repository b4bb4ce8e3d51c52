package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{`{"status": "open"}`, StatusOpen},
		{`{"status": "order ahead"}`, StatusOrderAhead},
		{`{"status": "closed"}`, StatusClosed},
		{`{"status": "Open"}`, StatusOpen},
		{`{"status": null}`, StatusUnknown},
		{`{}`, StatusUnknown},
		{`{"status": "busy"}`, StatusUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			var r Restaurant
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &r))
			assert.Equal(t, tc.want, r.Status)
		})
	}
}

func TestStatus_UnmarshalJSON_RejectsNonString(t *testing.T) {
	for _, raw := range []string{`{"status": 3}`, `{"status": true}`, `{"status": {"open": true}}`, `{"status": ["open"]}`} {
		t.Run(raw, func(t *testing.T) {
			var r Restaurant
			assert.Error(t, json.Unmarshal([]byte(raw), &r))
		})
	}
}

func TestStatus_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Restaurant{Name: "A", Status: StatusOrderAhead})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"order ahead"`)

	data, err = json.Marshal(Restaurant{Name: "B"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":null`)
}

func TestStatus_Display(t *testing.T) {
	tests := []struct {
		status Status
		rank   int
		label  string
		color  string
	}{
		{StatusOpen, 0, "Open", ColorOpen},
		{StatusOrderAhead, 1, "Order Ahead", ColorOrderAhead},
		{StatusClosed, 2, "Closed", ColorClosed},
		{StatusUnknown, 2, "", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.rank, tc.status.Rank(), "rank of %v", tc.status)
		assert.Equal(t, tc.label, tc.status.Label())
		assert.Equal(t, tc.color, tc.status.Color())
	}
}

func TestRestaurant_DecodesSortingValues(t *testing.T) {
	raw := `{"name": "Tanoshii Sushi", "status": "open", "sortingValues": {
		"bestMatch": 0.0, "newest": 96.0, "ratingAverage": 4.5, "distance": 1190,
		"popularity": 17.0, "averageProductPrice": 1536, "deliveryCosts": 200, "minCost": 1000}}`

	var r Restaurant
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, SortingValues{
		BestMatch:           0,
		Newest:              96,
		RatingAverage:       4.5,
		Distance:            1190,
		Popularity:          17,
		AverageProductPrice: 1536,
		DeliveryCosts:       200,
		MinCost:             1000,
	}, r.SortingValues)
}

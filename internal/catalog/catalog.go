// Package catalog loads the restaurant catalog the list is built from.
//
// Loading never fails from the caller's point of view: a missing or corrupt
// catalog is logged and yields an empty list.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/models"
)

//go:embed sample.json
var bundled []byte

// Source produces a fresh copy of the catalog on every call.
type Source interface {
	Load(ctx context.Context) []models.Restaurant
}

// record mirrors models.Restaurant with pointers so absent fields can be told
// apart from zero values.
type record struct {
	Name          *string        `json:"name"`
	Status        models.Status  `json:"status"`
	SortingValues *sortingRecord `json:"sortingValues"`
}

type sortingRecord struct {
	BestMatch           *float64 `json:"bestMatch"`
	Newest              *float64 `json:"newest"`
	RatingAverage       *float64 `json:"ratingAverage"`
	Distance            *int     `json:"distance"`
	Popularity          *float64 `json:"popularity"`
	AverageProductPrice *int     `json:"averageProductPrice"`
	DeliveryCosts       *int     `json:"deliveryCosts"`
	MinCost             *int     `json:"minCost"`
}

func (sr *sortingRecord) values() (models.SortingValues, error) {
	missing := func(field string) (models.SortingValues, error) {
		return models.SortingValues{}, fmt.Errorf("missing sortingValues.%s", field)
	}
	switch {
	case sr.BestMatch == nil:
		return missing("bestMatch")
	case sr.Newest == nil:
		return missing("newest")
	case sr.RatingAverage == nil:
		return missing("ratingAverage")
	case sr.Distance == nil:
		return missing("distance")
	case sr.Popularity == nil:
		return missing("popularity")
	case sr.AverageProductPrice == nil:
		return missing("averageProductPrice")
	case sr.DeliveryCosts == nil:
		return missing("deliveryCosts")
	case sr.MinCost == nil:
		return missing("minCost")
	}
	return models.SortingValues{
		BestMatch:           *sr.BestMatch,
		Newest:              *sr.Newest,
		RatingAverage:       *sr.RatingAverage,
		Distance:            *sr.Distance,
		Popularity:          *sr.Popularity,
		AverageProductPrice: *sr.AverageProductPrice,
		DeliveryCosts:       *sr.DeliveryCosts,
		MinCost:             *sr.MinCost,
	}, nil
}

func (rec record) restaurant() (models.Restaurant, error) {
	if rec.Name == nil {
		return models.Restaurant{}, errors.New("missing name")
	}
	if rec.SortingValues == nil {
		return models.Restaurant{}, fmt.Errorf("%q: missing sortingValues", *rec.Name)
	}
	values, err := rec.SortingValues.values()
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("%q: %w", *rec.Name, err)
	}
	return models.Restaurant{Name: *rec.Name, Status: rec.Status, SortingValues: values}, nil
}

// Decode reads a JSON array of restaurant records. Every record needs a name
// and all eight sorting values; status may be absent or null. One bad record,
// or anything after the array, fails the whole catalog.
func Decode(r io.Reader) ([]models.Restaurant, error) {
	dec := json.NewDecoder(r)
	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if records == nil {
		return nil, errors.New("failed to decode catalog: not an array")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode catalog: unexpected data after the array")
	}

	restaurants := make([]models.Restaurant, len(records))
	for i, rec := range records {
		restaurant, err := rec.restaurant()
		if err != nil {
			return nil, fmt.Errorf("failed to decode catalog record %d: %w", i, err)
		}
		restaurants[i] = restaurant
	}
	return restaurants, nil
}

// Encode writes restaurants in the catalog format Decode reads.
func Encode(w io.Writer, restaurants []models.Restaurant) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	return enc.Encode(restaurants)
}

type Embedded struct {
	logger *zap.Logger
}

// NewEmbedded serves the catalog bundled into the binary.
func NewEmbedded(logger *zap.Logger) *Embedded {
	return &Embedded{logger: logger}
}

func (e *Embedded) Load(_ context.Context) []models.Restaurant {
	restaurants, err := Decode(bytes.NewReader(bundled))
	if err != nil {
		e.logger.Warn("bundled catalog is unreadable", zap.Error(err))
		return nil
	}
	return restaurants
}

type File struct {
	path   string
	logger *zap.Logger
}

func NewFile(path string, logger *zap.Logger) *File {
	return &File{path: path, logger: logger}
}

func (f *File) Load(_ context.Context) []models.Restaurant {
	file, err := os.Open(f.path)
	if err != nil {
		f.logger.Warn("catalog file unavailable", zap.String("path", f.path), zap.Error(err))
		return nil
	}
	defer file.Close()

	restaurants, err := Decode(file)
	if err != nil {
		f.logger.Warn("catalog file is corrupt", zap.String("path", f.path), zap.Error(err))
		return nil
	}
	return restaurants
}

// Open picks a source for location: empty means the bundled catalog,
// "s3://bucket/key" an S3 object, anything else a local file.
func Open(ctx context.Context, location, region string, logger *zap.Logger) (Source, error) {
	switch {
	case location == "":
		return NewEmbedded(logger), nil
	case strings.HasPrefix(location, s3Scheme):
		bucket, key, err := ParseS3Location(location)
		if err != nil {
			return nil, err
		}
		return NewS3FromRegion(ctx, region, bucket, key, logger)
	default:
		return NewFile(location, logger), nil
	}
}

// Package export writes an ordered restaurant listing to Parquet, either on
// local disk or through a cloud writer.
package export

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/cloudwriter"
	"github.com/chrisdamba/takeaway/internal/models"
	"github.com/chrisdamba/takeaway/internal/ordering"
)

type Row struct {
	Position            int32   `parquet:"name=position, type=INT32"`
	Name                string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Status              string  `parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8"`
	Favorite            bool    `parquet:"name=favorite, type=BOOLEAN"`
	SortOption          string  `parquet:"name=sort_option, type=BYTE_ARRAY, convertedtype=UTF8"`
	BestMatch           float64 `parquet:"name=best_match, type=DOUBLE"`
	Newest              float64 `parquet:"name=newest, type=DOUBLE"`
	RatingAverage       float64 `parquet:"name=rating_average, type=DOUBLE"`
	Distance            int64   `parquet:"name=distance, type=INT64"`
	Popularity          float64 `parquet:"name=popularity, type=DOUBLE"`
	AverageProductPrice int64   `parquet:"name=average_product_price, type=INT64"`
	DeliveryCosts       int64   `parquet:"name=delivery_costs, type=INT64"`
	MinCost             int64   `parquet:"name=min_cost, type=INT64"`
}

// BuildRows numbers restaurants in the order given, starting at 1.
func BuildRows(restaurants []models.Restaurant, option models.SortOption, favorites ordering.Favorites) []Row {
	rows := make([]Row, len(restaurants))
	for i, r := range restaurants {
		v := r.SortingValues
		rows[i] = Row{
			Position:            int32(i + 1),
			Name:                r.Name,
			Status:              r.Status.String(),
			Favorite:            favorites != nil && favorites.Contains(r.Name),
			SortOption:          option.Key(),
			BestMatch:           v.BestMatch,
			Newest:              v.Newest,
			RatingAverage:       v.RatingAverage,
			Distance:            int64(v.Distance),
			Popularity:          v.Popularity,
			AverageProductPrice: int64(v.AverageProductPrice),
			DeliveryCosts:       int64(v.DeliveryCosts),
			MinCost:             int64(v.MinCost),
		}
	}
	return rows
}

type Exporter struct {
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
	progress           io.Writer
	logger             *zap.Logger
}

type Option func(*Exporter)

// WithCloud sends objects to bucket instead of the local filesystem.
func WithCloud(factory cloudwriter.CloudWriterFactory, bucket string) Option {
	return func(e *Exporter) {
		e.cloudWriterFactory = factory
		e.cloudBucketName = bucket
	}
}

// WithProgress draws a progress bar on w.
func WithProgress(w io.Writer) Option {
	return func(e *Exporter) { e.progress = w }
}

func NewExporter(logger *zap.Logger, opts ...Option) *Exporter {
	e := &Exporter{progress: io.Discard, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) open(path string) (source.ParquetFile, error) {
	if e.cloudWriterFactory == nil {
		return local.NewLocalFileWriter(path)
	}
	cw, err := e.cloudWriterFactory.NewWriter(e.cloudBucketName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud writer: %w", err)
	}
	return NewCloudParquetFile(cw), nil
}

// Export writes rows to path and returns how many were written.
func (e *Exporter) Export(rows []Row, path string) (int, error) {
	file, err := e.open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}

	pw, err := writer.NewParquetWriter(file, new(Row), 1)
	if err != nil {
		file.Close()
		return 0, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetWriter(e.progress),
		progressbar.OptionSetDescription("exporting"),
		progressbar.OptionShowCount(),
	)

	written := 0
	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			file.Close()
			return written, fmt.Errorf("failed to write row %d: %w", row.Position, err)
		}
		written++
		bar.Add(1)
	}
	bar.Finish()

	if err := pw.WriteStop(); err != nil {
		file.Close()
		return written, fmt.Errorf("failed to finish parquet file: %w", err)
	}
	if err := file.Close(); err != nil {
		return written, fmt.Errorf("failed to close %s: %w", path, err)
	}

	e.logger.Info("listing exported", zap.String("path", path), zap.Int("rows", written))
	return written, nil
}

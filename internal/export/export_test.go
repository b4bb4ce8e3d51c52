package export

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"go.uber.org/zap/zaptest"

	"github.com/chrisdamba/takeaway/internal/cloudwriter"
	"github.com/chrisdamba/takeaway/internal/models"
)

type nameSet map[string]bool

func (s nameSet) Contains(name string) bool { return s[name] }

type memoryWriter struct {
	buf    bytes.Buffer
	closed bool
}

func (m *memoryWriter) Write(p []byte) (int, error) { return m.buf.Write(p) }
func (m *memoryWriter) Close() error               { m.closed = true; return nil }

type memoryFactory struct {
	writer *memoryWriter
	bucket string
	path   string
	err    error
}

func (f *memoryFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket, f.path = bucket, objectPath
	f.writer = &memoryWriter{}
	return f.writer, nil
}

var listing = []models.Restaurant{
	{Name: "Royal Thai", Status: models.StatusOpen, SortingValues: models.SortingValues{BestMatch: 2, Distance: 2639, MinCost: 2500}},
	{Name: "Kamado Sushi", SortingValues: models.SortingValues{BestMatch: 18, RatingAverage: 5}},
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(listing, models.SortDistance, nameSet{"Kamado Sushi": true})

	require.Len(t, rows, 2)
	assert.Equal(t, Row{
		Position:   1,
		Name:       "Royal Thai",
		Status:     "open",
		SortOption: "distance",
		BestMatch:  2,
		Distance:   2639,
		MinCost:    2500,
	}, rows[0])
	assert.Equal(t, int32(2), rows[1].Position)
	assert.Equal(t, "", rows[1].Status)
	assert.True(t, rows[1].Favorite)
}

func TestExport_Local(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.parquet")
	var progress bytes.Buffer
	e := NewExporter(zaptest.NewLogger(t), WithProgress(&progress))

	n, err := e.Export(BuildRows(listing, models.SortBestMatch, nil), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(Row), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	require.Equal(t, int64(2), pr.GetNumRows())
	got := make([]Row, 2)
	require.NoError(t, pr.Read(&got))
	assert.Equal(t, "Royal Thai", got[0].Name)
	assert.Equal(t, int64(2639), got[0].Distance)
	assert.Equal(t, "Kamado Sushi", got[1].Name)
}

func TestExport_Cloud(t *testing.T) {
	factory := &memoryFactory{}
	e := NewExporter(zaptest.NewLogger(t), WithCloud(factory, "exports"))

	n, err := e.Export(BuildRows(listing, models.SortBestMatch, nil), "listing/latest.parquet")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "exports", factory.bucket)
	assert.Equal(t, "listing/latest.parquet", factory.path)
	assert.True(t, factory.writer.closed)
	data := factory.writer.buf.Bytes()
	require.Greater(t, len(data), 8)
	assert.Equal(t, "PAR1", string(data[:4]))
	assert.Equal(t, "PAR1", string(data[len(data)-4:]))
}

func TestExport_CloudWriterError(t *testing.T) {
	e := NewExporter(zaptest.NewLogger(t), WithCloud(&memoryFactory{err: errors.New("no credentials")}, "exports"))

	_, err := e.Export(nil, "x.parquet")
	assert.ErrorContains(t, err, "no credentials")
}

func TestCloudParquetFile_Seek(t *testing.T) {
	f := NewCloudParquetFile(&memoryWriter{})
	_, err := f.Write([]byte("PAR1"))
	require.NoError(t, err)

	pos, err := f.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	_, err = f.Seek(0, 2)
	assert.Error(t, err)

	_, err = f.Read(make([]byte, 1))
	assert.Error(t, err)
}

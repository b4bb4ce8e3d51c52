package export

import (
	"errors"
	"io"

	"github.com/xitongsys/parquet-go/source"

	"github.com/chrisdamba/takeaway/internal/cloudwriter"
)

// CloudParquetFile adapts a write-only CloudWriter to source.ParquetFile.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

// Open and Create return the receiver: the object already exists for writing.
func (c *CloudParquetFile) Open(string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, errors.New("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read([]byte) (int, error) {
	return 0, errors.New("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

package cloudwriter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Writer struct {
	ctx        context.Context
	client     putObjectAPI
	bucket     string
	objectPath string
	buffer     bytes.Buffer
	closed     bool
}

type S3WriterFactory struct {
	ctx    context.Context
	client putObjectAPI
}

func NewS3WriterFactory(ctx context.Context, region string) (*S3WriterFactory, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return NewS3WriterFactoryFromClient(ctx, s3.NewFromConfig(cfg)), nil
}

func NewS3WriterFactoryFromClient(ctx context.Context, client putObjectAPI) *S3WriterFactory {
	return &S3WriterFactory{ctx: ctx, client: client}
}

func (f *S3WriterFactory) NewWriter(bucket, objectPath string) (CloudWriter, error) {
	if bucket == "" {
		return nil, fmt.Errorf("no bucket configured for %s", objectPath)
	}
	return &S3Writer{
		ctx:        f.ctx,
		client:     f.client,
		bucket:     bucket,
		objectPath: objectPath,
	}, nil
}

func (w *S3Writer) Write(data []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("write to closed object %s", w.objectPath)
	}
	return w.buffer.Write(data)
}

func (w *S3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.objectPath),
		Body:   bytes.NewReader(w.buffer.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("unable to upload file to S3: %w", err)
	}
	return nil
}

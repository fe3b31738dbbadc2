// Package objectstore provides an S3-backed implementation of the ObjectStore
// interface.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the subset of the S3 client used by this package. It exists so
// tests can substitute a fake client.
type ObjectAPI interface {
	PutObject(
		ctx context.Context,
		params *s3.PutObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
	GetObject(
		ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)
}

// S3ObjectStore implements the core.ObjectStore interface against a single
// S3 bucket. Each call is a single attempt; no retry is performed here beyond
// what the SDK does internally.
type S3ObjectStore struct {
	client ObjectAPI
	bucket string
}

// New creates an S3ObjectStore on top of an existing S3 client.
func New(client ObjectAPI, bucket string) *S3ObjectStore {
	return &S3ObjectStore{
		client: client,
		bucket: bucket,
	}
}

// NewFromConfig creates an S3ObjectStore from a resolved AWS configuration.
func NewFromConfig(awsConfig aws.Config, bucket string) *S3ObjectStore {
	return &S3ObjectStore{
		client: s3.NewFromConfig(awsConfig),
		bucket: bucket,
	}
}

// Bucket returns the bucket this store writes to.
func (s *S3ObjectStore) Bucket() string {
	return s.bucket
}

// Download retrieves an object from the bucket and reads it fully into memory.
func (s *S3ObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object '%s' from bucket '%s': %w", key, s.bucket, err)
	}

	data, readErr := io.ReadAll(output.Body)
	closeErr := output.Body.Close()

	if readErr != nil {
		return nil, fmt.Errorf("failed to read object '%s': %w", key, readErr)
	}

	if closeErr != nil {
		return data, fmt.Errorf("failed to close object '%s': %w", key, closeErr)
	}

	return data, nil
}

// Upload writes the payload to the bucket under key, tagged with contentType.
func (s *S3ObjectStore) Upload(
	ctx context.Context,
	key string,
	data []byte,
	contentType string,
) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object '%s' to bucket '%s': %w", key, s.bucket, err)
	}

	return nil
}

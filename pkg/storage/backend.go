// Package storage publishes and retrieves build artifacts (node and edge
// tables, summaries) on a local directory or an S3 bucket.
package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrNotExist is returned by Get when the key is absent.
var ErrNotExist = errors.New("artifact does not exist")

// BlobStore defines the interface for artifact backends.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// Open selects a backend for target: "s3://bucket/prefix" opens an S3Store
// using the default AWS credential chain, anything else is a local directory.
func Open(ctx context.Context, target string) (BlobStore, error) {
	if bucket, prefix, ok := ParseS3URL(target); ok {
		return NewS3StoreFromEnv(ctx, bucket, prefix)
	}
	return NewLocalStore(target), nil
}

// ParseS3URL splits "s3://bucket/some/prefix" into bucket and prefix.
func ParseS3URL(target string) (bucket, prefix string, ok bool) {
	if !strings.HasPrefix(target, "s3://") {
		return "", "", false
	}
	rest := strings.TrimPrefix(target, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if parts[0] == "" {
		return "", "", false
	}
	if len(parts) > 1 {
		prefix = strings.Trim(parts[1], "/")
	}
	return parts[0], prefix, true
}

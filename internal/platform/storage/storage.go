// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package storage uploads binary assets (wallpaper images) to S3-compatible
// object storage and returns their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/taibuivan/mangashelf/pkg/slug"
	"github.com/taibuivan/mangashelf/pkg/uuid"
)

// ObjectStore is the contract the wallpaper service depends on.
type ObjectStore interface {
	// Put uploads size bytes from body under key and returns the public URL.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error
}

// Options configures the MinIO client.
type Options struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// PublicURL is the base clients use to fetch objects (a CDN or the bucket
	// website). When empty, URLs point at the endpoint directly.
	PublicURL string
}

// MinIO is an [ObjectStore] backed by minio-go.
type MinIO struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIO connects to the endpoint and creates the bucket when missing.
func NewMinIO(ctx context.Context, opts Options) (*MinIO, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to check bucket %s: %w", opts.Bucket, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: failed to create bucket %s: %w", opts.Bucket, err)
		}
	}

	base := opts.PublicURL
	if base == "" {
		base = client.EndpointURL().String() + "/" + opts.Bucket
	}

	return &MinIO{client: client, bucket: opts.Bucket, publicURL: base}, nil
}

func (s *MinIO) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload %s: %w", key, err)
	}

	return PublicURL(s.publicURL, key), nil
}

func (s *MinIO) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: failed to delete %s: %w", key, err)
	}
	return nil
}

// # Naming

// ObjectKey builds a collision-free key under prefix that keeps a readable
// form of the original file name: "wallpapers/<id>/<uuid>-<slug>.<ext>".
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := slug.FromOr(strings.TrimSuffix(filename, path.Ext(filename)), "image")

	return path.Join(prefix, uuid.New()+"-"+base+ext)
}

// PublicURL joins a base URL and an object key with exactly one slash.
func PublicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

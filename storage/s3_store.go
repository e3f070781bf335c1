// storage/s3_store.go
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/postcache/cache"
	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
)

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type ClientOptions struct {
	Region       string
	Endpoint     string
	UsePathStyle bool
}

// NewS3Client loads the default AWS credential chain. A custom endpoint with
// path-style addressing targets Minio and other S3-compatible servers.
func NewS3Client(ctx context.Context, opts ClientOptions) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}

// S3Store keeps one JSON object per key under <prefix>/<namespace>/<key>.json.
// Objects carry their own insertion time and TTL; expiry is checked on read.
type S3Store[K comparable, V any] struct {
	client    S3API
	bucket    string
	prefix    string
	namespace string
	codec     cache.Codec[V]
	now       func() time.Time
}

func NewS3Store[K comparable, V any](client S3API, bucket, prefix, namespace string, codec cache.Codec[V]) *S3Store[K, V] {
	if codec == nil {
		codec = cache.JSONCodec[V]{}
	}
	return &S3Store[K, V]{
		client:    client,
		bucket:    bucket,
		prefix:    prefix,
		namespace: namespace,
		codec:     codec,
		now:       time.Now,
	}
}

func (s *S3Store[K, V]) objectKey(key K) string {
	return path.Join(s.prefix, s.namespace, fmt.Sprintf("%v.json", key))
}

func (s *S3Store[K, V]) Get(ctx context.Context, key K) (cache.Entry[V], bool, error) {
	objectKey := s.objectKey(key)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if isNotFound(err) {
		return cache.Entry[V]{}, false, nil
	} else if err != nil {
		return cache.Entry[V]{}, false, fmt.Errorf("%w: failed to get s3://%s/%s: %w", postcache_errors.ErrCacheUnavailable, s.bucket, objectKey, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return cache.Entry[V]{}, false, fmt.Errorf("%w: failed to read s3://%s/%s: %w", postcache_errors.ErrCacheUnavailable, s.bucket, objectKey, err)
	}

	entry, err := s.codec.Decode(data)
	if err != nil {
		return cache.Entry[V]{}, false, fmt.Errorf("%w: %w", postcache_errors.ErrCacheUnavailable, err)
	}
	if !entry.Valid(s.now()) {
		return cache.Entry[V]{}, false, nil
	}

	logger.Debug("Entry retrieved from S3", zap.String("bucket", s.bucket), zap.String("key", objectKey))
	return entry, true, nil
}

func (s *S3Store[K, V]) Put(ctx context.Context, key K, value V, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	objectKey := s.objectKey(key)
	entry := cache.NewEntry(value, ttl, s.now())
	data, err := s.codec.Encode(entry)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", objectKey, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Expires:     aws.Time(entry.ExpiresAt()),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to put s3://%s/%s: %w", postcache_errors.ErrCacheUnavailable, s.bucket, objectKey, err)
	}

	logger.Debug("Entry stored in S3", zap.String("bucket", s.bucket), zap.String("key", objectKey))
	return nil
}

func (s *S3Store[K, V]) Invalidate(ctx context.Context, key K) error {
	objectKey := s.objectKey(key)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("%w: failed to delete s3://%s/%s: %w", postcache_errors.ErrCacheUnavailable, s.bucket, objectKey, err)
	}
	return nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

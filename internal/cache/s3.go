package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client the snapshot store uses
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// snapshotVersion is bumped when the snapshot layout changes
const snapshotVersion = 1

type snapshot struct {
	Version int                 `json:"version"`
	Entries map[string][]string `json:"entries"`
}

// S3 keeps the cache in memory and persists it as a single JSON object.
// Load reads the object at startup and Save writes it back when entries
// were added, so several machines can share one warm cache.
type S3 struct {
	*Memory
	client S3API
	bucket string
	key    string
	saveMu sync.Mutex
}

// NewS3 creates a snapshot store for s3://bucket/key
func NewS3(client S3API, bucket, key string) (*S3, error) {
	if bucket == "" || key == "" {
		return nil, errors.New("s3 cache: bucket and key are required")
	}
	return &S3{
		Memory: NewMemory(),
		client: client,
		bucket: bucket,
		key:    key,
	}, nil
}

// Load merges the remote snapshot into memory. A missing object leaves the
// cache empty.
func (s *S3) Load(ctx context.Context) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			slog.Debug("No cache snapshot yet", "bucket", s.bucket, "key", s.key)
			return nil
		}
		return fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return fmt.Errorf("read s3://%s/%s: %w", s.bucket, s.key, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode cache snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		slog.Warn("Ignoring cache snapshot with unknown version", "version", snap.Version)
		return nil
	}
	if err := s.restore(snap.Entries); err != nil {
		return fmt.Errorf("restore cache snapshot: %w", err)
	}

	slog.Debug("Loaded cache snapshot", "bucket", s.bucket, "key", s.key, "entries", len(snap.Entries))
	return nil
}

// Save uploads the snapshot if anything changed since the last save
func (s *S3) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	entries, version, changed := s.snapshot()
	if !changed {
		return nil
	}

	data, err := json.Marshal(snapshot{Version: snapshotVersion, Entries: entries})
	if err != nil {
		return fmt.Errorf("encode cache snapshot: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, s.key, err)
	}

	s.markSaved(version)
	return nil
}

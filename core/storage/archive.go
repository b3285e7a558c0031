package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Archive keeps raw inbound notifications so they can be replayed later.
// Objects are laid out as <prefix>/YYYY/MM/DD/<uuid>.json.
type Archive struct {
	client Client
	bucket string
	prefix string

	now   func() time.Time
	newID func() string
}

// NewArchive creates an archive writing into bucket under prefix.
func NewArchive(client Client, bucket, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Bucket returns the archive bucket name.
func (a *Archive) Bucket() string {
	return a.bucket
}

// BucketExists reports whether the archive bucket exists.
func (a *Archive) BucketExists(ctx context.Context) (bool, error) {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return false, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	return exists, nil
}

// EnsureBucket creates the archive bucket when it does not exist yet.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.BucketExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Store writes one raw notification and returns its object key.
func (a *Archive) Store(ctx context.Context, payload []byte) (string, error) {
	key := path.Join(a.prefix, a.now().UTC().Format("2006/01/02"), a.newID()+".json")

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to archive notification: %w", err)
	}
	return key, nil
}

// List returns the archived object keys below the given sub-prefix (e.g. "2026/10"), sorted.
func (a *Archive) List(ctx context.Context, subPrefix string) ([]string, error) {
	prefix := path.Join(a.prefix, strings.Trim(subPrefix, "/"))
	if prefix != "" {
		prefix += "/"
	}

	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Load reads one archived notification.
func (a *Archive) Load(ctx context.Context, key string) ([]byte, error) {
	reader, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

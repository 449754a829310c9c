package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/faqdesk/internal/domain/faq"
	"github.com/yanqian/faqdesk/internal/infra/jsonfile"
)

const snapshotTimeLayout = "20060102T150405Z"

// Options configures the S3-compatible snapshot bucket.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Prefix    string
}

// S3Archiver uploads FAQ snapshots to an S3-compatible bucket (R2, MinIO, AWS).
type S3Archiver struct {
	client *minio.Client
	bucket string
	prefix string
	logger *slog.Logger
	now    func() time.Time

	bucketMu    sync.Mutex
	bucketReady bool
}

// NewS3Archiver constructs the archiver; the bucket is created on first upload.
func NewS3Archiver(opts Options, logger *slog.Logger) (*S3Archiver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}
	client, err := minio.New(sanitizeEndpoint(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       strings.HasPrefix(strings.ToLower(strings.TrimSpace(opts.Endpoint)), "https"),
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init archive client: %w", err)
	}
	return &S3Archiver{
		client: client,
		bucket: opts.Bucket,
		prefix: strings.Trim(opts.Prefix, "/"),
		logger: logger.With("component", "archive.s3"),
		now:    time.Now,
	}, nil
}

// ArchiveSnapshot implements faq.Archiver.
func (a *S3Archiver) ArchiveSnapshot(ctx context.Context, data faq.Data) error {
	if err := a.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	payload, err := jsonfile.Encode(data)
	if err != nil {
		return err
	}
	key := a.objectKey(a.now())
	info, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType:      "application/json",
		DisableMultipart: true,
	})
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	a.logger.Info("faq snapshot archived", "key", key, "size", info.Size, "etag", info.ETag)
	return nil
}

func (a *S3Archiver) ensureBucket(ctx context.Context) error {
	a.bucketMu.Lock()
	defer a.bucketMu.Unlock()
	if a.bucketReady {
		return nil
	}
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil || !exists {
		err = a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
		if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
			return err
		}
	}
	a.bucketReady = true
	return nil
}

func (a *S3Archiver) objectKey(ts time.Time) string {
	name := "faq-" + ts.UTC().Format(snapshotTimeLayout) + ".json"
	if a.prefix == "" {
		return name
	}
	return path.Join(a.prefix, name)
}

// sanitizeEndpoint strips scheme and path, minio.New wants host[:port].
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

var _ faq.Archiver = (*S3Archiver)(nil)

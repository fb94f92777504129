package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vbonduro/tastetrails/internal/archive"
)

// API is the subset of the S3 client used by the archive.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type S3Archive struct {
	client API
	bucket string
	prefix string
}

// NewS3Archive builds an archive from the default AWS credential chain.
func NewS3Archive(ctx context.Context, bucket, prefix, region string) (*S3Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func NewWithClient(client API, bucket, prefix string) *S3Archive {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Archive{client: client, bucket: bucket, prefix: prefix}
}

func (a *S3Archive) Save(ctx context.Context, prefix, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read snapshot: %w", err)
	}

	key := fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixNano(), archive.ExtForContentType(contentType))
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(a.prefix + key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return key, nil
}

func (a *S3Archive) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	objectKey, err := a.objectKey(key)
	if err != nil {
		return nil, "", err
	}

	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, "", archive.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get object: %w", err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = archive.ContentTypeForKey(key)
	}
	return out.Body, contentType, nil
}

func (a *S3Archive) Delete(ctx context.Context, key string) error {
	objectKey, err := a.objectKey(key)
	if err != nil {
		return err
	}

	if _, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// List returns the snapshots under the configured prefix, newest first.
func (a *S3Archive) List(ctx context.Context) ([]archive.Entry, error) {
	entries := []archive.Entry{}
	p := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(a.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), a.prefix)
			if key == "" || strings.Contains(key, "/") {
				continue
			}
			entries = append(entries, archive.Entry{
				Key:         key,
				Size:        aws.ToInt64(obj.Size),
				ContentType: archive.ContentTypeForKey(key),
				CreatedAt:   aws.ToTime(obj.LastModified).UTC(),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// objectKey maps an archive key to its object key, rejecting keys that would
// escape the configured prefix.
func (a *S3Archive) objectKey(key string) (string, error) {
	if key == "" || strings.Contains(key, "/") || path.Clean(key) != key || key == ".." {
		return "", archive.ErrInvalidKey
	}
	return a.prefix + key, nil
}

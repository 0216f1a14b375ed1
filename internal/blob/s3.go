package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/target/recruit-board/internal/core"
)

const defaultRegion = "us-east-1"

// S3Store implements core.BlobStore on any S3-compatible service.
type S3Store struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
}

var _ core.BlobStore = (*S3Store)(nil)

// NewS3Store creates an S3 client with path-style addressing so MinIO
// endpoints work without virtual-host DNS.
func NewS3Store(cfg Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required for s3 storage")
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsConfig := &aws.Config{
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(!cfg.UseSSL),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(endpointURL(cfg.Endpoint, cfg.UseSSL))
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	return &S3Store{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
	}, nil
}

func endpointURL(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return unavailable("head bucket", err)
	}

	_, err = s.client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou {
			return nil
		}
		return unavailable("create bucket", err)
	}
	return nil
}

// Put uploads content under a new key.
func (s *S3Store) Put(ctx context.Context, content io.Reader, _ int64, contentType string) (string, error) {
	if err := checkContentType(contentType); err != nil {
		return "", err
	}

	key := NewKey()
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", unavailable("upload object", err)
	}
	return key, nil
}

// Open streams an object's content.
func (s *S3Store) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if !ValidKey(id) {
		return nil, ErrObjectNotFound
	}

	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrObjectNotFound
		}
		return nil, unavailable("get object", err)
	}
	return out.Body, nil
}

// Delete removes an object. S3 treats deleting a missing key as success, and
// ids that NewKey could not have produced are never sent to the bucket.
func (s *S3Store) Delete(ctx context.Context, id string) error {
	if !ValidKey(id) {
		return nil
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return unavailable("delete object", err)
	}
	return nil
}

// Exists reports whether an object is present.
func (s *S3Store) Exists(ctx context.Context, id string) (bool, error) {
	if !ValidKey(id) {
		return false, nil
	}

	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, unavailable("head object", err)
	}
	return true, nil
}

// Presign returns a GET URL valid for ttl.
func (s *S3Store) Presign(ctx context.Context, id string, ttl time.Duration) (string, error) {
	ttl, err := NormalizeTTL(ttl)
	if err != nil {
		return "", err
	}

	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	req.SetContext(ctx)

	url, err := req.Presign(ttl)
	if err != nil {
		return "", unavailable("presign object", err)
	}
	return url, nil
}

// List returns every key in the bucket.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)},
		func(page *s3.ListObjectsV2Output, _ bool) bool {
			for _, obj := range page.Contents {
				keys = append(keys, aws.StringValue(obj.Key))
			}
			return true
		})
	if err != nil {
		return nil, unavailable("list objects", err)
	}
	return keys, nil
}

// Health checks that the bucket is reachable.
func (s *S3Store) Health(ctx context.Context) error {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return unavailable("head bucket", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) && reqErr.StatusCode() == http.StatusNotFound {
		return true
	}
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
			return true
		}
	}
	return false
}

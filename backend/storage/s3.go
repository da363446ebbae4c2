package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

type putDeleter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Uploader writes objects with PutObject. There is no retry and no
// read-back; the URL is derived from bucket, region and key.
type S3Uploader struct {
	client putDeleter
	bucket string
	region string
	now    func() time.Time
}

// NewS3Uploader uses static credentials when both keys are set and the
// default AWS credential chain otherwise.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newS3Uploader(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Region, time.Now), nil
}

func newS3Uploader(client putDeleter, bucket, region string, now func() time.Time) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, region: region, now: now}
}

// ObjectKey is <category>/<unix millis>-<base filename>.
func ObjectKey(category, filename string, at time.Time) string {
	return fmt.Sprintf("%s/%d-%s", category, at.UnixMilli(), filepath.Base(filename))
}

func (u *S3Uploader) baseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", u.bucket, u.region)
}

func (u *S3Uploader) Upload(ctx context.Context, category, filename, contentType string, body []byte) (string, error) {
	key := ObjectKey(category, filename, u.now())

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.baseURL() + key, nil
}

// Delete removes an object previously returned by Upload. URLs that do not
// belong to this bucket are ignored.
func (u *S3Uploader) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, u.baseURL())
	if !ok || key == "" {
		return nil
	}

	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

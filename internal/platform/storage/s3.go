// Package storage provides presigned-URL access to S3-compatible object
// storage. Clients upload avatar bytes directly to the bucket; the backend
// only ever mints URLs.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/contactvault/backend/internal/apperrors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presigner mints time-limited URLs for direct object access.
type Presigner interface {
	// PresignPut returns a URL that allows a single PUT of the object with
	// the given content type, plus the public URL of the object once stored.
	PresignPut(ctx context.Context, key string, contentType string, expires time.Duration) (uploadURL string, objectURL string, err error)
}

// S3Config carries the settings needed to talk to the bucket.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string // empty for AWS-hosted buckets
	AccessKeyID     string
	SecretAccessKey string
}

type s3Presigner struct {
	cfg     S3Config
	presign *s3.PresignClient
}

// NewS3Presigner builds a Presigner against the configured bucket. A non-empty
// Endpoint switches to an S3-compatible service such as MinIO.
func NewS3Presigner(ctx context.Context, cfg S3Config) (Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Presigner{cfg: cfg, presign: s3.NewPresignClient(client)}, nil
}

func (p *s3Presigner) PresignPut(ctx context.Context, key string, contentType string, expires time.Duration) (string, string, error) {
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", "", fmt.Errorf("%w: failed to presign PUT for %s: %v", apperrors.ErrExternalService, key, err)
	}

	return req.URL, p.objectURL(key), nil
}

func (p *s3Presigner) objectURL(key string) string {
	if p.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(p.cfg.Endpoint, "/"), p.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.cfg.Bucket, p.cfg.Region, key)
}

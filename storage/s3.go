// Package storage uploads project and blog images to S3 and returns the
// URL to store in an imageUrl field.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const keyPrefix = "uploads/"

var ErrUnsupportedType = errors.New("unsupported image type")

// imageExtensions lists the accepted content types.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// PutObjectAPI is the slice of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	client    PutObjectAPI
	bucket    string
	publicURL string
}

// New builds an uploader from the default AWS credential chain.
func New(ctx context.Context, bucket, publicURL string) (*Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region)
	}
	return NewWithClient(s3.NewFromConfig(cfg), bucket, publicURL), nil
}

func NewWithClient(client PutObjectAPI, bucket, publicURL string) *Uploader {
	return &Uploader{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Allowed reports whether contentType is an accepted image type.
func Allowed(contentType string) bool {
	_, ok := imageExtensions[contentType]
	return ok
}

// Upload stores body under a fresh key and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, contentType string, body io.Reader, size int64) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	key := keyPrefix + uuid.NewString() + ext

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", u.bucket, key, err)
	}
	return u.publicURL + "/" + key, nil
}

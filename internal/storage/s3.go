package storage

import (
	"bytes"
	"context"
	"ironai/workout-app/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"
)

// s3API is the part of *s3.Client the archive needs.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Archive implements DraftArchive on an S3-compatible bucket.
type s3Archive struct {
	client     s3API
	bucketName string
}

// NewS3Archive creates the S3 backed archive, or a no-op archive when no
// bucket is configured.
func NewS3Archive(ctx context.Context, cfg config.S3Config) (DraftArchive, error) {
	if cfg.BucketName == "" {
		log.Info("S3 bucket not configured, AI drafts will not be archived")
		return NewNoopArchive(), nil
	}

	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// Path-style addressing is required by most S3-compatible services (like MinIO)
	client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	log.WithFields(log.Fields{
		"endpoint": cfg.Endpoint,
		"bucket":   cfg.BucketName,
	}).Info("S3 draft archive initialized")

	return newS3Archive(client, cfg.BucketName), nil
}

func newS3Archive(client s3API, bucketName string) *s3Archive {
	return &s3Archive{client: client, bucketName: bucketName}
}

// PutObject uploads body to the bucket.
func (s *s3Archive) PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(objectKey),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
		Body:          bytes.NewReader(body),
	})
	if err != nil {
		log.WithError(err).Errorf("failed to put object '%s' into bucket '%s'", objectKey, s.bucketName)
		return err
	}
	return nil
}

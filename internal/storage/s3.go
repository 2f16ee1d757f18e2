package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// PutObjectAPI is the part of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads objects to a bucket under a key prefix.
type S3 struct {
	client     PutObjectAPI
	bucketName string
	prefix     string
}

// NewS3 creates an uploader using the default AWS credential chain.
func NewS3(ctx context.Context, bucketName, prefix string) (*S3, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3WithClient(s3.NewFromConfig(cfg), bucketName, prefix), nil
}

// NewS3WithClient creates an uploader over an existing client.
func NewS3WithClient(client PutObjectAPI, bucketName, prefix string) *S3 {
	return &S3{client: client, bucketName: bucketName, prefix: prefix}
}

// Save uploads obj and returns its s3:// location.
func (s *S3) Save(ctx context.Context, obj Object) (string, error) {
	name, err := cleanName(obj.Name)
	if err != nil {
		return "", err
	}
	key := ObjectKey(s.prefix, name)

	input := &s3.PutObjectInput{
		Bucket:   aws.String(s.bucketName),
		Key:      aws.String(key),
		Body:     bytes.NewReader(obj.Data),
		Metadata: obj.Metadata,
	}
	if obj.ContentType != "" {
		input.ContentType = aws.String(obj.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Error().Err(err).Str("key", key).Msg("PutObject failed")
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Info().Str("bucket", s.bucketName).Str("key", key).Int("size", len(obj.Data)).Msg("uploaded worksheet to S3")
	return fmt.Sprintf("s3://%s/%s", s.bucketName, key), nil
}

package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const DefaultRegion = "us-east-1"

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func NewS3Sink(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// NewS3SinkFromEnv builds the client from the default AWS credential chain.
func NewS3SinkFromEnv(ctx context.Context, region, bucket, prefix string) (*S3Sink, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithDefaultRegion(DefaultRegion)}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewS3Sink(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func (s *S3Sink) Key(doc *domain.GeneratedDocument) string {
	return path.Join(s.prefix, doc.ID.String(), doc.Filename)
}

func (s *S3Sink) Put(ctx context.Context, doc *domain.GeneratedDocument) (string, error) {
	key := s.Key(doc)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(doc.Content),
		ContentLength: aws.Int64(int64(len(doc.Content))),
		ContentType:   aws.String(doc.ContentType()),
		Metadata: map[string]string{
			"report-id":    doc.ID.String(),
			"generated-at": doc.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to s3://%s: %w", doc.Filename, s.bucket, err)
	}

	location := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	zerolog.Ctx(ctx).Info().
		Str("report_id", doc.ID.String()).
		Str("location", location).
		Msg("report archived")
	return location, nil
}

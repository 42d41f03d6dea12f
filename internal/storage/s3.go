package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/quillworks/quill/internal/model"
)

type S3Store struct { // implements Store
	client *s3.Client

	endpoint string
	bucket   string
}

func NewS3Store(accessKeyID, accessKeySecret, endpoint, bucket string) *S3Store {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		storageLogger.Fatal().Err(err).Msg("Error initializing S3 client")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &S3Store{
		client:   client,
		endpoint: strings.TrimRight(endpoint, "/"),
		bucket:   bucket,
	}
}

func (s *S3Store) Upload(ctx context.Context, name string, data []byte) (*model.Asset, error) {
	asset := &model.Asset{
		ID:       model.AssetID(uuid.New().String()),
		Name:     name,
		MimeType: mimetype.Detect(data).String(),
		Size:     int64(len(data)),
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(string(asset.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(asset.MimeType),
	})
	if err != nil {
		return nil, model.WrapError(model.KindTransport, "uploading asset to s3", err)
	}

	storageLogger.Debug().
		Str("file_id", string(asset.ID)).
		Str("bucket", s.bucket).
		Msg("Asset uploaded")

	return asset, nil
}

func (s *S3Store) Delete(ctx context.Context, id model.AssetID) error {
	// S3 DeleteObject succeeds for missing keys, which is exactly the
	// idempotency the cleanup path needs.
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(string(id)),
	})
	if err != nil {
		return model.WrapError(model.KindTransport, "deleting asset from s3", err)
	}
	return nil
}

func (s *S3Store) PreviewURL(id model.AssetID) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, id)
}

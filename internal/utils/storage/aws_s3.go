package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	ErrContentTypeNotAllowed = errors.New("content type not allowed")
	ErrStorageNotConfigured  = errors.New("object storage is not configured")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, body []byte, contentType string, folder string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	return newAwsS3(context.Background(),
		utils.GetConfig("AWS_S3_BUCKET"),
		utils.GetConfig("AWS_S3_REGION"),
		utils.GetConfig("AWS_ACCESS_KEY"),
		utils.GetConfig("AWS_SECRET_KEY"),
	)
}

// newAwsS3 falls back to a client-less store when the bucket is unset or the
// aws config cannot be loaded; uploads then fail with ErrStorageNotConfigured.
func newAwsS3(ctx context.Context, bucket, region, accessKey, secretKey string) *awsS3 {
	if bucket == "" {
		return &awsS3{bucket: bucket, region: region}
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		logging.Error().Err(err).
			Str("bucket", bucket).
			Str("region", region).
			Msg("failed to load aws config, object storage disabled")
		return &awsS3{bucket: "", region: region}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, body []byte, contentType string, folder string, allowed ...string) (string, error) {
	if a.client == nil {
		return "", ErrStorageNotConfigured
	}
	if len(allowed) > 0 && !contains(allowed, contentType) {
		return "", ErrContentTypeNotAllowed
	}

	objectKey := fmt.Sprintf("%s/%s", folder, fileName)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	if a.client == nil {
		return ErrStorageNotConfigured
	}
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(u.Host, a.bucket+".") {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

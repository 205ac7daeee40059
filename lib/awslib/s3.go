package awslib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Client struct {
	client *s3.Client
}

func NewS3Client(cfg aws.Config) S3Client {
	return S3Client{client: s3.NewFromConfig(cfg)}
}

// ObjectKey joins [prefix] and the base name of [localPath].
func ObjectKey(prefix, localPath string) string {
	objectKey := filepath.Base(localPath)
	if prefix != "" {
		objectKey = fmt.Sprintf("%s/%s", prefix, objectKey)
	}

	return objectKey
}

// UploadLocalFileToS3 uploads [localPath] under [prefix] and returns the S3 URI.
func (s S3Client) UploadLocalFileToS3(ctx context.Context, bucket, prefix, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	objectKey := ObjectKey(prefix, localPath)
	if _, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
		Body:   file,
	}); err != nil {
		return "", fmt.Errorf("failed to upload file to s3: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, objectKey), nil
}

package gcslib

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSClient struct {
	client *storage.Client
}

// NewGCSClient uses [pathToCredentials] when set, otherwise application default credentials.
func NewGCSClient(ctx context.Context, pathToCredentials string) (GCSClient, error) {
	var opts []option.ClientOption
	if pathToCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(pathToCredentials))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return GCSClient{}, fmt.Errorf("failed to create gcs client: %w", err)
	}

	return GCSClient{client: client}, nil
}

func (g GCSClient) Close() error {
	return g.client.Close()
}

func ObjectKey(prefix, localPath string) string {
	objectKey := filepath.Base(localPath)
	if prefix != "" {
		objectKey = fmt.Sprintf("%s/%s", prefix, objectKey)
	}

	return objectKey
}

// UploadLocalFileToGCS uploads [localPath] under [prefix] and returns the gs:// URI.
func (g GCSClient) UploadLocalFileToGCS(ctx context.Context, bucket, prefix, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	objectKey := ObjectKey(prefix, localPath)
	writer := g.client.Bucket(bucket).Object(objectKey).NewWriter(ctx)
	if _, err = io.Copy(writer, file); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write file to gcs: %w", err)
	}

	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close gcs writer: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", bucket, objectKey), nil
}

package gcs

import (
	"context"
	"fmt"

	"github.com/artie-labs/credit-approval/lib/config"
	"github.com/artie-labs/credit-approval/lib/gcslib"
	"github.com/artie-labs/credit-approval/models/artifact"
)

type Store struct {
	settings  config.GCSSettings
	gcsClient gcslib.GCSClient
}

func (s Store) Label() string {
	return "gcs"
}

// ObjectPrefix mirrors the S3 layout:
// > folderName/credit_approval/date=YYYY-MM-DD/runID
func (s Store) ObjectPrefix(envelope artifact.Envelope) string {
	return envelope.ObjectPrefix(s.settings.FolderName)
}

func (s Store) Upload(ctx context.Context, envelope artifact.Envelope, localPath string) (string, error) {
	return s.gcsClient.UploadLocalFileToGCS(ctx, s.settings.Bucket, s.ObjectPrefix(envelope), localPath)
}

func (s Store) Close() error {
	return s.gcsClient.Close()
}

func LoadStore(ctx context.Context, settings *config.GCSSettings) (*Store, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate settings: %w", err)
	}

	gcsClient, err := gcslib.NewGCSClient(ctx, settings.PathToCredentials)
	if err != nil {
		return nil, err
	}

	return &Store{
		settings:  *settings,
		gcsClient: gcsClient,
	}, nil
}

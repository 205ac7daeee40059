package s3

import (
	"context"
	"fmt"

	"github.com/artie-labs/credit-approval/lib/awslib"
	"github.com/artie-labs/credit-approval/lib/config"
	"github.com/artie-labs/credit-approval/models/artifact"
)

type Store struct {
	settings config.S3Settings
	s3Client awslib.S3Client
}

func (s Store) Label() string {
	return "s3"
}

func (s Store) Validate() error {
	if err := s.settings.Validate(); err != nil {
		return fmt.Errorf("failed to validate settings: %w", err)
	}

	return nil
}

// ObjectPrefix - this will generate the exact prefix that we need to write into S3.
// It will look like something like this:
// > folderName/credit_approval/date=YYYY-MM-DD/runID
func (s Store) ObjectPrefix(envelope artifact.Envelope) string {
	return envelope.ObjectPrefix(s.settings.FolderName)
}

func (s Store) Upload(ctx context.Context, envelope artifact.Envelope, localPath string) (string, error) {
	return s.s3Client.UploadLocalFileToS3(ctx, s.settings.Bucket, s.ObjectPrefix(envelope), localPath)
}

func LoadStore(ctx context.Context, settings *config.S3Settings) (*Store, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate settings: %w", err)
	}

	awsConfig, err := awslib.LoadConfig(ctx, settings.AwsRegion, settings.AwsAccessKeyID, settings.AwsSecretAccessKey)
	if err != nil {
		return nil, err
	}

	return &Store{
		settings: *settings,
		s3Client: awslib.NewS3Client(awsConfig),
	}, nil
}

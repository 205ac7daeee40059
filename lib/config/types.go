package config

import (
	"fmt"

	"github.com/artie-labs/credit-approval/lib/config/constants"
)

type Sentry struct {
	DSN string `yaml:"dsn"`
}

type Reporting struct {
	Sentry *Sentry `yaml:"sentry"`
}

type Logging struct {
	// Directory - where the timestamped log file is written. Defaults to `logs`.
	Directory string `yaml:"directory"`
	// DisableFile - if true, logs are only written to stderr.
	DisableFile bool `yaml:"disableFile"`
}

type Ingestion struct {
	InternalDataPath string `yaml:"internalDataPath"`
	ExternalDataPath string `yaml:"externalDataPath"`
	InterimDataPath  string `yaml:"interimDataPath"`
	MergeKey         string `yaml:"mergeKey"`
	TargetColumn     string `yaml:"targetColumn"`

	// Optional parameters
	// InternalSheet and ExternalSheet select a worksheet by name, the first sheet is used when empty.
	InternalSheet string `yaml:"internalSheet,omitempty"`
	ExternalSheet string `yaml:"externalSheet,omitempty"`
	// JoinSuffixes are applied to non-key columns that exist in both datasets.
	JoinSuffixes *JoinSuffixes `yaml:"joinSuffixes,omitempty"`
	// ParquetDataPath - if set, a parquet copy of the merged table is written here after the csv.
	ParquetDataPath string `yaml:"parquetDataPath,omitempty"`
}

type JoinSuffixes struct {
	Internal string `yaml:"internal"`
	External string `yaml:"external"`
}

type S3Settings struct {
	FolderName         string `yaml:"folderName"`
	Bucket             string `yaml:"bucket"`
	AwsAccessKeyID     string `yaml:"awsAccessKeyID"`
	AwsSecretAccessKey string `yaml:"awsSecretAccessKey"`
	AwsRegion          string `yaml:"awsRegion"`
}

type GCSSettings struct {
	FolderName string `yaml:"folderName"`
	Bucket     string `yaml:"bucket"`
	// PathToCredentials is _optional_ if you have GOOGLE_APPLICATION_CREDENTIALS set as an env var
	PathToCredentials string `yaml:"pathToCredentials"`
	ProjectID         string `yaml:"projectID"`
}

type SQSSettings struct {
	QueueURL           string `yaml:"queueURL"`
	AwsAccessKeyID     string `yaml:"awsAccessKeyID"`
	AwsSecretAccessKey string `yaml:"awsSecretAccessKey"`
	AwsRegion          string `yaml:"awsRegion"`
}

type Kafka struct {
	// Comma-separated Kafka servers to port.
	// e.g. host1:port1,host2:port2,...
	BootstrapServer string `yaml:"bootstrapServer"`
	Topic           string `yaml:"topic"`

	// Optional parameters
	Username        string `yaml:"username,omitempty"`
	Password        string `yaml:"password,omitempty"`
	DisableTLS      bool   `yaml:"disableTLS,omitempty"`
	EnableAWSMSKIAM bool   `yaml:"enableAWSMKSIAM,omitempty"`
}

func (k *Kafka) String() string {
	// Don't log credentials.
	return fmt.Sprintf("bootstrapServer=%s, topic=%s, user_set=%v, pass_set=%v",
		k.BootstrapServer, k.Topic, k.Username != "", k.Password != "")
}

type WebhookSettings struct {
	Enabled    bool           `yaml:"enabled"`
	URL        string         `yaml:"url"`
	APIKey     string         `yaml:"apiKey"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

type Config struct {
	Ingestion Ingestion `yaml:"ingestion"`
	// Stages - settings for the stages that run after ingestion. They are loaded and carried, not executed.
	Stages Stages `yaml:"stages"`

	// Where the interim file is copied to after it is written.
	S3  *S3Settings  `yaml:"s3,omitempty"`
	GCS *GCSSettings `yaml:"gcs,omitempty"`

	// Where the produced artifact is announced.
	SQS             *SQSSettings     `yaml:"sqs,omitempty"`
	Kafka           *Kafka           `yaml:"kafka,omitempty"`
	WebhookSettings *WebhookSettings `yaml:"webhookSettings,omitempty"`

	Logging   Logging   `yaml:"logging"`
	Reporting Reporting `yaml:"reporting"`
	Telemetry struct {
		Metrics struct {
			Provider constants.ExporterKind `yaml:"provider"`
			Settings map[string]any         `yaml:"settings,omitempty"`
		}
	}
}

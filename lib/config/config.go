package config

import (
	"cmp"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artie-labs/credit-approval/lib/config/constants"
	"github.com/artie-labs/credit-approval/lib/stringutil"
)

func readFileToConfig(pathToConfig string) (*Config, error) {
	bytes, err := os.ReadFile(pathToConfig)
	if err != nil {
		return nil, err
	}

	var config Config
	if err = yaml.Unmarshal(bytes, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

// Default returns a config that reads from and writes to the default data layout.
func Default() Config {
	var config Config
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	c.Ingestion.InternalDataPath = cmp.Or(c.Ingestion.InternalDataPath, constants.DefaultInternalDataPath)
	c.Ingestion.ExternalDataPath = cmp.Or(c.Ingestion.ExternalDataPath, constants.DefaultExternalDataPath)
	c.Ingestion.InterimDataPath = cmp.Or(c.Ingestion.InterimDataPath, constants.DefaultInterimDataPath)
	c.Ingestion.MergeKey = cmp.Or(c.Ingestion.MergeKey, constants.DefaultMergeKey)
	c.Ingestion.TargetColumn = cmp.Or(c.Ingestion.TargetColumn, constants.DefaultTargetColumn)
	c.Logging.Directory = cmp.Or(c.Logging.Directory, constants.DefaultLogDirectory)
}

func (i Ingestion) Validate() error {
	if stringutil.Empty(i.InternalDataPath, i.ExternalDataPath, i.InterimDataPath) {
		return fmt.Errorf("one of the ingestion paths is empty")
	}

	if stringutil.Empty(i.MergeKey, i.TargetColumn) {
		return fmt.Errorf("merge key and target column are required")
	}

	if i.MergeKey == i.TargetColumn {
		return fmt.Errorf("merge key and target column cannot be the same column: %q", i.MergeKey)
	}

	if i.InterimDataPath == i.InternalDataPath || i.InterimDataPath == i.ExternalDataPath {
		return fmt.Errorf("interim data path %q would overwrite an input file", i.InterimDataPath)
	}

	if i.ParquetDataPath != "" {
		// The parquet copy is built by reading the interim csv back.
		if lower := strings.ToLower(i.InterimDataPath); !strings.HasSuffix(lower, ".csv") && !strings.HasSuffix(lower, ".csv.gz") {
			return fmt.Errorf("interim data path %q must end in .csv or .csv.gz when a parquet copy is requested", i.InterimDataPath)
		}

		if i.ParquetDataPath == i.InterimDataPath {
			return fmt.Errorf("parquet data path %q would overwrite the interim data", i.ParquetDataPath)
		}
	}

	if i.JoinSuffixes != nil {
		if stringutil.Empty(i.JoinSuffixes.Internal, i.JoinSuffixes.External) {
			return fmt.Errorf("join suffixes must both be set")
		}

		if i.JoinSuffixes.Internal == i.JoinSuffixes.External {
			return fmt.Errorf("join suffixes must be different, got %q", i.JoinSuffixes.Internal)
		}
	}

	return nil
}

func (s *S3Settings) Validate() error {
	if s == nil {
		return fmt.Errorf("s3 settings are nil")
	}

	if s.Bucket == "" {
		return fmt.Errorf("s3 bucket is empty")
	}

	// Without static keys the default AWS credential chain is used.
	if (s.AwsAccessKeyID == "") != (s.AwsSecretAccessKey == "") {
		return fmt.Errorf("s3 access key id and secret access key must be set together")
	}

	return nil
}

func (g *GCSSettings) Validate() error {
	if g == nil {
		return fmt.Errorf("gcs settings are nil")
	}

	if stringutil.Empty(g.Bucket, g.ProjectID) {
		return fmt.Errorf("one of gcs settings is empty")
	}

	return nil
}

func (s *SQSSettings) Validate() error {
	if s == nil {
		return fmt.Errorf("sqs settings are nil")
	}

	if stringutil.Empty(s.QueueURL, s.AwsRegion) {
		return fmt.Errorf("one of sqs settings is empty")
	}

	return nil
}

func (k *Kafka) Validate() error {
	if k == nil {
		return fmt.Errorf("kafka config is nil")
	}

	if stringutil.Empty(k.BootstrapServer, k.Topic) {
		return fmt.Errorf("kafka bootstrap server or topic is empty")
	}

	return nil
}

func (w *WebhookSettings) Validate() error {
	if w == nil || !w.Enabled {
		return nil
	}

	if stringutil.Empty(w.URL, w.APIKey) {
		return fmt.Errorf("webhook url and apiKey are required when webhooks are enabled")
	}

	return nil
}

func (s Stages) Validate() error {
	if s.DataTransformation != nil {
		if testSize := s.DataTransformation.TestSize; testSize <= 0 || testSize >= 1 {
			return fmt.Errorf("data transformation test size must be between 0 and 1, got %v", testSize)
		}
	}

	return nil
}

// Validate checks the ingestion settings and every optional block that is present.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if err := c.Ingestion.Validate(); err != nil {
		return fmt.Errorf("invalid ingestion settings: %w", err)
	}

	if err := c.Stages.Validate(); err != nil {
		return fmt.Errorf("invalid stage settings: %w", err)
	}

	if c.S3 != nil {
		if err := c.S3.Validate(); err != nil {
			return err
		}
	}

	if c.GCS != nil {
		if err := c.GCS.Validate(); err != nil {
			return err
		}
	}

	if c.SQS != nil {
		if err := c.SQS.Validate(); err != nil {
			return err
		}
	}

	if c.Kafka != nil {
		if err := c.Kafka.Validate(); err != nil {
			return err
		}
	}

	return c.WebhookSettings.Validate()
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artie-labs/credit-approval/lib/config/constants"
)

const fullConfig = `
ingestion:
  internalDataPath: /data/raw/internal.xlsx
  externalDataPath: /data/raw/external.xlsx
  interimDataPath: /data/interim/merged.csv
  externalSheet: cibil
  joinSuffixes:
    internal: _bank
    external: _cibil
  parquetDataPath: /data/interim/merged.parquet
stages:
  dataTransformation:
    rootDir: artifacts/data_transformation
    dataPath: /data/interim/merged.csv
    testSize: 0.2
    randomState: 42
    stratifyColumn: Approved_Flag
  modelTrainer:
    modelName: xgboost
    params:
      max_depth: 6
s3:
  bucket: credit-interim
  folderName: ingestion
  awsAccessKeyID: id
  awsSecretAccessKey: secret
  awsRegion: us-east-1
kafka:
  bootstrapServer: kafka:9092
  topic: credit.ingestion
webhookSettings:
  enabled: true
  url: https://example.com/hooks
  apiKey: key
logging:
  directory: /var/log/credit
telemetry:
  metrics:
    provider: datadog
    settings:
      namespace: credit.
`

func writeConfig(t *testing.T, contents string) string {
	fp := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(fp, []byte(contents), 0o644))
	return fp
}

func TestReadNonExistentFile(t *testing.T) {
	_, err := readFileToConfig(filepath.Join(t.TempDir(), "213213231312"))
	assert.ErrorContains(t, err, "no such file or directory")
}

func TestReadFileToConfig(t *testing.T) {
	config, err := readFileToConfig(writeConfig(t, fullConfig))
	assert.NoError(t, err)
	assert.NoError(t, config.Validate())

	assert.Equal(t, "/data/raw/internal.xlsx", config.Ingestion.InternalDataPath)
	assert.Equal(t, "/data/raw/external.xlsx", config.Ingestion.ExternalDataPath)
	assert.Equal(t, "/data/interim/merged.csv", config.Ingestion.InterimDataPath)
	assert.Equal(t, "cibil", config.Ingestion.ExternalSheet)
	assert.Equal(t, "", config.Ingestion.InternalSheet)
	assert.Equal(t, &JoinSuffixes{Internal: "_bank", External: "_cibil"}, config.Ingestion.JoinSuffixes)
	assert.Equal(t, "/data/interim/merged.parquet", config.Ingestion.ParquetDataPath)
	// Defaults
	assert.Equal(t, constants.DefaultMergeKey, config.Ingestion.MergeKey)
	assert.Equal(t, constants.DefaultTargetColumn, config.Ingestion.TargetColumn)

	assert.Equal(t, 0.2, config.Stages.DataTransformation.TestSize)
	assert.Equal(t, 42, config.Stages.DataTransformation.RandomState)
	assert.Equal(t, "xgboost", config.Stages.ModelTrainer.ModelName)
	assert.Equal(t, 6, config.Stages.ModelTrainer.Params["max_depth"])
	assert.Nil(t, config.Stages.DataValidation)

	assert.Equal(t, "credit-interim", config.S3.Bucket)
	assert.Nil(t, config.GCS)
	assert.Nil(t, config.SQS)
	assert.Equal(t, "bootstrapServer=kafka:9092, topic=credit.ingestion, user_set=false, pass_set=false", config.Kafka.String())
	assert.True(t, config.WebhookSettings.Enabled)

	assert.Equal(t, "/var/log/credit", config.Logging.Directory)
	assert.Equal(t, constants.Datadog, config.Telemetry.Metrics.Provider)
	assert.Equal(t, "credit.", config.Telemetry.Metrics.Settings["namespace"])
}

func TestReadFileToConfig_Defaults(t *testing.T) {
	config, err := readFileToConfig(writeConfig(t, "reporting:\n  sentry:\n    dsn: abc\n"))
	assert.NoError(t, err)
	assert.Equal(t, Default().Ingestion, config.Ingestion)
	assert.Equal(t, constants.DefaultLogDirectory, config.Logging.Directory)
	assert.Equal(t, "abc", config.Reporting.Sentry.DSN)
	assert.NoError(t, config.Validate())
}

func TestDefault(t *testing.T) {
	config := Default()
	assert.Equal(t, Ingestion{
		InternalDataPath: constants.DefaultInternalDataPath,
		ExternalDataPath: constants.DefaultExternalDataPath,
		InterimDataPath:  constants.DefaultInterimDataPath,
		MergeKey:         "PROSPECTID",
		TargetColumn:     "Approved_Flag",
	}, config.Ingestion)
	assert.NoError(t, config.Validate())
}

func TestIngestion_Validate(t *testing.T) {
	valid := Default().Ingestion
	testCases := []struct {
		name        string
		mutate      func(i *Ingestion)
		expectedErr string
	}{
		{
			name:   "valid",
			mutate: func(i *Ingestion) {},
		},
		{
			name:        "missing interim path",
			mutate:      func(i *Ingestion) { i.InterimDataPath = "" },
			expectedErr: "one of the ingestion paths is empty",
		},
		{
			name:        "missing merge key",
			mutate:      func(i *Ingestion) { i.MergeKey = "" },
			expectedErr: "merge key and target column are required",
		},
		{
			name:        "merge key is the target",
			mutate:      func(i *Ingestion) { i.MergeKey = i.TargetColumn },
			expectedErr: `merge key and target column cannot be the same column: "Approved_Flag"`,
		},
		{
			name:        "output overwrites input",
			mutate:      func(i *Ingestion) { i.InterimDataPath = i.ExternalDataPath },
			expectedErr: "would overwrite an input file",
		},
		{
			name:   "parquet copy of csv",
			mutate: func(i *Ingestion) { i.ParquetDataPath = "data/interim/merged.parquet" },
		},
		{
			name:   "parquet copy of gzipped csv",
			mutate: func(i *Ingestion) {
				i.InterimDataPath = "data/interim/merged.CSV.gz"
				i.ParquetDataPath = "data/interim/merged.parquet"
			},
		},
		{
			name:   "parquet copy of unreadable interim file",
			mutate: func(i *Ingestion) {
				i.InterimDataPath = "data/interim/merged.gz"
				i.ParquetDataPath = "data/interim/merged.parquet"
			},
			expectedErr: `interim data path "data/interim/merged.gz" must end in .csv or .csv.gz`,
		},
		{
			name:        "parquet overwrites interim",
			mutate:      func(i *Ingestion) { i.ParquetDataPath = i.InterimDataPath },
			expectedErr: "would overwrite the interim data",
		},
		{
			name:        "one suffix",
			mutate:      func(i *Ingestion) { i.JoinSuffixes = &JoinSuffixes{Internal: "_x"} },
			expectedErr: "join suffixes must both be set",
		},
		{
			name:        "same suffix",
			mutate:      func(i *Ingestion) { i.JoinSuffixes = &JoinSuffixes{Internal: "_x", External: "_x"} },
			expectedErr: `join suffixes must be different, got "_x"`,
		},
	}

	for _, tc := range testCases {
		ingestion := valid
		tc.mutate(&ingestion)
		err := ingestion.Validate()
		if tc.expectedErr != "" {
			assert.ErrorContains(t, err, tc.expectedErr, tc.name)
		} else {
			assert.NoError(t, err, tc.name)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	{
		var config *Config
		assert.ErrorContains(t, config.Validate(), "config is nil")
	}
	{
		config := Default()
		config.Ingestion.ExternalDataPath = ""
		assert.ErrorContains(t, config.Validate(), "invalid ingestion settings: one of the ingestion paths is empty")
	}
	{
		config := Default()
		config.Stages.DataTransformation = &DataTransformationConfig{TestSize: 1.5}
		assert.ErrorContains(t, config.Validate(), "invalid stage settings: data transformation test size must be between 0 and 1, got 1.5")
	}
	{
		config := Default()
		config.S3 = &S3Settings{AwsAccessKeyID: "id", AwsSecretAccessKey: "secret"}
		assert.ErrorContains(t, config.Validate(), "s3 bucket is empty")

		config.S3 = &S3Settings{Bucket: "bucket", AwsAccessKeyID: "id"}
		assert.ErrorContains(t, config.Validate(), "s3 access key id and secret access key must be set together")

		// No static keys falls back to the default credential chain.
		config.S3 = &S3Settings{Bucket: "bucket"}
		assert.NoError(t, config.Validate())
	}
	{
		config := Default()
		config.GCS = &GCSSettings{Bucket: "bucket"}
		assert.ErrorContains(t, config.Validate(), "one of gcs settings is empty")
	}
	{
		config := Default()
		config.SQS = &SQSSettings{QueueURL: "https://sqs.us-east-1.amazonaws.com/123/queue"}
		assert.ErrorContains(t, config.Validate(), "one of sqs settings is empty")
	}
	{
		config := Default()
		config.Kafka = &Kafka{BootstrapServer: "localhost:9092"}
		assert.ErrorContains(t, config.Validate(), "kafka bootstrap server or topic is empty")
	}
	{
		config := Default()
		config.WebhookSettings = &WebhookSettings{Enabled: true}
		assert.ErrorContains(t, config.Validate(), "webhook url and apiKey are required")

		// Disabled webhooks are not validated
		config.WebhookSettings.Enabled = false
		assert.NoError(t, config.Validate())
	}
}

func TestSettingsValidate_NilBlocks(t *testing.T) {
	assert.ErrorContains(t, (*S3Settings)(nil).Validate(), "s3 settings are nil")
	assert.ErrorContains(t, (*GCSSettings)(nil).Validate(), "gcs settings are nil")
	assert.ErrorContains(t, (*SQSSettings)(nil).Validate(), "sqs settings are nil")
	assert.ErrorContains(t, (*Kafka)(nil).Validate(), "kafka config is nil")
	assert.NoError(t, (*WebhookSettings)(nil).Validate())
}

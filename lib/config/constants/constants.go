package constants

const (
	// DefaultMergeKey is the column that identifies a prospect across the internal and external datasets.
	DefaultMergeKey = "PROSPECTID"
	// DefaultTargetColumn is the label the downstream model trains on, it only exists in the external dataset.
	DefaultTargetColumn = "Approved_Flag"

	DefaultInternalDataPath = "data/raw/internal/internal_bank_data.xlsx"
	DefaultExternalDataPath = "data/raw/external/external_cibil_data.xlsx"
	DefaultInterimDataPath  = "data/interim/merged_credit_data.csv"

	DefaultLogDirectory = "logs"
	// LogFileTimeLayout produces names such as 2024_01_15_09_30_00.log
	LogFileTimeLayout = "2006_01_02_15_04_05"

	InternalDatasetName = "Internal Bank Data"
	ExternalDatasetName = "External CIBIL Data"
)

// ExporterKind is used for the Telemetry package
type ExporterKind string

const (
	Datadog ExporterKind = "datadog"
)

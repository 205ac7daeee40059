package artifact

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DataIngestionArtifact is handed from ingestion to the stages that follow, they read the merged file by path.
type DataIngestionArtifact struct {
	MergedDataPath string `json:"merged_data_path"`
	NumRecords     int    `json:"num_records"`
}

type DataValidationArtifact struct {
	ValidationStatus bool   `json:"validation_status"`
	ReportFilePath   string `json:"report_file_path"`
	Message          string `json:"message"`
}

type DataTransformationArtifact struct {
	TrainDataPath    string `json:"train_data_path"`
	TestDataPath     string `json:"test_data_path"`
	TransformersPath string `json:"transformers_path"`
}

type ModelTrainerArtifact struct {
	ModelPath     string  `json:"model_path"`
	TrainAccuracy float64 `json:"train_accuracy"`
	TestAccuracy  float64 `json:"test_accuracy"`
	TrainF1Score  float64 `json:"train_f1_score"`
	TestF1Score   float64 `json:"test_f1_score"`
}

type ModelEvaluationArtifact struct {
	MetricsFilePath string  `json:"metrics_file_path"`
	IsModelAccepted bool    `json:"is_model_accepted"`
	ModelScore      float64 `json:"model_score"`
}

// Envelope is what gets announced to downstream consumers once an ingestion run has finished.
type Envelope struct {
	RunID       uuid.UUID             `json:"run_id"`
	Ingestion   DataIngestionArtifact `json:"ingestion"`
	ParquetPath string                `json:"parquet_path,omitempty"`
	// URIs - copies of the merged file in object storage.
	URIs        []string              `json:"uris,omitempty"`
	CompletedAt time.Time             `json:"completed_at"`
}

func NewEnvelope(runID uuid.UUID, ingestion DataIngestionArtifact, completedAt time.Time) Envelope {
	return Envelope{
		RunID:       runID,
		Ingestion:   ingestion,
		CompletedAt: completedAt.UTC(),
	}
}

// ObjectPrefix is the Hive style prefix that object storage copies of this run are written under:
// > folderName/credit_approval/date=YYYY-MM-DD/runID
func (e Envelope) ObjectPrefix(folderName string) string {
	parts := []string{"credit_approval", fmt.Sprintf("date=%s", e.CompletedAt.Format(time.DateOnly)), e.RunID.String()}
	if folderName != "" {
		parts = append([]string{strings.Trim(folderName, "/")}, parts...)
	}

	return strings.Join(parts, "/")
}

func (e Envelope) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return data, nil
}

package webhooksutil

import "time"

type EventType string
type Severity string
type Source string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const (
	DataIngestion Source = "data_ingestion"
)

const (
	IngestionStarted   EventType = "ingestion.started"
	IngestionCompleted EventType = "ingestion.completed"
	IngestionFailed    EventType = "ingestion.failed"

	// UploadFailed - a copy of the merged file could not be written to object storage.
	UploadFailed EventType = "upload.failed"
)

type WebhooksEvent struct {
	Event       string         `json:"event"`
	Timestamp   time.Time      `json:"timestamp"`
	Properties  map[string]any `json:"properties"`
	ExtraFields map[string]any `json:"context"`
}

var AllEventTypes = []EventType{
	IngestionStarted,
	IngestionCompleted,
	IngestionFailed,
	UploadFailed,
}

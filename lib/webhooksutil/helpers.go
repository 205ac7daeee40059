package webhooksutil

import "log/slog"

// EventMetadata contains all metadata for an event type.
type EventMetadata struct {
	Severity Severity
	Category string
	Message  string
}

var eventMetadataMap = map[EventType]EventMetadata{
	IngestionStarted:   {SeverityInfo, "ingestion", "Data ingestion started"},
	IngestionCompleted: {SeverityInfo, "ingestion", "Data ingestion completed"},
	IngestionFailed:    {SeverityError, "ingestion", "Data ingestion failed"},
	UploadFailed:       {SeverityWarning, "publish", "Upload to object storage failed"},
}

func GetEventMetadata(eventType EventType) EventMetadata {
	if metadata, ok := eventMetadataMap[eventType]; ok {
		return metadata
	}
	slog.Error("Unknown event type", slog.String("eventType", string(eventType)))
	return EventMetadata{SeverityInfo, "operation", "Unknown event type"}
}

func GetEventSeverity(eventType EventType) Severity {
	return GetEventMetadata(eventType).Severity
}

func GetEventMessage(eventType EventType) string {
	return GetEventMetadata(eventType).Message
}

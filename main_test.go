package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artie-labs/credit-approval/lib/ingestion"
)

func TestLogFailure(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	// Ingestion failures are logged where they happen.
	logFailure(log, &ingestion.PipelineError{Step: ingestion.StepMerge, Err: fmt.Errorf("boom")})
	assert.Empty(t, buf.String())

	logFailure(log, fmt.Errorf("failed to publish artifact: %w", fmt.Errorf("queue does not exist")))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"level":"ERROR"`)
	assert.Contains(t, lines[0], "queue does not exist")
}

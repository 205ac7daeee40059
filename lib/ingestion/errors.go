package ingestion

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
)

type Step string

const (
	StepLocate           Step = "locate"
	StepLoadInternal     Step = "load_internal"
	StepLoadExternal     Step = "load_external"
	StepValidateInternal Step = "validate_internal"
	StepValidateExternal Step = "validate_external"
	StepDedupInternal    Step = "dedup_internal"
	StepDedupExternal    Step = "dedup_external"
	StepMerge            Step = "merge"
	StepValidateTarget   Step = "validate_target"
	StepPersist          Step = "persist"
)

type MissingInputFileError struct {
	Path string
}

func (m MissingInputFileError) Error() string {
	return fmt.Sprintf("file not found: %s", m.Path)
}

type SchemaValidationError struct {
	Dataset string
	// Missing - sorted, order carries no meaning.
	Missing []string
}

func (s SchemaValidationError) Error() string {
	return fmt.Sprintf("missing columns in %s: %s", s.Dataset, strings.Join(s.Missing, ", "))
}

type DataLoadError struct {
	Path string
	Err  error
}

func (d DataLoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", d.Path, d.Err)
}

func (d DataLoadError) Unwrap() error {
	return d.Err
}

type TargetColumnMissingError struct {
	Column string
}

func (t TargetColumnMissingError) Error() string {
	return fmt.Sprintf("target column %s missing after merge", t.Column)
}

type PersistenceError struct {
	Path string
	Err  error
}

func (p PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist merged data to %s: %v", p.Path, p.Err)
}

func (p PersistenceError) Unwrap() error {
	return p.Err
}

// PipelineError is returned by [Ingestion.Run] for every failure. The typed cause is reachable with [errors.As].
type PipelineError struct {
	Step Step
	Err  error
}

func (p *PipelineError) Error() string {
	if file, line, ok := p.Location(); ok {
		return fmt.Sprintf("data ingestion failed at step %s (%s:%d): %v", p.Step, file, line, p.Err)
	}

	return fmt.Sprintf("data ingestion failed at step %s: %v", p.Step, p.Err)
}

func (p *PipelineError) Unwrap() error {
	return p.Err
}

// Location returns the file and line where the underlying error was raised, if it was captured.
func (p *PipelineError) Location() (string, int, bool) {
	var stackErr *goerrors.Error
	if !errors.As(p.Err, &stackErr) {
		return "", 0, false
	}

	frames := stackErr.StackFrames()
	if len(frames) == 0 {
		return "", 0, false
	}

	return frames[0].File, frames[0].LineNumber, true
}

// StackTrace returns the stack captured when the underlying error was raised.
func (p *PipelineError) StackTrace() string {
	var stackErr *goerrors.Error
	if !errors.As(p.Err, &stackErr) {
		return ""
	}

	return string(stackErr.Stack())
}

// raise records the caller's stack on [err].
func raise(err error) error {
	return goerrors.Wrap(err, 1)
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAnalysisNotFound    = errors.New("analysis not found")
	ErrEmptyUpload         = errors.New("empty file provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnknownProvider     = errors.New("unknown provider")
)

// IngestionError indicates the uploaded bytes are not a well-formed PDF or
// contain no pages. It is the only error fatal to a whole analysis.
type IngestionError struct {
	Err error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("pdf ingestion failed: %v", e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// ExtractionError wraps a provider or schema failure from the field
// extraction stage. Per-field coercion issues never raise it.
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed at %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// RenderingError indicates the highlight renderer could not produce an
// annotated document. Non-fatal to the analysis.
type RenderingError struct {
	Err error
}

func (e *RenderingError) Error() string {
	return fmt.Sprintf("highlight rendering failed: %v", e.Err)
}

func (e *RenderingError) Unwrap() error {
	return e.Err
}

package model

import "fmt"

// ValidationError means the caller supplied unusable input: missing or
// too-short text, or a URL that does not match its claimed source kind.
// Surfaced as a 400-class response before any paid upstream call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ExtractionError means no usable text could be produced from the target:
// page unreachable, structurally unextractable, login-gated, or no
// transcript and no fallback metadata. Also a 400-class response.
type ExtractionError struct {
	Source string // Source kind that failed ("youtube", "reddit", ...)
	Reason string
	Err    error // Underlying transport/parse error, if any
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractionf builds an ExtractionError without an underlying cause.
func Extractionf(source, format string, args ...any) *ExtractionError {
	return &ExtractionError{Source: source, Reason: fmt.Sprintf(format, args...)}
}

// UpstreamError means the LLM or search provider failed, or the LLM returned
// output that could not be parsed into the result schema. Fatal for the whole
// request, surfaced as a 500-class response. No partial result is returned.
type UpstreamError struct {
	Stage string // Pipeline stage that failed ("extract claims", "judge", ...)
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

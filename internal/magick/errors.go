package magick

import "errors"

// Failure kinds surfaced by validation and process execution.
// Callers match them with errors.Is.
var (
	ErrMissingArgument    = errors.New("missing argument")
	ErrNotFound           = errors.New("not found")
	ErrMalformedSpec      = errors.New("malformed size spec")
	ErrOutOfRange         = errors.New("out of range")
	ErrCountMismatch      = errors.New("count mismatch")
	ErrProcessFailure     = errors.New("process failure")
	ErrProcessInterrupted = errors.New("process interrupted")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrMissingArgument, "missing_argument"},
	{ErrNotFound, "not_found"},
	{ErrMalformedSpec, "malformed_spec"},
	{ErrOutOfRange, "out_of_range"},
	{ErrCountMismatch, "count_mismatch"},
	{ErrProcessFailure, "process_failure"},
	{ErrProcessInterrupted, "process_interrupted"},
}

// KindOf returns a stable name for the failure kind of err.
// It returns "" for nil and "unknown" for errors outside the taxonomy.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "unknown"
}

// IsValidationError reports whether err was raised before any process was spawned
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMalformedSpec) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrCountMismatch)
}

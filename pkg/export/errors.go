package export

import "errors"

// Failure taxonomy for an export job. A running job surfaces these only via
// its terminal event; submission layers may also return ErrToolMissing and
// ErrNoSegments synchronously as a preflight check.
var (
	// ErrToolMissing indicates the external transcoder is not available.
	// Callers should check for it proactively before collecting export
	// settings from the user.
	ErrToolMissing = errors.New("ffmpeg not found")

	// ErrProcessFailed indicates the transcoder exited with a non-zero
	// code. The wrapped detail retains the diagnostic output tail.
	ErrProcessFailed = errors.New("transcode process failed")

	// ErrOutputMissing indicates the process reported success but the
	// output file is absent or empty on disk.
	ErrOutputMissing = errors.New("transcode produced no output")

	// ErrCancelled indicates the job was cancelled by the user.
	ErrCancelled = errors.New("export cancelled")

	// ErrTransitionTooLong indicates a transitions job where some segment
	// is not longer than the configured cross-fade. Rejected before any
	// work starts.
	ErrTransitionTooLong = errors.New("transition longer than shortest clip")

	// ErrNoSegments indicates an empty job.
	ErrNoSegments = errors.New("export job has no segments")
)

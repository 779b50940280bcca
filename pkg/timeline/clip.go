package timeline

import "path/filepath"

// Clip is a trimmed reference to a source media file placed on the timeline.
// All times are in milliseconds.
type Clip struct {
	ID         int    `json:"id"`
	SourcePath string `json:"source_path"`

	// InPoint is the trim start within the source file.
	InPoint int64 `json:"in_point_ms"`
	// Duration is the length of the trimmed range.
	Duration int64 `json:"duration_ms"`
	// Position is the clip's start offset on the assembled timeline. It is
	// derived from the durations of the preceding clips and is never
	// authoritative on its own.
	Position int64 `json:"position_ms"`

	Label string `json:"label"`
}

// OutPoint returns the trim end within the source file.
func (c Clip) OutPoint() int64 {
	return c.InPoint + c.Duration
}

// End returns the clip's end offset on the timeline.
func (c Clip) End() int64 {
	return c.Position + c.Duration
}

// DisplayLabel returns the label, falling back to the source file name.
func (c Clip) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return filepath.Base(c.SourcePath)
}

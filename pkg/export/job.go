package export

import (
	"github.com/jinzhu/copier"

	"github.com/Mikuu177/qt-cw-vedio/pkg/timeline"
)

// DefaultTransitionMs is the cross-fade length used when a job does not set
// one.
const DefaultTransitionMs int64 = 500

// Segment is one (source, in, out) range of an export job. Times are in
// milliseconds of source time.
type Segment struct {
	SourcePath string
	In         int64
	Out        int64
}

func (s Segment) Duration() int64 {
	return s.Out - s.In
}

// Seconds returns the segment duration in seconds, floored at a small
// positive value so progress normalization never divides by zero.
func (s Segment) Seconds() float64 {
	sec := float64(s.Duration()) / 1000
	if sec < 0.01 {
		sec = 0.01
	}
	return sec
}

// Job describes one export run. It is an ephemeral value object: built by
// the caller, consumed by exactly one Runner, never persisted.
type Job struct {
	Segments   []Segment
	Profile    Profile
	OutputPath string

	// Transitions enables cross-fades between consecutive segments.
	Transitions bool
	// TransitionDuration is the cross-fade length in milliseconds; zero
	// means DefaultTransitionMs.
	TransitionDuration int64
}

func (j Job) transitionMs() int64 {
	if j.TransitionDuration <= 0 {
		return DefaultTransitionMs
	}
	return j.TransitionDuration
}

// SnapshotClips deep-copies clips so an in-flight export job is isolated
// from any later mutation of the live timeline.
func SnapshotClips(clips []timeline.Clip) []timeline.Clip {
	var out []timeline.Clip
	if err := copier.Copy(&out, &clips); err != nil {
		// Clip is a plain value struct; copying it cannot fail in practice.
		out = append(out[:0], clips...)
	}
	return out
}

// JobFromClips builds a concatenation job from a snapshot of timeline clips,
// in timeline order.
func JobFromClips(clips []timeline.Clip, outputPath string, profile Profile, transitions bool, transitionMs int64) Job {
	snapshot := SnapshotClips(clips)

	segments := make([]Segment, 0, len(snapshot))
	for _, c := range snapshot {
		segments = append(segments, Segment{
			SourcePath: c.SourcePath,
			In:         c.InPoint,
			Out:        c.OutPoint(),
		})
	}

	return Job{
		Segments:           segments,
		Profile:            profile,
		OutputPath:         outputPath,
		Transitions:        transitions,
		TransitionDuration: transitionMs,
	}
}

package manager

import (
	"github.com/Mikuu177/qt-cw-vedio/pkg/export"
	"github.com/Mikuu177/qt-cw-vedio/pkg/logger"
	"github.com/Mikuu177/qt-cw-vedio/pkg/timeline"
)

// ExportHandle identifies a submitted export. Events must be drained until
// the terminal event; the manager forwards them from the running job and
// drops the job from its registry once it finishes.
type ExportHandle struct {
	ID     int
	Events <-chan export.Event
}

// Export renders the whole timeline to outputPath.
func (s *Manager) Export(outputPath string, profile export.Profile, transitions bool) (*ExportHandle, error) {
	job := export.JobFromClips(s.Timeline.Clips(), outputPath, profile, transitions, int64(s.Config.GetTransitionDuration()))
	return s.submit(job)
}

// ExportRange renders the clips overlapping [startMs, endMs), each trimmed
// to the range boundaries.
func (s *Manager) ExportRange(startMs, endMs int64, outputPath string, profile export.Profile, transitions bool) (*ExportHandle, error) {
	segments := rangeSegments(s.Timeline.ClipsInRange(startMs, endMs), startMs, endMs)

	job := export.Job{
		Segments:           segments,
		Profile:            profile,
		OutputPath:         outputPath,
		Transitions:        transitions,
		TransitionDuration: int64(s.Config.GetTransitionDuration()),
	}
	return s.submit(job)
}

// rangeSegments trims each clip's source range to the part overlapping
// [startMs, endMs) on the timeline.
func rangeSegments(clips []timeline.Clip, startMs, endMs int64) []export.Segment {
	segments := make([]export.Segment, 0, len(clips))
	for _, c := range clips {
		in := c.InPoint
		if startMs > c.Position {
			in += startMs - c.Position
		}
		out := c.OutPoint()
		if endMs < c.End() {
			out -= c.End() - endMs
		}
		segments = append(segments, export.Segment{
			SourcePath: c.SourcePath,
			In:         in,
			Out:        out,
		})
	}
	return segments
}

// submit validates the job, launches a runner and tracks it until its
// terminal event. Tool presence is checked up front so an export against a
// missing transcoder is rejected synchronously instead of failing later.
func (s *Manager) submit(job export.Job) (*ExportHandle, error) {
	if len(job.Segments) == 0 {
		return nil, export.ErrNoSegments
	}
	if !s.FFMpeg.Configured() {
		return nil, export.ErrToolMissing
	}

	runner := export.NewRunner(job, s.FFMpeg, s.FFProbe, s.Config.GetTempDir())

	s.exportMutex.Lock()
	s.nextExportID++
	id := s.nextExportID
	s.exports[id] = runner
	s.exportMutex.Unlock()

	out := make(chan export.Event, 128)
	go func() {
		defer close(out)
		for ev := range runner.Events() {
			out <- ev
		}

		s.exportMutex.Lock()
		delete(s.exports, id)
		s.exportMutex.Unlock()
	}()

	logger.Infof("[manager] starting export %d (%d segments) to %s", id, len(job.Segments), job.OutputPath)
	runner.Start()

	return &ExportHandle{ID: id, Events: out}, nil
}

// CancelExport requests cancellation of a running export. Returns false if
// no export with the given id is running.
func (s *Manager) CancelExport(id int) bool {
	s.exportMutex.Lock()
	runner, ok := s.exports[id]
	s.exportMutex.Unlock()

	if !ok {
		return false
	}
	runner.Cancel()
	return true
}

// RunningExports returns the ids of exports that have not yet finished.
func (s *Manager) RunningExports() []int {
	s.exportMutex.Lock()
	defer s.exportMutex.Unlock()

	ids := make([]int, 0, len(s.exports))
	for id := range s.exports {
		ids = append(ids, id)
	}
	return ids
}

// ExportableDuration returns the total timeline duration that a full export
// would cover, accounting for transition overlap.
func (s *Manager) ExportableDuration(transitions bool) int64 {
	var total int64
	clips := s.Timeline.Clips()
	for _, c := range clips {
		total += c.Duration
	}
	if transitions && len(clips) > 1 {
		total -= int64(s.Config.GetTransitionDuration()) * int64(len(clips)-1)
	}
	return total
}

package manager

import (
	"github.com/Mikuu177/qt-cw-vedio/pkg/timeline"
)

// PlayState mirrors the transport state of an external player surface.
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

// Player is the transport surface the manager drives for program preview.
// Implementations live in the front-end; the manager only consumes this.
type Player interface {
	Play()
	Pause()
	SeekMs(position int64)

	PositionMs() int64
	DurationMs() int64
	State() PlayState
}

// SourcePosition is a timeline position resolved to a location inside a
// clip's source media.
type SourcePosition struct {
	Clip       timeline.Clip
	SourceTime int64
}

// ResolvePosition maps a timeline position to the clip under it and the
// corresponding source time, for seeking a preview player.
func (s *Manager) ResolvePosition(positionMs int64) (SourcePosition, bool) {
	clip, ok := s.Timeline.ClipAtPosition(positionMs)
	if !ok {
		return SourcePosition{}, false
	}
	return SourcePosition{
		Clip:       clip,
		SourceTime: clip.InPoint + (positionMs - clip.Position),
	}, true
}

// SeekPreview seeks the given player to the source location under a
// timeline position. Returns false when no clip is under the position.
func (s *Manager) SeekPreview(p Player, positionMs int64) bool {
	sp, ok := s.ResolvePosition(positionMs)
	if !ok {
		return false
	}
	p.SeekMs(sp.SourceTime)
	return true
}

// SeekToMarker seeks the preview to the marker nearest the given time
// within the configured tolerance.
func (s *Manager) SeekToMarker(p Player, timeMs int64) bool {
	m, ok := s.Markers.At(timeMs, int64(s.Config.GetMarkerTolerance()))
	if !ok {
		return false
	}
	return s.SeekPreview(p, m.Time)
}

package manager

import (
	"github.com/Mikuu177/qt-cw-vedio/pkg/undo"
)

// Editing facade. Every mutation goes through the undo stack so the
// front-end never has to build commands itself.

func (s *Manager) AddClip(sourcePath string, inPoint, duration int64, label string) {
	s.Undo.Do(&undo.AddClip{
		Timeline:   s.Timeline,
		SourcePath: sourcePath,
		InPoint:    inPoint,
		Duration:   duration,
		Label:      label,
	})
}

func (s *Manager) RemoveClip(clipID int) {
	s.Undo.Do(&undo.RemoveClip{
		Timeline: s.Timeline,
		ClipID:   clipID,
	})
}

func (s *Manager) ReorderClip(clipID, newIndex int) {
	oldIndex := s.Timeline.IndexOf(clipID)
	if oldIndex < 0 || oldIndex == newIndex {
		return
	}
	s.Undo.Do(&undo.Reorder{
		Timeline: s.Timeline,
		ClipID:   clipID,
		OldIndex: oldIndex,
		NewIndex: newIndex,
	})
}

func (s *Manager) SetClipInOut(clipID int, inPoint, outPoint int64) {
	s.Undo.Do(&undo.SetInOut{
		Timeline: s.Timeline,
		ClipID:   clipID,
		NewIn:    inPoint,
		NewOut:   outPoint,
	})
}

func (s *Manager) RenameClip(clipID int, label string) {
	s.Undo.Do(&undo.Rename{
		Timeline: s.Timeline,
		ClipID:   clipID,
		NewLabel: label,
	})
}

// SplitClipAt splits the clip under the given timeline position at that
// position. No-op when the position does not fall strictly inside a clip.
func (s *Manager) SplitClipAt(positionMs int64) {
	clip, ok := s.Timeline.ClipAtPosition(positionMs)
	if !ok {
		return
	}
	splitAt := clip.InPoint + (positionMs - clip.Position)
	if splitAt <= clip.InPoint || splitAt >= clip.OutPoint() {
		return
	}
	s.Undo.Do(&undo.Split{
		Timeline: s.Timeline,
		ClipID:   clip.ID,
		SplitAt:  splitAt,
	})
}

func (s *Manager) AddMarker(timeMs int64, label, color string) {
	s.Undo.Do(&undo.AddMarker{
		Registry: s.Markers,
		Time:     timeMs,
		Label:    label,
		Color:    color,
	})
}

func (s *Manager) RemoveMarker(markerID int) {
	s.Undo.Do(&undo.RemoveMarker{
		Registry: s.Markers,
		MarkerID: markerID,
	})
}

func (s *Manager) MoveMarker(markerID int, timeMs int64) {
	s.Undo.Do(&undo.MoveMarker{
		Registry: s.Markers,
		MarkerID: markerID,
		NewTime:  timeMs,
	})
}

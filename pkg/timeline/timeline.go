// Package timeline maintains the ordered, gapless, non-overlapping sequence
// of clips that makes up the edited program.
package timeline

import (
	"github.com/Mikuu177/qt-cw-vedio/pkg/logger"
)

// Timeline is the multi-clip editing model. Clips are kept sorted by
// Position; a clip's Position always equals the sum of the durations of the
// clips before it. Any structural change recomputes every position from
// scratch rather than patching deltas.
//
// Timeline is single-writer: only one goroutine may mutate it. Export jobs
// operate on snapshots and never touch the live model.
type Timeline struct {
	clips     []Clip
	nextID    int
	listeners []Listener
}

func New() *Timeline {
	return &Timeline{nextID: 1}
}

// AddListener registers l for change notifications.
func (t *Timeline) AddListener(l Listener) {
	t.listeners = append(t.listeners, l)
}

// AddClip appends a clip at the end of the timeline.
func (t *Timeline) AddClip(sourcePath string, inPoint, duration int64) (Clip, error) {
	return t.AddClipAt(sourcePath, inPoint, duration, t.TotalDuration(), "")
}

// AddClipAt inserts a clip. The position argument selects the insertion slot
// relative to the existing clips; final positions are recomputed from clip
// order, so later clips shift forward by the new clip's duration.
func (t *Timeline) AddClipAt(sourcePath string, inPoint, duration, position int64, label string) (Clip, error) {
	if duration < 0 {
		return Clip{}, ErrInvalidRange
	}

	c := Clip{
		ID:         t.nextID,
		SourcePath: sourcePath,
		InPoint:    inPoint,
		Duration:   duration,
		Position:   position,
		Label:      label,
	}
	t.nextID++

	// Insert before any clip already at or past the requested position, so
	// re-adding a removed clip at its old position restores the old order.
	idx := 0
	for i, existing := range t.clips {
		if existing.Position >= position {
			break
		}
		idx = i + 1
	}

	t.clips = append(t.clips, Clip{})
	copy(t.clips[idx+1:], t.clips[idx:])
	t.clips[idx] = c

	t.recalculatePositions()
	c = t.clips[idx]

	for _, l := range t.listeners {
		l.ClipAdded(c)
	}
	t.notifyDuration()

	logger.Debugf("[timeline] added clip %d (%s, %dms) at index %d", c.ID, c.DisplayLabel(), c.Duration, idx)
	return c, nil
}

// RemoveClip removes the clip with the given id, shifting later clips
// backward. Returns false if the id is unknown.
func (t *Timeline) RemoveClip(id int) bool {
	idx := t.indexByID(id)
	if idx == -1 {
		return false
	}

	removed := t.clips[idx]
	t.clips = append(t.clips[:idx], t.clips[idx+1:]...)
	t.recalculatePositions()

	for _, l := range t.listeners {
		l.ClipRemoved(id)
	}
	t.notifyDuration()

	logger.Debugf("[timeline] removed clip %d (%s)", removed.ID, removed.DisplayLabel())
	return true
}

// Clip returns a copy of the clip with the given id.
func (t *Timeline) Clip(id int) (Clip, bool) {
	idx := t.indexByID(id)
	if idx == -1 {
		return Clip{}, false
	}
	return t.clips[idx], true
}

// ClipAtPosition returns the clip whose [Position, End) range contains the
// given timeline position.
func (t *Timeline) ClipAtPosition(position int64) (Clip, bool) {
	for _, c := range t.clips {
		if c.Position <= position && position < c.End() {
			return c, true
		}
	}
	return Clip{}, false
}

// ClipsInRange returns all clips overlapping [start, end).
func (t *Timeline) ClipsInRange(start, end int64) []Clip {
	var out []Clip
	for _, c := range t.clips {
		if c.End() > start && c.Position < end {
			out = append(out, c)
		}
	}
	return out
}

// MoveClip moves the clip with the given id to newIndex, clamped to the
// valid range, and recomputes every position.
func (t *Timeline) MoveClip(id int, newIndex int) bool {
	oldIndex := t.indexByID(id)
	if oldIndex == -1 {
		return false
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(t.clips)-1 {
		newIndex = len(t.clips) - 1
	}
	if oldIndex == newIndex {
		return true
	}

	c := t.clips[oldIndex]
	t.clips = append(t.clips[:oldIndex], t.clips[oldIndex+1:]...)
	t.clips = append(t.clips[:newIndex], append([]Clip{c}, t.clips[newIndex:]...)...)
	t.recalculatePositions()

	for _, l := range t.listeners {
		l.ClipModified(t.clips[newIndex])
	}
	t.notifyDuration()

	logger.Debugf("[timeline] moved clip %d from index %d to %d", id, oldIndex, newIndex)
	return true
}

// MoveClipToPosition reorders the clip so that it lands at the slot
// containing the given timeline position. Positions are recomputed, so the
// resulting timeline stays gapless.
func (t *Timeline) MoveClipToPosition(id int, position int64) bool {
	oldIndex := t.indexByID(id)
	if oldIndex == -1 {
		return false
	}

	c := t.clips[oldIndex]
	t.clips = append(t.clips[:oldIndex], t.clips[oldIndex+1:]...)

	idx := 0
	for i, existing := range t.clips {
		if existing.Position >= position {
			break
		}
		idx = i + 1
	}
	t.clips = append(t.clips[:idx], append([]Clip{c}, t.clips[idx:]...)...)
	t.recalculatePositions()

	for _, l := range t.listeners {
		l.ClipModified(t.clips[idx])
	}
	t.notifyDuration()
	return true
}

// UpdateInOut changes a clip's trim range. The new in point is clamped to
// zero; later clips shift by the duration delta. Returns ErrInvalidRange if
// out < in, leaving the model unchanged.
func (t *Timeline) UpdateInOut(id int, newIn, newOut int64) error {
	idx := t.indexByID(id)
	if idx == -1 {
		return ErrNotFound
	}
	if newOut < newIn {
		return ErrInvalidRange
	}

	if newIn < 0 {
		newIn = 0
	}
	t.clips[idx].InPoint = newIn
	t.clips[idx].Duration = newOut - newIn
	t.recalculatePositions()

	for _, l := range t.listeners {
		l.ClipModified(t.clips[idx])
	}
	t.notifyDuration()
	return nil
}

// UpdateDuration changes a clip's duration, keeping its in point.
func (t *Timeline) UpdateDuration(id int, newDuration int64) error {
	idx := t.indexByID(id)
	if idx == -1 {
		return ErrNotFound
	}
	if newDuration < 0 {
		return ErrInvalidRange
	}

	t.clips[idx].Duration = newDuration
	t.recalculatePositions()

	for _, l := range t.listeners {
		l.ClipModified(t.clips[idx])
	}
	t.notifyDuration()
	return nil
}

// UpdateLabel renames a clip. Returns false if the id is unknown.
func (t *Timeline) UpdateLabel(id int, label string) bool {
	idx := t.indexByID(id)
	if idx == -1 {
		return false
	}

	t.clips[idx].Label = label
	for _, l := range t.listeners {
		l.ClipModified(t.clips[idx])
	}
	return true
}

// SplitClip divides a clip at splitAt, given in source time. The split point
// must lie strictly inside the clip's trim range; otherwise nil is returned
// and nothing changes. The left clip keeps [InPoint, splitAt), the returned
// right clip is a new clip covering [splitAt, OutPoint) inserted immediately
// after it.
func (t *Timeline) SplitClip(id int, splitAt int64) *Clip {
	idx := t.indexByID(id)
	if idx == -1 {
		return nil
	}

	left := &t.clips[idx]
	if splitAt <= left.InPoint || splitAt >= left.OutPoint() {
		return nil
	}

	rightDuration := left.OutPoint() - splitAt
	left.Duration = splitAt - left.InPoint

	label := ""
	if left.Label != "" {
		label = left.Label + " (part 2)"
	}

	right := Clip{
		ID:         t.nextID,
		SourcePath: left.SourcePath,
		InPoint:    splitAt,
		Duration:   rightDuration,
		Label:      label,
	}
	t.nextID++

	t.clips = append(t.clips[:idx+1], append([]Clip{right}, t.clips[idx+1:]...)...)
	t.recalculatePositions()

	for _, l := range t.listeners {
		l.ClipModified(t.clips[idx])
	}
	right = t.clips[idx+1]
	for _, l := range t.listeners {
		l.ClipAdded(right)
	}
	t.notifyDuration()

	logger.Debugf("[timeline] split clip %d at %dms -> new clip %d", id, splitAt, right.ID)
	return &right
}

// Clear removes every clip and resets the id counter.
func (t *Timeline) Clear() {
	t.clips = nil
	t.nextID = 1

	for _, l := range t.listeners {
		l.TimelineCleared()
	}
	t.notifyDuration()
}

// TotalDuration returns the end of the last clip, or zero when empty.
func (t *Timeline) TotalDuration() int64 {
	var max int64
	for _, c := range t.clips {
		if end := c.End(); end > max {
			max = end
		}
	}
	return max
}

// ClipCount returns the number of clips on the timeline.
func (t *Timeline) ClipCount() int {
	return len(t.clips)
}

// Clips returns a copy of the clip list in timeline order.
func (t *Timeline) Clips() []Clip {
	out := make([]Clip, len(t.clips))
	copy(out, t.clips)
	return out
}

// IndexOf returns the index of the clip in timeline order, or -1.
func (t *Timeline) IndexOf(id int) int {
	return t.indexByID(id)
}

func (t *Timeline) indexByID(id int) int {
	for i, c := range t.clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// recalculatePositions rederives every position from clip order and
// durations. This is the authoritative way gaps and overlaps are prevented.
func (t *Timeline) recalculatePositions() {
	var pos int64
	for i := range t.clips {
		t.clips[i].Position = pos
		pos += t.clips[i].Duration
	}
}

func (t *Timeline) notifyDuration() {
	total := t.TotalDuration()
	for _, l := range t.listeners {
		l.DurationChanged(total)
	}
}

package undo

import (
	"fmt"

	"github.com/Mikuu177/qt-cw-vedio/pkg/timeline"
)

// AddClip appends a clip to the timeline. Undo removes it.
type AddClip struct {
	Timeline   *timeline.Timeline
	SourcePath string
	InPoint    int64
	Duration   int64
	Label      string

	clipID int
}

func (c *AddClip) Execute() {
	clip, err := c.Timeline.AddClipAt(c.SourcePath, c.InPoint, c.Duration, c.Timeline.TotalDuration(), c.Label)
	if err != nil {
		return
	}
	c.clipID = clip.ID
}

func (c *AddClip) Undo() {
	if c.clipID != 0 {
		c.Timeline.RemoveClip(c.clipID)
	}
}

func (c *AddClip) Description() string {
	return fmt.Sprintf("Add clip %s", c.SourcePath)
}

// RemoveClip removes a clip, capturing its full field set so undo can
// recreate it at its old slot. The recreated clip carries a fresh id.
type RemoveClip struct {
	Timeline *timeline.Timeline
	ClipID   int

	captured *timeline.Clip
}

func (c *RemoveClip) Execute() {
	if clip, ok := c.Timeline.Clip(c.ClipID); ok {
		snapshot := clip
		c.captured = &snapshot
	}
	c.Timeline.RemoveClip(c.ClipID)
}

func (c *RemoveClip) Undo() {
	if c.captured == nil {
		return
	}
	clip, err := c.Timeline.AddClipAt(c.captured.SourcePath, c.captured.InPoint,
		c.captured.Duration, c.captured.Position, c.captured.Label)
	if err != nil {
		return
	}
	// Re-execute must remove the recreated clip, not the original id.
	c.ClipID = clip.ID
}

func (c *RemoveClip) Description() string {
	return fmt.Sprintf("Remove clip %d", c.ClipID)
}

// Reorder moves a clip between indexes.
type Reorder struct {
	Timeline *timeline.Timeline
	ClipID   int
	OldIndex int
	NewIndex int
}

func (c *Reorder) Execute() {
	c.Timeline.MoveClip(c.ClipID, c.NewIndex)
}

func (c *Reorder) Undo() {
	c.Timeline.MoveClip(c.ClipID, c.OldIndex)
}

func (c *Reorder) Description() string {
	return fmt.Sprintf("Reorder clip %d", c.ClipID)
}

// SetInOut changes a clip's trim range, capturing the previous range.
type SetInOut struct {
	Timeline *timeline.Timeline
	ClipID   int
	NewIn    int64
	NewOut   int64

	prevIn   int64
	prevOut  int64
	captured bool
}

func (c *SetInOut) Execute() {
	if clip, ok := c.Timeline.Clip(c.ClipID); ok && !c.captured {
		c.prevIn = clip.InPoint
		c.prevOut = clip.OutPoint()
		c.captured = true
	}
	_ = c.Timeline.UpdateInOut(c.ClipID, c.NewIn, c.NewOut)
}

func (c *SetInOut) Undo() {
	if !c.captured {
		return
	}
	_ = c.Timeline.UpdateInOut(c.ClipID, c.prevIn, c.prevOut)
}

func (c *SetInOut) Description() string {
	return fmt.Sprintf("Trim clip %d", c.ClipID)
}

// Rename changes a clip's label.
type Rename struct {
	Timeline *timeline.Timeline
	ClipID   int
	NewLabel string

	prevLabel string
	captured  bool
}

func (c *Rename) Execute() {
	if clip, ok := c.Timeline.Clip(c.ClipID); ok && !c.captured {
		c.prevLabel = clip.Label
		c.captured = true
	}
	c.Timeline.UpdateLabel(c.ClipID, c.NewLabel)
}

func (c *Rename) Undo() {
	if !c.captured {
		return
	}
	c.Timeline.UpdateLabel(c.ClipID, c.prevLabel)
}

func (c *Rename) Description() string {
	return fmt.Sprintf("Rename clip %d", c.ClipID)
}

// Split divides a clip at a source-time boundary. Undo removes the right
// clip and restores the left clip's trim range.
type Split struct {
	Timeline *timeline.Timeline
	ClipID   int
	SplitAt  int64

	rightID int
	prevIn  int64
	prevOut int64
}

func (c *Split) Execute() {
	if clip, ok := c.Timeline.Clip(c.ClipID); ok {
		c.prevIn = clip.InPoint
		c.prevOut = clip.OutPoint()
	}
	right := c.Timeline.SplitClip(c.ClipID, c.SplitAt)
	if right != nil {
		c.rightID = right.ID
	}
}

func (c *Split) Undo() {
	if c.rightID == 0 {
		return
	}
	c.Timeline.RemoveClip(c.rightID)
	c.rightID = 0
	_ = c.Timeline.UpdateInOut(c.ClipID, c.prevIn, c.prevOut)
}

func (c *Split) Description() string {
	return fmt.Sprintf("Split clip %d", c.ClipID)
}

package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikuu177/qt-cw-vedio/internal/manager/config"
	"github.com/Mikuu177/qt-cw-vedio/pkg/export"
	"github.com/Mikuu177/qt-cw-vedio/pkg/ffmpeg"
	"github.com/Mikuu177/qt-cw-vedio/pkg/marker"
	"github.com/Mikuu177/qt-cw-vedio/pkg/timeline"
	"github.com/Mikuu177/qt-cw-vedio/pkg/undo"
)

func testManager() *Manager {
	cfg := config.InitializeEmpty()
	return &Manager{
		Config:   cfg,
		FFMpeg:   &ffmpeg.FFMpeg{},
		FFProbe:  ffmpeg.NewFFProbe(""),
		Timeline: timeline.New(),
		Markers:  marker.NewRegistry(),
		Undo:     undo.NewStack(cfg.GetUndoDepth()),
		exports:  make(map[int]*export.Runner),
	}
}

func TestEditFacadeIsUndoable(t *testing.T) {
	mgr := testManager()

	mgr.AddClip("/media/a.mp4", 0, 5000, "")
	mgr.AddClip("/media/b.mp4", 0, 3000, "")
	require.Equal(t, 2, mgr.Timeline.ClipCount())

	require.True(t, mgr.Undo.Undo())
	assert.Equal(t, 1, mgr.Timeline.ClipCount())

	require.True(t, mgr.Undo.Redo())
	assert.Equal(t, 2, mgr.Timeline.ClipCount())
}

func TestReorderClipNoOpOnSameIndex(t *testing.T) {
	mgr := testManager()

	mgr.AddClip("/media/a.mp4", 0, 5000, "")
	id := mgr.Timeline.Clips()[0].ID

	before := mgr.Undo.CanUndo()
	mgr.ReorderClip(id, 0)

	// same-index moves push nothing new
	assert.Equal(t, before, mgr.Undo.CanUndo())
	mgr.Undo.Undo()
	assert.False(t, mgr.Undo.CanUndo())
}

func TestSplitClipAt(t *testing.T) {
	mgr := testManager()

	mgr.AddClip("/media/a.mp4", 1000, 4000, "")
	mgr.SplitClipAt(2500)

	clips := mgr.Timeline.Clips()
	require.Len(t, clips, 2)
	assert.Equal(t, int64(2500), clips[0].Duration)
	assert.Equal(t, int64(3500), clips[1].InPoint)

	// positions outside any clip do nothing
	mgr.SplitClipAt(9999)
	assert.Equal(t, 2, mgr.Timeline.ClipCount())

	// clip boundaries are not splittable
	mgr.SplitClipAt(0)
	assert.Equal(t, 2, mgr.Timeline.ClipCount())
}

func TestResolvePosition(t *testing.T) {
	mgr := testManager()

	mgr.AddClip("/media/a.mp4", 1000, 4000, "")
	mgr.AddClip("/media/b.mp4", 500, 2000, "")

	sp, ok := mgr.ResolvePosition(4500)
	require.True(t, ok)
	assert.Equal(t, "/media/b.mp4", sp.Clip.SourcePath)
	assert.Equal(t, int64(1000), sp.SourceTime)

	_, ok = mgr.ResolvePosition(6000)
	assert.False(t, ok)
}

func TestRangeSegments(t *testing.T) {
	tl := timeline.New()
	tl.AddClip("/media/a.mp4", 1000, 4000)
	tl.AddClip("/media/b.mp4", 0, 3000)

	segments := rangeSegments(tl.ClipsInRange(2000, 5000), 2000, 5000)

	require.Len(t, segments, 2)
	assert.Equal(t, export.Segment{SourcePath: "/media/a.mp4", In: 3000, Out: 5000}, segments[0])
	assert.Equal(t, export.Segment{SourcePath: "/media/b.mp4", In: 0, Out: 1000}, segments[1])
}

func TestExportRejectsWithoutTool(t *testing.T) {
	mgr := testManager()
	mgr.AddClip("/media/a.mp4", 0, 5000, "")

	_, err := mgr.Export("/out/final.mp4", export.ProfileHigh, false)
	assert.ErrorIs(t, err, export.ErrToolMissing)
}

func TestExportRejectsEmptyTimeline(t *testing.T) {
	mgr := testManager()
	mgr.FFMpeg.Configure("/usr/bin/ffmpeg")

	_, err := mgr.Export("/out/final.mp4", export.ProfileHigh, false)
	assert.ErrorIs(t, err, export.ErrNoSegments)
}

func TestCancelExportUnknownID(t *testing.T) {
	mgr := testManager()
	assert.False(t, mgr.CancelExport(42))
	assert.Empty(t, mgr.RunningExports())
}

func TestExportableDuration(t *testing.T) {
	mgr := testManager()

	mgr.AddClip("/media/a.mp4", 0, 5000, "")
	mgr.AddClip("/media/b.mp4", 0, 3000, "")

	assert.Equal(t, int64(8000), mgr.ExportableDuration(false))
	// one transition overlaps the chain by its length
	assert.Equal(t, int64(7500), mgr.ExportableDuration(true))
}

func TestMarkerFacade(t *testing.T) {
	mgr := testManager()

	mgr.AddMarker(1000, "intro", "")
	require.Equal(t, 1, mgr.Markers.Count())

	id := mgr.Markers.All()[0].ID
	mgr.MoveMarker(id, 2500)
	got, _ := mgr.Markers.Get(id)
	assert.Equal(t, int64(2500), got.Time)

	mgr.RemoveMarker(id)
	assert.Equal(t, 0, mgr.Markers.Count())

	// the whole sequence unwinds
	require.True(t, mgr.Undo.Undo())
	require.True(t, mgr.Undo.Undo())
	require.True(t, mgr.Undo.Undo())
	assert.Equal(t, 0, mgr.Markers.Count())
}

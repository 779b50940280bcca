// Package export produces a single output file from one or more trimmed
// source ranges by driving the external transcoder, reporting progress and
// terminal success or failure asynchronously.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/Mikuu177/qt-cw-vedio/pkg/ffmpeg"
	"github.com/Mikuu177/qt-cw-vedio/pkg/logger"
)

// Stage split of concatenation progress: trimming spans the first 60%, the
// concatenation pass the rest (capped at 99 until completion is confirmed).
const (
	trimStagePct   = 60
	concatStagePct = 39
)

// Event is one asynchronous notification from a running export. Progress
// events carry a percentage; the terminal event has Done set and carries
// the result. For a single job, progress values are monotonically
// non-decreasing and 100 is emitted exactly once, only after the output
// file has been confirmed on disk.
type Event struct {
	Progress int

	Done       bool
	Err        error
	OutputPath string
}

// Runner executes one export job on its own goroutine. Callers must keep a
// reference to the Runner and drain Events until the terminal event.
type Runner struct {
	job     Job
	encoder *ffmpeg.FFMpeg
	probe   *ffmpeg.FFProbe

	// tempBase is the directory temp clips are created under; empty uses
	// the system default.
	tempBase string

	events    chan Event
	ctx       context.Context
	cancelCtx context.CancelFunc
	cancelled atomic.Bool

	lastProgress int
}

func NewRunner(job Job, encoder *ffmpeg.FFMpeg, probe *ffmpeg.FFProbe, tempBase string) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		job:          job,
		encoder:      encoder,
		probe:        probe,
		tempBase:     tempBase,
		events:       make(chan Event, 128),
		ctx:          ctx,
		cancelCtx:    cancel,
		lastProgress: -1,
	}
}

// Events returns the notification channel. It is closed after the terminal
// event.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Start launches the job. It must be called at most once.
func (r *Runner) Start() {
	go r.run()
}

// Cancel requests cancellation. The child process is terminated immediately
// and the job finishes with ErrCancelled. Partially-written output and temp
// files may be left behind; cleanup is attempted but not guaranteed.
func (r *Runner) Cancel() {
	r.cancelled.Store(true)
	r.cancelCtx()
}

func (r *Runner) run() {
	defer close(r.events)
	defer r.cancelCtx()

	err := r.terminalErr(r.execute())

	if err != nil {
		logger.Errorf("[export] job failed: %v", err)
		r.events <- Event{Done: true, Err: err}
		return
	}

	r.emitProgress(100)
	r.events <- Event{Done: true, OutputPath: r.job.OutputPath}
}

// terminalErr maps a cancellation observed during a failed pipeline to
// ErrCancelled. A cancel that lands after the pipeline already succeeded
// cannot affect the verified output, so success stays success.
func (r *Runner) terminalErr(err error) error {
	if err != nil && r.cancelled.Load() {
		return ErrCancelled
	}
	return err
}

func (r *Runner) execute() error {
	if len(r.job.Segments) == 0 {
		return ErrNoSegments
	}
	if !r.encoder.Configured() {
		return ErrToolMissing
	}

	if r.job.Transitions && len(r.job.Segments) > 1 {
		td := r.job.transitionMs()
		for _, seg := range r.job.Segments {
			if seg.Duration() <= td {
				return fmt.Errorf("%w: clip %dms, transition %dms",
					ErrTransitionTooLong, seg.Duration(), td)
			}
		}
	}

	if len(r.job.Segments) == 1 {
		return r.trim()
	}
	return r.concatenate()
}

// trim handles the single-range job: one transcoder invocation straight to
// the output path, with live progress from the diagnostic stream.
func (r *Runner) trim() error {
	seg := r.job.Segments[0]
	totalSec := seg.Seconds()

	err := r.encoder.Run(r.ctx, trimArgs(seg, r.job.OutputPath, r.job.Profile.settings()), func(line string) {
		if sec, ok := ffmpeg.ParseTimeToken(line); ok {
			pct := int(sec / totalSec * 100)
			if pct > 99 {
				pct = 99
			}
			r.emitProgress(pct)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProcessFailed, err)
	}

	return r.verifyOutput(r.job.OutputPath)
}

func (r *Runner) concatenate() error {
	tempDir, err := os.MkdirTemp(r.tempBase, "qtcw-export-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	// Best-effort cleanup; a failure here must never mask the job result.
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			logger.Warnf("[export] could not remove temp directory %s: %v", tempDir, err)
		}
	}()

	tempClips, durationsSec, err := r.trimStage(tempDir)
	if err != nil {
		return err
	}

	if !r.job.Transitions || len(tempClips) <= 1 {
		if err := r.concatStage(tempDir, tempClips, durationsSec); err != nil {
			return err
		}
	} else {
		if err := r.xfadeStage(tempClips, durationsSec); err != nil {
			return err
		}
	}

	return r.verifyOutput(r.job.OutputPath)
}

// trimStage writes each segment to a temp clip, advancing progress to 60%
// apportioned per clip.
func (r *Runner) trimStage(tempDir string) ([]string, []float64, error) {
	n := len(r.job.Segments)
	settings := r.job.Profile.settings()

	tempClips := make([]string, 0, n)
	durationsSec := make([]float64, 0, n)

	for i, seg := range r.job.Segments {
		if r.cancelled.Load() {
			return nil, nil, ErrCancelled
		}

		tempClip := filepath.Join(tempDir, fmt.Sprintf("clip_%d.mp4", i))
		logger.Debugf("[export] trimming segment %d/%d (%s)", i+1, n, seg.SourcePath)

		if err := r.encoder.Run(r.ctx, trimArgs(seg, tempClip, settings), r.checkCancel); err != nil {
			return nil, nil, fmt.Errorf("trimming segment %d: %w: %v", i, ErrProcessFailed, err)
		}

		tempClips = append(tempClips, tempClip)
		durationsSec = append(durationsSec, seg.Seconds())

		r.emitProgress((i + 1) * trimStagePct / n)
	}

	return tempClips, durationsSec, nil
}

// concatStage runs the fast stream-copy concatenation over a manifest of
// the trimmed clips, spanning progress from 60% to 99%.
func (r *Runner) concatStage(tempDir string, tempClips []string, durationsSec []float64) error {
	manifest := filepath.Join(tempDir, "concat_list.txt")
	if err := writeManifest(manifest, tempClips); err != nil {
		return err
	}

	var totalSec float64
	for _, d := range durationsSec {
		totalSec += d
	}
	if totalSec < 0.01 {
		totalSec = 0.01
	}

	if err := r.runStitch(concatArgs(manifest, r.job.OutputPath), totalSec); err != nil {
		return fmt.Errorf("concatenating: %w: %v", ErrProcessFailed, err)
	}
	return nil
}

// xfadeStage re-encodes the trimmed clips through a progressive cross-fade
// chain. Audio fades are applied only when every clip carries an audio
// stream; otherwise the whole job degrades to video-only fades with audio
// stripped, never a per-clip mix.
func (r *Runner) xfadeStage(tempClips []string, durationsSec []float64) error {
	transitionSec := float64(r.job.transitionMs()) / 1000

	withAudio := lo.EveryBy(tempClips, func(clip string) bool {
		hasAudio, err := r.probe.HasAudio(r.ctx, clip)
		if err != nil {
			logger.Warnf("[export] audio probe failed for %s: %v", clip, err)
			return false
		}
		return hasAudio
	})
	if !withAudio {
		logger.Infof("[export] not all clips carry audio; using video-only transitions")
	}

	graph := buildXfadeGraph(durationsSec, transitionSec, withAudio)
	totalSec := xfadeTotalSeconds(durationsSec, transitionSec)

	if err := r.runStitch(xfadeArgs(tempClips, graph, r.job.Profile.settings(), r.job.OutputPath), totalSec); err != nil {
		return fmt.Errorf("cross-fading: %w: %v", ErrProcessFailed, err)
	}
	return nil
}

// runStitch runs the final concatenation pass, mapping elapsed time onto
// the 60-99% progress window.
func (r *Runner) runStitch(args []string, totalSec float64) error {
	return r.encoder.Run(r.ctx, args, func(line string) {
		r.checkCancel(line)
		if sec, ok := ffmpeg.ParseTimeToken(line); ok {
			frac := sec / totalSec
			if frac > 1 {
				frac = 1
			}
			r.emitProgress(trimStagePct + int(frac*concatStagePct))
		}
	})
}

func (r *Runner) checkCancel(string) {
	if r.cancelled.Load() {
		r.cancelCtx()
	}
}

// verifyOutput confirms the output exists and is non-empty. A success exit
// code with a missing or zero-byte file is a failure, not a success.
func (r *Runner) verifyOutput(path string) error {
	stat, err := os.Stat(path)
	if err != nil || stat.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrOutputMissing, path)
	}
	return nil
}

// emitProgress delivers a progress event, keeping values monotonically
// non-decreasing. Progress sends never block: if the caller is not keeping
// up, intermediate values are dropped in favor of the terminal event.
func (r *Runner) emitProgress(pct int) {
	if pct <= r.lastProgress {
		return
	}
	r.lastProgress = pct

	select {
	case r.events <- Event{Progress: pct}:
	default:
	}
}

func writeManifest(path string, clips []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating concat manifest: %w", err)
	}
	defer f.Close()

	for _, clip := range clips {
		if _, err := fmt.Fprintf(f, "file '%s'\n", clip); err != nil {
			return fmt.Errorf("writing concat manifest: %w", err)
		}
	}
	return nil
}

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikuu177/qt-cw-vedio/pkg/ffmpeg"
)

// drain collects events until the terminal one.
func drain(t *testing.T, r *Runner) (progress []int, terminal Event) {
	t.Helper()
	for ev := range r.Events() {
		if ev.Done {
			return progress, ev
		}
		progress = append(progress, ev.Progress)
	}
	t.Fatal("events channel closed without a terminal event")
	return nil, Event{}
}

func TestRunnerRejectsEmptyJob(t *testing.T) {
	encoder := &ffmpeg.FFMpeg{}
	encoder.Configure("/usr/bin/ffmpeg")

	r := NewRunner(Job{OutputPath: "/out/final.mp4"}, encoder, ffmpeg.NewFFProbe(""), "")
	r.Start()

	_, terminal := drain(t, r)
	assert.ErrorIs(t, terminal.Err, ErrNoSegments)
}

func TestRunnerRejectsMissingTool(t *testing.T) {
	job := Job{
		Segments:   []Segment{{SourcePath: "/media/a.mp4", In: 0, Out: 1000}},
		OutputPath: "/out/final.mp4",
	}

	r := NewRunner(job, &ffmpeg.FFMpeg{}, ffmpeg.NewFFProbe(""), "")
	r.Start()

	_, terminal := drain(t, r)
	assert.ErrorIs(t, terminal.Err, ErrToolMissing)
}

func TestRunnerRejectsTransitionLongerThanClip(t *testing.T) {
	encoder := &ffmpeg.FFMpeg{}
	encoder.Configure("/usr/bin/ffmpeg")

	job := Job{
		Segments: []Segment{
			{SourcePath: "/media/a.mp4", In: 0, Out: 5000},
			{SourcePath: "/media/b.mp4", In: 0, Out: 400},
		},
		OutputPath:         "/out/final.mp4",
		Transitions:        true,
		TransitionDuration: 500,
	}

	r := NewRunner(job, encoder, ffmpeg.NewFFProbe(""), "")
	r.Start()

	_, terminal := drain(t, r)
	assert.ErrorIs(t, terminal.Err, ErrTransitionTooLong)
}

func TestRunnerCancelBeforeStart(t *testing.T) {
	encoder := &ffmpeg.FFMpeg{}
	encoder.Configure("/usr/bin/ffmpeg")

	job := Job{
		Segments:   []Segment{{SourcePath: "/media/a.mp4", In: 0, Out: 1000}},
		OutputPath: filepath.Join(t.TempDir(), "final.mp4"),
	}

	r := NewRunner(job, encoder, ffmpeg.NewFFProbe(""), "")
	r.Cancel()
	r.Start()

	_, terminal := drain(t, r)
	assert.ErrorIs(t, terminal.Err, ErrCancelled)
}

func TestEmitProgressMonotonic(t *testing.T) {
	r := NewRunner(Job{}, &ffmpeg.FFMpeg{}, ffmpeg.NewFFProbe(""), "")

	r.emitProgress(10)
	r.emitProgress(5)
	r.emitProgress(10)
	r.emitProgress(60)
	close(r.events)

	var got []int
	for ev := range r.events {
		got = append(got, ev.Progress)
	}
	assert.Equal(t, []int{10, 60}, got)
}

func TestVerifyOutput(t *testing.T) {
	r := NewRunner(Job{}, &ffmpeg.FFMpeg{}, ffmpeg.NewFFProbe(""), "")

	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.mp4")
	assert.ErrorIs(t, r.verifyOutput(missing), ErrOutputMissing)

	empty := filepath.Join(dir, "empty.mp4")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	assert.ErrorIs(t, r.verifyOutput(empty), ErrOutputMissing)

	ok := filepath.Join(dir, "ok.mp4")
	require.NoError(t, os.WriteFile(ok, []byte("data"), 0644))
	assert.NoError(t, r.verifyOutput(ok))
}

// fakeTranscoder writes a stand-in transcoder script that logs its argument
// list, emits a progress line on its diagnostic stream and, when writeOutput
// is set, writes its output file (always the final argument).
func fakeTranscoder(t *testing.T, writeOutput bool) (binPath, argsLog string) {
	t.Helper()

	dir := t.TempDir()
	argsLog = filepath.Join(dir, "args.log")

	script := "#!/bin/sh\n" +
		"echo \"$@\" >> \"" + argsLog + "\"\n" +
		"printf 'time=00:00:00.50\\n' >&2\n"
	if writeOutput {
		script += "for a in \"$@\"; do out=\"$a\"; done\n" +
			"echo data > \"$out\"\n"
	}

	binPath = filepath.Join(dir, "ffmpeg")
	require.NoError(t, os.WriteFile(binPath, []byte(script), 0755))
	return binPath, argsLog
}

func TestRunnerTrimSuccess(t *testing.T) {
	bin, _ := fakeTranscoder(t, true)
	encoder := &ffmpeg.FFMpeg{}
	encoder.Configure(bin)

	out := filepath.Join(t.TempDir(), "final.mp4")
	job := Job{
		Segments:   []Segment{{SourcePath: "/media/a.mp4", In: 0, Out: 1000}},
		Profile:    ProfileHigh,
		OutputPath: out,
	}

	r := NewRunner(job, encoder, ffmpeg.NewFFProbe(""), "")
	r.Start()

	progress, terminal := drain(t, r)

	require.NoError(t, terminal.Err)
	assert.Equal(t, out, terminal.OutputPath)

	// the 0.5s token against a 1s segment lands at 50%
	assert.Contains(t, progress, 50)

	// monotonic, ending in exactly one 100
	hundreds := 0
	for i, p := range progress {
		if i > 0 {
			assert.GreaterOrEqual(t, p, progress[i-1])
		}
		if p == 100 {
			hundreds++
		}
	}
	assert.Equal(t, 1, hundreds)
	require.NotEmpty(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1])
}

func TestRunnerSuccessExitWithoutOutputFails(t *testing.T) {
	bin, _ := fakeTranscoder(t, false)
	encoder := &ffmpeg.FFMpeg{}
	encoder.Configure(bin)

	job := Job{
		Segments:   []Segment{{SourcePath: "/media/a.mp4", In: 0, Out: 1000}},
		Profile:    ProfileHigh,
		OutputPath: filepath.Join(t.TempDir(), "final.mp4"),
	}

	r := NewRunner(job, encoder, ffmpeg.NewFFProbe(""), "")
	r.Start()

	progress, terminal := drain(t, r)

	// a clean exit without a file on disk is a failure, and 100 is never
	// reported for it
	assert.ErrorIs(t, terminal.Err, ErrOutputMissing)
	assert.NotContains(t, progress, 100)
	assert.Empty(t, terminal.OutputPath)
}

func TestRunnerTransitionsDegradeWithoutProbe(t *testing.T) {
	bin, argsLog := fakeTranscoder(t, true)
	encoder := &ffmpeg.FFMpeg{}
	encoder.Configure(bin)

	out := filepath.Join(t.TempDir(), "final.mp4")
	job := Job{
		Segments: []Segment{
			{SourcePath: "/media/a.mp4", In: 0, Out: 1000},
			{SourcePath: "/media/b.mp4", In: 0, Out: 1000},
		},
		Profile:            ProfileMedium,
		OutputPath:         out,
		Transitions:        true,
		TransitionDuration: 200,
	}

	// an unconfigured probe cannot confirm audio, so the whole job must
	// degrade to video-only fades instead of failing
	r := NewRunner(job, encoder, ffmpeg.NewFFProbe(""), "")
	r.Start()

	_, terminal := drain(t, r)
	require.NoError(t, terminal.Err)
	assert.Equal(t, out, terminal.OutputPath)

	data, err := os.ReadFile(argsLog)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	// two trim passes, then the cross-fade pass
	require.Len(t, lines, 3)
	final := lines[len(lines)-1]
	assert.Contains(t, final, "-filter_complex")
	assert.Contains(t, final, "xfade=")
	assert.Contains(t, final, "-an")
	assert.NotContains(t, final, "acrossfade")
	assert.NotContains(t, final, "-c:a")
}

func TestTerminalErr(t *testing.T) {
	r := NewRunner(Job{}, &ffmpeg.FFMpeg{}, ffmpeg.NewFFProbe(""), "")

	assert.NoError(t, r.terminalErr(nil))
	assert.ErrorIs(t, r.terminalErr(ErrProcessFailed), ErrProcessFailed)

	// a cancel observed during a failed pipeline wins over the raw error,
	// but cannot rewrite a success that already has output on disk
	r.cancelled.Store(true)
	assert.ErrorIs(t, r.terminalErr(ErrProcessFailed), ErrCancelled)
	assert.NoError(t, r.terminalErr(nil))
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concat_list.txt")

	require.NoError(t, writeManifest(path, []string{"/tmp/clip_0.mp4", "/tmp/clip_1.mp4"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file '/tmp/clip_0.mp4'\nfile '/tmp/clip_1.mp4'\n", string(data))
}

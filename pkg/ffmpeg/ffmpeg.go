// Package ffmpeg provides a wrapper around the ffmpeg and ffprobe
// executables.
package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var ErrFFMpegUnconfigured = errors.New("ffmpeg not configured")

// FindFFMpeg locates ffmpeg on the system PATH. Returns an empty string if
// it is not installed.
func FindFFMpeg() string {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return ""
	}
	return path
}

// FindFFProbe locates ffprobe on the system PATH. Returns an empty string if
// it is not installed.
func FindFFProbe() string {
	path, err := exec.LookPath("ffprobe")
	if err != nil {
		return ""
	}
	return path
}

// FFMpeg provides an interface to ffmpeg.
type FFMpeg struct {
	ffmpeg string
}

func (f *FFMpeg) Configure(path string) {
	f.ffmpeg = path
}

// Configured returns whether an ffmpeg executable has been set.
func (f *FFMpeg) Configured() bool {
	return f.ffmpeg != ""
}

func (f *FFMpeg) ensureConfigured() error {
	if f.ffmpeg == "" {
		return ErrFFMpegUnconfigured
	}
	return nil
}

// Returns an exec.Cmd that can be used to run ffmpeg using args.
func (f *FFMpeg) command(ctx context.Context, args []string) *exec.Cmd {
	return exec.CommandContext(ctx, f.ffmpeg, args...)
}

// stderrTailSize bounds how much diagnostic output is retained for error
// reporting.
const stderrTailSize = 20

// Run executes ffmpeg with the given args and waits for it to finish.
// Every line of the process's stderr - ffmpeg's progress side channel - is
// passed to onLine as it arrives. On failure the returned error includes the
// tail of the diagnostic output.
func (f *FFMpeg) Run(ctx context.Context, args []string, onLine func(line string)) error {
	if err := f.ensureConfigured(); err != nil {
		return err
	}

	cmd := f.command(ctx, args)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("error creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error starting command: %w", err)
	}

	var tail []string
	scanner := bufio.NewScanner(stderr)
	scanner.Split(scanLinesCR)
	for scanner.Scan() {
		line := scanner.Text()
		tail = append(tail, line)
		if len(tail) > stderrTailSize {
			tail = tail[1:]
		}
		if onLine != nil {
			onLine(line)
		}
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("error running ffmpeg command <%s>: %w: %s",
			strings.Join(args, " "), err, strings.Join(tail, "\n"))
	}

	return nil
}

// scanLinesCR splits on both \n and \r, since ffmpeg rewrites its progress
// line with carriage returns.
func scanLinesCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		if b == '\n' || b == '\r' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

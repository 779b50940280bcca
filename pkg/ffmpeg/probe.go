package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	lru "github.com/hashicorp/golang-lru"
	"github.com/samber/lo"
)

var ErrFFProbeUnconfigured = errors.New("ffprobe not configured")

// ErrNoDuration is returned when no probing strategy could determine a
// container duration.
var ErrNoDuration = errors.New("no duration in probe result")

const probeCacheSize = 64

// ProbeStream is one stream entry of ffprobe's JSON output.
type ProbeStream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	Duration   string `json:"duration"`
	BitRate    string `json:"bit_rate"`
	Channels   int    `json:"channels"`
}

// ProbeResult is the decoded output of an ffprobe run.
type ProbeResult struct {
	Streams []ProbeStream `json:"streams"`
	Format  struct {
		Filename   string `json:"filename"`
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
}

// HasAudio returns whether any audio stream is present.
func (r *ProbeResult) HasAudio() bool {
	return lo.SomeBy(r.Streams, func(s ProbeStream) bool {
		return s.CodecType == "audio"
	})
}

// HasVideo returns whether any video stream is present.
func (r *ProbeResult) HasVideo() bool {
	return lo.SomeBy(r.Streams, func(s ProbeStream) bool {
		return s.CodecType == "video"
	})
}

// FFProbe provides an interface to the ffprobe executable. Probe results
// are cached per path, since the same sources are probed repeatedly during
// editing and export.
type FFProbe struct {
	ffprobe string
	cache   *lru.Cache
}

func NewFFProbe(path string) *FFProbe {
	cache, _ := lru.New(probeCacheSize)
	return &FFProbe{ffprobe: path, cache: cache}
}

func (f *FFProbe) Configure(path string) {
	f.ffprobe = path
}

// Configured returns whether an ffprobe executable has been set.
func (f *FFProbe) Configured() bool {
	return f.ffprobe != ""
}

// Probe returns stream and format information for the given media file.
func (f *FFProbe) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	if f.ffprobe == "" {
		return nil, ErrFFProbeUnconfigured
	}

	if f.cache != nil {
		if cached, ok := f.cache.Get(path); ok {
			return cached.(*ProbeResult), nil
		}
	}

	cmd := exec.CommandContext(ctx, f.ffprobe,
		"-hide_banner",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("error running ffprobe on %s: %w", path, err)
	}

	result, err := parseProbeOutput(out)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Add(path, result)
	}
	return result, nil
}

// Duration returns the container duration in milliseconds. The value is
// taken from the first probing strategy that yields one: the container
// format, then the first video stream, then any stream.
func (f *FFProbe) Duration(ctx context.Context, path string) (int64, error) {
	result, err := f.Probe(ctx, path)
	if err != nil {
		return 0, err
	}

	sec, ok := durationSeconds(result)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoDuration, path)
	}
	return int64(sec * 1000), nil
}

// HasAudio returns whether the file carries an audio stream.
func (f *FFProbe) HasAudio(ctx context.Context, path string) (bool, error) {
	result, err := f.Probe(ctx, path)
	if err != nil {
		return false, err
	}
	return result.HasAudio(), nil
}

func parseProbeOutput(data []byte) (*ProbeResult, error) {
	var result ProbeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("error parsing ffprobe output: %w", err)
	}
	return &result, nil
}

// durationSeconds tries each duration source in priority order.
func durationSeconds(r *ProbeResult) (float64, bool) {
	strategies := []func() (float64, bool){
		func() (float64, bool) {
			return parseSeconds(r.Format.Duration)
		},
		func() (float64, bool) {
			for _, s := range r.Streams {
				if s.CodecType == "video" {
					return parseSeconds(s.Duration)
				}
			}
			return 0, false
		},
		func() (float64, bool) {
			for _, s := range r.Streams {
				if sec, ok := parseSeconds(s.Duration); ok {
					return sec, true
				}
			}
			return 0, false
		},
	}

	for _, strategy := range strategies {
		if sec, ok := strategy(); ok {
			return sec, true
		}
	}
	return 0, false
}

func parseSeconds(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil || sec <= 0 {
		return 0, false
	}
	return sec, true
}

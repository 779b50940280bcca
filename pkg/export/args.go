package export

import (
	"strconv"
)

// formatSeconds renders a millisecond value as fractional seconds for
// ffmpeg arguments.
func formatSeconds(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64)
}

// trimArgs builds the ffmpeg arguments that trim one segment to output,
// re-encoding with the given quality settings.
func trimArgs(seg Segment, output string, s profileSettings) []string {
	args := []string{
		"-i", seg.SourcePath,
		"-ss", formatSeconds(seg.In),
		"-t", formatSeconds(seg.Duration()),
		"-c:v", "libx264",
		"-crf", s.CRF,
		"-preset", s.Preset,
		"-c:a", "aac",
		"-b:a", s.AudioBitrate,
	}

	if s.Scale != "" {
		args = append(args, "-vf", "scale="+s.Scale)
	}

	args = append(args, "-y", output)
	return args
}

// concatArgs builds the ffmpeg arguments for the fast stream-copy
// concatenation of already-trimmed clips listed in the manifest.
func concatArgs(manifest, output string) []string {
	return []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		"-y", output,
	}
}

// xfadeArgs builds the ffmpeg arguments for the cross-fade concatenation of
// the given inputs using a prebuilt filter graph.
func xfadeArgs(inputs []string, graph xfadeGraph, s profileSettings, output string) []string {
	var args []string
	for _, in := range inputs {
		args = append(args, "-i", in)
	}

	args = append(args,
		"-filter_complex", graph.Filter,
		"-map", graph.VideoLabel,
	)

	if graph.AudioLabel != "" {
		args = append(args, "-map", graph.AudioLabel, "-c:a", "aac", "-b:a", s.AudioBitrate)
	} else {
		args = append(args, "-an")
	}

	args = append(args,
		"-c:v", "libx264",
		"-crf", s.CRF,
		"-preset", s.Preset,
		"-y", output,
	)
	return args
}

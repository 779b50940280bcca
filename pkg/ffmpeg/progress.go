package ffmpeg

import (
	"regexp"
	"strconv"
)

// timeTokenRE matches the elapsed-encoded-time token ffmpeg writes on its
// progress line, e.g. "time=00:01:23.45".
var timeTokenRE = regexp.MustCompile(`time=(\d+):(\d+):(\d+(?:\.\d+)?)`)

// ParseTimeToken extracts the elapsed time in seconds from a line of ffmpeg
// diagnostic output. This token is the sole progress signal consumed from
// the process.
func ParseTimeToken(line string) (float64, bool) {
	m := timeTokenRE.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}

	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	ss, _ := strconv.ParseFloat(m[3], 64)

	return float64(hh)*3600 + float64(mm)*60 + ss, true
}

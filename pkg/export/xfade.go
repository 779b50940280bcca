package export

import (
	"fmt"
	"strconv"
	"strings"
)

// xfadeGraph is a progressive cross-fade filter chain. AudioLabel is empty
// when the job degrades to video-only fades.
type xfadeGraph struct {
	Filter     string
	VideoLabel string
	AudioLabel string
}

// buildXfadeGraph chains clip i into the accumulated output with an xfade
// (and acrossfade when withAudio is set). Each fade's offset is the running
// total of durations so far minus the transition length; every fade shortens
// the running total by the transition length.
func buildXfadeGraph(durationsSec []float64, transitionSec float64, withAudio bool) xfadeGraph {
	var lines []string

	outV := "[0:v]"
	outA := "[0:a]"
	acc := durationsSec[0]

	td := strconv.FormatFloat(transitionSec, 'f', -1, 64)

	for i := 1; i < len(durationsSec); i++ {
		offset := acc - transitionSec
		if offset < 0 {
			offset = 0
		}

		vLabel := fmt.Sprintf("[v%d]", i)
		lines = append(lines, fmt.Sprintf("%s[%d:v]xfade=transition=fade:duration=%s:offset=%s%s",
			outV, i, td, strconv.FormatFloat(offset, 'f', -1, 64), vLabel))
		outV = vLabel

		if withAudio {
			aLabel := fmt.Sprintf("[a%d]", i)
			lines = append(lines, fmt.Sprintf("%s[%d:a]acrossfade=d=%s:c1=tri:c2=tri%s",
				outA, i, td, aLabel))
			outA = aLabel
		}

		acc += durationsSec[i] - transitionSec
	}

	g := xfadeGraph{
		Filter:     strings.Join(lines, ";"),
		VideoLabel: outV,
	}
	if withAudio {
		g.AudioLabel = outA
	}
	return g
}

// xfadeTotalSeconds is the output duration of a cross-faded concatenation:
// every transition overlaps the chain by its length.
func xfadeTotalSeconds(durationsSec []float64, transitionSec float64) float64 {
	var total float64
	for _, d := range durationsSec {
		total += d
	}
	total -= transitionSec * float64(len(durationsSec)-1)
	if total < 0.01 {
		total = 0.01
	}
	return total
}

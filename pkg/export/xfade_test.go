package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildXfadeGraphTwoClips(t *testing.T) {
	g := buildXfadeGraph([]float64{5, 3}, 0.5, true)

	assert.Equal(t,
		"[0:v][1:v]xfade=transition=fade:duration=0.5:offset=4.5[v1];"+
			"[0:a][1:a]acrossfade=d=0.5:c1=tri:c2=tri[a1]",
		g.Filter)
	assert.Equal(t, "[v1]", g.VideoLabel)
	assert.Equal(t, "[a1]", g.AudioLabel)
}

func TestBuildXfadeGraphOffsetsAccumulate(t *testing.T) {
	// each fade shortens the running total by the transition length, so the
	// second offset is 5 + 3 - 2*0.5 = 7
	g := buildXfadeGraph([]float64{5, 3, 4}, 0.5, false)

	assert.Equal(t,
		"[0:v][1:v]xfade=transition=fade:duration=0.5:offset=4.5[v1];"+
			"[v1][2:v]xfade=transition=fade:duration=0.5:offset=7[v2]",
		g.Filter)
	assert.Equal(t, "[v2]", g.VideoLabel)
	assert.Equal(t, "", g.AudioLabel)
}

func TestBuildXfadeGraphOffsetNeverNegative(t *testing.T) {
	g := buildXfadeGraph([]float64{0.2, 3}, 0.5, false)

	assert.Contains(t, g.Filter, "offset=0[v1]")
}

func TestXfadeTotalSeconds(t *testing.T) {
	assert.InDelta(t, 11, xfadeTotalSeconds([]float64{5, 3, 4}, 0.5), 1e-9)
	assert.InDelta(t, 7.5, xfadeTotalSeconds([]float64{5, 3}, 0.5), 1e-9)

	// degenerate totals floor at a small positive value
	assert.InDelta(t, 0.01, xfadeTotalSeconds([]float64{0.1, 0.1}, 1), 1e-9)
}

func TestParseProfileFallsBackToHigh(t *testing.T) {
	assert.Equal(t, ProfileHigh, ParseProfile("high"))
	assert.Equal(t, ProfileMedium, ParseProfile("medium"))
	assert.Equal(t, ProfileLow, ParseProfile("low"))
	assert.Equal(t, ProfileHigh, ParseProfile("ultra"))
	assert.Equal(t, ProfileHigh, ParseProfile(""))
}

func TestProfileSettings(t *testing.T) {
	high := ProfileHigh.settings()
	assert.Equal(t, "18", high.CRF)
	assert.Equal(t, "", high.Scale)

	low := ProfileLow.settings()
	assert.Equal(t, "28", low.CRF)
	assert.Equal(t, "854:480", low.Scale)

	// unknown profiles encode as high
	assert.Equal(t, high, Profile("nope").settings())
}

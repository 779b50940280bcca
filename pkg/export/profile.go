package export

// Profile names a bundle of encoding parameters. The set is closed; unknown
// names fall back to ProfileHigh.
type Profile string

const (
	ProfileHigh   Profile = "high"
	ProfileMedium Profile = "medium"
	ProfileLow    Profile = "low"
)

// profileSettings are the encoder parameters behind a quality profile.
type profileSettings struct {
	// CRF is the constant-quality factor (lower is better).
	CRF string
	// Preset is the encoder speed preset.
	Preset string
	// Scale caps the output resolution; empty keeps the source resolution.
	Scale string
	// AudioBitrate is the audio encoding bitrate.
	AudioBitrate string
}

var profiles = map[Profile]profileSettings{
	ProfileHigh: {
		CRF:          "18",
		Preset:       "medium",
		Scale:        "",
		AudioBitrate: "192k",
	},
	ProfileMedium: {
		CRF:          "23",
		Preset:       "medium",
		Scale:        "1280:720",
		AudioBitrate: "128k",
	},
	ProfileLow: {
		CRF:          "28",
		Preset:       "fast",
		Scale:        "854:480",
		AudioBitrate: "96k",
	},
}

// ParseProfile maps a profile name to a Profile, falling back to
// ProfileHigh for anything unknown.
func ParseProfile(name string) Profile {
	p := Profile(name)
	if _, ok := profiles[p]; !ok {
		return ProfileHigh
	}
	return p
}

func (p Profile) settings() profileSettings {
	s, ok := profiles[p]
	if !ok {
		return profiles[ProfileHigh]
	}
	return s
}

func (p Profile) String() string {
	return string(p)
}

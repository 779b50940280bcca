package build

import "fmt"

// Set at build time via -ldflags.
var (
	version    = "v0.1.0"
	buildstamp = ""
	githash    = ""
)

func Version() (string, string, string) {
	return version, githash, buildstamp
}

func VersionString() string {
	versionString := version
	if githash != "" {
		versionString += fmt.Sprintf(" (%s)", githash)
	}
	if buildstamp != "" {
		versionString += fmt.Sprintf(" - %s", buildstamp)
	}
	return versionString
}

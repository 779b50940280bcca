// Package marker manages time-point annotations used for navigation. Markers
// are independent of clips and are never clamped to a clip's range.
package marker

// Marker is a point annotation at a time on the program. Time is in
// milliseconds; Color is a hex tag of the form #RRGGBB.
type Marker struct {
	ID    int    `json:"id"`
	Time  int64  `json:"time_ms"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Preset marker colors, cycled through when no color is given.
const (
	ColorRed    = "#FF0000"
	ColorBlue   = "#0000FF"
	ColorGreen  = "#00FF00"
	ColorYellow = "#FFFF00"
	ColorOrange = "#FF8800"
	ColorPurple = "#8800FF"
	ColorCyan   = "#00FFFF"
	ColorPink   = "#FF00FF"
)

var defaultColors = []string{
	ColorRed,
	ColorBlue,
	ColorGreen,
	ColorYellow,
	ColorOrange,
	ColorPurple,
	ColorCyan,
	ColorPink,
}

// Listener receives change notifications from a Registry. Notifications are
// fired synchronously at the point of mutation.
type Listener interface {
	MarkerAdded(m Marker)
	MarkerRemoved(id int)
	MarkerModified(m Marker)
	MarkersCleared()
}

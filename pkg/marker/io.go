package marker

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Export serializes all markers to JSON for saving alongside a project.
func (r *Registry) Export() ([]byte, error) {
	return json.Marshal(r.markers)
}

// Import replaces the registry contents with markers decoded from data.
// Imported ids are preserved and the id counter advances past the largest.
func (r *Registry) Import(data []byte) error {
	var markers []Marker
	if err := json.Unmarshal(data, &markers); err != nil {
		return err
	}

	r.Clear()
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Time < markers[j].Time
	})
	r.markers = markers

	for _, m := range markers {
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
		for _, l := range r.listeners {
			l.MarkerAdded(m)
		}
	}
	return nil
}

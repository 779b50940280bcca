package marker

import (
	"fmt"

	"github.com/Mikuu177/qt-cw-vedio/pkg/logger"
)

// DefaultTolerance is the search window used by At when looking up the
// marker nearest to a time.
const DefaultTolerance int64 = 500

// Registry holds markers sorted by time. Like the timeline, it is
// single-writer and not safe for concurrent mutation.
type Registry struct {
	markers    []Marker
	nextID     int
	colorIndex int
	listeners  []Listener
}

func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// AddListener registers l for change notifications.
func (r *Registry) AddListener(l Listener) {
	r.listeners = append(r.listeners, l)
}

// Add creates a marker at the given time. An empty label defaults to
// "Marker N"; an empty color takes the next color in the preset cycle.
func (r *Registry) Add(time int64, label, color string) Marker {
	if label == "" {
		label = fmt.Sprintf("Marker %d", r.nextID)
	}
	if color == "" {
		color = defaultColors[r.colorIndex%len(defaultColors)]
		r.colorIndex++
	}

	m := Marker{
		ID:    r.nextID,
		Time:  time,
		Label: label,
		Color: color,
	}
	r.nextID++

	r.insertSorted(m)
	for _, l := range r.listeners {
		l.MarkerAdded(m)
	}

	logger.Debugf("[markers] added marker %d (%s) at %dms", m.ID, m.Label, m.Time)
	return m
}

// Remove deletes the marker with the given id. Returns false if not found.
func (r *Registry) Remove(id int) bool {
	for i, m := range r.markers {
		if m.ID == id {
			r.markers = append(r.markers[:i], r.markers[i+1:]...)
			for _, l := range r.listeners {
				l.MarkerRemoved(id)
			}
			logger.Debugf("[markers] removed marker %d", m.ID)
			return true
		}
	}
	return false
}

// Get returns a copy of the marker with the given id.
func (r *Registry) Get(id int) (Marker, bool) {
	for _, m := range r.markers {
		if m.ID == id {
			return m, true
		}
	}
	return Marker{}, false
}

// At returns the marker nearest to time within the given tolerance.
// A tolerance <= 0 uses DefaultTolerance.
func (r *Registry) At(time, tolerance int64) (Marker, bool) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var nearest Marker
	found := false
	var best int64
	for _, m := range r.markers {
		d := m.Time - time
		if d < 0 {
			d = -d
		}
		if d <= tolerance && (!found || d < best) {
			nearest = m
			best = d
			found = true
		}
	}
	return nearest, found
}

// Next returns the first marker strictly after time.
func (r *Registry) Next(time int64) (Marker, bool) {
	for _, m := range r.markers {
		if m.Time > time {
			return m, true
		}
	}
	return Marker{}, false
}

// Previous returns the last marker strictly before time.
func (r *Registry) Previous(time int64) (Marker, bool) {
	for i := len(r.markers) - 1; i >= 0; i-- {
		if r.markers[i].Time < time {
			return r.markers[i], true
		}
	}
	return Marker{}, false
}

// UpdateLabel renames a marker.
func (r *Registry) UpdateLabel(id int, label string) bool {
	return r.update(id, func(m *Marker) { m.Label = label })
}

// UpdateColor recolors a marker.
func (r *Registry) UpdateColor(id int, color string) bool {
	return r.update(id, func(m *Marker) { m.Color = color })
}

// UpdateTime moves a marker to a new time, keeping the list sorted.
func (r *Registry) UpdateTime(id int, time int64) bool {
	for i, m := range r.markers {
		if m.ID == id {
			r.markers = append(r.markers[:i], r.markers[i+1:]...)
			m.Time = time
			r.insertSorted(m)
			for _, l := range r.listeners {
				l.MarkerModified(m)
			}
			return true
		}
	}
	return false
}

// All returns a copy of the marker list sorted by time.
func (r *Registry) All() []Marker {
	out := make([]Marker, len(r.markers))
	copy(out, r.markers)
	return out
}

// InRange returns all markers with start <= Time <= end.
func (r *Registry) InRange(start, end int64) []Marker {
	var out []Marker
	for _, m := range r.markers {
		if m.Time >= start && m.Time <= end {
			out = append(out, m)
		}
	}
	return out
}

// Clear removes every marker and resets the id counter and color cycle.
func (r *Registry) Clear() {
	r.markers = nil
	r.nextID = 1
	r.colorIndex = 0
	for _, l := range r.listeners {
		l.MarkersCleared()
	}
}

// Count returns the number of markers.
func (r *Registry) Count() int {
	return len(r.markers)
}

func (r *Registry) update(id int, fn func(*Marker)) bool {
	for i := range r.markers {
		if r.markers[i].ID == id {
			fn(&r.markers[i])
			for _, l := range r.listeners {
				l.MarkerModified(r.markers[i])
			}
			return true
		}
	}
	return false
}

func (r *Registry) insertSorted(m Marker) {
	idx := 0
	for i, existing := range r.markers {
		if existing.Time > m.Time {
			break
		}
		idx = i + 1
	}
	r.markers = append(r.markers[:idx], append([]Marker{m}, r.markers[idx:]...)...)
}

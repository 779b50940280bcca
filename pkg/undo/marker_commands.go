package undo

import (
	"fmt"

	"github.com/Mikuu177/qt-cw-vedio/pkg/marker"
)

// AddMarker places a marker. Undo removes it.
type AddMarker struct {
	Registry *marker.Registry
	Time     int64
	Label    string
	Color    string

	markerID int
}

func (c *AddMarker) Execute() {
	m := c.Registry.Add(c.Time, c.Label, c.Color)
	c.markerID = m.ID
}

func (c *AddMarker) Undo() {
	if c.markerID != 0 {
		c.Registry.Remove(c.markerID)
	}
}

func (c *AddMarker) Description() string {
	return fmt.Sprintf("Add marker at %dms", c.Time)
}

// RemoveMarker removes a marker, capturing its fields for undo.
type RemoveMarker struct {
	Registry *marker.Registry
	MarkerID int

	captured *marker.Marker
}

func (c *RemoveMarker) Execute() {
	if m, ok := c.Registry.Get(c.MarkerID); ok {
		snapshot := m
		c.captured = &snapshot
	}
	c.Registry.Remove(c.MarkerID)
}

func (c *RemoveMarker) Undo() {
	if c.captured == nil {
		return
	}
	m := c.Registry.Add(c.captured.Time, c.captured.Label, c.captured.Color)
	c.MarkerID = m.ID
}

func (c *RemoveMarker) Description() string {
	return fmt.Sprintf("Remove marker %d", c.MarkerID)
}

// MoveMarker changes a marker's time.
type MoveMarker struct {
	Registry *marker.Registry
	MarkerID int
	NewTime  int64

	prevTime int64
	captured bool
}

func (c *MoveMarker) Execute() {
	if m, ok := c.Registry.Get(c.MarkerID); ok && !c.captured {
		c.prevTime = m.Time
		c.captured = true
	}
	c.Registry.UpdateTime(c.MarkerID, c.NewTime)
}

func (c *MoveMarker) Undo() {
	if !c.captured {
		return
	}
	c.Registry.UpdateTime(c.MarkerID, c.prevTime)
}

func (c *MoveMarker) Description() string {
	return fmt.Sprintf("Move marker %d", c.MarkerID)
}

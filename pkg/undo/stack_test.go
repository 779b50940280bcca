package undo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCommand tracks a value so tests can observe execute/undo ordering.
type countingCommand struct {
	value *int
	delta int
	name  string
}

func (c *countingCommand) Execute()            { *c.value += c.delta }
func (c *countingCommand) Undo()               { *c.value -= c.delta }
func (c *countingCommand) Description() string { return c.name }

func TestDoExecutesAndPushes(t *testing.T) {
	s := NewStack(0)
	value := 0

	s.Do(&countingCommand{value: &value, delta: 1, name: "one"})

	assert.Equal(t, 1, value)
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, "one", s.UndoDescription())
}

func TestUndoRedo(t *testing.T) {
	s := NewStack(0)
	value := 0

	s.Do(&countingCommand{value: &value, delta: 1, name: "one"})
	s.Do(&countingCommand{value: &value, delta: 10, name: "ten"})

	require.True(t, s.Undo())
	assert.Equal(t, 1, value)
	assert.Equal(t, "ten", s.RedoDescription())

	require.True(t, s.Redo())
	assert.Equal(t, 11, value)
	assert.False(t, s.CanRedo())
}

func TestUndoRedoOnEmptyStack(t *testing.T) {
	s := NewStack(0)

	assert.False(t, s.Undo())
	assert.False(t, s.Redo())
	assert.Equal(t, "", s.UndoDescription())
	assert.Equal(t, "", s.RedoDescription())
}

func TestDoClearsRedoHistory(t *testing.T) {
	s := NewStack(0)
	value := 0

	s.Do(&countingCommand{value: &value, delta: 1, name: "one"})
	require.True(t, s.Undo())
	require.True(t, s.CanRedo())

	s.Do(&countingCommand{value: &value, delta: 100, name: "hundred"})

	assert.False(t, s.CanRedo())
	assert.Equal(t, 100, value)
}

func TestDepthEvictsOldest(t *testing.T) {
	s := NewStack(3)
	value := 0

	for i := 0; i < 5; i++ {
		s.Do(&countingCommand{value: &value, delta: 1, name: fmt.Sprintf("cmd %d", i)})
	}

	undone := 0
	for s.Undo() {
		undone++
	}
	assert.Equal(t, 3, undone)
	// the two evicted commands stay applied
	assert.Equal(t, 2, value)
}

func TestOnChangeFires(t *testing.T) {
	s := NewStack(0)
	value := 0

	fired := 0
	s.OnChange = func() { fired++ }

	s.Do(&countingCommand{value: &value, delta: 1})
	s.Undo()
	s.Redo()
	s.Clear()

	assert.Equal(t, 4, fired)
}

func TestClear(t *testing.T) {
	s := NewStack(0)
	value := 0

	s.Do(&countingCommand{value: &value, delta: 1})
	s.Undo()
	s.Clear()

	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	// Clear drops history without reverting state
	assert.Equal(t, 0, value)
}

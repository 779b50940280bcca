// Package undo implements the reversible-command engine used for editing
// operations. Models stay history-free; every undoable mutation goes through
// a Stack as a Command.
package undo

import (
	"github.com/Mikuu177/qt-cw-vedio/pkg/logger"
)

// DefaultMaxDepth bounds the undo history when no explicit depth is given.
const DefaultMaxDepth = 100

// Command is a reversible action. Execute must be safe to call again after
// Undo, since redo re-executes. Undo is expected not to fail: commands whose
// captured entity has since vanished must treat Undo as a silent no-op.
type Command interface {
	Execute()
	Undo()
	Description() string
}

// Stack holds the undo and redo histories. The undo history is bounded;
// the oldest entry drops silently when the bound is exceeded.
type Stack struct {
	undo     []Command
	redo     []Command
	maxDepth int

	// OnChange, when set, is called after every state transition. Used to
	// drive menu enablement.
	OnChange func()
}

func NewStack(maxDepth int) *Stack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Stack{maxDepth: maxDepth}
}

// Do executes the command and pushes it onto the undo history. Any redo
// history is cleared unconditionally: redo entries are only valid against
// the exact state they branched from.
func (s *Stack) Do(cmd Command) {
	cmd.Execute()

	s.undo = append(s.undo, cmd)
	if len(s.undo) > s.maxDepth {
		s.undo = s.undo[1:]
	}
	s.redo = nil

	s.notify()
	logger.Debugf("[undo] executed: %s", cmd.Description())
}

// Undo reverses the most recent command. Returns false when the history is
// empty.
func (s *Stack) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}

	cmd := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	cmd.Undo()
	s.redo = append(s.redo, cmd)

	s.notify()
	logger.Debugf("[undo] undone: %s", cmd.Description())
	return true
}

// Redo re-executes the most recently undone command. Returns false when
// there is nothing to redo.
func (s *Stack) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}

	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	cmd.Execute()
	s.undo = append(s.undo, cmd)

	s.notify()
	logger.Debugf("[undo] redone: %s", cmd.Description())
	return true
}

func (s *Stack) CanUndo() bool {
	return len(s.undo) > 0
}

func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// UndoDescription returns the description of the next command to undo.
func (s *Stack) UndoDescription() string {
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].Description()
}

// RedoDescription returns the description of the next command to redo.
func (s *Stack) RedoDescription() string {
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].Description()
}

// Clear drops both histories.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
	s.notify()
}

func (s *Stack) notify() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

package ast

import "github.com/agenthands/ntac/pkg/tac"

// Labeler hands out jump labels that are unique within one compilation.
type Labeler struct {
	next tac.Label
}

// New returns the next unused label.
func (l *Labeler) New() tac.Label {
	lb := l.next
	l.next++
	return lb
}

// Count returns how many labels have been handed out.
func (l *Labeler) Count() int { return int(l.next) }

// Reset restarts numbering at __0.
func (l *Labeler) Reset() { l.next = 0 }

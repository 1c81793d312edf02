package models

import "go.uber.org/atomic"

type IDGenerator interface {
	Next() int64
}

// Sequence hands out process-local ids starting at 1. It is not persisted,
// so ids repeat after a restart.
type Sequence struct {
	last atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Next() int64 {
	return s.last.Inc()
}

// Current returns the last id handed out, 0 if none.
func (s *Sequence) Current() int64 {
	return s.last.Load()
}

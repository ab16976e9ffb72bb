package scenario

// Sequence steps through the scenes of a sequence setup.
type Sequence struct {
	steps []Setup
	index int
}

// NewSequence returns a sequence over steps, positioned before the first.
func NewSequence(steps []Setup) *Sequence {
	return &Sequence{steps: steps, index: -1}
}

// IsSequence reports whether s describes a sequence rather than a scene.
func IsSequence(s *Setup) bool {
	if s == nil {
		return false
	}
	t := s.ScenarioType
	if t == "" {
		t = s.Type
	}
	return ParseMode(t) == ModeSequence
}

// Next advances to the next step. It returns false once the sequence
// has run past its last step.
func (q *Sequence) Next() (*Setup, bool) {
	if q == nil || q.index >= len(q.steps) {
		return nil, false
	}
	q.index++
	if q.index >= len(q.steps) {
		return nil, false
	}
	return &q.steps[q.index], true
}

// Active reports whether a step is currently playing.
func (q *Sequence) Active() bool {
	return q != nil && q.index >= 0 && q.index < len(q.steps)
}

// Index returns the zero-based current step.
func (q *Sequence) Index() int { return q.index }

// Len returns the number of steps.
func (q *Sequence) Len() int { return len(q.steps) }

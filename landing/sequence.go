package landing

// Step is one action of a Sequence. It returns a future to wait on, or nil to
// continue immediately.
type Step func() *Future

// Do wraps an immediate action.
func Do(fn func()) Step {
	return func() *Future {
		fn()
		return nil
	}
}

// Await wraps an action that starts something and waits for it.
func Await(fn func() *Future) Step {
	return Step(fn)
}

// Sequence runs steps in order on the frame loop. Update runs every step it
// can and stops at the first unresolved future; the next Update picks up once
// that future has resolved. A future that resolves with an error ends the
// sequence with that error.
type Sequence struct {
	steps   []Step
	next    int
	waiting *Future
	done    bool
	err     error
}

func NewSequence(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

// Update advances the sequence as far as possible.
func (s *Sequence) Update() {
	for !s.done {
		if s.waiting != nil {
			if !s.waiting.Done() {
				return
			}
			err := s.waiting.Err()
			s.waiting = nil
			if err != nil {
				s.finish(err)
				return
			}
		}
		if s.next >= len(s.steps) {
			s.finish(nil)
			return
		}
		step := s.steps[s.next]
		s.next++
		s.waiting = step()
	}
}

func (s *Sequence) finish(err error) {
	s.done = true
	s.err = err
}

// Done reports whether every step has run or the sequence failed.
func (s *Sequence) Done() bool { return s.done }

func (s *Sequence) Err() error { return s.err }

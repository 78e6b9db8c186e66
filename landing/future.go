package landing

// Future is the completion handle of a transition. It resolves exactly once;
// later resolve calls are ignored. Futures are not safe for concurrent use
// and live on the frame loop.
type Future struct {
	done      bool
	err       error
	callbacks []func(error)
}

func newFuture() *Future {
	return &Future{}
}

func resolvedFuture(err error) *Future {
	return &Future{done: true, err: err}
}

// Done reports whether the future has resolved.
func (f *Future) Done() bool { return f.done }

// Err returns the resolution error. Nil until resolved, and nil on success.
func (f *Future) Err() error { return f.err }

// Then registers fn to run on resolution. If already resolved, fn runs now.
func (f *Future) Then(fn func(error)) {
	if f.done {
		fn(f.err)
		return
	}
	f.callbacks = append(f.callbacks, fn)
}

func (f *Future) resolve(err error) bool {
	if f.done {
		return false
	}
	f.done = true
	f.err = err
	cbs := f.callbacks
	f.callbacks = nil
	for _, fn := range cbs {
		fn(err)
	}
	return true
}

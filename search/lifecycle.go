// Package search - engine lifecycle.
//
// The loop parks at checkpoints; control calls request a state and wait on
// the condition variable until the loop acknowledges it.
package search

import "fmt"

// State is the lifecycle state of an Engine.
type State int32

// Engine lifecycle states.
const (
	Idle State = iota
	Running
	PauseRequested
	Paused
	ResumeRequested
	StopRequested
	Stopped
)

var stateNames = [...]string{"idle", "running", "pause-requested", "paused", "resume-requested", "stop-requested", "stopped"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int32(s))
	}
	return stateNames[s]
}

// active reports whether a search goroutine owns the engine state.
func (s State) active() bool {
	return s >= Running && s <= StopRequested
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return State(e.state.Load()) }

// setState stores s and wakes every waiter. Callers hold e.mu.
func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
	e.cond.Broadcast()
}

// Running reports whether a search goroutine is alive, paused or not.
func (e *Engine) Running() bool { return e.State().active() }

// Paused reports whether the search goroutine is parked.
func (e *Engine) Paused() bool { return e.State() == Paused }

// Done returns a channel closed when the current search goroutine exits.
// Before the first Search it is already closed.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.done
}

// Pause parks (true) or resumes (false) the search and blocks until the
// loop has acknowledged at its next checkpoint. It is a no-op when no search
// is running or the engine is already in the requested state.
func (e *Engine) Pause(on bool) {
	e.ctlMu.Lock()
	defer e.ctlMu.Unlock()
	e.pause(on)
}

func (e *Engine) pause(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pauseLocked(on)
}

// pauseLocked is pause with e.mu held. A pause request waits until the loop
// is parked or gone; a pending stop is waited out too.
func (e *Engine) pauseLocked(on bool) {
	if on {
		for {
			switch State(e.state.Load()) {
			case Running:
				e.setState(PauseRequested)
			case PauseRequested, StopRequested:
				e.cond.Wait()
			default:
				return
			}
		}
	}
	if State(e.state.Load()) == Paused {
		e.setState(ResumeRequested)
	}
	for State(e.state.Load()) == ResumeRequested {
		e.cond.Wait()
	}
}

// Stop requests termination and blocks until the search goroutine exited.
func (e *Engine) Stop() {
	e.ctlMu.Lock()
	defer e.ctlMu.Unlock()
	e.requestStop()
	e.mu.Lock()
	defer e.mu.Unlock()
	for State(e.state.Load()).active() {
		e.cond.Wait()
	}
}

// requestStop moves an active engine to StopRequested without waiting.
func (e *Engine) requestStop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if State(e.state.Load()).active() {
		e.setState(StopRequested)
	}
}

// checkpoint is the only place the loop yields control. It reports whether
// the loop must exit and whether it was resumed after a pause, in which case
// the engine state may have been modified. A stop requested while another
// goroutine holds the parked engine takes effect once it is released.
func (e *Engine) checkpoint() (stop, resumed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for {
		switch State(e.state.Load()) {
		case StopRequested:
			if e.held {
				e.cond.Wait()
				continue
			}
			return true, resumed
		case PauseRequested:
			e.log.Debug("search paused", "pos", len(e.current)-1)
			e.setState(Paused)
		case Paused:
			e.cond.Wait()
		case ResumeRequested:
			e.log.Debug("search resumed")
			e.setState(Running)
			resumed = true
		default:
			return false, resumed
		}
	}
}

// exclusive runs fn while the loop is parked (or not running), restoring
// the previous pause state afterwards.
func (e *Engine) exclusive(fn func()) {
	e.ctlMu.Lock()
	defer e.ctlMu.Unlock()

	e.mu.Lock()
	was := State(e.state.Load()) == Paused
	e.pauseLocked(true)
	e.held = true
	e.mu.Unlock()

	fn()

	e.mu.Lock()
	e.held = false
	e.cond.Broadcast()
	if !was {
		e.pauseLocked(false)
	}
	e.mu.Unlock()
}

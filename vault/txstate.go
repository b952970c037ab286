package vault

import "sync"

// Phase is the client-side view of an in-flight submission. It drives UI
// text only: nothing here is durable, and a page reload mid-flight starts
// over at idle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseBuilding   Phase = "building"
	PhaseSigning    Phase = "signing"
	PhaseConfirming Phase = "confirming"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// Status is a snapshot of the tracker.
type Status struct {
	Phase     Phase  `json:"phase"`
	Signature string `json:"signature,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Tracker records the phase of the most recent vault submission. A failure
// at any step lands in PhaseFailed with the error recorded; the tracker is
// never left mid-flight after the operation returns.
type Tracker struct {
	mu        sync.Mutex
	phase     Phase
	signature string
	errMsg    string
	listeners []chan Status
}

// NewTracker starts at idle.
func NewTracker() *Tracker {
	return &Tracker{phase: PhaseIdle}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{Phase: t.phase, Signature: t.signature, Error: t.errMsg}
}

// Subscribe returns a channel that receives a snapshot on every transition.
// Slow receivers miss intermediate states; last write wins.
func (t *Tracker) Subscribe() <-chan Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan Status, 8)
	t.listeners = append(t.listeners, ch)
	return ch
}

func (t *Tracker) transition(p Phase) {
	t.mu.Lock()
	t.phase = p
	if p == PhaseBuilding {
		t.signature = ""
		t.errMsg = ""
	}
	t.notifyLocked()
	t.mu.Unlock()
}

func (t *Tracker) succeed(signature string) {
	t.mu.Lock()
	t.phase = PhaseSucceeded
	t.signature = signature
	t.errMsg = ""
	t.notifyLocked()
	t.mu.Unlock()
}

func (t *Tracker) fail(err error) {
	t.mu.Lock()
	t.phase = PhaseFailed
	t.errMsg = err.Error()
	t.notifyLocked()
	t.mu.Unlock()
}

func (t *Tracker) notifyLocked() {
	snap := Status{Phase: t.phase, Signature: t.signature, Error: t.errMsg}
	for _, ch := range t.listeners {
		select {
		case ch <- snap:
		default:
		}
	}
}

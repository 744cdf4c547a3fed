package retrieval

// Phase is the lifecycle position of one request class.
type Phase int

const (
	// PhaseIdle means no request has been made yet.
	PhaseIdle Phase = iota
	// PhaseLoading means a request is in flight.
	PhaseLoading
	PhaseSucceeded
	// PhaseFailed means the last request failed; RequestState.Failure says why.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// RequestState is a snapshot of one request class. Failure is set only in
// PhaseFailed.
type RequestState struct {
	Phase   Phase
	Failure *Failure
}

// Loading reports whether a request is in flight.
func (s RequestState) Loading() bool { return s.Phase == PhaseLoading }

func idle() RequestState    { return RequestState{Phase: PhaseIdle} }
func loading() RequestState { return RequestState{Phase: PhaseLoading} }
func succeeded() RequestState {
	return RequestState{Phase: PhaseSucceeded}
}
func failed(f *Failure) RequestState {
	return RequestState{Phase: PhaseFailed, Failure: f}
}

package state

import "sync"

// StatusState tracks three independent loading/error tiers: the global page,
// an inline button, and category fetches. Empty strings mean no error.
type StatusState struct {
	GlobalLoading   bool
	GlobalError     string
	ButtonLoading   bool
	CategoryLoading bool
	CategoryError   string
}

// StatusActionKind names a status transition.
type StatusActionKind int

const (
	FetchStarted StatusActionKind = iota
	ButtonStarted
	ButtonFinished
	Succeeded
	Failed
	CategoryStarted
	CategorySucceeded
	CategoryFailed
)

var actionNames = [...]string{
	FetchStarted:      "fetch_started",
	ButtonStarted:     "button_started",
	ButtonFinished:    "button_finished",
	Succeeded:         "succeeded",
	Failed:            "failed",
	CategoryStarted:   "category_started",
	CategorySucceeded: "category_succeeded",
	CategoryFailed:    "category_failed",
}

func (k StatusActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return "unknown"
}

// StatusAction is a transition plus its error message, if any.
type StatusAction struct {
	Kind    StatusActionKind
	Message string
}

// ReduceStatus applies action to s.
//
// Entering loading clears only that tier's own error. A global success
// clears loading and errors on every tier; a global failure stops every
// spinner but leaves the category error alone. Category transitions touch
// only the category tier.
func ReduceStatus(s StatusState, action StatusAction) StatusState {
	switch action.Kind {
	case FetchStarted:
		s.GlobalLoading = true
		s.GlobalError = ""
	case ButtonStarted:
		s.ButtonLoading = true
	case ButtonFinished:
		s.ButtonLoading = false
	case Succeeded:
		s = StatusState{}
	case Failed:
		s.GlobalLoading = false
		s.GlobalError = action.Message
		s.ButtonLoading = false
		s.CategoryLoading = false
	case CategoryStarted:
		s.CategoryLoading = true
		s.CategoryError = ""
	case CategorySucceeded:
		s.CategoryLoading = false
		s.CategoryError = ""
	case CategoryFailed:
		s.CategoryLoading = false
		s.CategoryError = action.Message
	}
	return s
}

// StatusTracker serializes status transitions.
type StatusTracker struct {
	mu    sync.RWMutex
	state StatusState
}

// NewStatusTracker returns an idle tracker.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{}
}

// Dispatch applies action and returns the resulting state.
func (t *StatusTracker) Dispatch(action StatusAction) StatusState {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = ReduceStatus(t.state, action)
	return t.state
}

// Snapshot returns the current state.
func (t *StatusTracker) Snapshot() StatusState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

package fetcher

type State string

const (
	StateIdle       State = "idle"
	StateResolving  State = "resolving"
	StateFound      State = "found"
	StateNotFound   State = "not_found"
	StateLoading    State = "loading"
	StateDisplaying State = "displaying"
	StateRejected   State = "rejected"
	StateFailed     State = "failed"
)

// Terminal reports whether no transition may follow s.
func (s State) Terminal() bool {
	switch s {
	case StateNotFound, StateDisplaying, StateRejected, StateFailed:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusTooSmall Status = "too_small"
	StatusError    Status = "error"
)

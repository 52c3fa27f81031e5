package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle       UserState = "idle"
	StateLearning   UserState = "learning"
	StateWaitingURL UserState = "waiting_url"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State    UserState
	Cursor   int // position in the unmastered list while learning
	Revealed bool
}

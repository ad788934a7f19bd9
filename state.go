package ppap

// State is a step of a delivery run.
type State string

const (
	StateCreated          State = "created"
	StateCompressed       State = "compressed"
	StateAttachmentSent   State = "attachment_sent"
	StatePasswordComputed State = "password_computed"
	StateDelaying         State = "delaying"
	StatePasswordSent     State = "password_sent"
	StateCleanedUp        State = "cleaned_up"
	StateFailed           State = "failed"
)

// Terminal reports whether no further transitions follow s.
func (s State) Terminal() bool {
	return s == StateCleanedUp || s == StateFailed
}

func (s State) String() string {
	return string(s)
}

package review

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationCompleted InvitationStatus = "completed"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

func (s InvitationStatus) String() string { return string(s) }

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationCompleted, InvitationExpired, InvitationCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the invitation can no longer accept responses.
func (s InvitationStatus) IsTerminal() bool {
	return s != InvitationPending
}

// Err maps a terminal status to the error a token holder sees.
func (s InvitationStatus) Err() error {
	switch s {
	case InvitationCompleted:
		return ErrInvitationCompleted
	case InvitationExpired:
		return ErrInvitationExpired
	case InvitationCancelled:
		return ErrInvitationCancelled
	}
	return nil
}

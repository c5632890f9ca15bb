package walletrequest

// Status is the wallet request lifecycle state. Transitions only ever
// move forward: pending -> approved -> successful, or pending -> declined.
type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusDeclined   Status = "declined"
	StatusSuccessful Status = "successful"
)

// NormalizeStatus collapses the legacy aliases carried over from older
// records ("rejected", "cancelled") into declined. Normalization happens
// at scan time only; the engine never writes the aliases.
func NormalizeStatus(raw string) Status {
	switch raw {
	case "rejected", "cancelled":
		return StatusDeclined
	default:
		return Status(raw)
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusSuccessful:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusDeclined || s == StatusSuccessful
}

func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusDeclined
	case StatusApproved:
		return next == StatusSuccessful
	default:
		return false
	}
}

package reservation

import "github.com/baxirbajja/CMCEspace-api/internal/domain"

// Status represents the current state of a reservation request.
// Any status value may follow any other; administrators can re-decide freely.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

// IsValid returns true if the status is a recognized reservation status.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusDeclined
}

// Blocks reports whether a reservation in this status blocks its time slots.
// Declined reservations free their slots for reuse.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusApproved
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning a validation error
// for anything outside the three recognized values.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", domain.NewValidationError("Veuillez fournir un statut valide (pending, approved, declined)")
	}
	return status, nil
}

package space

// Status represents the operational status of a space.
// Only active spaces accept new reservations.
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
)

// IsValid returns true if the status is a recognized space status.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusMaintenance
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

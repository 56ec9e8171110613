package reservation

import (
	"regexp"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/google/uuid"
)

const (
	maxNameLen        = 50
	maxEventLen       = 100
	maxDescriptionLen = 500

	// MaxTimeSlots bounds how many slot labels a single request may hold.
	MaxTimeSlots = 2
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Reservation is the aggregate root for a booking request against a space.
type Reservation struct {
	id              uuid.UUID
	name            string
	email           string
	phone           string
	applicantStatus string
	spaceID         uuid.UUID
	event           string
	description     string
	date            time.Time
	timeSlots       []string
	status          Status

	createdAt time.Time
	updatedAt time.Time
}

// New creates a new Reservation with status pending. Field constraint
// violations are collected into a single ValidationError, one message per field.
func New(
	name string,
	email string,
	phone string,
	applicantStatus string,
	spaceID uuid.UUID,
	event string,
	description string,
	date time.Time,
	timeSlots []string,
) (*Reservation, error) {
	if messages := validateFields(name, email, phone, applicantStatus, spaceID, event, description, date, timeSlots); len(messages) > 0 {
		return nil, domain.NewValidationErrors(messages)
	}

	now := time.Now().UTC()
	return &Reservation{
		id:              uuid.New(),
		name:            name,
		email:           email,
		phone:           phone,
		applicantStatus: applicantStatus,
		spaceID:         spaceID,
		event:           event,
		description:     description,
		date:            normalizeDate(date),
		timeSlots:       append([]string(nil), timeSlots...),
		status:          StatusPending,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Reservation from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name string,
	email string,
	phone string,
	applicantStatus string,
	spaceID uuid.UUID,
	event string,
	description string,
	date time.Time,
	timeSlots []string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		name:            name,
		email:           email,
		phone:           phone,
		applicantStatus: applicantStatus,
		spaceID:         spaceID,
		event:           event,
		description:     description,
		date:            date,
		timeSlots:       timeSlots,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the reservation's unique identifier.
func (r *Reservation) ID() uuid.UUID { return r.id }

// Name returns the requester's name.
func (r *Reservation) Name() string { return r.name }

// Email returns the requester's email address.
func (r *Reservation) Email() string { return r.email }

// Phone returns the requester's phone number.
func (r *Reservation) Phone() string { return r.phone }

// ApplicantStatus returns the requester's free-text affiliation.
func (r *Reservation) ApplicantStatus() string { return r.applicantStatus }

// SpaceID returns the identifier of the reserved space.
func (r *Reservation) SpaceID() uuid.UUID { return r.spaceID }

// Event returns the event name.
func (r *Reservation) Event() string { return r.event }

// Description returns the event description.
func (r *Reservation) Description() string { return r.description }

// Date returns the reservation's calendar date (UTC midnight).
func (r *Reservation) Date() time.Time { return r.date }

// TimeSlots returns the requested slot labels (1 or 2).
func (r *Reservation) TimeSlots() []string { return r.timeSlots }

// Status returns the current reservation status.
func (r *Reservation) Status() Status { return r.status }

// CreatedAt returns the creation timestamp.
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// SetStatus applies an administrator decision. Unlike most state machines
// there is no transition guard: any valid status may follow any other.
func (r *Reservation) SetStatus(status Status) error {
	if !status.IsValid() {
		return domain.NewValidationError("Veuillez fournir un statut valide (pending, approved, declined)")
	}
	r.status = status
	r.updatedAt = time.Now().UTC()
	return nil
}

// OverlapsSlots reports whether any of the given slot labels intersects
// this reservation's slots. Comparison is set intersection, not equality.
func (r *Reservation) OverlapsSlots(slots []string) bool {
	return SlotsOverlap(r.timeSlots, slots)
}

// SlotsOverlap reports whether the two slot label sets intersect.
func SlotsOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func validateFields(
	name, email, phone, applicantStatus string,
	spaceID uuid.UUID,
	event, description string,
	date time.Time,
	timeSlots []string,
) []string {
	var messages []string
	if name == "" {
		messages = append(messages, "Veuillez ajouter un nom")
	} else if len(name) > maxNameLen {
		messages = append(messages, "Le nom ne peut pas dépasser 50 caractères")
	}
	if email == "" {
		messages = append(messages, "Veuillez ajouter un email")
	} else if !emailPattern.MatchString(email) {
		messages = append(messages, "Veuillez ajouter un email valide")
	}
	if phone == "" {
		messages = append(messages, "Veuillez ajouter un numéro de téléphone")
	}
	if applicantStatus == "" {
		messages = append(messages, "Veuillez spécifier votre statut")
	}
	if spaceID == uuid.Nil {
		messages = append(messages, "Veuillez sélectionner un espace")
	}
	if event == "" {
		messages = append(messages, "Veuillez ajouter un nom d'événement")
	} else if len(event) > maxEventLen {
		messages = append(messages, "Le nom d'événement ne peut pas dépasser 100 caractères")
	}
	if description == "" {
		messages = append(messages, "Veuillez ajouter une description")
	} else if len(description) > maxDescriptionLen {
		messages = append(messages, "La description ne peut pas dépasser 500 caractères")
	}
	if date.IsZero() {
		messages = append(messages, "Veuillez sélectionner une date")
	}
	if len(timeSlots) == 0 || len(timeSlots) > MaxTimeSlots {
		messages = append(messages, "Vous devez sélectionner entre 1 et 2 créneaux horaires")
	}
	return messages
}

// normalizeDate truncates a timestamp to its UTC calendar date.
func normalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package space

import (
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/google/uuid"
)

// DefaultImage is the placeholder used when no image reference is supplied.
const DefaultImage = "/images/espace1.png"

const (
	maxTitleLen       = 50
	maxDescriptionLen = 500
)

// Space is the aggregate root for a bookable space.
type Space struct {
	id          uuid.UUID
	title       string
	description string
	capacity    int
	image       string
	status      Status

	createdAt time.Time
	updatedAt time.Time
}

// New creates a new Space with status defaulting to active. Field constraint
// violations are collected into a single ValidationError, one message per field.
func New(title, description string, capacity int, image string, status Status) (*Space, error) {
	if status == "" {
		status = StatusActive
	}
	if image == "" {
		image = DefaultImage
	}

	if messages := validateFields(title, description, capacity, status); len(messages) > 0 {
		return nil, domain.NewValidationErrors(messages)
	}

	now := time.Now().UTC()
	return &Space{
		id:          uuid.New(),
		title:       title,
		description: description,
		capacity:    capacity,
		image:       image,
		status:      status,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Space from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	title string,
	description string,
	capacity int,
	image string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) *Space {
	return &Space{
		id:          id,
		title:       title,
		description: description,
		capacity:    capacity,
		image:       image,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the space's unique identifier.
func (s *Space) ID() uuid.UUID { return s.id }

// Title returns the space's display title.
func (s *Space) Title() string { return s.title }

// Description returns the space's description.
func (s *Space) Description() string { return s.description }

// Capacity returns the maximum number of occupants.
func (s *Space) Capacity() int { return s.capacity }

// Image returns the image reference.
func (s *Space) Image() string { return s.image }

// Status returns the operational status.
func (s *Space) Status() Status { return s.status }

// CreatedAt returns the creation timestamp.
func (s *Space) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (s *Space) UpdatedAt() time.Time { return s.updatedAt }

// IsBookable reports whether new reservations may target this space.
func (s *Space) IsBookable() bool { return s.status == StatusActive }

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Capacity    *int
	Image       *string
	Status      *Status
}

// Apply merges the patch into the space and re-runs the field validators.
func (s *Space) Apply(p Patch) error {
	title := s.title
	description := s.description
	capacity := s.capacity
	image := s.image
	status := s.status

	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}
	if p.Capacity != nil {
		capacity = *p.Capacity
	}
	if p.Image != nil {
		image = *p.Image
	}
	if p.Status != nil {
		status = *p.Status
	}

	if messages := validateFields(title, description, capacity, status); len(messages) > 0 {
		return domain.NewValidationErrors(messages)
	}

	s.title = title
	s.description = description
	s.capacity = capacity
	s.image = image
	s.status = status
	s.updatedAt = time.Now().UTC()
	return nil
}

func validateFields(title, description string, capacity int, status Status) []string {
	var messages []string
	if title == "" {
		messages = append(messages, "Veuillez ajouter un titre")
	} else if len(title) > maxTitleLen {
		messages = append(messages, "Le titre ne peut pas dépasser 50 caractères")
	}
	if description == "" {
		messages = append(messages, "Veuillez ajouter une description")
	} else if len(description) > maxDescriptionLen {
		messages = append(messages, "La description ne peut pas dépasser 500 caractères")
	}
	if capacity <= 0 {
		messages = append(messages, "Veuillez spécifier la capacité")
	}
	if !status.IsValid() {
		messages = append(messages, "Veuillez fournir un statut valide (active, maintenance)")
	}
	return messages
}

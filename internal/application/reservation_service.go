package application

import (
	"context"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	reservationDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	spaceDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/space"
	"github.com/baxirbajja/CMCEspace-api/internal/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// CreateReservationRequest holds the data needed to create a reservation.
type CreateReservationRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	ApplicantStatus string   `json:"applicantStatus"`
	SpaceID         string   `json:"espace"`
	Event           string   `json:"event"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	TimeSlots       []string `json:"timeSlots"`
}

// ReservationSpaceDTO is the embedded space view inside a reservation.
type ReservationSpaceDTO struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Image string    `json:"image"`
}

// ReservationDTO is the response representation of a reservation. Space
// is nil when the referenced space no longer exists.
type ReservationDTO struct {
	ID              uuid.UUID            `json:"id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone"`
	ApplicantStatus string               `json:"applicantStatus"`
	Space           *ReservationSpaceDTO `json:"espace"`
	Event           string               `json:"event"`
	Description     string               `json:"description"`
	Date            string               `json:"date"`
	TimeSlots       []string             `json:"timeSlots"`
	Status          string               `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// ReservationService is the application service orchestrating
// reservation use cases.
type ReservationService struct {
	reservations reservationDomain.Repository
	spaces       spaceDomain.Repository
	admission    *reservationDomain.AdmissionRule
	notifier     notify.Notifier
	logger       *zap.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	reservations reservationDomain.Repository,
	spaces spaceDomain.Repository,
	admission *reservationDomain.AdmissionRule,
	notifier notify.Notifier,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		spaces:       spaces,
		admission:    admission,
		notifier:     notifier,
		logger:       logger,
	}
}

// CreateReservation validates the request, runs it through the admission
// rule and persists it with status pending.
func (s *ReservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*ReservationDTO, error) {
	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		if req.SpaceID == "" {
			return nil, domain.NewValidationError("Veuillez sélectionner un espace")
		}
		return nil, domain.NewMalformedReferenceError(req.SpaceID)
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, domain.NewValidationError("Veuillez sélectionner une date")
		}
	}

	rsv, err := reservationDomain.New(
		req.Name,
		req.Email,
		req.Phone,
		req.ApplicantStatus,
		spaceID,
		req.Event,
		req.Description,
		date,
		req.TimeSlots,
	)
	if err != nil {
		return nil, err
	}

	// Admit persists the reservation while holding the per-space, per-date
	// admission lock.
	if err := s.admission.Admit(ctx, rsv); err != nil {
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", rsv.ID().String()),
		zap.String("space_id", rsv.SpaceID().String()),
		zap.String("date", rsv.Date().Format(dateLayout)),
	)
	s.notifier.ReservationCreated(ctx, rsv)

	return s.resolveOne(ctx, rsv)
}

// ListReservations returns every reservation, newest first, with its
// space resolved.
func (s *ReservationService) ListReservations(ctx context.Context) ([]ReservationDTO, error) {
	reservations, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveMany(ctx, reservations)
}

// GetReservation returns a single reservation by ID with its space
// resolved.
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationDTO, error) {
	rsv, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, rsv)
}

// UpdateReservationStatus moves a reservation to a new status.
func (s *ReservationService) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status string) (*ReservationDTO, error) {
	parsed, err := reservationDomain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	rsv, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := rsv.Status()
	if err := rsv.SetStatus(parsed); err != nil {
		return nil, err
	}
	if err := s.reservations.Update(ctx, rsv); err != nil {
		return nil, err
	}

	s.logger.Info("reservation status updated",
		zap.String("reservation_id", rsv.ID().String()),
		zap.String("from", previous.String()),
		zap.String("to", parsed.String()),
	)
	if previous != parsed {
		s.notifier.ReservationStatusChanged(ctx, rsv, previous)
	}

	return s.resolveOne(ctx, rsv)
}

// DeleteReservation removes a reservation.
func (s *ReservationService) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	if err := s.reservations.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("reservation deleted", zap.String("reservation_id", id.String()))
	return nil
}

// MonthHistory returns the reservations of one calendar month, most
// recent date first.
func (s *ReservationService) MonthHistory(ctx context.Context, year, month int) ([]ReservationDTO, error) {
	if month < 1 || month > 12 {
		return nil, domain.NewValidationError("Veuillez fournir un mois valide (1-12)")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Day zero of the next month is the last day of this one.
	to := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)

	reservations, err := s.reservations.FindByDateRange(ctx, from, to, "")
	if err != nil {
		return nil, err
	}
	return s.resolveMany(ctx, reservations)
}

// --- Space resolution ---

func (s *ReservationService) resolveOne(ctx context.Context, rsv *reservationDomain.Reservation) (*ReservationDTO, error) {
	dtos, err := resolveReservationDTOs(ctx, s.spaces, []*reservationDomain.Reservation{rsv})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

func (s *ReservationService) resolveMany(ctx context.Context, reservations []*reservationDomain.Reservation) ([]ReservationDTO, error) {
	return resolveReservationDTOs(ctx, s.spaces, reservations)
}

// resolveReservationDTOs batches the space lookups for a reservation
// list. A reservation whose space is gone keeps a nil Space.
func resolveReservationDTOs(ctx context.Context, repo spaceDomain.Repository, reservations []*reservationDomain.Reservation) ([]ReservationDTO, error) {
	seen := make(map[uuid.UUID]struct{}, len(reservations))
	ids := make([]uuid.UUID, 0, len(reservations))
	for _, rsv := range reservations {
		if _, ok := seen[rsv.SpaceID()]; !ok {
			seen[rsv.SpaceID()] = struct{}{}
			ids = append(ids, rsv.SpaceID())
		}
	}

	spaces, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReservationDTO, len(reservations))
	for i, rsv := range reservations {
		dtos[i] = toReservationDTO(rsv, spaces[rsv.SpaceID()])
	}
	return dtos, nil
}

func toReservationDTO(rsv *reservationDomain.Reservation, sp *spaceDomain.Space) ReservationDTO {
	dto := ReservationDTO{
		ID:              rsv.ID(),
		Name:            rsv.Name(),
		Email:           rsv.Email(),
		Phone:           rsv.Phone(),
		ApplicantStatus: rsv.ApplicantStatus(),
		Event:           rsv.Event(),
		Description:     rsv.Description(),
		Date:            rsv.Date().Format(dateLayout),
		TimeSlots:       rsv.TimeSlots(),
		Status:          rsv.Status().String(),
		CreatedAt:       rsv.CreatedAt(),
		UpdatedAt:       rsv.UpdatedAt(),
	}
	if sp != nil {
		dto.Space = &ReservationSpaceDTO{
			ID:    sp.ID(),
			Title: sp.Title(),
			Image: sp.Image(),
		}
	}
	return dto
}

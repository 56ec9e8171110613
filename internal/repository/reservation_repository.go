package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	reservationDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationModel is the GORM model for the reservations table.
type ReservationModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"not null;size:50"`
	Email           string          `gorm:"not null;size:255"`
	Phone           string          `gorm:"not null;size:30"`
	ApplicantStatus string          `gorm:"not null;size:50"`
	SpaceID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Event           string          `gorm:"not null;size:100"`
	Description     string          `gorm:"not null;size:500"`
	Date            time.Time       `gorm:"not null;index"`
	TimeSlots       json.RawMessage `gorm:"type:jsonb;not null"`
	Status          string          `gorm:"not null;size:20;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReservationModel) TableName() string {
	return "reservations"
}

// GormReservationRepository is the GORM-based implementation of
// reservation.Repository.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID retrieves a reservation by its unique identifier.
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Réservation", id.String())
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return toDomainReservation(&model)
}

// ListAll retrieves every reservation, newest first.
func (r *GormReservationRepository) ListAll(ctx context.Context) ([]*reservationDomain.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return toDomainReservations(models)
}

// FindBlockingBySpaceAndDate retrieves the pending and approved
// reservations holding slots on a space for a given day.
func (r *GormReservationRepository) FindBlockingBySpaceAndDate(ctx context.Context, spaceID uuid.UUID, date time.Time) ([]*reservationDomain.Reservation, error) {
	var models []ReservationModel
	err := r.db.WithContext(ctx).
		Where("space_id = ? AND date = ? AND status IN ?",
			spaceID, date,
			[]string{reservationDomain.StatusPending.String(), reservationDomain.StatusApproved.String()}).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find blocking reservations: %w", err)
	}
	return toDomainReservations(models)
}

// FindByDateRange retrieves reservations whose date falls inside the
// inclusive [from, to] window, most recent date first. An empty status
// means no status filter.
func (r *GormReservationRepository) FindByDateRange(ctx context.Context, from, to time.Time, status reservationDomain.Status) ([]*reservationDomain.Reservation, error) {
	query := r.db.WithContext(ctx).Where("date >= ? AND date <= ?", from, to)
	if status != "" {
		query = query.Where("status = ?", status.String())
	}

	var models []ReservationModel
	if err := query.Order("date DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reservations by date range: %w", err)
	}
	return toDomainReservations(models)
}

// CountBySpace returns the number of reservations referencing a space.
func (r *GormReservationRepository) CountBySpace(ctx context.Context, spaceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("space_id = ?", spaceID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations by space: %w", err)
	}
	return count, nil
}

// MonthlyStatusCounts returns reservation counts grouped by calendar
// month and status for the given year.
func (r *GormReservationRepository) MonthlyStatusCounts(ctx context.Context, year int) ([]reservationDomain.MonthStatusCount, error) {
	var rows []struct {
		Month  int
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Select("EXTRACT(MONTH FROM date)::int AS month, status, count(*) AS count").
		Where("EXTRACT(YEAR FROM date)::int = ?", year).
		Group("month, status").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations by month: %w", err)
	}

	counts := make([]reservationDomain.MonthStatusCount, len(rows))
	for i, row := range rows {
		counts[i] = reservationDomain.MonthStatusCount{
			Month:  row.Month,
			Status: reservationDomain.Status(row.Status),
			Count:  row.Count,
		}
	}
	return counts, nil
}

// UsageBySpace returns reservation counts grouped by space and status.
// Reservations whose space no longer exists are excluded by the join.
func (r *GormReservationRepository) UsageBySpace(ctx context.Context) ([]reservationDomain.SpaceUsageRow, error) {
	var rows []struct {
		SpaceID uuid.UUID
		Title   string
		Status  string
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Select("reservations.space_id AS space_id, spaces.title AS title, reservations.status AS status, count(*) AS count").
		Joins("JOIN spaces ON spaces.id = reservations.space_id").
		Group("reservations.space_id, spaces.title, reservations.status").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations by space: %w", err)
	}

	usage := make([]reservationDomain.SpaceUsageRow, len(rows))
	for i, row := range rows {
		usage[i] = reservationDomain.SpaceUsageRow{
			SpaceID:    row.SpaceID,
			SpaceTitle: row.Title,
			Status:     reservationDomain.Status(row.Status),
			Count:      row.Count,
		}
	}
	return usage, nil
}

// Save persists a new reservation.
func (r *GormReservationRepository) Save(ctx context.Context, rsv *reservationDomain.Reservation) error {
	model, err := toReservationModel(rsv)
	if err != nil {
		return fmt.Errorf("failed to convert reservation to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

// Update persists changes to an existing reservation.
func (r *GormReservationRepository) Update(ctx context.Context, rsv *reservationDomain.Reservation) error {
	model, err := toReservationModel(rsv)
	if err != nil {
		return fmt.Errorf("failed to convert reservation to model: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":             model.Name,
			"email":            model.Email,
			"phone":            model.Phone,
			"applicant_status": model.ApplicantStatus,
			"space_id":         model.SpaceID,
			"event":            model.Event,
			"description":      model.Description,
			"date":             model.Date,
			"time_slots":       model.TimeSlots,
			"status":           model.Status,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Réservation", rsv.ID().String())
	}
	return nil
}

// Delete removes a reservation.
func (r *GormReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ReservationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Réservation", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toReservationModel(rsv *reservationDomain.Reservation) (*ReservationModel, error) {
	slotsJSON, err := json.Marshal(rsv.TimeSlots())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal time slots: %w", err)
	}

	return &ReservationModel{
		ID:              rsv.ID(),
		Name:            rsv.Name(),
		Email:           rsv.Email(),
		Phone:           rsv.Phone(),
		ApplicantStatus: rsv.ApplicantStatus(),
		SpaceID:         rsv.SpaceID(),
		Event:           rsv.Event(),
		Description:     rsv.Description(),
		Date:            rsv.Date(),
		TimeSlots:       slotsJSON,
		Status:          rsv.Status().String(),
		CreatedAt:       rsv.CreatedAt(),
		UpdatedAt:       rsv.UpdatedAt(),
	}, nil
}

func toDomainReservation(m *ReservationModel) (*reservationDomain.Reservation, error) {
	var slots []string
	if err := json.Unmarshal(m.TimeSlots, &slots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal time slots: %w", err)
	}

	return reservationDomain.Reconstruct(
		m.ID,
		m.Name,
		m.Email,
		m.Phone,
		m.ApplicantStatus,
		m.SpaceID,
		m.Event,
		m.Description,
		m.Date,
		slots,
		reservationDomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainReservations(models []ReservationModel) ([]*reservationDomain.Reservation, error) {
	reservations := make([]*reservationDomain.Reservation, len(models))
	for i := range models {
		rsv, err := toDomainReservation(&models[i])
		if err != nil {
			return nil, err
		}
		reservations[i] = rsv
	}
	return reservations, nil
}

package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MonthStatusCount is one aggregation row of reservations per month and status.
type MonthStatusCount struct {
	Month  int
	Status Status
	Count  int64
}

// SpaceUsageRow is one aggregation row of reservations per space and status.
// Rows exist only for spaces that have at least one reservation (inner join).
type SpaceUsageRow struct {
	SpaceID    uuid.UUID
	SpaceTitle string
	Status     Status
	Count      int64
}

// Repository defines the persistence contract for reservation aggregates.
type Repository interface {
	// FindByID retrieves a reservation by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// ListAll retrieves every reservation, newest first.
	ListAll(ctx context.Context) ([]*Reservation, error)

	// FindBlockingBySpaceAndDate retrieves reservations for the given space
	// and exact date whose status blocks slot reuse (pending or approved).
	FindBlockingBySpaceAndDate(ctx context.Context, spaceID uuid.UUID, date time.Time) ([]*Reservation, error)

	// FindByDateRange retrieves reservations with date in [from, to]
	// (inclusive both ends), sorted by date descending. A non-empty status
	// narrows the result to that status.
	FindByDateRange(ctx context.Context, from, to time.Time, status Status) ([]*Reservation, error)

	// CountBySpace returns how many reservations reference the given space.
	CountBySpace(ctx context.Context, spaceID uuid.UUID) (int64, error)

	// MonthlyStatusCounts returns per-month, per-status reservation counts
	// for the given calendar year. Months without reservations are absent.
	MonthlyStatusCounts(ctx context.Context, year int) ([]MonthStatusCount, error)

	// UsageBySpace returns per-space, per-status reservation counts joined
	// with the space's title.
	UsageBySpace(ctx context.Context) ([]SpaceUsageRow, error)

	// Save persists a new reservation.
	Save(ctx context.Context, r *Reservation) error

	// Update persists changes to an existing reservation.
	Update(ctx context.Context, r *Reservation) error

	// Delete removes a reservation by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

package notify

import (
	"context"

	"github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
)

// Notifier publishes reservation lifecycle events for downstream
// consumers (mailers, dashboards). Implementations must never fail the
// request that triggered them.
type Notifier interface {
	ReservationCreated(ctx context.Context, rsv *reservation.Reservation)
	ReservationStatusChanged(ctx context.Context, rsv *reservation.Reservation, previous reservation.Status)
	Close() error
}

// Noop discards all events. Used when no broker is configured.
type Noop struct{}

func (Noop) ReservationCreated(context.Context, *reservation.Reservation) {}
func (Noop) ReservationStatusChanged(context.Context, *reservation.Reservation, reservation.Status) {
}
func (Noop) Close() error { return nil }

package reservation

import (
	"context"
	"fmt"
	"sync"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/baxirbajja/CMCEspace-api/internal/domain/space"
)

// AdmissionRule decides whether a reservation request may be created and, on
// success, persists it. The availability check and the insert are not atomic
// at the storage layer, so both run under a per-(space, date) mutex; two
// racing requests for the same slot are serialized in-process.
type AdmissionRule struct {
	spaces       space.Repository
	reservations Repository
	locks        keyedMutex
}

// NewAdmissionRule creates an AdmissionRule over the given repositories.
func NewAdmissionRule(spaces space.Repository, reservations Repository) *AdmissionRule {
	return &AdmissionRule{
		spaces:       spaces,
		reservations: reservations,
	}
}

// Admit applies the admission checks to rsv and persists it with status
// pending when they all pass:
//
//  1. the referenced space must exist
//  2. the space must be active (not under maintenance)
//  3. the request must hold 1 or 2 time slots
//  4. the request must carry a calendar date
//  5. no pending or approved reservation for the same space and date may
//     share a requested slot (declined reservations never block)
//
// Nothing is persisted on failure.
func (a *AdmissionRule) Admit(ctx context.Context, rsv *Reservation) error {
	sp, err := a.spaces.FindByID(ctx, rsv.SpaceID())
	if err != nil {
		return err
	}
	if !sp.IsBookable() {
		return domain.NewConflictError("Cet espace est actuellement en maintenance")
	}
	if len(rsv.TimeSlots()) == 0 || len(rsv.TimeSlots()) > MaxTimeSlots {
		return domain.NewValidationError("Vous devez sélectionner entre 1 et 2 créneaux horaires")
	}
	if rsv.Date().IsZero() {
		return domain.NewValidationError("Veuillez sélectionner une date")
	}

	unlock := a.locks.lock(admissionKey(rsv))
	defer unlock()

	existing, err := a.reservations.FindBlockingBySpaceAndDate(ctx, rsv.SpaceID(), rsv.Date())
	if err != nil {
		return fmt.Errorf("failed to query blocking reservations: %w", err)
	}
	for _, other := range existing {
		if other.OverlapsSlots(rsv.TimeSlots()) {
			return domain.NewConflictError("Un ou plusieurs créneaux horaires sont déjà réservés pour cet espace")
		}
	}

	if err := a.reservations.Save(ctx, rsv); err != nil {
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

func admissionKey(rsv *Reservation) string {
	return rsv.SpaceID().String() + "@" + rsv.Date().Format("2006-01-02")
}

// keyedMutex hands out one mutex per key, dropping entries once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*lockEntry)
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

package application_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	"github.com/baxirbajja/CMCEspace-api/internal/domain/space"
	"github.com/baxirbajja/CMCEspace-api/internal/domain/user"
	"github.com/google/uuid"
)

// fakeSpaceRepo is an in-memory space.Repository.
type fakeSpaceRepo struct {
	mu     sync.Mutex
	spaces map[uuid.UUID]*space.Space
}

func newFakeSpaceRepo(spaces ...*space.Space) *fakeSpaceRepo {
	repo := &fakeSpaceRepo{spaces: make(map[uuid.UUID]*space.Space)}
	for _, sp := range spaces {
		repo.spaces[sp.ID()] = sp
	}
	return repo
}

func (r *fakeSpaceRepo) FindByID(_ context.Context, id uuid.UUID) (*space.Space, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sp, ok := r.spaces[id]
	if !ok {
		return nil, domain.NewNotFoundError("Espace", id.String())
	}
	return sp, nil
}

func (r *fakeSpaceRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*space.Space, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make(map[uuid.UUID]*space.Space)
	for _, id := range ids {
		if sp, ok := r.spaces[id]; ok {
			found[id] = sp
		}
	}
	return found, nil
}

func (r *fakeSpaceRepo) ListAll(context.Context) ([]*space.Space, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*space.Space, 0, len(r.spaces))
	for _, sp := range r.spaces {
		all = append(all, sp)
	}
	return all, nil
}

func (r *fakeSpaceRepo) Save(_ context.Context, sp *space.Space) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spaces[sp.ID()] = sp
	return nil
}

func (r *fakeSpaceRepo) Update(ctx context.Context, sp *space.Space) error {
	return r.Save(ctx, sp)
}

func (r *fakeSpaceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.spaces[id]; !ok {
		return domain.NewNotFoundError("Espace", id.String())
	}
	delete(r.spaces, id)
	return nil
}

// fakeReservationRepo is an in-memory reservation.Repository. Aggregation
// results can be stubbed directly via the monthly and usage fields.
type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []*reservation.Reservation
	monthly      []reservation.MonthStatusCount
	usage        []reservation.SpaceUsageRow
}

func (r *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rsv := range r.reservations {
		if rsv.ID() == id {
			return rsv, nil
		}
	}
	return nil, domain.NewNotFoundError("Réservation", id.String())
}

func (r *fakeReservationRepo) ListAll(context.Context) ([]*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*reservation.Reservation(nil), r.reservations...), nil
}

func (r *fakeReservationRepo) FindBlockingBySpaceAndDate(_ context.Context, spaceID uuid.UUID, date time.Time) ([]*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var blocking []*reservation.Reservation
	for _, rsv := range r.reservations {
		if rsv.SpaceID() == spaceID && rsv.Date().Equal(date) && rsv.Status().Blocks() {
			blocking = append(blocking, rsv)
		}
	}
	return blocking, nil
}

func (r *fakeReservationRepo) FindByDateRange(_ context.Context, from, to time.Time, status reservation.Status) ([]*reservation.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*reservation.Reservation
	for _, rsv := range r.reservations {
		if rsv.Date().Before(from) || rsv.Date().After(to) {
			continue
		}
		if status != "" && rsv.Status() != status {
			continue
		}
		matched = append(matched, rsv)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date().After(matched[j].Date())
	})
	return matched, nil
}

func (r *fakeReservationRepo) CountBySpace(_ context.Context, spaceID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, rsv := range r.reservations {
		if rsv.SpaceID() == spaceID {
			count++
		}
	}
	return count, nil
}

func (r *fakeReservationRepo) MonthlyStatusCounts(context.Context, int) ([]reservation.MonthStatusCount, error) {
	return r.monthly, nil
}

func (r *fakeReservationRepo) UsageBySpace(context.Context) ([]reservation.SpaceUsageRow, error) {
	return r.usage, nil
}

func (r *fakeReservationRepo) Save(_ context.Context, rsv *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservations = append(r.reservations, rsv)
	return nil
}

func (r *fakeReservationRepo) Update(_ context.Context, rsv *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.reservations {
		if existing.ID() == rsv.ID() {
			r.reservations[i] = rsv
			return nil
		}
	}
	return domain.NewNotFoundError("Réservation", rsv.ID().String())
}

func (r *fakeReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.reservations {
		if existing.ID() == id {
			r.reservations = append(r.reservations[:i], r.reservations[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("Réservation", id.String())
}

// fakeUserRepo is an in-memory user.Repository enforcing email uniqueness.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("Utilisateur", id.String())
	}
	return account, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.users {
		if account.Email() == email {
			return account, nil
		}
	}
	return nil, domain.NewNotFoundError("Utilisateur", email)
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.users {
		if account.Email() == u.Email() {
			return domain.NewConflictError("Un compte existe déjà avec cet email")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) CountAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	mu      sync.Mutex
	created []uuid.UUID
	changed []uuid.UUID
}

func (n *recordingNotifier) ReservationCreated(_ context.Context, rsv *reservation.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, rsv.ID())
}

func (n *recordingNotifier) ReservationStatusChanged(_ context.Context, rsv *reservation.Reservation, _ reservation.Status) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, rsv.ID())
}

func (n *recordingNotifier) Close() error { return nil }

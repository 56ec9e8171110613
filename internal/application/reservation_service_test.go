package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/application"
	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	"github.com/baxirbajja/CMCEspace-api/internal/domain/space"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reservationStack struct {
	service      *application.ReservationService
	reservations *fakeReservationRepo
	spaces       *fakeSpaceRepo
	notifier     *recordingNotifier
}

func newReservationStack(spaces ...*space.Space) *reservationStack {
	spaceRepo := newFakeSpaceRepo(spaces...)
	reservationRepo := &fakeReservationRepo{}
	notifier := &recordingNotifier{}
	admission := reservation.NewAdmissionRule(spaceRepo, reservationRepo)
	return &reservationStack{
		service:      application.NewReservationService(reservationRepo, spaceRepo, admission, notifier, zap.NewNop()),
		reservations: reservationRepo,
		spaces:       spaceRepo,
		notifier:     notifier,
	}
}

func bookableSpace(t *testing.T) *space.Space {
	t.Helper()
	sp, err := space.New("Salle de réunion", "Salle de réunion équipée", 20, "", "")
	require.NoError(t, err)
	return sp
}

func createRequest(spaceID string) application.CreateReservationRequest {
	return application.CreateReservationRequest{
		Name:            "Yassine Alami",
		Email:           "yassine@example.ma",
		Phone:           "0600000000",
		ApplicantStatus: "stagiaire",
		SpaceID:         spaceID,
		Event:           "Atelier photo",
		Description:     "Atelier d'initiation à la photographie",
		Date:            "2024-06-15",
		TimeSlots:       []string{"09:00-11:00"},
	}
}

func TestCreateReservation_PersistsPendingAndNotifies(t *testing.T) {
	sp := bookableSpace(t)
	stack := newReservationStack(sp)

	dto, err := stack.service.CreateReservation(context.Background(), createRequest(sp.ID().String()))
	require.NoError(t, err)

	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, "2024-06-15", dto.Date)
	require.NotNil(t, dto.Space)
	assert.Equal(t, sp.Title(), dto.Space.Title)
	assert.Len(t, stack.notifier.created, 1)
}

func TestCreateReservation_MalformedSpaceID(t *testing.T) {
	stack := newReservationStack()

	_, err := stack.service.CreateReservation(context.Background(), createRequest("not-a-uuid"))
	require.Error(t, err)

	var malformed *domain.MalformedReferenceError
	assert.ErrorAs(t, err, &malformed)
}

func TestCreateReservation_MissingSpaceIsValidation(t *testing.T) {
	stack := newReservationStack()

	_, err := stack.service.CreateReservation(context.Background(), createRequest(""))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateReservation_UnparseableDate(t *testing.T) {
	sp := bookableSpace(t)
	stack := newReservationStack(sp)

	req := createRequest(sp.ID().String())
	req.Date = "15/06/2024"
	_, err := stack.service.CreateReservation(context.Background(), req)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateReservationStatus_InvalidValueLeavesStoredStatus(t *testing.T) {
	sp := bookableSpace(t)
	stack := newReservationStack(sp)

	dto, err := stack.service.CreateReservation(context.Background(), createRequest(sp.ID().String()))
	require.NoError(t, err)

	_, err = stack.service.UpdateReservationStatus(context.Background(), dto.ID, "archived")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	stored, err := stack.reservations.FindByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusPending, stored.Status())
}

func TestUpdateReservationStatus_TransitionsAndNotifies(t *testing.T) {
	sp := bookableSpace(t)
	stack := newReservationStack(sp)

	dto, err := stack.service.CreateReservation(context.Background(), createRequest(sp.ID().String()))
	require.NoError(t, err)

	updated, err := stack.service.UpdateReservationStatus(context.Background(), dto.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)
	assert.Len(t, stack.notifier.changed, 1)

	// Re-transition from approved to declined is allowed.
	updated, err = stack.service.UpdateReservationStatus(context.Background(), dto.ID, "declined")
	require.NoError(t, err)
	assert.Equal(t, "declined", updated.Status)
}

func TestDeleteReservation_UnknownIDIsNotFound(t *testing.T) {
	stack := newReservationStack()

	err := stack.service.DeleteReservation(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetReservation_MissingSpaceYieldsNilSpace(t *testing.T) {
	sp := bookableSpace(t)
	stack := newReservationStack(sp)

	dto, err := stack.service.CreateReservation(context.Background(), createRequest(sp.ID().String()))
	require.NoError(t, err)

	require.NoError(t, stack.spaces.Delete(context.Background(), sp.ID()))

	fetched, err := stack.service.GetReservation(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Space)
}

func TestMonthHistory_InclusiveWindow(t *testing.T) {
	sp := bookableSpace(t)
	stack := newReservationStack(sp)

	seed := func(day time.Time, slot string) {
		rsv, err := reservation.New(
			"Imane Belkadi", "imane@example.ma", "0611111111", "formatrice",
			sp.ID(), "Séminaire", "Séminaire de formation", day, []string{slot},
		)
		require.NoError(t, err)
		require.NoError(t, stack.reservations.Save(context.Background(), rsv))
	}
	seed(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), "09:00-11:00")
	seed(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), "09:00-11:00")
	seed(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), "11:00-13:00")
	seed(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "09:00-11:00")

	history, err := stack.service.MonthHistory(context.Background(), 2024, 2)
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, "2024-02-29", history[0].Date, "most recent date first")
	assert.Equal(t, "2024-02-01", history[1].Date)
}

func TestMonthHistory_RejectsInvalidMonth(t *testing.T) {
	stack := newReservationStack()

	for _, month := range []int{0, 13} {
		_, err := stack.service.MonthHistory(context.Background(), 2024, month)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	}
}

//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/application"
	reservationDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	"github.com/baxirbajja/CMCEspace-api/internal/notify"
	"github.com/baxirbajja/CMCEspace-api/internal/repository"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// apiStack holds the wired-up services under test.
type apiStack struct {
	Spaces       *application.SpaceService
	Reservations *application.ReservationService
	Reports      *application.ReportService
}

// setupContainers starts a PostgreSQL testcontainer and returns a
// connected GORM DB with the schema migrated.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_cmcespace",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_cmcespace sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.SpaceModel{},
		&repository.ReservationModel{},
		&repository.UserModel{},
	))

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// setupStack wires the application services over the real repositories.
func setupStack(t *testing.T, db *gorm.DB) *apiStack {
	t.Helper()
	log := zap.NewNop()

	spaceRepo := repository.NewGormSpaceRepository(db)
	reservationRepo := repository.NewGormReservationRepository(db)
	admission := reservationDomain.NewAdmissionRule(spaceRepo, reservationRepo)

	return &apiStack{
		Spaces:       application.NewSpaceService(spaceRepo, reservationRepo, log),
		Reservations: application.NewReservationService(reservationRepo, spaceRepo, admission, notify.Noop{}, log),
		Reports:      application.NewReportService(reservationRepo, spaceRepo, log),
	}
}

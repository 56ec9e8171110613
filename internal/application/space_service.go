package application

import (
	"context"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	reservationDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	spaceDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/space"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSpaceRequest holds the data needed to create a new space.
type CreateSpaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Image       string `json:"image"`
	Status      string `json:"status"`
}

// UpdateSpaceRequest holds a partial space update; nil fields are untouched.
type UpdateSpaceRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
	Image       *string `json:"image"`
	Status      *string `json:"status"`
}

// SpaceDTO is the response representation of a space.
type SpaceDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpaceService is the application service orchestrating space use cases.
type SpaceService struct {
	spaces       spaceDomain.Repository
	reservations reservationDomain.Repository
	logger       *zap.Logger
}

// NewSpaceService creates a new SpaceService.
func NewSpaceService(
	spaces spaceDomain.Repository,
	reservations reservationDomain.Repository,
	logger *zap.Logger,
) *SpaceService {
	return &SpaceService{
		spaces:       spaces,
		reservations: reservations,
		logger:       logger,
	}
}

// ListSpaces returns every space, newest first.
func (s *SpaceService) ListSpaces(ctx context.Context) ([]SpaceDTO, error) {
	spaces, err := s.spaces.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]SpaceDTO, len(spaces))
	for i, sp := range spaces {
		dtos[i] = toSpaceDTO(sp)
	}
	return dtos, nil
}

// GetSpace returns a single space by ID.
func (s *SpaceService) GetSpace(ctx context.Context, id uuid.UUID) (*SpaceDTO, error) {
	sp, err := s.spaces.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toSpaceDTO(sp)
	return &dto, nil
}

// CreateSpace validates and persists a new space.
func (s *SpaceService) CreateSpace(ctx context.Context, req CreateSpaceRequest) (*SpaceDTO, error) {
	sp, err := spaceDomain.New(req.Title, req.Description, req.Capacity, req.Image, spaceDomain.Status(req.Status))
	if err != nil {
		return nil, err
	}

	if err := s.spaces.Save(ctx, sp); err != nil {
		return nil, err
	}

	s.logger.Info("space created",
		zap.String("space_id", sp.ID().String()),
		zap.String("title", sp.Title()),
	)

	dto := toSpaceDTO(sp)
	return &dto, nil
}

// UpdateSpace applies a partial update to an existing space.
func (s *SpaceService) UpdateSpace(ctx context.Context, id uuid.UUID, req UpdateSpaceRequest) (*SpaceDTO, error) {
	sp, err := s.spaces.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := spaceDomain.Patch{
		Title:       req.Title,
		Description: req.Description,
		Capacity:    req.Capacity,
		Image:       req.Image,
	}
	if req.Status != nil {
		status := spaceDomain.Status(*req.Status)
		patch.Status = &status
	}

	if err := sp.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.spaces.Update(ctx, sp); err != nil {
		return nil, err
	}

	dto := toSpaceDTO(sp)
	return &dto, nil
}

// DeleteSpace removes a space. Deletion is refused while reservations
// still reference the space.
func (s *SpaceService) DeleteSpace(ctx context.Context, id uuid.UUID) error {
	if _, err := s.spaces.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.reservations.CountBySpace(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewConflictError("Impossible de supprimer cet espace car des réservations y sont associées")
	}

	if err := s.spaces.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("space deleted", zap.String("space_id", id.String()))
	return nil
}

func toSpaceDTO(sp *spaceDomain.Space) SpaceDTO {
	return SpaceDTO{
		ID:          sp.ID(),
		Title:       sp.Title(),
		Description: sp.Description(),
		Capacity:    sp.Capacity(),
		Image:       sp.Image(),
		Status:      sp.Status().String(),
		CreatedAt:   sp.CreatedAt(),
		UpdatedAt:   sp.UpdatedAt(),
	}
}

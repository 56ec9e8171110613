package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	spaceDomain "github.com/baxirbajja/CMCEspace-api/internal/domain/space"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpaceModel is the GORM model for the spaces table.
type SpaceModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null;size:50"`
	Description string    `gorm:"not null;size:500"`
	Capacity    int       `gorm:"not null"`
	Image       string    `gorm:"not null;size:255"`
	Status      string    `gorm:"not null;size:20;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (SpaceModel) TableName() string {
	return "spaces"
}

// GormSpaceRepository is the GORM-based implementation of space.Repository.
type GormSpaceRepository struct {
	db *gorm.DB
}

// NewGormSpaceRepository creates a new GormSpaceRepository.
func NewGormSpaceRepository(db *gorm.DB) *GormSpaceRepository {
	return &GormSpaceRepository{db: db}
}

// FindByID retrieves a space by its unique identifier.
func (r *GormSpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*spaceDomain.Space, error) {
	var model SpaceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Espace", id.String())
		}
		return nil, fmt.Errorf("failed to find space by ID: %w", err)
	}
	return toDomainSpace(&model), nil
}

// FindByIDs retrieves the spaces matching the given identifiers, keyed by ID.
// Missing identifiers are simply absent from the result.
func (r *GormSpaceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*spaceDomain.Space, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*spaceDomain.Space{}, nil
	}

	var models []SpaceModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find spaces by IDs: %w", err)
	}

	spaces := make(map[uuid.UUID]*spaceDomain.Space, len(models))
	for i := range models {
		spaces[models[i].ID] = toDomainSpace(&models[i])
	}
	return spaces, nil
}

// ListAll retrieves every space, newest first.
func (r *GormSpaceRepository) ListAll(ctx context.Context) ([]*spaceDomain.Space, error) {
	var models []SpaceModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	spaces := make([]*spaceDomain.Space, len(models))
	for i := range models {
		spaces[i] = toDomainSpace(&models[i])
	}
	return spaces, nil
}

// Save persists a new space.
func (r *GormSpaceRepository) Save(ctx context.Context, sp *spaceDomain.Space) error {
	if err := r.db.WithContext(ctx).Create(toSpaceModel(sp)).Error; err != nil {
		return fmt.Errorf("failed to save space: %w", err)
	}
	return nil
}

// Update persists changes to an existing space.
func (r *GormSpaceRepository) Update(ctx context.Context, sp *spaceDomain.Space) error {
	model := toSpaceModel(sp)
	result := r.db.WithContext(ctx).
		Model(&SpaceModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":       model.Title,
			"description": model.Description,
			"capacity":    model.Capacity,
			"image":       model.Image,
			"status":      model.Status,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update space: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Espace", sp.ID().String())
	}
	return nil
}

// Delete removes a space.
func (r *GormSpaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&SpaceModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete space: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Espace", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toSpaceModel(sp *spaceDomain.Space) *SpaceModel {
	return &SpaceModel{
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

func toDomainSpace(m *SpaceModel) *spaceDomain.Space {
	return spaceDomain.Reconstruct(
		m.ID,
		m.Title,
		m.Description,
		m.Capacity,
		m.Image,
		spaceDomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

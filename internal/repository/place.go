package repository

import (
	"context"
	"errors"

	"placeshare/internal/models"

	"gorm.io/gorm"
)

// PlaceRepository defines persistence operations for places. Writes that pair
// a place with its owner run inside a single transaction so the place list a
// user sees and the places table can never diverge.
type PlaceRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Place, error)
	GetByOwner(ctx context.Context, ownerID uint) ([]models.Place, error)
	CreateWithOwner(ctx context.Context, place *models.Place) error
	Update(ctx context.Context, place *models.Place) error
	DeleteWithOwner(ctx context.Context, id uint) (*models.Place, error)
}

type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository returns a new PlaceRepository implementation.
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) GetByID(ctx context.Context, id uint) (*models.Place, error) {
	var place models.Place
	if err := r.db.WithContext(ctx).First(&place, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Could not find a place for the provided id.")
		}
		return nil, models.NewInternalError(err)
	}
	return &place, nil
}

// GetByOwner returns the owner's places, newest first. An owner with no
// places yields an empty slice, not an error.
func (r *placeRepository) GetByOwner(ctx context.Context, ownerID uint) ([]models.Place, error) {
	var places []models.Place
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", ownerID).
		Order("created_at DESC").
		Find(&places).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return places, nil
}

// CreateWithOwner inserts the place and verifies its owner row in the same
// transaction. A missing owner aborts the insert entirely.
func (r *placeRepository) CreateWithOwner(ctx context.Context, place *models.Place) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.First(&owner, place.CreatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Could not find user for provided id.")
			}
			return models.NewInternalError(err)
		}
		if err := tx.Create(place).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	return err
}

func (r *placeRepository) Update(ctx context.Context, place *models.Place) error {
	if err := r.db.WithContext(ctx).Save(place).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteWithOwner removes the place inside a transaction, re-reading it first
// so the caller gets the deleted record back (for image cleanup) and a
// concurrent delete surfaces as not-found instead of a silent no-op.
func (r *placeRepository) DeleteWithOwner(ctx context.Context, id uint) (*models.Place, error) {
	var place models.Place
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&place, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Could not find place for this id.")
			}
			return models.NewInternalError(err)
		}
		res := tx.Delete(&models.Place{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Could not find place for this id.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &place, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"placeshare/internal/geocode"
	"placeshare/internal/middleware"
	"placeshare/internal/models"
	"placeshare/internal/repository"
)

// Geocoder resolves a postal address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geocode.Coordinates, error)
}

// ImageRemover deletes a stored image file by path. Removal failures are
// logged by the service and never fail the request.
type ImageRemover interface {
	Remove(path string)
}

type PlaceService struct {
	placeRepo repository.PlaceRepository
	geocoder  Geocoder
	images    ImageRemover
}

type CreatePlaceInput struct {
	UserID      uint
	Title       string
	Description string
	Address     string
	Image       string
}

type UpdatePlaceInput struct {
	UserID      uint
	PlaceID     uint
	Title       string
	Description string
}

type DeletePlaceInput struct {
	UserID  uint
	PlaceID uint
}

func NewPlaceService(placeRepo repository.PlaceRepository, geocoder Geocoder, images ImageRemover) *PlaceService {
	return &PlaceService{
		placeRepo: placeRepo,
		geocoder:  geocoder,
		images:    images,
	}
}

func (s *PlaceService) GetPlace(ctx context.Context, id uint) (*models.Place, error) {
	return s.placeRepo.GetByID(ctx, id)
}

// GetPlacesByOwner lists a user's places. A user without places gets an empty
// list rather than an error.
func (s *PlaceService) GetPlacesByOwner(ctx context.Context, ownerID uint) ([]models.Place, error) {
	places, err := s.placeRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if places == nil {
		places = []models.Place{}
	}
	return places, nil
}

// CreatePlace validates the input, geocodes the address and stores the place
// paired with its owner. Nothing is persisted when geocoding cannot resolve
// the address.
func (s *PlaceService) CreatePlace(ctx context.Context, in CreatePlaceInput) (*models.Place, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, models.NewValidationError("Invalid inputs passed, please check your data.")
	}
	if in.Image == "" {
		return nil, models.NewValidationError("An image file is required")
	}

	coords, err := s.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			return nil, models.NewValidationError("Could not find location for the specified address.")
		}
		return nil, models.NewInternalError(err)
	}

	place := &models.Place{
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Latitude:    coords.Latitude,
		Longitude:   coords.Longitude,
		Image:       in.Image,
		CreatorID:   in.UserID,
	}
	if err := s.placeRepo.CreateWithOwner(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// UpdatePlace changes title and description. Only the creator may update;
// address, coordinates and image are immutable after creation.
func (s *PlaceService) UpdatePlace(ctx context.Context, in UpdatePlaceInput) (*models.Place, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	place, err := s.placeRepo.GetByID(ctx, in.PlaceID)
	if err != nil {
		return nil, err
	}
	if place.CreatorID != in.UserID {
		return nil, models.NewUnauthorizedError("You are not allowed to edit this place.")
	}

	place.Title = in.Title
	place.Description = in.Description
	if err := s.placeRepo.Update(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// DeletePlace removes the place and, once the transaction has committed,
// deletes its image file. Image removal is best effort.
func (s *PlaceService) DeletePlace(ctx context.Context, in DeletePlaceInput) error {
	place, err := s.placeRepo.GetByID(ctx, in.PlaceID)
	if err != nil {
		return err
	}
	if place.CreatorID != in.UserID {
		return models.NewUnauthorizedError("You are not allowed to delete this place.")
	}

	deleted, err := s.placeRepo.DeleteWithOwner(ctx, in.PlaceID)
	if err != nil {
		return err
	}

	if deleted.Image != "" && s.images != nil {
		s.images.Remove(deleted.Image)
		middleware.Logger.InfoContext(ctx, "removed place image",
			slog.Uint64("place_id", uint64(in.PlaceID)),
			slog.String("image", deleted.Image),
		)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Invalid inputs passed, please check your data.")
	}
	if len(title) > 300 {
		return models.NewValidationError("Invalid inputs passed, please check your data.")
	}
	return nil
}

func validateDescription(description string) error {
	if len(strings.TrimSpace(description)) < 5 {
		return models.NewValidationError("Invalid inputs passed, please check your data.")
	}
	if len(description) > 10000 {
		return models.NewValidationError("Invalid inputs passed, please check your data.")
	}
	return nil
}

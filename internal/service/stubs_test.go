package service

import (
	"context"
	"errors"
	"testing"

	"placeshare/internal/geocode"
	"placeshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub implements repository.UserRepository with overridable funcs.
type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	listFn       func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.User, error) { return nil, errors.New("not stubbed") },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		listFn:       func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

// placeRepoStub implements repository.PlaceRepository with overridable funcs.
type placeRepoStub struct {
	getByIDFn         func(ctx context.Context, id uint) (*models.Place, error)
	getByOwnerFn      func(ctx context.Context, ownerID uint) ([]models.Place, error)
	createWithOwnerFn func(ctx context.Context, place *models.Place) error
	updateFn          func(ctx context.Context, place *models.Place) error
	deleteWithOwnerFn func(ctx context.Context, id uint) (*models.Place, error)
}

func noopPlaceRepo() *placeRepoStub {
	return &placeRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.Place, error) { return nil, errors.New("not stubbed") },
		getByOwnerFn: func(context.Context, uint) ([]models.Place, error) { return nil, nil },
		createWithOwnerFn: func(_ context.Context, p *models.Place) error {
			p.ID = 1
			return nil
		},
		updateFn: func(context.Context, *models.Place) error { return nil },
		deleteWithOwnerFn: func(context.Context, uint) (*models.Place, error) {
			return nil, errors.New("not stubbed")
		},
	}
}

func (s *placeRepoStub) GetByID(ctx context.Context, id uint) (*models.Place, error) {
	return s.getByIDFn(ctx, id)
}

func (s *placeRepoStub) GetByOwner(ctx context.Context, ownerID uint) ([]models.Place, error) {
	return s.getByOwnerFn(ctx, ownerID)
}

func (s *placeRepoStub) CreateWithOwner(ctx context.Context, place *models.Place) error {
	return s.createWithOwnerFn(ctx, place)
}

func (s *placeRepoStub) Update(ctx context.Context, place *models.Place) error {
	return s.updateFn(ctx, place)
}

func (s *placeRepoStub) DeleteWithOwner(ctx context.Context, id uint) (*models.Place, error) {
	return s.deleteWithOwnerFn(ctx, id)
}

// geocoderStub implements Geocoder.
type geocoderStub struct {
	geocodeFn func(ctx context.Context, address string) (geocode.Coordinates, error)
	calls     int
}

func (s *geocoderStub) Geocode(ctx context.Context, address string) (geocode.Coordinates, error) {
	s.calls++
	return s.geocodeFn(ctx, address)
}

// removerStub records removed image paths.
type removerStub struct {
	removed []string
}

func (s *removerStub) Remove(path string) {
	s.removed = append(s.removed, path)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

// Package service implements the business rules sitting between handlers and
// repositories.
package service

import (
	"context"

	"placeshare/internal/models"
	"placeshare/internal/repository"
	"placeshare/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup validates the input, hashes the password and creates the account.
// A taken email surfaces as a conflict whether caught by the pre-check or by
// the unique constraint underneath.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError("Invalid inputs passed, please check your data.")
	}
	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError("Invalid inputs passed, please check your data.")
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError("Invalid inputs passed, please check your data.")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User exists already, please login instead.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    email,
		Password: string(hashed),
		Image:    in.Image,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error so the response does not reveal which part failed.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	email := validation.NormalizeEmail(in.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials, could not log you in.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials, could not log you in.")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

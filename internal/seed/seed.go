// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"placeshare/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the login password for every seeded user.
const DefaultPassword = "password123"

// Seeder populates the database with fake users and places.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll removes all seeded data. Places go first so the foreign key on
// creator_id never blocks the user delete.
func (s *Seeder) ClearAll() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Place{}).Error; err != nil {
		return fmt.Errorf("clear places: %w", err)
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

// SeedUsers creates n users sharing DefaultPassword. The hash is computed
// once; bcrypt per user would dominate seeding time.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("user%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
			Image:    fmt.Sprintf("https://picsum.photos/seed/avatar-%s/200/200", gofakeit.UUID()),
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	log.Printf("seeded %d users (password %q)", len(users), DefaultPassword)
	return users, nil
}

// SeedPlaces creates up to perUser places for each user. Coordinates are
// generated directly; the seeder never calls the geocoding provider.
func (s *Seeder) SeedPlaces(users []models.User, perUser int) (int, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var places []models.Place
	for _, u := range users {
		count := r.Intn(perUser + 1)
		for i := 0; i < count; i++ {
			addr := gofakeit.Address()
			places = append(places, models.Place{
				Title:       gofakeit.Sentence(3),
				Description: gofakeit.Paragraph(1, 2, 8, " "),
				Address:     fmt.Sprintf("%s, %s, %s", addr.Street, addr.City, addr.Country),
				Latitude:    addr.Latitude,
				Longitude:   addr.Longitude,
				Image:       fmt.Sprintf("https://picsum.photos/seed/place-%s/800/600", gofakeit.UUID()),
				CreatorID:   u.ID,
				CreatedAt:   time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
			})
		}
	}
	if len(places) == 0 {
		return 0, nil
	}
	if err := s.db.Create(&places).Error; err != nil {
		return 0, fmt.Errorf("seed places: %w", err)
	}
	log.Printf("seeded %d places across %d users", len(places), len(users))
	return len(places), nil
}

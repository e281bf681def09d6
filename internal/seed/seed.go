// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"highpass/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumTourists int
	NumPermits  int
	NumBookings int
	ShouldClean bool
}

// Seed populates the database with the destination catalog and demo data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d tourists, %d permits, %d bookings...", opts.NumTourists, opts.NumPermits, opts.NumBookings)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := SeedCatalog(db); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.Printf("Catalog seeded (%d destinations)", CatalogSize())

	var destinations []models.Destination
	if err := db.Where("active = ?", true).Find(&destinations).Error; err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	tourists, officials, err := createUsers(db, opts.NumTourists)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d tourists and %d officials created", len(tourists), len(officials))

	permits, err := createPermits(db, tourists, officials, destinations, opts.NumPermits)
	if err != nil {
		return fmt.Errorf("failed to create permits: %w", err)
	}
	log.Printf("%d permit applications created", len(permits))

	bookings, err := createBookings(db, tourists, destinations, opts.NumBookings)
	if err != nil {
		return fmt.Errorf("failed to create bookings: %w", err)
	}
	log.Printf("%d bookings created", len(bookings))

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE payments, bookings, permit_applications, destinations, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, numTourists int) (tourists, officials []models.User, err error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("HighpassDemo1"), bcrypt.DefaultCost)

	// Fixed accounts for manual testing.
	fixed := []models.User{
		{Name: "Demo Tourist", Email: "tourist@example.com", Password: string(hashedPassword), Role: models.RoleTourist},
		{Name: "Demo Official", Email: "official@example.com", Password: string(hashedPassword), Role: models.RoleOfficial},
		{Name: "Demo Admin", Email: "admin@example.com", Password: string(hashedPassword), Role: models.RoleAdmin},
	}
	for i := range fixed {
		user := fixed[i]
		if createErr := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; createErr != nil {
			return nil, nil, createErr
		}
		switch user.Role {
		case models.RoleTourist:
			tourists = append(tourists, user)
		default:
			officials = append(officials, user)
		}
	}

	for i := len(tourists); i < numTourists; i++ {
		name := gofakeit.Name()
		user := models.User{
			Name:     name,
			Email:    fmt.Sprintf("%s%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), i),
			Password: string(hashedPassword),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Role:     models.RoleTourist,
		}
		if createErr := db.Create(&user).Error; createErr != nil {
			return nil, nil, createErr
		}
		tourists = append(tourists, user)
	}

	return tourists, officials, nil
}

var permitReasons = []string{
	"Leisure travel with family",
	"Landscape and wildlife photography",
	"Trekking expedition",
	"Astronomy visit to the dark-sky reserve",
	"Cultural documentation project",
	"Motorcycle touring",
	"Bird watching at the wetlands",
}

func createPermits(db *gorm.DB, tourists, officials []models.User, destinations []models.Destination, count int) ([]models.PermitApplication, error) {
	if len(tourists) == 0 || len(destinations) == 0 {
		return nil, nil
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	permits := make([]models.PermitApplication, 0, count)
	for i := 0; i < count; i++ {
		tourist := tourists[r.Intn(len(tourists))]
		destination := destinations[r.Intn(len(destinations))]
		start := time.Now().AddDate(0, 0, 1+r.Intn(60))

		permit := models.PermitApplication{
			TouristID:   tourist.ID,
			Destination: destination.Name,
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, 1+r.Intn(7)),
			Reason:      permitReasons[r.Intn(len(permitReasons))],
			DocumentURL: fmt.Sprintf("https://docs.example.com/%s.pdf", gofakeit.UUID()),
			Status:      models.PermitStatusPending,
		}

		// Roughly two thirds of seeded permits are already decided.
		if len(officials) > 0 && r.Intn(3) > 0 {
			official := officials[r.Intn(len(officials))]
			reviewedAt := time.Now().Add(-time.Duration(r.Intn(72)) * time.Hour)
			permit.ReviewedByID = &official.ID
			permit.ReviewedAt = &reviewedAt
			permit.Version = 1
			if r.Intn(4) == 0 {
				permit.Status = models.PermitStatusRejected
				permit.ReviewerNotes = "Identity document illegible, please resubmit"
			} else {
				permit.Status = models.PermitStatusApproved
			}
		}

		if err := db.Create(&permit).Error; err != nil {
			return nil, err
		}
		permits = append(permits, permit)
	}
	return permits, nil
}

func createBookings(db *gorm.DB, tourists []models.User, destinations []models.Destination, count int) ([]models.Booking, error) {
	if len(tourists) == 0 || len(destinations) == 0 {
		return nil, nil
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	bookings := make([]models.Booking, 0, count)
	for i := 0; i < count; i++ {
		tourist := tourists[r.Intn(len(tourists))]
		destination := destinations[r.Intn(len(destinations))]
		start := time.Now().AddDate(0, 0, 1+r.Intn(45))

		booking := models.Booking{
			UserID:        tourist.ID,
			DestinationID: destination.ID,
			StartDate:     start,
			EndDate:       start.AddDate(0, 0, 1+r.Intn(5)),
			Guests:        1 + r.Intn(4),
			Currency:      destination.Currency,
			Status:        models.BookingStatusPending,
			PaymentStatus: models.PaymentStateUnpaid,
		}
		booking.Amount = int64(booking.Nights()) * destination.PricePerNight

		// About half of seeded bookings are already settled.
		if r.Intn(2) == 0 {
			booking.Status = models.BookingStatusConfirmed
			booking.PaymentStatus = models.PaymentStatePaid
			booking.StripeSessionID = "cs_seed_" + gofakeit.UUID()
		}

		if err := db.Create(&booking).Error; err != nil {
			return nil, err
		}

		if booking.PaymentStatus == models.PaymentStatePaid {
			payment := models.Payment{
				BookingID:       booking.ID,
				StripeSessionID: booking.StripeSessionID,
				StripeEventID:   "evt_seed_" + gofakeit.UUID(),
				Amount:          booking.Amount,
				Currency:        booking.Currency,
				Status:          "paid",
			}
			if err := db.Create(&payment).Error; err != nil {
				return nil, err
			}
		}

		bookings = append(bookings, booking)
	}
	return bookings, nil
}

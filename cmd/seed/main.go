// Command main runs the database seeder for Highpass.
package main

import (
	"flag"
	"log"

	"highpass/internal/config"
	"highpass/internal/database"
	"highpass/internal/seed"
)

func main() {
	// Parse command line flags
	numTourists := flag.Int("tourists", 50, "Number of tourist accounts to create")
	numPermits := flag.Int("permits", 150, "Number of permit applications to create")
	numBookings := flag.Int("bookings", 100, "Number of bookings to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d tourists, %d permits, %d bookings, clean=%v\n",
		*numTourists, *numPermits, *numBookings, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumTourists: *numTourists,
		NumPermits:  *numPermits,
		NumBookings: *numBookings,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Println("Demo accounts tourist@example.com / official@example.com / admin@example.com use the password: HighpassDemo1")
}

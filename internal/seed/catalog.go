package seed

import (
	"fmt"

	"highpass/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// catalog is the fixed set of restricted destinations the platform offers.
// Prices are INR minor units per night.
var catalog = []models.Destination{
	{Name: "Pangong Tso", Slug: "pangong-tso", Region: "Changthang", Description: "High-altitude brackish lake on the Indo-Tibetan border, famous for its shifting blue hues.", PermitRequired: true, Active: true, PricePerNight: 320000, Currency: "INR"},
	{Name: "Tso Moriri", Slug: "tso-moriri", Region: "Changthang", Description: "Remote mountain lake inside the Changthang Wildlife Sanctuary, breeding ground of the black-necked crane.", PermitRequired: true, Active: true, PricePerNight: 300000, Currency: "INR"},
	{Name: "Nubra Valley", Slug: "nubra-valley", Region: "Nubra", Description: "Sand dunes, double-humped camels, and monasteries at the confluence of the Nubra and Shyok rivers.", PermitRequired: true, Active: true, PricePerNight: 280000, Currency: "INR"},
	{Name: "Khardung La", Slug: "khardung-la", Region: "Leh", Description: "One of the world's highest motorable passes, gateway to the Nubra Valley.", PermitRequired: true, Active: true, PricePerNight: 180000, Currency: "INR"},
	{Name: "Hanle", Slug: "hanle", Region: "Changthang", Description: "Dark-sky reserve and home to the Indian Astronomical Observatory.", PermitRequired: true, Active: true, PricePerNight: 260000, Currency: "INR"},
	{Name: "Turtuk", Slug: "turtuk", Region: "Nubra", Description: "Balti village on the Shyok river, opened to visitors in 2010.", PermitRequired: true, Active: true, PricePerNight: 240000, Currency: "INR"},
	{Name: "Chushul", Slug: "chushul", Region: "Changthang", Description: "Border village south of Pangong Tso with a historic war memorial.", PermitRequired: true, Active: true, PricePerNight: 220000, Currency: "INR"},
	{Name: "Marsimik La", Slug: "marsimik-la", Region: "Changthang", Description: "Remote pass northeast of Pangong Tso, among the highest motorable points on earth.", PermitRequired: true, Active: true, PricePerNight: 200000, Currency: "INR"},
	{Name: "Batalik", Slug: "batalik", Region: "Kargil", Description: "Indus valley sector known for its apricot orchards and Brokpa villages.", PermitRequired: true, Active: true, PricePerNight: 210000, Currency: "INR"},
	{Name: "Dah-Hanu", Slug: "dah-hanu", Region: "Kargil", Description: "Villages of the Brokpa community along the Indus, noted for their distinct culture.", PermitRequired: true, Active: true, PricePerNight: 230000, Currency: "INR"},
}

// SeedCatalog upserts the destination catalog. Safe to run repeatedly;
// existing rows are refreshed in place keyed on slug.
func SeedCatalog(db *gorm.DB) error {
	for i := range catalog {
		dest := catalog[i]
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "region", "description", "permit_required", "active", "price_per_night", "currency"}),
		}).Create(&dest).Error
		if err != nil {
			return fmt.Errorf("seed destination %s: %w", dest.Slug, err)
		}
	}
	return nil
}

// CatalogSize returns the number of destinations the seeder manages.
func CatalogSize() int {
	return len(catalog)
}

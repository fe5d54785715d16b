package seeders

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	routeModel "vehicle-shipping/models/route"
)

// SeedShippingRoutes inserts the standard route catalogue when rows are
// missing. Existing routes are never modified, so price adjustments made in
// production survive a reseed.
func SeedShippingRoutes(db *gorm.DB) {
	log.Printf("🔍 Checking shipping routes data integrity...")

	price := func(v string) decimal.Decimal {
		d, _ := decimal.NewFromString(v)
		return d
	}

	ptr := func(s string) *string {
		return &s
	}

	routes := []routeModel.Route{
		{OriginCountry: "USA", OriginCity: "New York", OriginPort: ptr("Port Newark"), DestinationCountry: "Germany", DestinationCity: "Hamburg", DestinationPort: ptr("Port of Hamburg"), BasePrice: price("2500.00"), Currency: "USD", EstimatedDays: 14, IsActive: true},
		{OriginCountry: "USA", OriginCity: "Los Angeles", OriginPort: ptr("Port of LA"), DestinationCountry: "Japan", DestinationCity: "Yokohama", DestinationPort: ptr("Port of Yokohama"), BasePrice: price("3200.00"), Currency: "USD", EstimatedDays: 21, IsActive: true},
		{OriginCountry: "USA", OriginCity: "Miami", OriginPort: ptr("PortMiami"), DestinationCountry: "UAE", DestinationCity: "Dubai", DestinationPort: ptr("Jebel Ali"), BasePrice: price("3800.00"), Currency: "USD", EstimatedDays: 28, IsActive: true},
		{OriginCountry: "Germany", OriginCity: "Bremerhaven", OriginPort: ptr("Port of Bremerhaven"), DestinationCountry: "USA", DestinationCity: "Baltimore", DestinationPort: ptr("Port of Baltimore"), BasePrice: price("2700.00"), Currency: "USD", EstimatedDays: 15, IsActive: true},
		{OriginCountry: "Japan", OriginCity: "Nagoya", OriginPort: ptr("Port of Nagoya"), DestinationCountry: "Australia", DestinationCity: "Melbourne", DestinationPort: ptr("Port of Melbourne"), BasePrice: price("2900.00"), Currency: "USD", EstimatedDays: 18, IsActive: true},
		{OriginCountry: "UK", OriginCity: "Southampton", OriginPort: ptr("Port of Southampton"), DestinationCountry: "USA", DestinationCity: "New York", DestinationPort: ptr("Port Newark"), BasePrice: price("2600.00"), Currency: "USD", EstimatedDays: 12, IsActive: true},
		{OriginCountry: "USA", OriginCity: "Houston", OriginPort: ptr("Port of Houston"), DestinationCountry: "USA", DestinationCity: "Miami", DestinationPort: ptr("PortMiami"), BasePrice: price("900.00"), Currency: "USD", EstimatedDays: 5, IsActive: true},
		{OriginCountry: "Netherlands", OriginCity: "Rotterdam", OriginPort: ptr("Port of Rotterdam"), DestinationCountry: "Singapore", DestinationCity: "Singapore", DestinationPort: ptr("Port of Singapore"), BasePrice: price("3400.00"), Currency: "USD", EstimatedDays: 24, IsActive: true},
	}

	type routeKey struct {
		origin, destination string
	}
	keyOf := func(rt routeModel.Route) routeKey {
		return routeKey{rt.OriginCity, rt.DestinationCity}
	}

	var existing []routeModel.Route
	if err := db.Find(&existing).Error; err != nil {
		log.Printf("❌ Failed to load existing routes: %v", err)
		return
	}
	existingKeys := make(map[routeKey]bool)
	for _, rt := range existing {
		existingKeys[keyOf(rt)] = true
	}

	var missing []routeModel.Route
	for _, rt := range routes {
		if !existingKeys[keyOf(rt)] {
			missing = append(missing, rt)
		}
	}

	log.Printf("📊 Data integrity check:")
	log.Printf("   Expected routes: %d", len(routes))
	log.Printf("   Existing routes: %d", len(existing))
	log.Printf("   Missing routes: %d", len(missing))

	if len(missing) == 0 {
		log.Printf("✅ All shipping routes are already present. No seeding needed.")
		return
	}

	log.Printf("🌱 Seeding %d missing shipping routes...", len(missing))

	successCount := 0
	failureCount := 0

	for _, rt := range missing {
		if err := db.Create(&rt).Error; err != nil {
			log.Printf("❌ Failed to seed route %s → %s: %v", rt.OriginCity, rt.DestinationCity, err)
			failureCount++
		} else {
			log.Printf("✅ Added: %s → %s", rt.OriginCity, rt.DestinationCity)
			successCount++
		}
	}

	log.Printf("🎉 Seeding completed! Successfully inserted %d routes, %d failures", successCount, failureCount)

	var finalCount int64
	if err := db.Model(&routeModel.Route{}).Count(&finalCount).Error; err == nil {
		log.Printf("📈 Database now contains %d shipping routes", finalCount)
	}
}

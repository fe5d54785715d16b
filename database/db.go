package database

import (
	"fmt"
	"os"

	"vehicle-shipping/logger"
	activityModel "vehicle-shipping/models/activity"
	bookingModel "vehicle-shipping/models/booking"
	customerModel "vehicle-shipping/models/customer"
	documentModel "vehicle-shipping/models/document"
	logModel "vehicle-shipping/models/log"
	notificationModel "vehicle-shipping/models/notification"
	paymentModel "vehicle-shipping/models/payment"
	quoteModel "vehicle-shipping/models/quote"
	routeModel "vehicle-shipping/models/route"
	shipmentModel "vehicle-shipping/models/shipment"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&customerModel.Customer{},
		&routeModel.Route{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&quoteModel.Quote{},
		&bookingModel.Booking{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Models hanging off bookings
	stage3Models := []interface{}{
		&bookingModel.BookingStatusEvent{},
		&documentModel.Document{},
		&paymentModel.Payment{},
		&shipmentModel.Shipment{},
	}

	for _, model := range stage3Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 4: Remaining models
	remainingModels := []interface{}{
		&notificationModel.Notification{},
		&activityModel.ActivityLog{},
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Customer indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email)").Error; err != nil {
		return fmt.Errorf("failed to create customer email index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_customers_status ON customers(status)").Error; err != nil {
		return fmt.Errorf("failed to create customer status index: %w", err)
	}

	// Quote indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_quotes_status_valid_until ON quotes(status, valid_until)").Error; err != nil {
		return fmt.Errorf("failed to create quote status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create quote created_at index: %w", err)
	}

	// Booking indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_status_created_at ON bookings(status, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create booking status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_customer_id ON bookings(customer_id)").Error; err != nil {
		return fmt.Errorf("failed to create booking customer_id index: %w", err)
	}

	// Payment indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_payments_status_created_at ON payments(status, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create payment status index: %w", err)
	}

	// Document indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_documents_status_expiry ON documents(status, expiry_date)").Error; err != nil {
		return fmt.Errorf("failed to create document status index: %w", err)
	}

	// Shipment indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_shipments_status ON shipments(status)").Error; err != nil {
		return fmt.Errorf("failed to create shipment status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_shipments_estimated_arrival ON shipments(estimated_arrival)").Error; err != nil {
		return fmt.Errorf("failed to create shipment estimated_arrival index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_quotes_customer",
			sql: `ALTER TABLE quotes ADD CONSTRAINT fk_quotes_customer
				  FOREIGN KEY (customer_id) REFERENCES customers(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_quotes_route",
			sql: `ALTER TABLE quotes ADD CONSTRAINT fk_quotes_route
				  FOREIGN KEY (route_id) REFERENCES routes(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_bookings_customer",
			sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_customer
				  FOREIGN KEY (customer_id) REFERENCES customers(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_bookings_quote",
			sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_quote
				  FOREIGN KEY (quote_id) REFERENCES quotes(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_booking_status_events_booking",
			sql: `ALTER TABLE booking_status_events ADD CONSTRAINT fk_booking_status_events_booking
				  FOREIGN KEY (booking_id) REFERENCES bookings(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_payments_booking",
			sql: `ALTER TABLE payments ADD CONSTRAINT fk_payments_booking
				  FOREIGN KEY (booking_id) REFERENCES bookings(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_documents_customer",
			sql: `ALTER TABLE documents ADD CONSTRAINT fk_documents_customer
				  FOREIGN KEY (customer_id) REFERENCES customers(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_shipments_booking",
			sql: `ALTER TABLE shipments ADD CONSTRAINT fk_shipments_booking
				  FOREIGN KEY (booking_id) REFERENCES bookings(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

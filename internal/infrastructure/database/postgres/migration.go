// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/cardshop-backend/internal/domain/catalog"
	"github.com/your-org/cardshop-backend/internal/domain/customer"
	"github.com/your-org/cardshop-backend/internal/domain/event"
	"github.com/your-org/cardshop-backend/internal/domain/inventory"
	"github.com/your-org/cardshop-backend/internal/domain/packs"
	"github.com/your-org/cardshop-backend/internal/domain/purchasing"
	"github.com/your-org/cardshop-backend/internal/domain/sales"
	"github.com/your-org/cardshop-backend/internal/domain/staff"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&staff.Staff{},
		&catalog.Category{},
		&catalog.Supplier{},
		&inventory.InventoryItem{},
		&customer.Customer{},

		&purchasing.PurchaseOrder{},
		&purchasing.PurchaseOrderItem{},

		&sales.CustomerOrder{},
		&sales.CustomerOrderItem{},

		&event.Event{},
		&event.EventRegistration{},

		&packs.PackBalance{},
		&packs.PackTransaction{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Inventory indexes
		"CREATE INDEX IF NOT EXISTS idx_inventory_category ON inventory(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_game_title ON inventory(game_title)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_barcode ON inventory(barcode)",

		// Purchase order indexes
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_status ON purchase_orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_order_date ON purchase_orders(order_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_po_items_po_inventory ON po_items(po_id, inventory_id)",

		// Customer order indexes
		"CREATE INDEX IF NOT EXISTS idx_customer_orders_customer_date ON customer_orders(customer_id, order_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_customer_orders_type_status ON customer_orders(order_type, status)",
		"CREATE INDEX IF NOT EXISTS idx_customer_order_items_order ON customer_order_items(order_id)",

		// Pack ledger indexes
		"CREATE INDEX IF NOT EXISTS idx_pack_transactions_customer_created ON pack_transactions(customer_id, created_at DESC)",

		// Event indexes
		"CREATE INDEX IF NOT EXISTS idx_event_registrations_customer ON event_registrations(customer_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedAdminStaff(); err != nil {
		return fmt.Errorf("failed to seed admin staff: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCategories creates the default card game categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	names := []string{
		"Booster Box",
		"Booster Pack",
		"Single Card",
		"Starter Deck",
		"Accessories",
	}

	for _, name := range names {
		var existing catalog.Category
		result := m.db.Where("name = ?", name).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&catalog.Category{Name: name}).Error; err != nil {
				return err
			}
			log.Printf("✅ Created category: %s", name)
		} else {
			log.Printf("⏭️ Category already exists: %s", name)
		}
	}

	return nil
}

// seedAdminStaff creates the default admin account for development
func (m *Migration) seedAdminStaff() error {
	log.Println("👤 Seeding admin staff account...")

	var existing staff.Staff
	result := m.db.Where("username = ?", "admin").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		admin := staff.Staff{
			Username:     "admin",
			PasswordHash: string(hashedPassword),
			DisplayName:  "Administrator",
			Role:         "admin",
			IsActive:     true,
		}
		if err := m.db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin staff: %w", err)
		}

		log.Println("✅ Created admin staff: admin (password: admin123)")
	} else {
		log.Printf("⏭️ Admin staff already exists with ID: %d", existing.ID)
	}

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"pack_transactions",
		"pack_balances",
		"event_registrations",
		"events",
		"customer_order_items",
		"customer_orders",
		"po_items",
		"purchase_orders",
		"customers",
		"inventory",
		"suppliers",
		"categories",
		"staff",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

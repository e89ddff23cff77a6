package event_test

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/customer"
	"github.com/your-org/cardshop-backend/internal/domain/event"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	models := []interface{}{
		&customer.Customer{},
		&event.Event{},
		&event.EventRegistration{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			t.Fatalf("failed to migrate test database: %v", err)
		}
	}

	err = db.Exec("TRUNCATE TABLE event_registrations, events, customers RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("failed to reset test database: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	cust := customer.Customer{Name: name, Status: "Active"}
	if err := db.Create(&cust).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return cust.ID
}

func TestCreate_ParsesEventDate(t *testing.T) {
	db := setupTestDB(t)
	svc := event.NewService(db, &config.Config{})

	created, err := svc.Create(&event.CreateRequest{
		Name:      "OP-09 Launch Tournament",
		GameTitle: "One Piece",
		EventDate: "2026-09-12",
		Fee:       15,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := created.EventDate.Format("2006-01-02"); got != "2026-09-12" {
		t.Errorf("expected event date 2026-09-12, got %q", got)
	}

	_, err = svc.Create(&event.CreateRequest{Name: "Bad Date", EventDate: "12/09/2026"})
	if err == nil {
		t.Fatal("expected malformed date to fail")
	}
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRegister_RejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := event.NewService(db, &config.Config{})
	customerID := seedCustomer(t, db, "Hayashi Mio")

	created, err := svc.Create(&event.CreateRequest{
		Name:      "Weiss Schwarz Regional",
		EventDate: "2026-10-03",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Register(created.ID, &event.RegisterRequest{CustomerID: customerID}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err = svc.Register(created.ID, &event.RegisterRequest{CustomerID: customerID})
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("expected conflict error, got %v", err)
	}

	var count int64
	db.Model(&event.EventRegistration{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 registration, got %d", count)
	}
}

func TestRegister_UnknownEventOrCustomer(t *testing.T) {
	db := setupTestDB(t)
	svc := event.NewService(db, &config.Config{})
	customerID := seedCustomer(t, db, "Okada Yui")

	_, err := svc.Register(5555, &event.RegisterRequest{CustomerID: customerID})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not-found for unknown event, got %v", err)
	}

	created, err := svc.Create(&event.CreateRequest{Name: "Union Arena Open", EventDate: "2026-11-01"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = svc.Register(created.ID, &event.RegisterRequest{CustomerID: 5555})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not-found for unknown customer, got %v", err)
	}
}

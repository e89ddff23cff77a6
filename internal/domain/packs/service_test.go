package packs_test

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/customer"
	"github.com/your-org/cardshop-backend/internal/domain/event"
	"github.com/your-org/cardshop-backend/internal/domain/packs"
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
		&packs.PackBalance{},
		&packs.PackTransaction{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			t.Fatalf("failed to migrate test database: %v", err)
		}
	}

	err = db.Exec("TRUNCATE TABLE pack_transactions, pack_balances, event_registrations, events, customers RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("failed to reset test database: %v", err)
	}
	return db
}

func newPackService(db *gorm.DB) *packs.Service {
	cfg := &config.Config{}
	return packs.NewService(db, cfg, event.NewService(db, cfg))
}

func seedCustomer(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	cust := customer.Customer{Name: "Sato Kenji", Status: "Active"}
	if err := db.Create(&cust).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return cust.ID
}

func seedEvent(t *testing.T, db *gorm.DB, name string, registeredCustomers ...uint) uint {
	t.Helper()
	ev := event.Event{Name: name, GameTitle: "One Piece"}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	for _, customerID := range registeredCustomers {
		reg := event.EventRegistration{EventID: ev.ID, CustomerID: customerID}
		if err := db.Create(&reg).Error; err != nil {
			t.Fatalf("failed to seed registration: %v", err)
		}
	}
	return ev.ID
}

func balanceOf(t *testing.T, db *gorm.DB, customerID uint, gameTitle, packType string) int {
	t.Helper()
	var balance packs.PackBalance
	err := db.Where("customer_id = ? AND game_title = ? AND pack_type = ?",
		customerID, gameTitle, packType).First(&balance).Error
	if err != nil {
		t.Fatalf("failed to load pack balance: %v", err)
	}
	return balance.Quantity
}

func TestApplyChange_RequiresEventRegistration(t *testing.T) {
	db := setupTestDB(t)
	svc := newPackService(db)
	customerID := seedCustomer(t, db)
	registeredEvent := seedEvent(t, db, "OP Championship", customerID)
	otherEvent := seedEvent(t, db, "Weiss Regional")

	balance, err := svc.ApplyChange(&packs.ApplyChangeRequest{
		CustomerID:   customerID,
		GameTitle:    "One Piece",
		PackType:     "Booster",
		ChangeAmount: 3,
		EventID:      &registeredEvent,
	})
	if err != nil {
		t.Fatalf("ApplyChange failed: %v", err)
	}
	if balance.Quantity != 3 {
		t.Errorf("expected balance 3, got %d", balance.Quantity)
	}

	// Credits against an event the customer never registered for are refused.
	_, err = svc.ApplyChange(&packs.ApplyChangeRequest{
		CustomerID:   customerID,
		GameTitle:    "One Piece",
		PackType:     "Booster",
		ChangeAmount: 2,
		EventID:      &otherEvent,
	})
	if err == nil {
		t.Fatal("expected unregistered event credit to fail")
	}
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Errorf("expected business-rule error, got %v", err)
	}

	if got := balanceOf(t, db, customerID, "One Piece", "Booster"); got != 3 {
		t.Errorf("expected balance unchanged at 3, got %d", got)
	}
	var entries int64
	db.Model(&packs.PackTransaction{}).Count(&entries)
	if entries != 1 {
		t.Errorf("expected 1 ledger entry, got %d", entries)
	}
}

func TestApplyChange_BalanceEqualsLedgerSum(t *testing.T) {
	db := setupTestDB(t)
	svc := newPackService(db)
	customerID := seedCustomer(t, db)
	eventID := seedEvent(t, db, "Store Tournament", customerID)

	for _, change := range []struct {
		amount  int
		eventID *uint
	}{
		{+5, &eventID},
		{-2, nil},
		{+4, &eventID},
		{-3, nil},
	} {
		_, err := svc.ApplyChange(&packs.ApplyChangeRequest{
			CustomerID:   customerID,
			GameTitle:    "One Piece",
			PackType:     "Booster",
			ChangeAmount: change.amount,
			EventID:      change.eventID,
		})
		if err != nil {
			t.Fatalf("ApplyChange(%d) failed: %v", change.amount, err)
		}
	}

	var sum int64
	err := db.Model(&packs.PackTransaction{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error
	if err != nil {
		t.Fatalf("failed to sum ledger: %v", err)
	}

	got := balanceOf(t, db, customerID, "One Piece", "Booster")
	if int64(got) != sum {
		t.Errorf("balance %d does not equal ledger sum %d", got, sum)
	}
	if got != 4 {
		t.Errorf("expected balance 4, got %d", got)
	}
}

func TestApplyChange_RejectsOverRedemption(t *testing.T) {
	db := setupTestDB(t)
	svc := newPackService(db)
	customerID := seedCustomer(t, db)

	// No balance row exists yet.
	_, err := svc.ApplyChange(&packs.ApplyChangeRequest{
		CustomerID:   customerID,
		GameTitle:    "Weiss Schwarz",
		PackType:     "Booster",
		ChangeAmount: -1,
	})
	if err == nil {
		t.Fatal("expected redemption against empty balance to fail")
	}
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Errorf("expected business-rule error, got %v", err)
	}

	// A positive balance still cannot go below zero.
	if _, err := svc.ApplyChange(&packs.ApplyChangeRequest{
		CustomerID:   customerID,
		GameTitle:    "Weiss Schwarz",
		PackType:     "Booster",
		ChangeAmount: 2,
	}); err != nil {
		t.Fatalf("ApplyChange(+2) failed: %v", err)
	}
	_, err = svc.ApplyChange(&packs.ApplyChangeRequest{
		CustomerID:   customerID,
		GameTitle:    "Weiss Schwarz",
		PackType:     "Booster",
		ChangeAmount: -3,
	})
	if err == nil {
		t.Fatal("expected over-redemption to fail")
	}
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Errorf("expected business-rule error, got %v", err)
	}

	if got := balanceOf(t, db, customerID, "Weiss Schwarz", "Booster"); got != 2 {
		t.Errorf("expected balance unchanged at 2, got %d", got)
	}
	var entries int64
	db.Model(&packs.PackTransaction{}).Count(&entries)
	if entries != 1 {
		t.Errorf("expected only the successful credit logged, got %d entries", entries)
	}
}

func TestApplyChange_SeparateKeysSeparateBalances(t *testing.T) {
	db := setupTestDB(t)
	svc := newPackService(db)
	customerID := seedCustomer(t, db)

	for _, change := range []packs.ApplyChangeRequest{
		{CustomerID: customerID, GameTitle: "One Piece", PackType: "Booster", ChangeAmount: 3},
		{CustomerID: customerID, GameTitle: "One Piece", PackType: "Promo", ChangeAmount: 1},
		{CustomerID: customerID, GameTitle: "Union Arena", PackType: "Booster", ChangeAmount: 2},
	} {
		req := change
		if _, err := svc.ApplyChange(&req); err != nil {
			t.Fatalf("ApplyChange failed: %v", err)
		}
	}

	if got := balanceOf(t, db, customerID, "One Piece", "Booster"); got != 3 {
		t.Errorf("expected One Piece/Booster balance 3, got %d", got)
	}
	if got := balanceOf(t, db, customerID, "One Piece", "Promo"); got != 1 {
		t.Errorf("expected One Piece/Promo balance 1, got %d", got)
	}
	if got := balanceOf(t, db, customerID, "Union Arena", "Booster"); got != 2 {
		t.Errorf("expected Union Arena/Booster balance 2, got %d", got)
	}
}

func TestApplyChange_UnknownCustomer(t *testing.T) {
	db := setupTestDB(t)
	svc := newPackService(db)

	_, err := svc.ApplyChange(&packs.ApplyChangeRequest{
		CustomerID:   7777,
		GameTitle:    "One Piece",
		PackType:     "Booster",
		ChangeAmount: 1,
	})
	if err == nil {
		t.Fatal("expected error for unknown customer")
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not-found error, got %v", err)
	}
}

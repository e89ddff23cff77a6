package inventory_test

import (
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/catalog"
	"github.com/your-org/cardshop-backend/internal/domain/inventory"
	"github.com/your-org/cardshop-backend/internal/domain/purchasing"
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
		&catalog.Category{},
		&catalog.Supplier{},
		&inventory.InventoryItem{},
		&purchasing.PurchaseOrder{},
		&purchasing.PurchaseOrderItem{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			t.Fatalf("failed to migrate test database: %v", err)
		}
	}

	err = db.Exec("TRUNCATE TABLE po_items, purchase_orders, inventory, suppliers, categories RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("failed to reset test database: %v", err)
	}
	return db
}

func seedItem(t *testing.T, db *gorm.DB, stock int) uint {
	t.Helper()
	item := inventory.InventoryItem{
		GameTitle:     "Weiss Schwarz",
		CardName:      "Hololive Vol.2 Booster Box",
		Price:         75,
		CostPrice:     52,
		StockQuantity: stock,
		PacksPerBox:   16,
		BoxesPerCase:  18,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed inventory item: %v", err)
	}
	return item.ID
}

func TestAdjustStock_SumOfDeltas(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, &config.Config{})
	id := seedItem(t, db, 10)

	for _, delta := range []int{+5, -3, +2, -14} {
		if err := svc.AdjustStock(db, id, delta); err != nil {
			t.Fatalf("AdjustStock(%d) failed: %v", delta, err)
		}
	}

	var item inventory.InventoryItem
	if err := db.First(&item, id).Error; err != nil {
		t.Fatalf("failed to load item: %v", err)
	}
	// 10 + 5 - 3 + 2 - 14 = 0
	if item.StockQuantity != 0 {
		t.Errorf("expected stock 0, got %d", item.StockQuantity)
	}

	// Oversells are recorded, not rejected.
	if err := svc.AdjustStock(db, id, -2); err != nil {
		t.Fatalf("AdjustStock(-2) failed: %v", err)
	}
	db.First(&item, id)
	if item.StockQuantity != -2 {
		t.Errorf("expected stock -2, got %d", item.StockQuantity)
	}
}

func TestAdjustStock_UnknownItem(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, &config.Config{})

	err := svc.AdjustStock(db, 98765, 1)
	if err == nil {
		t.Fatal("expected error for unknown item")
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestUpdateItem_AppliesStockDelta(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, &config.Config{})
	id := seedItem(t, db, 10)

	err := svc.UpdateItem(id, &inventory.UpdateItemRequest{
		Price:         80,
		CostPrice:     55,
		StockQuantity: 25,
	})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	var item inventory.InventoryItem
	db.First(&item, id)
	if item.StockQuantity != 25 {
		t.Errorf("expected stock 25, got %d", item.StockQuantity)
	}
	if item.Price != 80 || item.CostPrice != 55 {
		t.Errorf("expected price 80 / cost 55, got %v / %v", item.Price, item.CostPrice)
	}
}

func TestGetStatus_DerivedAggregates(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, &config.Config{})
	id := seedItem(t, db, 4)

	supplier := catalog.Supplier{Name: "Bushiroad Direct"}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}

	ordered := purchasing.PurchaseOrder{
		SupplierID: supplier.ID,
		PONumber:   "PO-TEST-0001",
		OrderDate:  time.Now(),
		Status:     purchasing.StatusOrdered,
	}
	invoiced := purchasing.PurchaseOrder{
		SupplierID: supplier.ID,
		PONumber:   "PO-TEST-0002",
		OrderDate:  time.Now(),
		Status:     purchasing.StatusInvoiced,
	}
	received := purchasing.PurchaseOrder{
		SupplierID: supplier.ID,
		PONumber:   "PO-TEST-0003",
		OrderDate:  time.Now(),
		Status:     purchasing.StatusReceived,
	}
	for _, po := range []*purchasing.PurchaseOrder{&ordered, &invoiced, &received} {
		if err := db.Create(po).Error; err != nil {
			t.Fatalf("failed to seed purchase order: %v", err)
		}
	}

	lines := []purchasing.PurchaseOrderItem{
		{POID: ordered.ID, InventoryID: id, OrderedQty: 7, UnitCost: 52},
		{POID: invoiced.ID, InventoryID: id, OrderedQty: 6, AllocatedQty: 4, UnitCost: 52},
		{POID: received.ID, InventoryID: id, OrderedQty: 9, ReceivedQty: 9, UnitCost: 52},
	}
	for i := range lines {
		if err := db.Create(&lines[i]).Error; err != nil {
			t.Fatalf("failed to seed purchase order line: %v", err)
		}
	}

	rows, err := svc.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.QtyOrdered != 7 {
		t.Errorf("expected qty_ordered=7 (Ordered POs only), got %d", row.QtyOrdered)
	}
	if row.QtyAllocated != 4 {
		t.Errorf("expected qty_allocated=4 (Invoiced POs only), got %d", row.QtyAllocated)
	}
	if row.ActivePOCount != 2 {
		t.Errorf("expected active_po_count=2, got %d", row.ActivePOCount)
	}
}

func TestDeleteItem_BlockedByReferences(t *testing.T) {
	db := setupTestDB(t)
	svc := inventory.NewService(db, &config.Config{})
	id := seedItem(t, db, 0)

	supplier := catalog.Supplier{Name: "Konami Wholesale"}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}
	po := purchasing.PurchaseOrder{
		SupplierID: supplier.ID,
		PONumber:   "PO-TEST-0004",
		OrderDate:  time.Now(),
		Status:     purchasing.StatusOrdered,
	}
	if err := db.Create(&po).Error; err != nil {
		t.Fatalf("failed to seed purchase order: %v", err)
	}
	line := purchasing.PurchaseOrderItem{POID: po.ID, InventoryID: id, OrderedQty: 1}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("failed to seed purchase order line: %v", err)
	}

	err := svc.DeleteItem(id)
	if err == nil {
		t.Fatal("expected delete to be blocked")
	}
	if apperr.KindOf(err) != apperr.KindReferentialIntegrity {
		t.Errorf("expected referential-integrity error, got %v", err)
	}

	var count int64
	db.Model(&inventory.InventoryItem{}).Count(&count)
	if count != 1 {
		t.Errorf("expected item to survive, found %d rows", count)
	}
}

package purchasing_test

import (
	"errors"
	"os"
	"strings"
	"testing"

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

// setupTestDB connects to the dedicated test database, migrates the
// tables this package touches and wipes them clean.
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

func newPurchasingService(db *gorm.DB) *purchasing.Service {
	cfg := &config.Config{}
	return purchasing.NewService(db, cfg, inventory.NewService(db, cfg), nil)
}

func seedSupplierAndItems(t *testing.T, db *gorm.DB, stocks ...int) (uint, []uint) {
	t.Helper()

	supplier := catalog.Supplier{Name: "Bandai Distribution", PaymentTerms: "Net 30"}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}

	ids := make([]uint, 0, len(stocks))
	for i, stock := range stocks {
		item := inventory.InventoryItem{
			GameTitle:     "One Piece",
			CardName:      "OP-09 Booster Box",
			CardID:        "OP-09",
			Price:         90,
			CostPrice:     60,
			StockQuantity: stock,
			PacksPerBox:   24,
			BoxesPerCase:  12,
		}
		item.CardID = item.CardID + string(rune('A'+i))
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("failed to seed inventory item: %v", err)
		}
		ids = append(ids, item.ID)
	}
	return supplier.ID, ids
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var item inventory.InventoryItem
	if err := db.First(&item, id).Error; err != nil {
		t.Fatalf("failed to load inventory item %d: %v", id, err)
	}
	return item.StockQuantity
}

func TestCreate_GeneratesNumberAndLines(t *testing.T) {
	db := setupTestDB(t)
	svc := newPurchasingService(db)
	supplierID, itemIDs := seedSupplierAndItems(t, db, 0, 0)

	order, err := svc.Create(&purchasing.CreateOrderRequest{
		SupplierID: supplierID,
		TotalCost:  300,
		Items: []purchasing.CreateOrderLine{
			{InventoryID: itemIDs[0], Qty: 3, Cost: 60},
			{InventoryID: itemIDs[1], Qty: 2, Cost: 60},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !strings.HasPrefix(order.PONumber, "PO-") {
		t.Errorf("expected generated PO number, got %q", order.PONumber)
	}
	if order.Status != purchasing.StatusOrdered {
		t.Errorf("expected status Ordered, got %q", order.Status)
	}

	var lines []purchasing.PurchaseOrderItem
	if err := db.Where("po_id = ?", order.ID).Find(&lines).Error; err != nil {
		t.Fatalf("failed to load lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line.ReceivedQty != 0 {
			t.Errorf("line %d: expected received_qty=0, got %d", line.ID, line.ReceivedQty)
		}
	}
}

func TestCreate_RollsBackOnBadLine(t *testing.T) {
	db := setupTestDB(t)
	svc := newPurchasingService(db)
	supplierID, itemIDs := seedSupplierAndItems(t, db, 0)

	_, err := svc.Create(&purchasing.CreateOrderRequest{
		SupplierID: supplierID,
		Items: []purchasing.CreateOrderLine{
			{InventoryID: itemIDs[0], Qty: 3, Cost: 60},
			{InventoryID: 99999, Qty: 2, Cost: 60},
		},
	})
	if err == nil {
		t.Fatal("expected error for unknown inventory item")
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not-found error, got %v", err)
	}

	var headers, lines int64
	db.Model(&purchasing.PurchaseOrder{}).Count(&headers)
	db.Model(&purchasing.PurchaseOrderItem{}).Count(&lines)
	if headers != 0 || lines != 0 {
		t.Errorf("expected no rows after rollback, got %d headers and %d lines", headers, lines)
	}
}

func TestReceive_AllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := newPurchasingService(db)
	supplierID, itemIDs := seedSupplierAndItems(t, db, 10, 10, 10)

	order, err := svc.Create(&purchasing.CreateOrderRequest{
		SupplierID: supplierID,
		Items: []purchasing.CreateOrderLine{
			{InventoryID: itemIDs[0], Qty: 5, Cost: 60},
			{InventoryID: itemIDs[1], Qty: 5, Cost: 60},
			{InventoryID: itemIDs[2], Qty: 5, Cost: 60},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var lines []purchasing.PurchaseOrderItem
	if err := db.Where("po_id = ?", order.ID).Order("id ASC").Find(&lines).Error; err != nil {
		t.Fatalf("failed to load lines: %v", err)
	}

	// Second of three lines over-receives: nothing may change.
	err = svc.Receive(order.ID, []purchasing.ReceiveLine{
		{POItemID: lines[0].ID, InventoryID: itemIDs[0], QtyReceived: 5},
		{POItemID: lines[1].ID, InventoryID: itemIDs[1], QtyReceived: 6},
		{POItemID: lines[2].ID, InventoryID: itemIDs[2], QtyReceived: 5},
	})
	if err == nil {
		t.Fatal("expected over-receipt to fail")
	}
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Errorf("expected business-rule error, got %v", err)
	}

	for i, id := range itemIDs {
		if got := stockOf(t, db, id); got != 10 {
			t.Errorf("item %d: expected stock unchanged at 10, got %d", i, got)
		}
	}
	var received []purchasing.PurchaseOrderItem
	db.Where("po_id = ?", order.ID).Find(&received)
	for _, line := range received {
		if line.ReceivedQty != 0 {
			t.Errorf("line %d: expected received_qty=0 after rollback, got %d", line.ID, line.ReceivedQty)
		}
	}

	// A valid shipment moves both received_qty and stock.
	err = svc.Receive(order.ID, []purchasing.ReceiveLine{
		{POItemID: lines[0].ID, InventoryID: itemIDs[0], QtyReceived: 5},
		{POItemID: lines[1].ID, InventoryID: itemIDs[1], QtyReceived: 3},
	})
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	if got := stockOf(t, db, itemIDs[0]); got != 15 {
		t.Errorf("expected stock 15, got %d", got)
	}
	if got := stockOf(t, db, itemIDs[1]); got != 13 {
		t.Errorf("expected stock 13, got %d", got)
	}

	var line purchasing.PurchaseOrderItem
	db.First(&line, lines[1].ID)
	if line.ReceivedQty != 3 {
		t.Errorf("expected received_qty=3, got %d", line.ReceivedQty)
	}
}

func TestRecordPayment_StatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := newPurchasingService(db)
	supplierID, itemIDs := seedSupplierAndItems(t, db, 0, 0)

	create := func(paid float64) *purchasing.PurchaseOrder {
		order, err := svc.Create(&purchasing.CreateOrderRequest{
			SupplierID: supplierID,
			TotalCost:  100,
			PaidAmount: paid,
			Items: []purchasing.CreateOrderLine{
				{InventoryID: itemIDs[0], Qty: 1, Cost: 100},
			},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		return order
	}

	// 40 already paid, 60 more settles the invoice in full.
	order := create(40)
	paid, err := svc.RecordPayment(order.ID, &purchasing.RecordPaymentRequest{
		InvoiceNo:      "INV-1001",
		PaymentDate:    "2026-08-20",
		AmountPaid:     60,
		FinalTotalCost: 100,
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if paid.PaidAmount != 100 {
		t.Errorf("expected paid_amount=100, got %v", paid.PaidAmount)
	}
	if paid.PaymentStatus != purchasing.PaymentStatusFullyPaid {
		t.Errorf("expected Fully Paid, got %q", paid.PaymentStatus)
	}
	if paid.InvoiceNo != "INV-1001" {
		t.Errorf("expected invoice number recorded, got %q", paid.InvoiceNo)
	}

	// A fraction of a cent short of the invoiced total stays Partial.
	order = create(40)
	paid, err = svc.RecordPayment(order.ID, &purchasing.RecordPaymentRequest{
		AmountPaid:     59.999,
		FinalTotalCost: 100,
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if paid.PaymentStatus != purchasing.PaymentStatusPartial {
		t.Errorf("expected Partial, got %q", paid.PaymentStatus)
	}
}

func TestRecordPayment_UnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newPurchasingService(db)

	_, err := svc.RecordPayment(4242, &purchasing.RecordPaymentRequest{
		AmountPaid:     10,
		FinalTotalCost: 10,
	})
	if err == nil {
		t.Fatal("expected error for unknown purchase order")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Errorf("expected not-found error, got %v", err)
	}
}

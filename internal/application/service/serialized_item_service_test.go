package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
)

func mintOrderLine(productID uuid.UUID, quantity int) entity.OrderLine {
	return entity.OrderLine{ProductID: productID, Quantity: quantity}
}

// mustCreateSentPO creates a purchase order for one order and moves it to
// sent so it can receive goods.
func mustCreateSentPO(t *testing.T, f *fixture, storeID, orderID uuid.UUID) *entity.PurchaseOrder {
	t.Helper()
	supplier := f.m.addSupplier("Osaka Optical")
	po, err := f.pos.CreatePurchaseOrder(context.Background(), &CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		StoreID:    storeID,
		OrderIDs:   []uuid.UUID{orderID},
		ActorID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder() error = %v", err)
	}
	po, err = f.pos.SendPurchaseOrder(context.Background(), po.ID, uuid.New())
	if err != nil {
		t.Fatalf("SendPurchaseOrder() error = %v", err)
	}
	return po
}

// mintFixture is a receiving fixture with the frame line fully received, so
// one frame unit may be minted.
func newMintFixture(t *testing.T) *receivingFixture {
	t.Helper()
	rf := newReceivingFixture(t)
	_, err := rf.f.receivings.CreateReceiving(context.Background(), &CreateReceivingInput{
		PurchaseOrderID: rf.po.ID,
		ActorID:         rf.actorID,
		Lines: []ReceivingLineInput{
			{PurchaseOrderLineID: rf.frameLine.ID, ReceivedQuantity: 1, QualityStatus: enum.QualityStatusGood},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceiving() error = %v", err)
	}
	return rf
}

func TestMintWithGeneratedSerial(t *testing.T) {
	rf := newMintFixture(t)

	items, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items:               []MintItemInput{{Color: "Black"}},
	})
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("minted count = %d, want 1", len(items))
	}

	item := items[0]
	if item.Status != enum.SerializedItemStatusInStock {
		t.Errorf("status = %s, want in_stock", item.Status)
	}
	if item.StoreID != rf.store.ID {
		t.Error("item not assigned to the purchase order's store")
	}
	if item.PurchasePrice != rf.frameLine.UnitCost {
		t.Errorf("purchase price = %d, want %d", item.PurchasePrice, rf.frameLine.UnitCost)
	}
	if item.PurchaseOrderLineID == nil || *item.PurchaseOrderLineID != rf.frameLine.ID {
		t.Error("item not linked to its purchase order line")
	}
	prefix := rf.frame.Code + "-" + rf.store.Code + "-"
	if !strings.HasPrefix(item.SerialNumber, prefix) {
		t.Errorf("generated serial %q does not start with %q", item.SerialNumber, prefix)
	}

	count, err := rf.f.items.MintedCount(context.Background(), rf.frameLine.ID)
	if err != nil {
		t.Fatalf("MintedCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("MintedCount() = %d, want 1", count)
	}
}

func TestMintWithProvidedSerial(t *testing.T) {
	rf := newMintFixture(t)

	items, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items:               []MintItemInput{{SerialNumber: "FRAME-0001", Color: "Tortoise"}},
	})
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if items[0].SerialNumber != "FRAME-0001" {
		t.Errorf("serial = %q, want FRAME-0001", items[0].SerialNumber)
	}

	got, err := rf.f.items.GetBySerial(context.Background(), "FRAME-0001")
	if err != nil {
		t.Fatalf("GetBySerial() error = %v", err)
	}
	if got.ID != items[0].ID {
		t.Error("GetBySerial() returned a different item")
	}
}

func TestMintWithStatusOverride(t *testing.T) {
	rf := newMintFixture(t)

	items, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items: []MintItemInput{
			{Color: "Black", Status: enum.SerializedItemStatusReserved},
		},
	})
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if items[0].Status != enum.SerializedItemStatusReserved {
		t.Errorf("status = %s, want reserved", items[0].Status)
	}
}

func TestMintRejectsUnknownStatus(t *testing.T) {
	rf := newMintFixture(t)

	_, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items:               []MintItemInput{{Color: "Black", Status: "on_loan"}},
	})
	if err == nil {
		t.Fatal("unknown item status accepted, want error")
	}
	if len(rf.f.m.items) != 0 {
		t.Error("items written despite invalid status")
	}
}

func TestMintRejectsOverCap(t *testing.T) {
	rf := newMintFixture(t)

	// The frame line received exactly one unit.
	_, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items:               []MintItemInput{{Color: "Black"}, {Color: "Gold"}},
	})
	if err == nil {
		t.Fatal("minting beyond received quantity succeeded, want error")
	}
	if len(rf.f.m.items) != 0 {
		t.Error("items written despite cap violation")
	}

	// The cap counts already-minted units too.
	if _, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items:               []MintItemInput{{Color: "Black"}},
	}); err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if _, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items:               []MintItemInput{{Color: "Gold"}},
	}); err == nil {
		t.Error("second mint over the received quantity succeeded, want error")
	}
}

func TestMintRejectsDuplicateSerials(t *testing.T) {
	rf := newMintFixture(t)

	_, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items: []MintItemInput{
			{SerialNumber: "FRAME-0001", Color: "Black"},
			{SerialNumber: "FRAME-0001", Color: "Gold"},
		},
	})
	if err == nil {
		t.Fatal("duplicate serials in one request accepted, want error")
	}

	if _, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items:               []MintItemInput{{SerialNumber: "FRAME-0001", Color: "Black"}},
	}); err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	// Registering the same serial again conflicts, and the error names it.
	// Receive more frames first so the cap is not what trips.
	order2 := rf.f.m.addOrder(rf.store.ID, enum.OrderStatusOrdered,
		mintOrderLine(rf.frame.ID, 1),
	)
	po2 := mustCreateSentPO(t, rf.f, rf.store.ID, order2.ID)
	if _, err := rf.f.receivings.CreateReceiving(context.Background(), &CreateReceivingInput{
		PurchaseOrderID: po2.ID,
		ActorID:         rf.actorID,
		Lines: []ReceivingLineInput{
			{PurchaseOrderLineID: po2.Lines[0].ID, ReceivedQuantity: 1, QualityStatus: enum.QualityStatusGood},
		},
	}); err != nil {
		t.Fatalf("CreateReceiving() error = %v", err)
	}

	_, err = rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: po2.Lines[0].ID,
		Items:               []MintItemInput{{SerialNumber: "FRAME-0001", Color: "Gold"}},
	})
	if err == nil {
		t.Fatal("already-registered serial accepted, want error")
	}
	if !strings.Contains(err.Error(), "FRAME-0001") {
		t.Errorf("error %q does not name the conflicting serial", err)
	}
}

func TestMintValidation(t *testing.T) {
	rf := newMintFixture(t)

	tests := []struct {
		name  string
		input *MintInput
	}{
		{"no items", &MintInput{PurchaseOrderLineID: rf.frameLine.ID}},
		{"missing color", &MintInput{PurchaseOrderLineID: rf.frameLine.ID, Items: []MintItemInput{{SerialNumber: "X"}}}},
		{"unknown line", &MintInput{PurchaseOrderLineID: uuid.New(), Items: []MintItemInput{{Color: "Black"}}}},
		{"quantity-managed product", &MintInput{PurchaseOrderLineID: rf.lensLine.ID, Items: []MintItemInput{{Color: "Clear"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rf.f.items.Mint(context.Background(), tt.input); err == nil {
				t.Error("Mint() succeeded, want error")
			}
		})
	}
}

func TestStoreSummary(t *testing.T) {
	rf := newMintFixture(t)

	if _, err := rf.f.items.Mint(context.Background(), &MintInput{
		PurchaseOrderLineID: rf.frameLine.ID,
		Items:               []MintItemInput{{Color: "Black"}},
	}); err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	summary, err := rf.f.items.StoreSummary(context.Background(), rf.store.ID)
	if err != nil {
		t.Fatalf("StoreSummary() error = %v", err)
	}
	if summary[enum.SerializedItemStatusInStock] != 1 {
		t.Errorf("in_stock count = %d, want 1", summary[enum.SerializedItemStatusInStock])
	}

	if _, err := rf.f.items.StoreSummary(context.Background(), uuid.New()); err == nil {
		t.Error("StoreSummary() for unknown store succeeded, want error")
	}
}

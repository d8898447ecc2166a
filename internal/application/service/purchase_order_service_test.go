package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
)

func TestRecomputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		costs        []int64
		wantSubtotal int64
		wantTax      int64
		wantTotal    int64
	}{
		{"spec scenario", []int64{5000, 2000}, 7000, 700, 7700},
		{"tax floored to whole yen", []int64{105}, 105, 10, 115},
		{"empty", nil, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []entity.PurchaseOrderLine
			for _, cost := range tt.costs {
				lines = append(lines, entity.PurchaseOrderLine{TotalCost: cost})
			}
			subtotal, tax, total := RecomputeTotals(lines)
			if subtotal != tt.wantSubtotal || tax != tt.wantTax || total != tt.wantTotal {
				t.Errorf("RecomputeTotals() = (%d, %d, %d), want (%d, %d, %d)",
					subtotal, tax, total, tt.wantSubtotal, tt.wantTax, tt.wantTotal)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	got := FormatNumber(day, "SHJ", 3)
	if got != "PO260831SHJ003" {
		t.Errorf("FormatNumber() = %q, want %q", got, "PO260831SHJ003")
	}
}

func TestCreatePurchaseOrder(t *testing.T) {
	f := newFixture()
	store := f.m.addStore("SHJ")
	supplier := f.m.addSupplier("Tokyo Optical")
	frame := f.m.addProduct("FR-001", enum.ProductCategoryFrame, enum.ManagementTypeIndividual, 5000)
	lens := f.m.addProduct("LN-001", enum.ProductCategoryLens, enum.ManagementTypeQuantity, 1000)
	actorID := uuid.New()

	order := f.m.addOrder(store.ID, enum.OrderStatusPrescriptionDone,
		entity.OrderLine{ProductID: frame.ID, Quantity: 1},
		entity.OrderLine{ProductID: lens.ID, Quantity: 2},
	)

	po, err := f.pos.CreatePurchaseOrder(context.Background(), &CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		StoreID:    store.ID,
		OrderIDs:   []uuid.UUID{order.ID},
		ActorID:    actorID,
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder() error = %v", err)
	}

	if po.Status != enum.PurchaseOrderStatusDraft {
		t.Errorf("status = %s, want draft", po.Status)
	}
	wantNumber := FormatNumber(time.Now(), "SHJ", 1)
	if po.Number != wantNumber {
		t.Errorf("number = %q, want %q", po.Number, wantNumber)
	}
	// 5000×1 + 1000×2 = 7000, 10% tax floored
	if po.Subtotal != 7000 || po.Tax != 700 || po.Total != 7700 {
		t.Errorf("totals = (%d, %d, %d), want (7000, 700, 7700)", po.Subtotal, po.Tax, po.Total)
	}
	if len(po.Lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(po.Lines))
	}
	for _, line := range po.Lines {
		if line.OrderLineID == nil {
			t.Errorf("line %s has no order line reference", line.ID)
		}
		if line.TotalCost != line.UnitCost*int64(line.Quantity) {
			t.Errorf("line total cost %d does not match unit cost %d x quantity %d",
				line.TotalCost, line.UnitCost, line.Quantity)
		}
	}

	if got := f.m.orderByID(order.ID).Status; got != enum.OrderStatusPurchaseOrdered {
		t.Errorf("source order status = %s, want purchase_ordered", got)
	}

	// The same order cannot be purchased twice: its lines are referenced and
	// its status moved on.
	_, err = f.pos.CreatePurchaseOrder(context.Background(), &CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		StoreID:    store.ID,
		OrderIDs:   []uuid.UUID{order.ID},
		ActorID:    actorID,
	})
	if err == nil {
		t.Fatal("second CreatePurchaseOrder() for the same order succeeded, want error")
	}
	if !strings.Contains(err.Error(), order.ID.String()) {
		t.Errorf("error %q does not name the rejected order id", err)
	}
}

func TestCreatePurchaseOrderSequencePerDay(t *testing.T) {
	f := newFixture()
	store := f.m.addStore("SHJ")
	supplier := f.m.addSupplier("Tokyo Optical")
	frame := f.m.addProduct("FR-001", enum.ProductCategoryFrame, enum.ManagementTypeIndividual, 5000)

	for i, wantSeq := range []int{1, 2} {
		order := f.m.addOrder(store.ID, enum.OrderStatusOrdered,
			entity.OrderLine{ProductID: frame.ID, Quantity: 1},
		)
		po, err := f.pos.CreatePurchaseOrder(context.Background(), &CreatePurchaseOrderInput{
			SupplierID: supplier.ID,
			StoreID:    store.ID,
			OrderIDs:   []uuid.UUID{order.ID},
			ActorID:    uuid.New(),
		})
		if err != nil {
			t.Fatalf("CreatePurchaseOrder() #%d error = %v", i+1, err)
		}
		want := FormatNumber(time.Now(), "SHJ", wantSeq)
		if po.Number != want {
			t.Errorf("number #%d = %q, want %q", i+1, po.Number, want)
		}
	}
}

func TestCreatePurchaseOrderConcurrentNumbering(t *testing.T) {
	f := newFixture()
	store := f.m.addStore("SHJ")
	supplier := f.m.addSupplier("Tokyo Optical")
	frame := f.m.addProduct("FR-001", enum.ProductCategoryFrame, enum.ManagementTypeIndividual, 5000)

	const n = 10
	orderIDs := make([]uuid.UUID, n)
	for i := range orderIDs {
		order := f.m.addOrder(store.ID, enum.OrderStatusOrdered,
			entity.OrderLine{ProductID: frame.ID, Quantity: 1},
		)
		orderIDs[i] = order.ID
	}

	numbers := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(orderID uuid.UUID) {
			defer wg.Done()
			po, err := f.pos.CreatePurchaseOrder(context.Background(), &CreatePurchaseOrderInput{
				SupplierID: supplier.ID,
				StoreID:    store.ID,
				OrderIDs:   []uuid.UUID{orderID},
				ActorID:    uuid.New(),
			})
			if err != nil {
				t.Errorf("CreatePurchaseOrder() error = %v", err)
				return
			}
			numbers <- po.Number
		}(orderIDs[i])
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool, n)
	for number := range numbers {
		if seen[number] {
			t.Errorf("duplicate purchase order number %q", number)
		}
		seen[number] = true
	}
	if len(seen) != n {
		t.Errorf("distinct number count = %d, want %d", len(seen), n)
	}
}

func TestCreatePurchaseOrderValidation(t *testing.T) {
	f := newFixture()
	store := f.m.addStore("SHJ")
	supplier := f.m.addSupplier("Tokyo Optical")

	tests := []struct {
		name       string
		supplierID uuid.UUID
		storeID    uuid.UUID
		orderIDs   []uuid.UUID
	}{
		{"no orders", supplier.ID, store.ID, nil},
		{"unknown supplier", uuid.New(), store.ID, []uuid.UUID{uuid.New()}},
		{"unknown store", supplier.ID, uuid.New(), []uuid.UUID{uuid.New()}},
		{"unknown order", supplier.ID, store.ID, []uuid.UUID{uuid.New()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.pos.CreatePurchaseOrder(context.Background(), &CreatePurchaseOrderInput{
				SupplierID: tt.supplierID,
				StoreID:    tt.storeID,
				OrderIDs:   tt.orderIDs,
				ActorID:    uuid.New(),
			})
			if err == nil {
				t.Error("CreatePurchaseOrder() succeeded, want error")
			}
		})
	}
}

func TestSendPurchaseOrder(t *testing.T) {
	f := newFixture()
	store := f.m.addStore("SHJ")
	supplier := f.m.addSupplier("Tokyo Optical")
	frame := f.m.addProduct("FR-001", enum.ProductCategoryFrame, enum.ManagementTypeIndividual, 5000)
	order := f.m.addOrder(store.ID, enum.OrderStatusOrdered,
		entity.OrderLine{ProductID: frame.ID, Quantity: 1},
	)

	po, err := f.pos.CreatePurchaseOrder(context.Background(), &CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		StoreID:    store.ID,
		OrderIDs:   []uuid.UUID{order.ID},
		ActorID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder() error = %v", err)
	}

	sent, err := f.pos.SendPurchaseOrder(context.Background(), po.ID, uuid.New())
	if err != nil {
		t.Fatalf("SendPurchaseOrder() error = %v", err)
	}
	if sent.Status != enum.PurchaseOrderStatusSent {
		t.Errorf("status = %s, want sent", sent.Status)
	}
	if sent.SentAt == nil {
		t.Error("SentAt not stamped")
	}

	// Sending is a one-way door from draft only.
	if _, err := f.pos.SendPurchaseOrder(context.Background(), po.ID, uuid.New()); err == nil {
		t.Error("SendPurchaseOrder() on a sent order succeeded, want error")
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	store := f.m.addStore("SHJ")
	supplier := f.m.addSupplier("Tokyo Optical")
	lens := f.m.addProduct("LN-001", enum.ProductCategoryLens, enum.ManagementTypeQuantity, 1000)
	order := f.m.addOrder(store.ID, enum.OrderStatusPrescriptionDone,
		entity.OrderLine{ProductID: lens.ID, Quantity: 2},
	)

	po, err := f.pos.CreatePurchaseOrder(context.Background(), &CreatePurchaseOrderInput{
		SupplierID: supplier.ID,
		StoreID:    store.ID,
		OrderIDs:   []uuid.UUID{order.ID},
		ActorID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder() error = %v", err)
	}

	// draft cannot jump straight to delivered
	if _, err := f.pos.UpdateStatus(context.Background(), po.ID, enum.PurchaseOrderStatusDelivered, uuid.New()); err == nil {
		t.Error("draft to delivered succeeded, want error")
	}
	if _, err := f.pos.UpdateStatus(context.Background(), po.ID, "shipped", uuid.New()); err == nil {
		t.Error("unknown status accepted, want error")
	}

	for _, status := range []enum.PurchaseOrderStatus{
		enum.PurchaseOrderStatusSent,
		enum.PurchaseOrderStatusConfirmed,
		enum.PurchaseOrderStatusDelivered,
	} {
		if _, err := f.pos.UpdateStatus(context.Background(), po.ID, status, uuid.New()); err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", status, err)
		}
	}

	got, err := f.pos.GetPurchaseOrder(context.Background(), po.ID)
	if err != nil {
		t.Fatalf("GetPurchaseOrder() error = %v", err)
	}
	if got.ActualDeliveryDate == nil {
		t.Error("delivered order has no actual delivery date")
	}
	if status := f.m.orderByID(order.ID).Status; status != enum.OrderStatusLensReceived {
		t.Errorf("customer order status = %s, want lens_received after delivery", status)
	}

	// delivered is terminal
	if _, err := f.pos.UpdateStatus(context.Background(), po.ID, enum.PurchaseOrderStatusCancelled, uuid.New()); err == nil {
		t.Error("transition out of delivered succeeded, want error")
	}
}

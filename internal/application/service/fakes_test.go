package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/domain/entity"
	"github.com/opticadev/optica-api/internal/domain/enum"
	"github.com/opticadev/optica-api/internal/domain/repository"
	"github.com/opticadev/optica-api/pkg/pagination"
)

// memStore is a shared in-memory backing store for the repository fakes. The
// fakes mirror the real repositories' contracts: nil on not-found, copies on
// read, relations resolved on load.
type memStore struct {
	mu          sync.Mutex
	stores      map[uuid.UUID]entity.Store
	suppliers   map[uuid.UUID]entity.Supplier
	products    map[uuid.UUID]entity.Product
	orders      []entity.Order
	pos         []entity.PurchaseOrder
	poLines     []entity.PurchaseOrderLine
	receivings  []entity.Receiving
	items       []entity.SerializedItem
	levels      []entity.StockLevel
	adjustments []entity.StockAdjustment
}

func newMemStore() *memStore {
	return &memStore{
		stores:    make(map[uuid.UUID]entity.Store),
		suppliers: make(map[uuid.UUID]entity.Supplier),
		products:  make(map[uuid.UUID]entity.Product),
	}
}

func (m *memStore) addStore(code string) entity.Store {
	store := entity.Store{ID: uuid.New(), Code: code, Name: "Store " + code}
	m.stores[store.ID] = store
	return store
}

func (m *memStore) addSupplier(name string) entity.Supplier {
	supplier := entity.Supplier{ID: uuid.New(), Name: name, Active: true}
	m.suppliers[supplier.ID] = supplier
	return supplier
}

func (m *memStore) addProduct(code string, category enum.ProductCategory, managementType enum.ManagementType, costPrice int64) entity.Product {
	product := entity.Product{
		ID:             uuid.New(),
		Code:           code,
		Name:           "Product " + code,
		Category:       category,
		ManagementType: managementType,
		CostPrice:      costPrice,
	}
	m.products[product.ID] = product
	return product
}

// addOrder stores an order and resolves each line's Product relation
func (m *memStore) addOrder(storeID uuid.UUID, status enum.OrderStatus, lines ...entity.OrderLine) entity.Order {
	order := entity.Order{
		ID:         uuid.New(),
		StoreID:    storeID,
		CustomerID: uuid.New(),
		OrderDate:  time.Now(),
		Status:     status,
	}
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		lines[i].OrderID = order.ID
		lines[i].Product = m.products[lines[i].ProductID]
	}
	order.Lines = lines
	m.orders = append(m.orders, order)
	return order
}

func (m *memStore) orderByID(id uuid.UUID) *entity.Order {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return &m.orders[i]
		}
	}
	return nil
}

func (m *memStore) poByID(id uuid.UUID) *entity.PurchaseOrder {
	for i := range m.pos {
		if m.pos[i].ID == id {
			return &m.pos[i]
		}
	}
	return nil
}

func (m *memStore) poLineByID(id uuid.UUID) *entity.PurchaseOrderLine {
	for i := range m.poLines {
		if m.poLines[i].ID == id {
			return &m.poLines[i]
		}
	}
	return nil
}

// linesOf returns copies of a purchase order's lines with relations resolved
func (m *memStore) linesOf(poID uuid.UUID) []entity.PurchaseOrderLine {
	var lines []entity.PurchaseOrderLine
	for _, line := range m.poLines {
		if line.PurchaseOrderID != poID {
			continue
		}
		line.Product = m.products[line.ProductID]
		if line.OrderLineID != nil {
			for _, order := range m.orders {
				for _, orderLine := range order.Lines {
					if orderLine.ID == *line.OrderLineID {
						ol := orderLine
						line.OrderLine = &ol
					}
				}
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// fakeTxKey marks a context as already inside a transaction
type fakeTxKey struct{}

// fakeTxManager serializes callbacks with the store mutex, standing in for
// the row locks that serialize concurrent transactions in Postgres. A nested
// Do joins the outer transaction, as the real manager's savepoints do.
type fakeTxManager struct{ m *memStore }

func (t *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return fn(context.WithValue(ctx, fakeTxKey{}, true))
}

// lock guards reads issued outside a transaction; inside one the store mutex
// is already held.
func (m *memStore) lock(ctx context.Context) func() {
	if ctx.Value(fakeTxKey{}) != nil {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

// fakeOrderRepo implements repository.OrderRepository
type fakeOrderRepo struct{ m *memStore }

func (r *fakeOrderRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	for _, id := range ids {
		if order := r.m.orderByID(id); order != nil {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) ListCandidates(_ context.Context, params *repository.OrderFilterParams) ([]entity.Order, error) {
	var orders []entity.Order
	for _, order := range r.m.orders {
		if order.Status != enum.OrderStatusOrdered && order.Status != enum.OrderStatusPrescriptionDone {
			continue
		}
		if params.StoreID != nil && order.StoreID != *params.StoreID {
			continue
		}
		if params.CustomerID != nil && order.CustomerID != *params.CustomerID {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *fakeOrderRepo) UpdateStatusBatch(_ context.Context, ids []uuid.UUID, status enum.OrderStatus) error {
	for _, id := range ids {
		if order := r.m.orderByID(id); order != nil {
			order.Status = status
		}
	}
	return nil
}

// fakePurchaseOrderRepo implements repository.PurchaseOrderRepository
type fakePurchaseOrderRepo struct{ m *memStore }

func (r *fakePurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	r.m.pos = append(r.m.pos, *po)
	return nil
}

func (r *fakePurchaseOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	defer r.m.lock(ctx)()
	po := r.m.poByID(id)
	if po == nil {
		return nil, nil
	}
	out := *po
	return &out, nil
}

func (r *fakePurchaseOrderRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	defer r.m.lock(ctx)()
	po := r.m.poByID(id)
	if po == nil {
		return nil, nil
	}
	out := *po
	out.Lines = r.m.linesOf(id)
	return &out, nil
}

func (r *fakePurchaseOrderRepo) GetWithLinesForUpdate(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return r.GetWithLines(ctx, id)
}

func (r *fakePurchaseOrderRepo) List(_ context.Context, params *repository.PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var pos []entity.PurchaseOrder
	for _, po := range r.m.pos {
		if params.Status != nil && po.Status != *params.Status {
			continue
		}
		if params.StoreID != nil && po.StoreID != *params.StoreID {
			continue
		}
		if params.SupplierID != nil && po.SupplierID != *params.SupplierID {
			continue
		}
		if params.Search != "" && !strings.Contains(po.Number, params.Search) {
			continue
		}
		pos = append(pos, po)
	}
	return pos, int64(len(pos)), nil
}

func (r *fakePurchaseOrderRepo) ListPendingForStore(_ context.Context, storeID uuid.UUID) ([]entity.PurchaseOrder, error) {
	var pos []entity.PurchaseOrder
	for _, po := range r.m.pos {
		if po.StoreID != storeID {
			continue
		}
		switch po.Status {
		case enum.PurchaseOrderStatusSent, enum.PurchaseOrderStatusConfirmed, enum.PurchaseOrderStatusPartiallyDelivered:
			pos = append(pos, po)
		}
	}
	return pos, nil
}

func (r *fakePurchaseOrderRepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	stored := r.m.poByID(po.ID)
	if stored == nil {
		return nil
	}
	lines := stored.Lines
	*stored = *po
	stored.Lines = lines
	return nil
}

func (r *fakePurchaseOrderRepo) UpdateTotals(_ context.Context, id uuid.UUID, subtotal, tax, total int64) error {
	if po := r.m.poByID(id); po != nil {
		po.Subtotal, po.Tax, po.Total = subtotal, tax, total
	}
	return nil
}

func (r *fakePurchaseOrderRepo) NextSequence(_ context.Context, storeID uuid.UUID, day time.Time) (int, error) {
	count := 0
	for _, po := range r.m.pos {
		if po.StoreID == storeID && po.OrderDate.Format("2006-01-02") == day.Format("2006-01-02") {
			count++
		}
	}
	return count + 1, nil
}

// fakePurchaseOrderLineRepo implements repository.PurchaseOrderLineRepository
type fakePurchaseOrderLineRepo struct{ m *memStore }

func (r *fakePurchaseOrderLineRepo) CreateBatch(_ context.Context, lines []entity.PurchaseOrderLine) error {
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		r.m.poLines = append(r.m.poLines, lines[i])
	}
	return nil
}

func (r *fakePurchaseOrderLineRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.PurchaseOrderLine, error) {
	line := r.m.poLineByID(id)
	if line == nil {
		return nil, nil
	}
	out := *line
	out.Product = r.m.products[line.ProductID]
	if po := r.m.poByID(line.PurchaseOrderID); po != nil {
		out.PurchaseOrder = *po
	}
	return &out, nil
}

func (r *fakePurchaseOrderLineRepo) ListReferences(_ context.Context, orderLineIDs []uuid.UUID) ([]repository.OrderLinePurchaseRef, error) {
	wanted := make(map[uuid.UUID]bool, len(orderLineIDs))
	for _, id := range orderLineIDs {
		wanted[id] = true
	}
	var refs []repository.OrderLinePurchaseRef
	for _, line := range r.m.poLines {
		if line.OrderLineID == nil || !wanted[*line.OrderLineID] {
			continue
		}
		po := r.m.poByID(line.PurchaseOrderID)
		if po == nil {
			continue
		}
		refs = append(refs, repository.OrderLinePurchaseRef{
			OrderLineID:         *line.OrderLineID,
			PurchaseOrderStatus: po.Status,
		})
	}
	return refs, nil
}

func (r *fakePurchaseOrderLineRepo) AddReceivedQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	if line := r.m.poLineByID(id); line != nil {
		line.ReceivedQuantity += quantity
	}
	return nil
}

// fakeReceivingRepo implements repository.ReceivingRepository
type fakeReceivingRepo struct{ m *memStore }

func (r *fakeReceivingRepo) Create(_ context.Context, receiving *entity.Receiving) error {
	if receiving.ID == uuid.Nil {
		receiving.ID = uuid.New()
	}
	for i := range receiving.Lines {
		if receiving.Lines[i].ID == uuid.Nil {
			receiving.Lines[i].ID = uuid.New()
		}
		receiving.Lines[i].ReceivingID = receiving.ID
	}
	r.m.receivings = append(r.m.receivings, *receiving)
	return nil
}

func (r *fakeReceivingRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Receiving, error) {
	for _, receiving := range r.m.receivings {
		if receiving.ID == id {
			out := receiving
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeReceivingRepo) ListByPurchaseOrder(_ context.Context, purchaseOrderID uuid.UUID) ([]entity.Receiving, error) {
	var receivings []entity.Receiving
	for _, receiving := range r.m.receivings {
		if receiving.PurchaseOrderID == purchaseOrderID {
			receivings = append(receivings, receiving)
		}
	}
	return receivings, nil
}

// fakeReceivingLineRepo implements repository.ReceivingLineRepository
type fakeReceivingLineRepo struct{ m *memStore }

func (r *fakeReceivingLineRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ReceivingLine, error) {
	for i := range r.m.receivings {
		for _, line := range r.m.receivings[i].Lines {
			if line.ID == id {
				out := line
				return &out, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeReceivingLineRepo) UpdateQualityStatus(_ context.Context, id uuid.UUID, status enum.QualityStatus, notes *string) error {
	for i := range r.m.receivings {
		for j := range r.m.receivings[i].Lines {
			if r.m.receivings[i].Lines[j].ID == id {
				r.m.receivings[i].Lines[j].QualityStatus = status
				if notes != nil {
					r.m.receivings[i].Lines[j].Notes = notes
				}
			}
		}
	}
	return nil
}

// fakeSerializedItemRepo implements repository.SerializedItemRepository
type fakeSerializedItemRepo struct{ m *memStore }

func (r *fakeSerializedItemRepo) CreateBatch(_ context.Context, items []entity.SerializedItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		r.m.items = append(r.m.items, items[i])
	}
	return nil
}

func (r *fakeSerializedItemRepo) GetBySerialNumber(_ context.Context, serialNumber string) (*entity.SerializedItem, error) {
	for _, item := range r.m.items {
		if item.SerialNumber == serialNumber {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeSerializedItemRepo) List(_ context.Context, params *repository.SerializedItemFilterParams) ([]entity.SerializedItem, int64, error) {
	var items []entity.SerializedItem
	for _, item := range r.m.items {
		if params.StoreID != nil && item.StoreID != *params.StoreID {
			continue
		}
		if params.ProductID != nil && item.ProductID != *params.ProductID {
			continue
		}
		if params.Status != nil && item.Status != *params.Status {
			continue
		}
		if params.Search != "" && !strings.Contains(item.SerialNumber, params.Search) {
			continue
		}
		items = append(items, item)
	}
	return items, int64(len(items)), nil
}

func (r *fakeSerializedItemRepo) CountByPurchaseOrderLine(_ context.Context, lineID uuid.UUID) (int64, error) {
	var count int64
	for _, item := range r.m.items {
		if item.PurchaseOrderLineID != nil && *item.PurchaseOrderLineID == lineID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSerializedItemRepo) ExistingSerialNumbers(_ context.Context, serials []string) ([]string, error) {
	wanted := make(map[string]bool, len(serials))
	for _, serial := range serials {
		wanted[serial] = true
	}
	var taken []string
	for _, item := range r.m.items {
		if wanted[item.SerialNumber] {
			taken = append(taken, item.SerialNumber)
		}
	}
	return taken, nil
}

func (r *fakeSerializedItemRepo) CountByStatusForStore(_ context.Context, storeID uuid.UUID) (map[enum.SerializedItemStatus]int64, error) {
	counts := make(map[enum.SerializedItemStatus]int64)
	for _, item := range r.m.items {
		if item.StoreID == storeID {
			counts[item.Status]++
		}
	}
	return counts, nil
}

// fakeStockLevelRepo implements repository.StockLevelRepository
type fakeStockLevelRepo struct{ m *memStore }

func (r *fakeStockLevelRepo) Create(_ context.Context, level *entity.StockLevel) error {
	if level.ID == uuid.Nil {
		level.ID = uuid.New()
	}
	r.m.levels = append(r.m.levels, *level)
	return nil
}

func (r *fakeStockLevelRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.StockLevel, error) {
	for _, level := range r.m.levels {
		if level.ID == id {
			out := level
			out.Product = r.m.products[level.ProductID]
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeStockLevelRepo) GetByStoreAndProduct(_ context.Context, storeID, productID uuid.UUID) (*entity.StockLevel, error) {
	for _, level := range r.m.levels {
		if level.StoreID == storeID && level.ProductID == productID {
			out := level
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeStockLevelRepo) GetByStoreAndProductForUpdate(ctx context.Context, storeID, productID uuid.UUID) (*entity.StockLevel, error) {
	return r.GetByStoreAndProduct(ctx, storeID, productID)
}

func (r *fakeStockLevelRepo) UpdateQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	for i := range r.m.levels {
		if r.m.levels[i].ID == id {
			r.m.levels[i].CurrentQuantity = quantity
		}
	}
	return nil
}

func (r *fakeStockLevelRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]entity.StockLevel, error) {
	var levels []entity.StockLevel
	for _, level := range r.m.levels {
		if level.StoreID == storeID {
			level.Product = r.m.products[level.ProductID]
			levels = append(levels, level)
		}
	}
	return levels, nil
}

func (r *fakeStockLevelRepo) ListBelowSafety(_ context.Context, storeID uuid.UUID) ([]entity.StockLevel, error) {
	var levels []entity.StockLevel
	for _, level := range r.m.levels {
		if level.StoreID == storeID && level.CurrentQuantity <= level.SafetyStock {
			level.Product = r.m.products[level.ProductID]
			levels = append(levels, level)
		}
	}
	return levels, nil
}

// fakeStockAdjustmentRepo implements repository.StockAdjustmentRepository
type fakeStockAdjustmentRepo struct{ m *memStore }

func (r *fakeStockAdjustmentRepo) Create(_ context.Context, adjustment *entity.StockAdjustment) error {
	if adjustment.ID == uuid.Nil {
		adjustment.ID = uuid.New()
	}
	adjustment.CreatedAt = time.Now()
	r.m.adjustments = append(r.m.adjustments, *adjustment)
	return nil
}

func (r *fakeStockAdjustmentRepo) ListByStockLevel(_ context.Context, stockLevelID uuid.UUID, _ *pagination.PaginationParams) ([]entity.StockAdjustment, int64, error) {
	var adjustments []entity.StockAdjustment
	for _, adjustment := range r.m.adjustments {
		if adjustment.StockLevelID == stockLevelID {
			adjustments = append(adjustments, adjustment)
		}
	}
	return adjustments, int64(len(adjustments)), nil
}

// fakeProductRepo implements repository.ProductRepository
type fakeProductRepo struct{ m *memStore }

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.m.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.m.products[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) List(_ context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	for _, product := range r.m.products {
		if params.Category != nil && product.Category != *params.Category {
			continue
		}
		if params.ManagementType != nil && product.ManagementType != *params.ManagementType {
			continue
		}
		products = append(products, product)
	}
	return products, int64(len(products)), nil
}

// fakeSupplierRepo implements repository.SupplierRepository
type fakeSupplierRepo struct{ m *memStore }

func (r *fakeSupplierRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, ok := r.m.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &supplier, nil
}

func (r *fakeSupplierRepo) List(_ context.Context, activeOnly bool) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	for _, supplier := range r.m.suppliers {
		if activeOnly && !supplier.Active {
			continue
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, nil
}

// fakeStoreRepo implements repository.StoreRepository
type fakeStoreRepo struct{ m *memStore }

func (r *fakeStoreRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Store, error) {
	store, ok := r.m.stores[id]
	if !ok {
		return nil, nil
	}
	return &store, nil
}

func (r *fakeStoreRepo) List(_ context.Context) ([]entity.Store, error) {
	var stores []entity.Store
	for _, store := range r.m.stores {
		stores = append(stores, store)
	}
	return stores, nil
}

// fixture bundles the fakes and every service wired against them
type fixture struct {
	m           *memStore
	eligibility *EligibilityService
	pos         *PurchaseOrderService
	receivings  *ReceivingService
	items       *SerializedItemService
	stock       *StockService
}

func newFixture() *fixture {
	m := newMemStore()
	tx := &fakeTxManager{m}
	orderRepo := &fakeOrderRepo{m}
	poRepo := &fakePurchaseOrderRepo{m}
	poLineRepo := &fakePurchaseOrderLineRepo{m}
	receivingRepo := &fakeReceivingRepo{m}
	receivingLineRepo := &fakeReceivingLineRepo{m}
	itemRepo := &fakeSerializedItemRepo{m}
	levelRepo := &fakeStockLevelRepo{m}
	adjustmentRepo := &fakeStockAdjustmentRepo{m}
	productRepo := &fakeProductRepo{m}
	supplierRepo := &fakeSupplierRepo{m}
	storeRepo := &fakeStoreRepo{m}

	eligibility := NewEligibilityService(orderRepo, poLineRepo)
	stock := NewStockService(tx, levelRepo, adjustmentRepo, productRepo, storeRepo)

	return &fixture{
		m:           m,
		eligibility: eligibility,
		pos:         NewPurchaseOrderService(tx, poRepo, poLineRepo, orderRepo, productRepo, supplierRepo, storeRepo, eligibility),
		receivings:  NewReceivingService(tx, receivingRepo, receivingLineRepo, poRepo, poLineRepo, itemRepo, stock),
		items:       NewSerializedItemService(tx, itemRepo, poLineRepo, storeRepo),
		stock:       stock,
	}
}

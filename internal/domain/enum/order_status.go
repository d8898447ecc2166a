package enum

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusOrdered          OrderStatus = "ordered"
	OrderStatusPrescriptionDone OrderStatus = "prescription_done"
	OrderStatusPurchaseOrdered  OrderStatus = "purchase_ordered"
	OrderStatusLensReceived     OrderStatus = "lens_received"
	OrderStatusCompleted        OrderStatus = "completed"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

// Valid reports whether the status is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusOrdered,
		OrderStatusPrescriptionDone,
		OrderStatusPurchaseOrdered,
		OrderStatusLensReceived,
		OrderStatusCompleted,
		OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

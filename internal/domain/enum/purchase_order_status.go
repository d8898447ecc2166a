package enum

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft              PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSent               PurchaseOrderStatus = "sent"
	PurchaseOrderStatusConfirmed          PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusPartiallyDelivered PurchaseOrderStatus = "partially_delivered"
	PurchaseOrderStatusDelivered          PurchaseOrderStatus = "delivered"
	PurchaseOrderStatusCancelled          PurchaseOrderStatus = "cancelled"
)

// Valid reports whether the status is a known purchase order status
func (s PurchaseOrderStatus) Valid() bool {
	switch s {
	case PurchaseOrderStatusDraft,
		PurchaseOrderStatusSent,
		PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusPartiallyDelivered,
		PurchaseOrderStatusDelivered,
		PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from the status
func (s PurchaseOrderStatus) Terminal() bool {
	return s == PurchaseOrderStatusDelivered || s == PurchaseOrderStatusCancelled
}

// transitions is the single source of truth for the purchase order state
// machine: draft → sent → confirmed → {partially_delivered, delivered},
// cancelled reachable from any non-terminal state.
var purchaseOrderTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderStatusDraft: {
		PurchaseOrderStatusSent,
		PurchaseOrderStatusCancelled,
	},
	PurchaseOrderStatusSent: {
		PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusPartiallyDelivered,
		PurchaseOrderStatusDelivered,
		PurchaseOrderStatusCancelled,
	},
	PurchaseOrderStatusConfirmed: {
		PurchaseOrderStatusPartiallyDelivered,
		PurchaseOrderStatusDelivered,
		PurchaseOrderStatusCancelled,
	},
	PurchaseOrderStatusPartiallyDelivered: {
		PurchaseOrderStatusPartiallyDelivered,
		PurchaseOrderStatusDelivered,
		PurchaseOrderStatusCancelled,
	},
}

// CanTransitionTo reports whether the status may move to next
func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	for _, allowed := range purchaseOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PurchaseOrderStatus) String() string {
	return string(s)
}

package enum

// SerializedItemStatus represents where an individually tracked unit is in
// its life: on the shelf, held for a customer, sold, written off or moved.
type SerializedItemStatus string

const (
	SerializedItemStatusInStock     SerializedItemStatus = "in_stock"
	SerializedItemStatusReserved    SerializedItemStatus = "reserved"
	SerializedItemStatusSold        SerializedItemStatus = "sold"
	SerializedItemStatusDamaged     SerializedItemStatus = "damaged"
	SerializedItemStatusTransferred SerializedItemStatus = "transferred"
)

// Valid reports whether the status is a known serialized item status
func (s SerializedItemStatus) Valid() bool {
	switch s {
	case SerializedItemStatusInStock, SerializedItemStatusReserved,
		SerializedItemStatusSold, SerializedItemStatusDamaged,
		SerializedItemStatusTransferred:
		return true
	}
	return false
}

func (s SerializedItemStatus) String() string {
	return string(s)
}

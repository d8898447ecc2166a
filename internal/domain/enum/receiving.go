package enum

// ReceivingStatus represents the overall status of a receiving event
type ReceivingStatus string

const (
	ReceivingStatusCompleted ReceivingStatus = "completed"
	ReceivingStatusCancelled ReceivingStatus = "cancelled"
)

// Valid reports whether the status is a known receiving status
func (s ReceivingStatus) Valid() bool {
	return s == ReceivingStatusCompleted || s == ReceivingStatusCancelled
}

func (s ReceivingStatus) String() string {
	return string(s)
}

// QualityStatus records the inspection outcome for one received line. It is
// informational for quality reporting and never blocks acceptance.
type QualityStatus string

const (
	QualityStatusPending       QualityStatus = "pending"
	QualityStatusGood          QualityStatus = "good"
	QualityStatusDamaged       QualityStatus = "damaged"
	QualityStatusDefective     QualityStatus = "defective"
	QualityStatusIncorrectSpec QualityStatus = "incorrect_spec"
)

// Valid reports whether the status is a known quality status
func (s QualityStatus) Valid() bool {
	switch s {
	case QualityStatusPending, QualityStatusGood, QualityStatusDamaged,
		QualityStatusDefective, QualityStatusIncorrectSpec:
		return true
	}
	return false
}

func (s QualityStatus) String() string {
	return string(s)
}

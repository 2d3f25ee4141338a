package donation

// DonationStatus is the single status value a donation carries at any time.
type DonationStatus string

const (
	StatusPending   DonationStatus = "Pending"
	StatusAccepted  DonationStatus = "Accepted by Volunteer"
	StatusDeclined  DonationStatus = "Declined"
	StatusPickedUp  DonationStatus = "Picked Up"
	StatusTransit   DonationStatus = "In Transit"
	StatusDelivered DonationStatus = "Delivered"
)

func (ds DonationStatus) String() string {
	return string(ds)
}

func (ds DonationStatus) IsValid() bool {
	switch ds {
	case StatusPending, StatusAccepted, StatusDeclined, StatusPickedUp, StatusTransit, StatusDelivered:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is legal from this status.
func (ds DonationStatus) IsTerminal() bool {
	return ds == StatusDeclined || ds == StatusDelivered
}

// Predecessor returns the status that must legally precede this one in the
// linear lifecycle. Pending has no predecessor.
func (ds DonationStatus) Predecessor() (DonationStatus, bool) {
	switch ds {
	case StatusAccepted, StatusDeclined:
		return StatusPending, true
	case StatusPickedUp:
		return StatusAccepted, true
	case StatusTransit:
		return StatusPickedUp, true
	case StatusDelivered:
		return StatusTransit, true
	default:
		return "", false
	}
}

// GetAllDonationStatuses returns all valid donation statuses
func GetAllDonationStatuses() []DonationStatus {
	return []DonationStatus{
		StatusPending,
		StatusAccepted,
		StatusDeclined,
		StatusPickedUp,
		StatusTransit,
		StatusDelivered,
	}
}

package donation

import (
	"time"
)

// Coordinates is a lat/lng pair. A nil *Coordinates means the position is unknown.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StatusProgress holds the monotonic progress flags of a donation. Once a flag
// is true it is never reset.
type StatusProgress struct {
	Created   bool `gorm:"default:false" json:"created"`
	Accepted  bool `gorm:"default:false" json:"accepted"`
	PickedUp  bool `gorm:"default:false" json:"pickedUp"`
	InTransit bool `gorm:"default:false" json:"inTransit"`
	Delivered bool `gorm:"default:false" json:"delivered"`
}

// Tracking is the location/status history attached to exactly one donation.
// Entries are append-only and kept in chronological insertion order.
type Tracking struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"-"`
	DonationID uint `gorm:"not null;uniqueIndex" json:"-"`

	CurrentLocation string       `gorm:"type:text" json:"currentLocation"`
	Coordinates     *Coordinates `gorm:"embedded;embeddedPrefix:coordinates_" json:"coordinates"`
	LastUpdate      time.Time    `json:"lastUpdate"`

	EstimatedDelivery  *string `gorm:"type:varchar(100)" json:"estimatedDelivery"`
	DistanceCovered    string  `gorm:"type:varchar(50);default:'0 km'" json:"distanceCovered"`
	DestinationAddress *string `gorm:"type:text" json:"destinationAddress"`

	StatusProgress StatusProgress `gorm:"embedded;embeddedPrefix:progress_" json:"statusProgress"`

	Entries []TrackingEntry `gorm:"foreignKey:TrackingID;constraint:OnDelete:CASCADE" json:"locationHistory"`
}

// TableName sets the table name for the Tracking model
func (Tracking) TableName() string {
	return "donation_trackings"
}

// TrackingEntry is one row of the append-only location history.
type TrackingEntry struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"-"`
	TrackingID uint `gorm:"not null;index" json:"-"`

	Location    string       `gorm:"type:text" json:"location"`
	Timestamp   time.Time    `gorm:"not null" json:"timestamp"`
	Status      string       `gorm:"type:varchar(50)" json:"status"`
	Coordinates *Coordinates `gorm:"embedded;embeddedPrefix:coordinates_" json:"coordinates"`
	Note        string       `gorm:"type:text" json:"note"`
}

// TableName sets the table name for the TrackingEntry model
func (TrackingEntry) TableName() string {
	return "donation_tracking_entries"
}

// Append adds a history entry and refreshes LastUpdate. History only grows;
// nothing ever removes or reorders entries.
func (t *Tracking) Append(e TrackingEntry) {
	t.Entries = append(t.Entries, e)
	t.LastUpdate = e.Timestamp
}

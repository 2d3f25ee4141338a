package donation

import (
	"time"
)

// Donation represents a pledged item moving from a donor through a volunteer
// to a beneficiary. It is the aggregate root: the tracking record and its
// location history share the donation's lifetime.
type Donation struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID string `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`

	// Human-readable sequential code, e.g. DON-0001. Assigned at creation,
	// never reassigned.
	DonationCode string `gorm:"type:varchar(20);uniqueIndex" json:"donationId"`

	DonorName string `gorm:"type:varchar(255);not null" json:"donorName"`
	DonorID   string `gorm:"type:varchar(64);not null" json:"donorId"`

	Category string `gorm:"type:varchar(100);not null" json:"category"`
	Item     string `gorm:"type:varchar(255);not null" json:"item"`
	Quantity string `gorm:"type:varchar(100);not null" json:"quantity"`

	Status DonationStatus `gorm:"type:varchar(50);not null;index" json:"status"`

	PickupLocation   string `gorm:"type:text;not null" json:"pickupLocation"`
	PickupTime       string `gorm:"type:varchar(100)" json:"pickupTime"`
	ExpectedDelivery string `gorm:"type:varchar(100)" json:"expectedDelivery"`

	// Volunteer identity, set when a volunteer accepts or picks up.
	AssignedVolunteer *string `gorm:"type:varchar(255)" json:"assignedVolunteer"`
	VolunteerID       *string `gorm:"type:varchar(64)" json:"volunteerId"`
	VolunteerPhone    *string `gorm:"type:varchar(20)" json:"volunteerPhone"`
	VolunteerVehicle  *string `gorm:"type:varchar(100)" json:"volunteerVehicle"`
	VolunteerResponse *string `gorm:"type:varchar(20)" json:"volunteerResponse"`

	BookDetails *BookDetails `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE" json:"bookDetails,omitempty"`
	AddressInfo *Address     `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE" json:"addressInfo,omitempty"`

	Tracking Tracking `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE" json:"tracking"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdDate"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BookDetails is the optional structured sub-record for book donations.
type BookDetails struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	DonationID uint    `gorm:"not null;uniqueIndex" json:"-"`
	Title      string  `gorm:"type:varchar(255)" json:"title"`
	Author     string  `gorm:"type:varchar(255)" json:"author"`
	Subject    string  `gorm:"type:varchar(100)" json:"subject"`
	Language   string  `gorm:"type:varchar(50)" json:"language"`
	Condition  string  `gorm:"type:varchar(50)" json:"condition"`
	Count      int     `gorm:"default:0" json:"count"`
	ISBN       *string `gorm:"type:varchar(20)" json:"isbn,omitempty"`
}

// TableName sets the table name for the BookDetails model
func (BookDetails) TableName() string {
	return "donation_book_details"
}

// Address is the optional structured breakdown of the pickup address.
type Address struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	DonationID uint   `gorm:"not null;uniqueIndex" json:"-"`
	Street     string `gorm:"type:varchar(255)" json:"street"`
	City       string `gorm:"type:varchar(100)" json:"city"`
	State      string `gorm:"type:varchar(100)" json:"state"`
	Pincode    string `gorm:"type:varchar(10)" json:"pincode"`
}

// TableName sets the table name for the Address model
func (Address) TableName() string {
	return "donation_addresses"
}

// HasVolunteer reports whether a volunteer identity has been recorded.
func (d *Donation) HasVolunteer() bool {
	return d.VolunteerID != nil && *d.VolunteerID != ""
}

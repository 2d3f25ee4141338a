package verification

import (
	"time"
)

// StatusDeliveredSuccessfully is the only status a verified donation ever has.
const StatusDeliveredSuccessfully = "Delivered Successfully"

// VerifiedDonation is the immutable record produced by a successful OTP
// verification. There is no update or delete path in the domain.
type VerifiedDonation struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID string `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`

	// Human-readable sequential code, e.g. VER-0001.
	VerificationCode string `gorm:"type:varchar(20);uniqueIndex" json:"verificationId"`

	NeedyPersonID       string `gorm:"type:varchar(20);not null;index" json:"needyPersonId"`
	NeedyPersonName     string `gorm:"type:varchar(255);not null" json:"needyPersonName"`
	NeedyPersonArea     string `gorm:"type:varchar(100)" json:"needyPersonArea"`
	NeedyPersonCategory string `gorm:"type:varchar(100)" json:"needyPersonCategory"`

	PhoneNumber  string    `gorm:"type:varchar(20);not null" json:"phoneNumber"`
	VerifiedAt   time.Time `gorm:"not null;index" json:"verifiedAt"`
	VerifiedBy   string    `gorm:"type:varchar(100);default:'Volunteer'" json:"verifiedBy"`
	Status       string    `gorm:"type:varchar(50);not null" json:"status"`
	DonationType string    `gorm:"type:varchar(100)" json:"donationType"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName sets the table name for the VerifiedDonation model
func (VerifiedDonation) TableName() string {
	return "verified_donations"
}

package beneficiary

import (
	"time"
)

// Beneficiary represents a needy person who can receive a donation hand-off.
// Seeded reference data; only an administrative add mutates this set.
type Beneficiary struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"-"`

	// Public identifier, e.g. N001.
	NeedyID  string  `gorm:"type:varchar(20);not null;uniqueIndex" json:"id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Area     string  `gorm:"type:varchar(100);not null" json:"area"`
	Category string  `gorm:"type:varchar(100);not null" json:"category"`
	Phone    *string `gorm:"type:varchar(20)" json:"phone,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Beneficiary model
func (Beneficiary) TableName() string {
	return "beneficiaries"
}

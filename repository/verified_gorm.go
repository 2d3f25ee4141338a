package repository

import (
	"fmt"

	verificationModel "care-connect/models/verification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVerifiedDonationRepository is the Postgres-backed verification store.
type GormVerifiedDonationRepository struct {
	DB *gorm.DB
}

// NewGormVerifiedDonationRepository creates a new GORM verified-donation repository
func NewGormVerifiedDonationRepository(db *gorm.DB) *GormVerifiedDonationRepository {
	return &GormVerifiedDonationRepository{DB: db}
}

func (r *GormVerifiedDonationRepository) Create(v *verificationModel.VerifiedDonation) error {
	if v.UUID == "" {
		v.UUID = uuid.NewString()
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		v.VerificationCode = fmt.Sprintf("VER-%04d", v.ID)
		return tx.Model(v).Update("verification_code", v.VerificationCode).Error
	})
}

func (r *GormVerifiedDonationRepository) All() ([]verificationModel.VerifiedDonation, error) {
	var list []verificationModel.VerifiedDonation
	err := r.DB.Order("verified_at DESC").Find(&list).Error
	return list, err
}

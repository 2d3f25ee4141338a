package repository

import (
	"errors"
	"fmt"

	beneficiaryModel "care-connect/models/beneficiary"

	"gorm.io/gorm"
)

// GormBeneficiaryRepository is the Postgres-backed beneficiary store.
type GormBeneficiaryRepository struct {
	DB *gorm.DB
}

// NewGormBeneficiaryRepository creates a new GORM beneficiary repository
func NewGormBeneficiaryRepository(db *gorm.DB) *GormBeneficiaryRepository {
	return &GormBeneficiaryRepository{DB: db}
}

func (r *GormBeneficiaryRepository) All() ([]beneficiaryModel.Beneficiary, error) {
	var list []beneficiaryModel.Beneficiary
	err := r.DB.Order("needy_id ASC").Find(&list).Error
	return list, err
}

func (r *GormBeneficiaryRepository) FindByNeedyID(needyID string) (*beneficiaryModel.Beneficiary, error) {
	var b beneficiaryModel.Beneficiary
	if err := r.DB.Where("needy_id = ?", needyID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormBeneficiaryRepository) Create(b *beneficiaryModel.Beneficiary) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if b.NeedyID == "" {
			var count int64
			if err := tx.Model(&beneficiaryModel.Beneficiary{}).Count(&count).Error; err != nil {
				return err
			}
			b.NeedyID = fmt.Sprintf("N%03d", count+1)
		}
		return tx.Create(b).Error
	})
}

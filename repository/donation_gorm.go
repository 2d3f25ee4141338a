package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	donationModel "care-connect/models/donation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDonationRepository is the Postgres-backed donation store.
type GormDonationRepository struct {
	DB *gorm.DB
}

// NewGormDonationRepository creates a new GORM donation repository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{DB: db}
}

func (r *GormDonationRepository) Create(d *donationModel.Donation) error {
	if d.UUID == "" {
		d.UUID = uuid.NewString()
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		// The code derives from the autoincrement id, so allocation is
		// race-free under concurrent creation.
		d.DonationCode = fmt.Sprintf("DON-%04d", d.ID)
		return tx.Model(d).Update("donation_code", d.DonationCode).Error
	})
}

func (r *GormDonationRepository) FindByKey(key string) (*donationModel.Donation, error) {
	var d donationModel.Donation
	q := r.preloaded()

	switch {
	case strings.HasPrefix(key, "DON-"):
		q = q.Where("donation_code = ?", key)
	default:
		if id, err := strconv.ParseUint(key, 10, 64); err == nil {
			q = q.Where("donations.id = ?", id)
		} else {
			q = q.Where("uuid = ?", key)
		}
	}

	if err := q.First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *GormDonationRepository) All() ([]donationModel.Donation, error) {
	var list []donationModel.Donation
	err := r.preloaded().Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *GormDonationRepository) Pending() ([]donationModel.Donation, error) {
	var list []donationModel.Donation
	err := r.preloaded().
		Where("status IN ?", []donationModel.DonationStatus{donationModel.StatusPending, donationModel.StatusAccepted}).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *GormDonationRepository) Save(d *donationModel.Donation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(d).Error
	})
}

func (r *GormDonationRepository) DeleteAll() error {
	// Restarting identity keeps DON codes starting over from DON-0001,
	// matching the administrative bulk-clear semantics.
	return r.DB.Exec(
		"TRUNCATE TABLE donation_tracking_entries, donation_trackings, donation_book_details, donation_addresses, donations RESTART IDENTITY CASCADE",
	).Error
}

func (r *GormDonationRepository) preloaded() *gorm.DB {
	return r.DB.
		Preload("Tracking").
		Preload("Tracking.Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("donation_tracking_entries.id ASC")
		}).
		Preload("BookDetails").
		Preload("AddressInfo")
}

// Package repository abstracts persistence for the donation domain so the
// backend (Postgres via GORM, or in-memory) is swappable and independently
// testable.
package repository

import (
	"errors"

	beneficiaryModel "care-connect/models/beneficiary"
	donationModel "care-connect/models/donation"
	verificationModel "care-connect/models/verification"
)

// ErrNotFound is returned when a lookup key resolves to no record.
var ErrNotFound = errors.New("record not found")

// DonationRepository persists donations together with their tracking record.
type DonationRepository interface {
	// Create stores a new donation, allocating its sequential DON-xxxx code
	// atomically. The donation's tracking record and initial history entry
	// must already be populated by the caller.
	Create(d *donationModel.Donation) error

	// FindByKey resolves a donation by numeric id, UUID, or DON-xxxx code.
	FindByKey(key string) (*donationModel.Donation, error)

	// All returns every donation, newest-created first.
	All() ([]donationModel.Donation, error)

	// Pending returns donations still waiting for pickup
	// (status Pending or Accepted by Volunteer), newest-created first.
	Pending() ([]donationModel.Donation, error)

	// Save persists mutations made to a previously loaded donation,
	// including newly appended tracking entries.
	Save(d *donationModel.Donation) error

	// DeleteAll removes every donation and resets the code sequence.
	// Administrative use only.
	DeleteAll() error
}

// BeneficiaryRepository serves the seeded needy-person reference data.
type BeneficiaryRepository interface {
	All() ([]beneficiaryModel.Beneficiary, error)
	FindByNeedyID(needyID string) (*beneficiaryModel.Beneficiary, error)
	Create(b *beneficiaryModel.Beneficiary) error
}

// VerifiedDonationRepository stores the append-only verification records.
type VerifiedDonationRepository interface {
	// Create stores a new record, allocating its VER-xxxx code atomically.
	Create(v *verificationModel.VerifiedDonation) error

	// All returns every record, most-recently-verified first.
	All() ([]verificationModel.VerifiedDonation, error)
}

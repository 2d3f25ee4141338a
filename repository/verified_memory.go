package repository

import (
	"fmt"
	"sort"
	"sync"

	verificationModel "care-connect/models/verification"

	"github.com/google/uuid"
)

// MemoryVerifiedDonationRepository is the in-memory verification store.
type MemoryVerifiedDonationRepository struct {
	mu      sync.RWMutex
	seq     uint
	records []verificationModel.VerifiedDonation
}

// NewMemoryVerifiedDonationRepository creates an empty in-memory verified-donation repository
func NewMemoryVerifiedDonationRepository() *MemoryVerifiedDonationRepository {
	return &MemoryVerifiedDonationRepository{}
}

func (r *MemoryVerifiedDonationRepository) Create(v *verificationModel.VerifiedDonation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	v.ID = r.seq
	v.VerificationCode = fmt.Sprintf("VER-%04d", v.ID)
	if v.UUID == "" {
		v.UUID = uuid.NewString()
	}
	r.records = append(r.records, *v)
	return nil
}

func (r *MemoryVerifiedDonationRepository) All() ([]verificationModel.VerifiedDonation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]verificationModel.VerifiedDonation, len(r.records))
	copy(list, r.records)
	sort.Slice(list, func(i, j int) bool { return list[i].VerifiedAt.After(list[j].VerifiedAt) })
	return list, nil
}

package repository

import (
	"fmt"
	"sort"
	"sync"

	beneficiaryModel "care-connect/models/beneficiary"
)

// MemoryBeneficiaryRepository is the in-memory beneficiary store.
type MemoryBeneficiaryRepository struct {
	mu      sync.RWMutex
	records map[string]*beneficiaryModel.Beneficiary
}

// NewMemoryBeneficiaryRepository creates an empty in-memory beneficiary repository
func NewMemoryBeneficiaryRepository() *MemoryBeneficiaryRepository {
	return &MemoryBeneficiaryRepository{records: make(map[string]*beneficiaryModel.Beneficiary)}
}

func (r *MemoryBeneficiaryRepository) All() ([]beneficiaryModel.Beneficiary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]beneficiaryModel.Beneficiary, 0, len(r.records))
	for _, b := range r.records {
		list = append(list, *b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].NeedyID < list[j].NeedyID })
	return list, nil
}

func (r *MemoryBeneficiaryRepository) FindByNeedyID(needyID string) (*beneficiaryModel.Beneficiary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.records[needyID]
	if !ok {
		return nil, ErrNotFound
	}
	c := *b
	return &c, nil
}

func (r *MemoryBeneficiaryRepository) Create(b *beneficiaryModel.Beneficiary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.NeedyID == "" {
		b.NeedyID = fmt.Sprintf("N%03d", len(r.records)+1)
	}
	b.ID = uint(len(r.records) + 1)
	c := *b
	r.records[b.NeedyID] = &c
	return nil
}

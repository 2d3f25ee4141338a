package repository

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	donationModel "care-connect/models/donation"

	"github.com/google/uuid"
)

// MemoryDonationRepository is the in-memory donation store used in tests and
// as the fallback backend when no database is configured.
type MemoryDonationRepository struct {
	mu      sync.RWMutex
	seq     uint
	records map[uint]*donationModel.Donation
}

// NewMemoryDonationRepository creates an empty in-memory donation repository
func NewMemoryDonationRepository() *MemoryDonationRepository {
	return &MemoryDonationRepository{records: make(map[uint]*donationModel.Donation)}
}

func (r *MemoryDonationRepository) Create(d *donationModel.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	d.ID = r.seq
	d.DonationCode = fmt.Sprintf("DON-%04d", d.ID)
	if d.UUID == "" {
		d.UUID = uuid.NewString()
	}
	d.Tracking.DonationID = d.ID

	stored := cloneDonation(d)
	r.records[d.ID] = stored
	return nil
}

func (r *MemoryDonationRepository) FindByKey(key string) (*donationModel.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, err := strconv.ParseUint(key, 10, 64); err == nil && !strings.HasPrefix(key, "DON-") {
		if d, ok := r.records[uint(id)]; ok {
			return cloneDonation(d), nil
		}
		return nil, ErrNotFound
	}
	for _, d := range r.records {
		if d.DonationCode == key || d.UUID == key {
			return cloneDonation(d), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryDonationRepository) All() ([]donationModel.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*donationModel.Donation) bool { return true }), nil
}

func (r *MemoryDonationRepository) Pending() ([]donationModel.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(d *donationModel.Donation) bool {
		return d.Status == donationModel.StatusPending || d.Status == donationModel.StatusAccepted
	}), nil
}

func (r *MemoryDonationRepository) Save(d *donationModel.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[d.ID]; !ok {
		return ErrNotFound
	}
	r.records[d.ID] = cloneDonation(d)
	return nil
}

func (r *MemoryDonationRepository) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[uint]*donationModel.Donation)
	r.seq = 0
	return nil
}

// collect returns matching donations newest-created first. Callers hold the lock.
func (r *MemoryDonationRepository) collect(match func(*donationModel.Donation) bool) []donationModel.Donation {
	list := make([]donationModel.Donation, 0, len(r.records))
	for _, d := range r.records {
		if match(d) {
			list = append(list, *cloneDonation(d))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// cloneDonation deep-copies a donation so callers can mutate freely and
// persist via Save, mirroring the load/modify/save cycle of the GORM backend.
func cloneDonation(d *donationModel.Donation) *donationModel.Donation {
	c := *d

	c.AssignedVolunteer = clonePtr(d.AssignedVolunteer)
	c.VolunteerID = clonePtr(d.VolunteerID)
	c.VolunteerPhone = clonePtr(d.VolunteerPhone)
	c.VolunteerVehicle = clonePtr(d.VolunteerVehicle)
	c.VolunteerResponse = clonePtr(d.VolunteerResponse)

	if d.BookDetails != nil {
		bd := *d.BookDetails
		bd.ISBN = clonePtr(d.BookDetails.ISBN)
		c.BookDetails = &bd
	}
	if d.AddressInfo != nil {
		a := *d.AddressInfo
		c.AddressInfo = &a
	}

	c.Tracking = d.Tracking
	c.Tracking.Coordinates = cloneCoordinates(d.Tracking.Coordinates)
	c.Tracking.EstimatedDelivery = clonePtr(d.Tracking.EstimatedDelivery)
	c.Tracking.DestinationAddress = clonePtr(d.Tracking.DestinationAddress)
	c.Tracking.Entries = make([]donationModel.TrackingEntry, len(d.Tracking.Entries))
	for i, e := range d.Tracking.Entries {
		c.Tracking.Entries[i] = e
		c.Tracking.Entries[i].Coordinates = cloneCoordinates(e.Coordinates)
	}
	return &c
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneCoordinates(c *donationModel.Coordinates) *donationModel.Coordinates {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

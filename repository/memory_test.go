package repository

import (
	"testing"
	"time"

	beneficiaryModel "care-connect/models/beneficiary"
	donationModel "care-connect/models/donation"
	verificationModel "care-connect/models/verification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDonation(item string) *donationModel.Donation {
	return &donationModel.Donation{
		DonorName:      "Rahul Sharma",
		DonorID:        "D-100",
		Category:       "Food",
		Item:           item,
		Quantity:       "5 kg",
		Status:         donationModel.StatusPending,
		PickupLocation: "MG Road, Pune",
		Tracking: donationModel.Tracking{
			CurrentLocation: "MG Road, Pune",
			LastUpdate:      time.Now(),
			DistanceCovered: "0 km",
			StatusProgress:  donationModel.StatusProgress{Created: true},
			Entries: []donationModel.TrackingEntry{
				{Location: "MG Road, Pune", Timestamp: time.Now(), Status: "Donation Created"},
			},
		},
	}
}

func Test_MemoryDonation_CreateAssignsIdentifiers(t *testing.T) {
	repo := NewMemoryDonationRepository()

	d := newDonation("Rice Bags")
	require.NoError(t, repo.Create(d))

	assert.Equal(t, uint(1), d.ID)
	assert.Equal(t, "DON-0001", d.DonationCode)
	assert.NotEmpty(t, d.UUID)
	assert.Equal(t, d.ID, d.Tracking.DonationID)
}

func Test_MemoryDonation_SaveIsolation(t *testing.T) {
	repo := NewMemoryDonationRepository()

	d := newDonation("Rice Bags")
	require.NoError(t, repo.Create(d))

	loaded, err := repo.FindByKey(d.DonationCode)
	require.NoError(t, err)

	// Mutations on a loaded copy stay invisible until Save.
	loaded.Status = donationModel.StatusAccepted
	loaded.Tracking.Append(donationModel.TrackingEntry{Status: "Accepted by Volunteer"})

	fresh, err := repo.FindByKey(d.DonationCode)
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusPending, fresh.Status)
	assert.Len(t, fresh.Tracking.Entries, 1)

	require.NoError(t, repo.Save(loaded))

	fresh, err = repo.FindByKey(d.DonationCode)
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusAccepted, fresh.Status)
	assert.Len(t, fresh.Tracking.Entries, 2)
}

func Test_MemoryDonation_Pending(t *testing.T) {
	repo := NewMemoryDonationRepository()

	pending := newDonation("Rice Bags")
	require.NoError(t, repo.Create(pending))

	delivered := newDonation("Blankets")
	delivered.Status = donationModel.StatusDelivered
	require.NoError(t, repo.Create(delivered))

	accepted := newDonation("Books")
	accepted.Status = donationModel.StatusAccepted
	require.NoError(t, repo.Create(accepted))

	list, err := repo.Pending()
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, d := range list {
		assert.NotEqual(t, donationModel.StatusDelivered, d.Status)
	}
}

func Test_MemoryDonation_DeleteAllResetsSequence(t *testing.T) {
	repo := NewMemoryDonationRepository()

	require.NoError(t, repo.Create(newDonation("Rice Bags")))
	require.NoError(t, repo.Create(newDonation("Blankets")))
	require.NoError(t, repo.DeleteAll())

	list, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, list)

	d := newDonation("Books")
	require.NoError(t, repo.Create(d))
	assert.Equal(t, "DON-0001", d.DonationCode)
}

func Test_MemoryDonation_FindByKeyMisses(t *testing.T) {
	repo := NewMemoryDonationRepository()

	_, err := repo.FindByKey("42")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByKey("DON-0042")
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_MemoryBeneficiary_AutoAssignsNeedyID(t *testing.T) {
	repo := NewMemoryBeneficiaryRepository()

	b := &beneficiaryModel.Beneficiary{Name: "Ramesh Patil", Area: "Nagpur", Category: "Food"}
	require.NoError(t, repo.Create(b))
	assert.Equal(t, "N001", b.NeedyID)

	b2 := &beneficiaryModel.Beneficiary{Name: "Sunita Kale", Area: "Pune", Category: "Clothes"}
	require.NoError(t, repo.Create(b2))
	assert.Equal(t, "N002", b2.NeedyID)

	found, err := repo.FindByNeedyID("N002")
	require.NoError(t, err)
	assert.Equal(t, "Sunita Kale", found.Name)

	_, err = repo.FindByNeedyID("N999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_MemoryVerified_NewestFirst(t *testing.T) {
	repo := NewMemoryVerifiedDonationRepository()

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	first := &verificationModel.VerifiedDonation{NeedyPersonID: "N001", VerifiedAt: base}
	second := &verificationModel.VerifiedDonation{NeedyPersonID: "N002", VerifiedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	assert.Equal(t, "VER-0001", first.VerificationCode)
	assert.Equal(t, "VER-0002", second.VerificationCode)

	list, err := repo.All()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "N002", list[0].NeedyPersonID)
	assert.Equal(t, "N001", list[1].NeedyPersonID)
}

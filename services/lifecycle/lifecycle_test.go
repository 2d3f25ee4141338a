package lifecycle

import (
	"fmt"
	"sync"
	"testing"
	"time"

	donationModel "care-connect/models/donation"
	"care-connect/repository"
	donationTypes "care-connect/types/donation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(strict bool) (*Engine, *repository.MemoryDonationRepository) {
	repo := repository.NewMemoryDonationRepository()
	e := NewEngine(repo, nil, strict)
	return e, repo
}

func createDonation(t *testing.T, e *Engine) *donationModel.Donation {
	t.Helper()
	d, err := e.Create(&donationTypes.CreateDonationRequest{
		DonorName:      "Rahul Sharma",
		DonorID:        "D-100",
		Category:       "Food",
		ItemType:       "Rice Bags",
		Quantity:       "25 kg",
		PickupLocation: "MG Road, Pune",
	})
	require.NoError(t, err)
	return d
}

func volunteer() *donationTypes.VolunteerPayload {
	return &donationTypes.VolunteerPayload{
		Name:        "Priya Desai",
		VolunteerID: "V-42",
		Phone:       "+91 98765 43210",
		Vehicle:     "Van MH-12-AB-1234",
	}
}

func Test_Create_InitialState(t *testing.T) {
	e, _ := newTestEngine(true)

	d := createDonation(t, e)

	assert.Equal(t, donationModel.StatusPending, d.Status)
	assert.Equal(t, "DON-0001", d.DonationCode)
	assert.NotEmpty(t, d.UUID)
	assert.Equal(t, "0 km", d.Tracking.DistanceCovered)
	assert.True(t, d.Tracking.StatusProgress.Created)
	assert.False(t, d.Tracking.StatusProgress.Accepted)
	require.Len(t, d.Tracking.Entries, 1)
	assert.Equal(t, "Donation Created", d.Tracking.Entries[0].Status)
	assert.Equal(t, "MG Road, Pune", d.Tracking.Entries[0].Location)
}

func Test_Create_DefaultsAnonymousDonor(t *testing.T) {
	e, _ := newTestEngine(true)

	d, err := e.Create(&donationTypes.CreateDonationRequest{
		Category:       "Clothes",
		ItemType:       "Winter Jackets",
		Quantity:       "10",
		PickupLocation: "Baner, Pune",
	})
	require.NoError(t, err)

	assert.Equal(t, "Anonymous Donor", d.DonorName)
	assert.NotEmpty(t, d.DonorID)
}

func Test_Create_SequentialCodes(t *testing.T) {
	e, _ := newTestEngine(true)

	first := createDonation(t, e)
	second := createDonation(t, e)

	assert.Equal(t, "DON-0001", first.DonationCode)
	assert.Equal(t, "DON-0002", second.DonationCode)
}

func Test_FullLifecycle_HappyPath(t *testing.T) {
	e, _ := newTestEngine(true)
	d := createDonation(t, e)

	d, err := e.Accept(d.DonationCode, volunteer())
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusAccepted, d.Status)
	require.NotNil(t, d.AssignedVolunteer)
	assert.Equal(t, "Priya Desai", *d.AssignedVolunteer)
	require.NotNil(t, d.VolunteerResponse)
	assert.Equal(t, "accepted", *d.VolunteerResponse)
	assert.True(t, d.Tracking.StatusProgress.Accepted)

	d, err = e.Pickup(d.DonationCode, volunteer(), &donationTypes.PickupPayload{
		CurrentLocation:    "MG Road, Pune",
		DestinationAddress: "Shivajinagar Shelter",
	})
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusPickedUp, d.Status)
	require.NotNil(t, d.VolunteerPhone)
	assert.Equal(t, "+91 98765 43210", *d.VolunteerPhone)
	require.NotNil(t, d.Tracking.DestinationAddress)
	assert.Equal(t, "Shivajinagar Shelter", *d.Tracking.DestinationAddress)
	require.NotNil(t, d.Tracking.EstimatedDelivery)
	assert.True(t, d.Tracking.StatusProgress.PickedUp)

	d, err = e.Transit(d.DonationCode, &donationTypes.LocationPayload{
		Address:         "FC Road, Pune",
		Coordinates:     &donationTypes.CoordinatesPayload{Lat: 18.52, Lng: 73.84},
		DistanceCovered: "3 km",
	})
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusTransit, d.Status)
	assert.Equal(t, "FC Road, Pune", d.Tracking.CurrentLocation)
	assert.Equal(t, "3 km", d.Tracking.DistanceCovered)
	assert.True(t, d.Tracking.StatusProgress.InTransit)

	d, err = e.Deliver(d.DonationCode, nil)
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusDelivered, d.Status)
	assert.True(t, d.Tracking.StatusProgress.Delivered)
	// Falls back to the recorded destination when no location is given.
	assert.Equal(t, "Shivajinagar Shelter", d.Tracking.CurrentLocation)

	require.Len(t, d.Tracking.Entries, 5)
	assert.Equal(t, "Donation Created", d.Tracking.Entries[0].Status)
	assert.Equal(t, "Accepted by Volunteer", d.Tracking.Entries[1].Status)
	assert.Equal(t, "Picked Up by Volunteer", d.Tracking.Entries[2].Status)
	assert.Equal(t, "In Transit", d.Tracking.Entries[3].Status)
	assert.Equal(t, "Delivered", d.Tracking.Entries[4].Status)
}

func Test_Decline_IsTerminal(t *testing.T) {
	e, _ := newTestEngine(true)
	d := createDonation(t, e)

	d, err := e.Decline(d.DonationCode, volunteer())
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusDeclined, d.Status)
	require.NotNil(t, d.VolunteerResponse)
	assert.Equal(t, "declined", *d.VolunteerResponse)
	assert.Equal(t, "Priya Desai declined the donation", d.Tracking.Entries[1].Note)

	_, err = e.Pickup(d.DonationCode, volunteer(), &donationTypes.PickupPayload{CurrentLocation: "Anywhere"})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func Test_Strict_RejectsOutOfOrderTransitions(t *testing.T) {
	e, _ := newTestEngine(true)
	d := createDonation(t, e)

	_, err := e.Pickup(d.DonationCode, volunteer(), &donationTypes.PickupPayload{CurrentLocation: "MG Road"})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, err = e.Transit(d.DonationCode, &donationTypes.LocationPayload{Address: "FC Road"})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, err = e.Deliver(d.DonationCode, nil)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// The failed attempts must leave no trace.
	reloaded, err := e.repo.FindByKey(d.DonationCode)
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusPending, reloaded.Status)
	assert.Len(t, reloaded.Tracking.Entries, 1)
}

func Test_Strict_RejectsDoubleAccept(t *testing.T) {
	e, _ := newTestEngine(true)
	d := createDonation(t, e)

	_, err := e.Accept(d.DonationCode, volunteer())
	require.NoError(t, err)

	_, err = e.Accept(d.DonationCode, &donationTypes.VolunteerPayload{Name: "Second", VolunteerID: "V-99"})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	reloaded, err := e.repo.FindByKey(d.DonationCode)
	require.NoError(t, err)
	assert.Equal(t, "Priya Desai", *reloaded.AssignedVolunteer)
}

func Test_Permissive_AllowsSkippingStates(t *testing.T) {
	e, _ := newTestEngine(false)
	d := createDonation(t, e)

	d, err := e.Deliver(d.DonationCode, &donationTypes.DeliveryPayload{Location: "Shelter Gate"})
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusDelivered, d.Status)
	assert.True(t, d.Tracking.StatusProgress.Delivered)
}

func Test_Concurrent_AcceptHasOneWinner(t *testing.T) {
	e, _ := newTestEngine(true)
	d := createDonation(t, e)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Accept(d.DonationCode, &donationTypes.VolunteerPayload{
				Name:        fmt.Sprintf("Volunteer %d", i),
				VolunteerID: fmt.Sprintf("V-%d", i),
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrIllegalTransition)
		}
	}
	assert.Equal(t, 1, winners)

	reloaded, err := e.repo.FindByKey(d.DonationCode)
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusAccepted, reloaded.Status)
	assert.Len(t, reloaded.Tracking.Entries, 2)
}

func Test_SyncLocation_KeepsStatus(t *testing.T) {
	e, _ := newTestEngine(true)
	d := createDonation(t, e)

	_, err := e.Accept(d.DonationCode, volunteer())
	require.NoError(t, err)
	_, err = e.Pickup(d.DonationCode, volunteer(), &donationTypes.PickupPayload{CurrentLocation: "MG Road"})
	require.NoError(t, err)
	_, err = e.Transit(d.DonationCode, &donationTypes.LocationPayload{Address: "FC Road"})
	require.NoError(t, err)

	d, err = e.SyncLocation(d.DonationCode, &donationTypes.LocationPayload{
		Address:         "JM Road, Pune",
		DistanceCovered: "5 km",
	})
	require.NoError(t, err)

	assert.Equal(t, donationModel.StatusTransit, d.Status)
	assert.Equal(t, "JM Road, Pune", d.Tracking.CurrentLocation)
	assert.Equal(t, "5 km", d.Tracking.DistanceCovered)
	last := d.Tracking.Entries[len(d.Tracking.Entries)-1]
	assert.Equal(t, "Moving", last.Status)
}

func Test_OverrideStatus_BypassesOrder(t *testing.T) {
	e, _ := newTestEngine(true)
	d := createDonation(t, e)

	d, err := e.OverrideStatus(d.DonationCode, donationModel.StatusTransit, nil)
	require.NoError(t, err)
	assert.Equal(t, donationModel.StatusTransit, d.Status)
	assert.True(t, d.Tracking.StatusProgress.InTransit)

	last := d.Tracking.Entries[len(d.Tracking.Entries)-1]
	assert.Equal(t, "Status changed to In Transit", last.Note)
}

func Test_OverrideStatus_RecordsVolunteer(t *testing.T) {
	e, _ := newTestEngine(true)
	d := createDonation(t, e)

	d, err := e.OverrideStatus(d.DonationCode, donationModel.StatusAccepted, volunteer())
	require.NoError(t, err)
	require.NotNil(t, d.AssignedVolunteer)
	assert.Equal(t, "Priya Desai", *d.AssignedVolunteer)

	last := d.Tracking.Entries[len(d.Tracking.Entries)-1]
	assert.Equal(t, "Priya Desai accepted the donation", last.Note)
}

func Test_ProgressFlags_AreMonotonic(t *testing.T) {
	e, _ := newTestEngine(false)
	d := createDonation(t, e)

	_, err := e.Accept(d.DonationCode, volunteer())
	require.NoError(t, err)
	_, err = e.Pickup(d.DonationCode, volunteer(), &donationTypes.PickupPayload{CurrentLocation: "MG Road"})
	require.NoError(t, err)

	// Forcing the status backwards never clears flags already set.
	d, err = e.OverrideStatus(d.DonationCode, donationModel.StatusPending, nil)
	require.NoError(t, err)
	assert.True(t, d.Tracking.StatusProgress.Created)
	assert.True(t, d.Tracking.StatusProgress.Accepted)
	assert.True(t, d.Tracking.StatusProgress.PickedUp)
}

func Test_Pickup_DefaultsSameDayETA(t *testing.T) {
	e, _ := newTestEngine(true)
	fixed := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	d := createDonation(t, e)
	_, err := e.Accept(d.DonationCode, volunteer())
	require.NoError(t, err)
	d, err = e.Pickup(d.DonationCode, volunteer(), &donationTypes.PickupPayload{CurrentLocation: "MG Road"})
	require.NoError(t, err)

	require.NotNil(t, d.Tracking.EstimatedDelivery)
	eta, err := time.Parse(time.RFC3339, *d.Tracking.EstimatedDelivery)
	require.NoError(t, err)
	assert.Equal(t, fixed.Year(), eta.Year())
	assert.Equal(t, fixed.Month(), eta.Month())
	assert.Equal(t, fixed.Day(), eta.Day())
	assert.Equal(t, 23, eta.Hour())
}

func Test_FindByKey_ResolvesAllKeyForms(t *testing.T) {
	e, _ := newTestEngine(true)
	d := createDonation(t, e)

	byCode, err := e.repo.FindByKey(d.DonationCode)
	require.NoError(t, err)
	byID, err := e.repo.FindByKey(fmt.Sprintf("%d", d.ID))
	require.NoError(t, err)
	byUUID, err := e.repo.FindByKey(d.UUID)
	require.NoError(t, err)

	assert.Equal(t, d.ID, byCode.ID)
	assert.Equal(t, d.ID, byID.ID)
	assert.Equal(t, d.ID, byUUID.ID)
}

func Test_UnknownDonation_ReturnsNotFound(t *testing.T) {
	e, _ := newTestEngine(true)

	_, err := e.Accept("DON-9999", volunteer())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

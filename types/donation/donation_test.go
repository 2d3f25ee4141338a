package donation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateDonationRequest {
	return CreateDonationRequest{
		DonorName:      "Rahul Sharma",
		Category:       "Food",
		ItemType:       "Rice Bags",
		Quantity:       "25 kg",
		PickupLocation: "MG Road, Pune",
	}
}

func Test_CreateDonationRequest_Validate(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())

	missing := validCreateRequest()
	missing.Category = ""
	assert.EqualError(t, missing.Validate(), "category is required")

	missing = validCreateRequest()
	missing.ItemType = ""
	assert.EqualError(t, missing.Validate(), "itemType is required")

	missing = validCreateRequest()
	missing.Quantity = ""
	assert.EqualError(t, missing.Validate(), "quantity is required")

	missing = validCreateRequest()
	missing.PickupLocation = ""
	assert.EqualError(t, missing.Validate(), "pickupLocation is required")
}

func Test_CreateDonationRequest_PincodeFormat(t *testing.T) {
	req := validCreateRequest()
	req.Address = &AddressPayload{Street: "12 MG Road", City: "Pune", State: "Maharashtra", Pincode: "411001"}
	assert.NoError(t, req.Validate())

	req.Address.Pincode = "4110"
	assert.Error(t, req.Validate())

	req.Address.Pincode = "41100a"
	assert.Error(t, req.Validate())

	// Pincode is optional inside an address.
	req.Address.Pincode = ""
	assert.NoError(t, req.Validate())
}

func Test_VolunteerPayload_Validate(t *testing.T) {
	var nilPayload *VolunteerPayload
	assert.EqualError(t, nilPayload.Validate(), "volunteerData is required")

	p := &VolunteerPayload{VolunteerID: "V-42"}
	assert.EqualError(t, p.Validate(), "volunteer name is required")

	p = &VolunteerPayload{Name: "Priya Desai"}
	assert.EqualError(t, p.Validate(), "volunteerId is required")

	p = &VolunteerPayload{Name: "Priya Desai", VolunteerID: "V-42"}
	assert.NoError(t, p.Validate())
}

func Test_PickupDonationRequest_Validate(t *testing.T) {
	req := PickupDonationRequest{
		VolunteerData: &VolunteerPayload{Name: "Priya Desai", VolunteerID: "V-42"},
		PickupData:    &PickupPayload{CurrentLocation: "MG Road, Pune"},
	}
	assert.NoError(t, req.Validate())

	req.PickupData = nil
	assert.EqualError(t, req.Validate(), "pickupData is required")

	req.PickupData = &PickupPayload{}
	assert.EqualError(t, req.Validate(), "currentLocation is required")
}

func Test_TransitDonationRequest_Validate(t *testing.T) {
	req := TransitDonationRequest{}
	assert.EqualError(t, req.Validate(), "locationData is required")

	req.LocationData = &LocationPayload{}
	assert.EqualError(t, req.Validate(), "address is required")

	req.LocationData = &LocationPayload{Address: "FC Road, Pune"}
	assert.NoError(t, req.Validate())
}

func Test_OverrideStatusRequest_Validate(t *testing.T) {
	req := OverrideStatusRequest{}
	assert.EqualError(t, req.Validate(), "status is required")

	req.Status = "Teleported"
	assert.Error(t, req.Validate())

	req.Status = "In Transit"
	assert.NoError(t, req.Validate())

	req.VolunteerData = &VolunteerPayload{}
	assert.Error(t, req.Validate())

	req.VolunteerData = &VolunteerPayload{Name: "Priya Desai", VolunteerID: "V-42"}
	assert.NoError(t, req.Validate())
}

func Test_CoordinatesPayload_Model(t *testing.T) {
	var nilPayload *CoordinatesPayload
	assert.Nil(t, nilPayload.Model())

	m := (&CoordinatesPayload{Lat: 18.52, Lng: 73.84}).Model()
	require.NotNil(t, m)
	assert.Equal(t, 18.52, m.Lat)
	assert.Equal(t, 73.84, m.Lng)
}

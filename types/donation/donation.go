package donation

import (
	"fmt"
	"regexp"

	donationModel "care-connect/models/donation"
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// CoordinatesPayload is an optional lat/lng pair supplied by the client.
type CoordinatesPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Model converts the payload into the domain coordinates type.
func (p *CoordinatesPayload) Model() *donationModel.Coordinates {
	if p == nil {
		return nil
	}
	return &donationModel.Coordinates{Lat: p.Lat, Lng: p.Lng}
}

// BookDetailsPayload is the optional book-donation sub-record.
type BookDetailsPayload struct {
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Subject   string  `json:"subject"`
	Language  string  `json:"language"`
	Condition string  `json:"condition"`
	Count     int     `json:"count"`
	ISBN      *string `json:"isbn,omitempty"`
}

// AddressPayload is the optional structured pickup address breakdown.
type AddressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// CreateDonationRequest represents the payload for creating a donation
type CreateDonationRequest struct {
	DonorName      string              `json:"donorName"`
	DonorID        string              `json:"donorId"`
	Category       string              `json:"category" validate:"required"`
	ItemType       string              `json:"itemType" validate:"required"`
	Quantity       string              `json:"quantity" validate:"required"`
	PickupLocation string              `json:"pickupLocation" validate:"required"`
	PickupTime     string              `json:"pickupTime"`
	Coordinates    *CoordinatesPayload `json:"coordinates,omitempty"`
	BookDetails    *BookDetailsPayload `json:"bookDetails,omitempty"`
	Address        *AddressPayload     `json:"address,omitempty"`
}

func (r *CreateDonationRequest) Validate() error {
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}
	if r.ItemType == "" {
		return fmt.Errorf("itemType is required")
	}
	if r.Quantity == "" {
		return fmt.Errorf("quantity is required")
	}
	if r.PickupLocation == "" {
		return fmt.Errorf("pickupLocation is required")
	}
	if r.Address != nil && r.Address.Pincode != "" && !pincodePattern.MatchString(r.Address.Pincode) {
		return fmt.Errorf("pincode must be exactly 6 digits")
	}
	return nil
}

// VolunteerPayload carries the identity of the volunteer performing an action.
type VolunteerPayload struct {
	Name        string `json:"name" validate:"required"`
	VolunteerID string `json:"volunteerId" validate:"required"`
	Phone       string `json:"phone"`
	Vehicle     string `json:"vehicle"`
}

func (p *VolunteerPayload) Validate() error {
	if p == nil {
		return fmt.Errorf("volunteerData is required")
	}
	if p.Name == "" {
		return fmt.Errorf("volunteer name is required")
	}
	if p.VolunteerID == "" {
		return fmt.Errorf("volunteerId is required")
	}
	return nil
}

// AcceptDonationRequest represents the payload for the accept transition
type AcceptDonationRequest struct {
	VolunteerData *VolunteerPayload `json:"volunteerData" validate:"required"`
}

func (r *AcceptDonationRequest) Validate() error {
	return r.VolunteerData.Validate()
}

// DeclineDonationRequest represents the payload for the decline transition
type DeclineDonationRequest struct {
	VolunteerData *VolunteerPayload `json:"volunteerData" validate:"required"`
}

func (r *DeclineDonationRequest) Validate() error {
	return r.VolunteerData.Validate()
}

// PickupPayload carries the pickup-time tracking details.
type PickupPayload struct {
	CurrentLocation    string              `json:"currentLocation" validate:"required"`
	Coordinates        *CoordinatesPayload `json:"coordinates,omitempty"`
	DestinationAddress string              `json:"destinationAddress"`
	EstimatedDelivery  string              `json:"estimatedDelivery"`
}

// PickupDonationRequest represents the payload for the pickup transition
type PickupDonationRequest struct {
	VolunteerData *VolunteerPayload `json:"volunteerData" validate:"required"`
	PickupData    *PickupPayload    `json:"pickupData" validate:"required"`
}

func (r *PickupDonationRequest) Validate() error {
	if err := r.VolunteerData.Validate(); err != nil {
		return err
	}
	if r.PickupData == nil {
		return fmt.Errorf("pickupData is required")
	}
	if r.PickupData.CurrentLocation == "" {
		return fmt.Errorf("currentLocation is required")
	}
	return nil
}

// LocationPayload is a free-form location update broadcast by a volunteer.
type LocationPayload struct {
	Address           string              `json:"address" validate:"required"`
	Coordinates       *CoordinatesPayload `json:"coordinates,omitempty"`
	DistanceCovered   string              `json:"distanceCovered"`
	EstimatedDelivery string              `json:"estimatedDelivery"`
	Status            string              `json:"status"`
	Note              string              `json:"note"`
}

func (p *LocationPayload) Validate() error {
	if p == nil {
		return fmt.Errorf("locationData is required")
	}
	if p.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}

// TransitDonationRequest represents the payload for the transit transition
type TransitDonationRequest struct {
	LocationData *LocationPayload `json:"locationData" validate:"required"`
}

func (r *TransitDonationRequest) Validate() error {
	return r.LocationData.Validate()
}

// DeliveryPayload carries optional hand-off details for the deliver transition.
type DeliveryPayload struct {
	Location    string              `json:"location"`
	Coordinates *CoordinatesPayload `json:"coordinates,omitempty"`
	Note        string              `json:"note"`
}

// DeliverDonationRequest represents the payload for the deliver transition.
// All fields are optional; sensible fallbacks come from the tracking record.
type DeliverDonationRequest struct {
	DeliveryData *DeliveryPayload `json:"deliveryData,omitempty"`
}

func (r *DeliverDonationRequest) Validate() error {
	return nil
}

// UpdateLocationRequest represents the live location sync payload (no status change)
type UpdateLocationRequest struct {
	Address           string              `json:"address" validate:"required"`
	Coordinates       *CoordinatesPayload `json:"coordinates,omitempty"`
	DistanceCovered   string              `json:"distanceCovered"`
	EstimatedDelivery string              `json:"estimatedDelivery"`
	Status            string              `json:"status"`
	Note              string              `json:"note"`
}

func (r *UpdateLocationRequest) Validate() error {
	if r.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}

// OverrideStatusRequest represents the administrative status override payload.
// It bypasses transition legality and is not part of the normal workflow.
type OverrideStatusRequest struct {
	Status        string            `json:"status" validate:"required"`
	VolunteerData *VolunteerPayload `json:"volunteerData,omitempty"`
}

func (r *OverrideStatusRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !donationModel.DonationStatus(r.Status).IsValid() {
		return fmt.Errorf("invalid status %q", r.Status)
	}
	if r.VolunteerData != nil {
		return r.VolunteerData.Validate()
	}
	return nil
}

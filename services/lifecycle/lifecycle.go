// Package lifecycle implements the donation lifecycle engine: it performs
// every legal status transition and keeps the tracking record consistent
// with each one.
package lifecycle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	geocodeService "care-connect/httpServices/geocode"
	"care-connect/logger"
	donationModel "care-connect/models/donation"
	"care-connect/repository"
	donationTypes "care-connect/types/donation"

	"github.com/jinzhu/now"
)

// ErrIllegalTransition is returned in strict mode when a transition is
// requested from the wrong predecessor state.
var ErrIllegalTransition = errors.New("illegal status transition")

// Engine enforces donation status transitions. Mutations for one donation
// are serialized through a per-id mutex so two concurrent accepts cannot
// both succeed.
type Engine struct {
	repo     repository.DonationRepository
	geocoder *geocodeService.GeocodeClient

	// strict rejects out-of-order transitions; when false the engine
	// reproduces the permissive reference behaviour.
	strict bool

	mu    sync.Mutex
	locks map[uint]*sync.Mutex

	now func() time.Time
}

// NewEngine creates a lifecycle engine. geocoder may be nil or disabled.
func NewEngine(repo repository.DonationRepository, geocoder *geocodeService.GeocodeClient, strict bool) *Engine {
	return &Engine{
		repo:     repo,
		geocoder: geocoder,
		strict:   strict,
		locks:    make(map[uint]*sync.Mutex),
		now:      time.Now,
	}
}

// Create registers a new donation in status Pending with its initial
// tracking entry. Geocoding of the pickup address is best-effort.
func (e *Engine) Create(req *donationTypes.CreateDonationRequest) (*donationModel.Donation, error) {
	ts := e.now()

	donorName := req.DonorName
	if donorName == "" {
		donorName = "Anonymous Donor"
	}
	donorID := req.DonorID
	if donorID == "" {
		donorID = fmt.Sprintf("D-%d", ts.UnixMilli())
	}

	coords := req.Coordinates.Model()
	if coords == nil && e.geocoder != nil && e.geocoder.Enabled() {
		resolved, err := e.geocoder.Forward(req.PickupLocation)
		if err != nil {
			// Geocoding is advisory; creation proceeds without coordinates.
			logger.Warning("Geocoding failed for pickup address: " + err.Error())
		} else {
			coords = resolved
		}
	}

	d := &donationModel.Donation{
		DonorName:        donorName,
		DonorID:          donorID,
		Category:         req.Category,
		Item:             req.ItemType,
		Quantity:         req.Quantity,
		Status:           donationModel.StatusPending,
		PickupLocation:   req.PickupLocation,
		PickupTime:       req.PickupTime,
		ExpectedDelivery: "TBD",
		Tracking: donationModel.Tracking{
			CurrentLocation: req.PickupLocation,
			Coordinates:     coords,
			LastUpdate:      ts,
			DistanceCovered: "0 km",
			StatusProgress:  donationModel.StatusProgress{Created: true},
			Entries: []donationModel.TrackingEntry{
				{
					Location:    req.PickupLocation,
					Timestamp:   ts,
					Status:      "Donation Created",
					Coordinates: coords,
					Note:        "Donation request submitted successfully",
				},
			},
		},
	}

	if req.BookDetails != nil {
		d.BookDetails = &donationModel.BookDetails{
			Title:     req.BookDetails.Title,
			Author:    req.BookDetails.Author,
			Subject:   req.BookDetails.Subject,
			Language:  req.BookDetails.Language,
			Condition: req.BookDetails.Condition,
			Count:     req.BookDetails.Count,
			ISBN:      req.BookDetails.ISBN,
		}
	}
	if req.Address != nil {
		d.AddressInfo = &donationModel.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			Pincode: req.Address.Pincode,
		}
	}

	if err := e.repo.Create(d); err != nil {
		return nil, err
	}
	logger.Success(fmt.Sprintf("Donation created: %s (%s)", d.DonationCode, d.Item))
	return d, nil
}

// Accept moves Pending -> Accepted by Volunteer and records the volunteer.
func (e *Engine) Accept(key string, v *donationTypes.VolunteerPayload) (*donationModel.Donation, error) {
	return e.withDonation(key, func(d *donationModel.Donation) error {
		if err := e.requireStatus(d, donationModel.StatusPending, donationModel.StatusAccepted); err != nil {
			return err
		}
		d.Status = donationModel.StatusAccepted
		e.recordVolunteer(d, v, "accepted")
		d.Tracking.StatusProgress.Accepted = true
		d.Tracking.Append(donationModel.TrackingEntry{
			Location:    d.Tracking.CurrentLocation,
			Timestamp:   e.now(),
			Status:      string(donationModel.StatusAccepted),
			Coordinates: d.Tracking.Coordinates,
			Note:        fmt.Sprintf("%s accepted the donation", v.Name),
		})
		return nil
	})
}

// Decline moves Pending -> Declined, a terminal state.
func (e *Engine) Decline(key string, v *donationTypes.VolunteerPayload) (*donationModel.Donation, error) {
	return e.withDonation(key, func(d *donationModel.Donation) error {
		if err := e.requireStatus(d, donationModel.StatusPending, donationModel.StatusDeclined); err != nil {
			return err
		}
		d.Status = donationModel.StatusDeclined
		e.recordVolunteer(d, v, "declined")
		d.Tracking.Append(donationModel.TrackingEntry{
			Location:    d.Tracking.CurrentLocation,
			Timestamp:   e.now(),
			Status:      string(donationModel.StatusDeclined),
			Coordinates: d.Tracking.Coordinates,
			Note:        fmt.Sprintf("%s declined the donation", v.Name),
		})
		return nil
	})
}

// Pickup moves Accepted by Volunteer -> Picked Up and stores the volunteer's
// contact/vehicle details plus the destination.
func (e *Engine) Pickup(key string, v *donationTypes.VolunteerPayload, pickup *donationTypes.PickupPayload) (*donationModel.Donation, error) {
	return e.withDonation(key, func(d *donationModel.Donation) error {
		if err := e.requireStatus(d, donationModel.StatusAccepted, donationModel.StatusPickedUp); err != nil {
			return err
		}
		ts := e.now()

		d.Status = donationModel.StatusPickedUp
		e.recordVolunteer(d, v, "accepted")
		if v.Phone != "" {
			d.VolunteerPhone = &v.Phone
		}
		if v.Vehicle != "" {
			d.VolunteerVehicle = &v.Vehicle
		}

		coords := pickup.Coordinates.Model()
		d.Tracking.CurrentLocation = pickup.CurrentLocation
		if coords != nil {
			d.Tracking.Coordinates = coords
		}
		if pickup.DestinationAddress != "" {
			d.Tracking.DestinationAddress = &pickup.DestinationAddress
		}
		eta := pickup.EstimatedDelivery
		if eta == "" {
			// Same-day delivery window by default.
			eta = now.With(ts).EndOfDay().Format(time.RFC3339)
		}
		d.Tracking.EstimatedDelivery = &eta
		d.Tracking.StatusProgress.PickedUp = true
		d.Tracking.Append(donationModel.TrackingEntry{
			Location:    pickup.CurrentLocation,
			Timestamp:   ts,
			Status:      "Picked Up by Volunteer",
			Coordinates: coords,
			Note:        fmt.Sprintf("Picked up by %s", v.Name),
		})
		return nil
	})
}

// Transit moves Picked Up -> In Transit and records the reported position.
func (e *Engine) Transit(key string, loc *donationTypes.LocationPayload) (*donationModel.Donation, error) {
	return e.withDonation(key, func(d *donationModel.Donation) error {
		if err := e.requireStatus(d, donationModel.StatusPickedUp, donationModel.StatusTransit); err != nil {
			return err
		}
		d.Status = donationModel.StatusTransit
		d.Tracking.StatusProgress.InTransit = true
		e.applyLocation(d, loc, string(donationModel.StatusTransit))
		return nil
	})
}

// Deliver moves In Transit -> Delivered, a terminal state.
func (e *Engine) Deliver(key string, delivery *donationTypes.DeliveryPayload) (*donationModel.Donation, error) {
	return e.withDonation(key, func(d *donationModel.Donation) error {
		if err := e.requireStatus(d, donationModel.StatusTransit, donationModel.StatusDelivered); err != nil {
			return err
		}
		ts := e.now()

		d.Status = donationModel.StatusDelivered
		d.Tracking.StatusProgress.Delivered = true

		location := ""
		var coords *donationModel.Coordinates
		note := "Donation successfully delivered"
		if delivery != nil {
			location = delivery.Location
			coords = delivery.Coordinates.Model()
			if delivery.Note != "" {
				note = delivery.Note
			}
		}
		if location == "" {
			if d.Tracking.DestinationAddress != nil {
				location = *d.Tracking.DestinationAddress
			} else {
				location = "Destination"
			}
		}
		if coords == nil {
			coords = d.Tracking.Coordinates
		}

		d.Tracking.CurrentLocation = location
		d.Tracking.Append(donationModel.TrackingEntry{
			Location:    location,
			Timestamp:   ts,
			Status:      string(donationModel.StatusDelivered),
			Coordinates: coords,
			Note:        note,
		})
		return nil
	})
}

// SyncLocation appends a live position update without changing status. Used
// by a volunteer broadcasting GPS while in transit.
func (e *Engine) SyncLocation(key string, loc *donationTypes.LocationPayload) (*donationModel.Donation, error) {
	return e.withDonation(key, func(d *donationModel.Donation) error {
		status := loc.Status
		if status == "" {
			status = "Moving"
		}
		e.applyLocation(d, loc, status)
		return nil
	})
}

// OverrideStatus force-sets any status value, bypassing legality checks.
// This is the administrative fallback path, not the normal workflow.
func (e *Engine) OverrideStatus(key string, status donationModel.DonationStatus, v *donationTypes.VolunteerPayload) (*donationModel.Donation, error) {
	return e.withDonation(key, func(d *donationModel.Donation) error {
		d.Status = status
		note := fmt.Sprintf("Status changed to %s", status)
		if v != nil {
			response := "accepted"
			if status == donationModel.StatusDeclined {
				response = "declined"
			}
			e.recordVolunteer(d, v, response)
			note = fmt.Sprintf("%s %s the donation", v.Name, response)
		}

		switch status {
		case donationModel.StatusAccepted:
			d.Tracking.StatusProgress.Accepted = true
		case donationModel.StatusPickedUp:
			d.Tracking.StatusProgress.PickedUp = true
		case donationModel.StatusTransit:
			d.Tracking.StatusProgress.InTransit = true
		case donationModel.StatusDelivered:
			d.Tracking.StatusProgress.Delivered = true
		}

		d.Tracking.Append(donationModel.TrackingEntry{
			Location:    d.Tracking.CurrentLocation,
			Timestamp:   e.now(),
			Status:      string(status),
			Coordinates: d.Tracking.Coordinates,
			Note:        note,
		})
		return nil
	})
}

// applyLocation updates the live tracking fields and appends a history entry.
func (e *Engine) applyLocation(d *donationModel.Donation, loc *donationTypes.LocationPayload, status string) {
	ts := e.now()
	coords := loc.Coordinates.Model()

	d.Tracking.CurrentLocation = loc.Address
	if coords != nil {
		d.Tracking.Coordinates = coords
	}
	if loc.DistanceCovered != "" {
		d.Tracking.DistanceCovered = loc.DistanceCovered
	}
	if loc.EstimatedDelivery != "" {
		eta := loc.EstimatedDelivery
		d.Tracking.EstimatedDelivery = &eta
	}
	d.Tracking.Append(donationModel.TrackingEntry{
		Location:    loc.Address,
		Timestamp:   ts,
		Status:      status,
		Coordinates: coords,
		Note:        loc.Note,
	})
}

func (e *Engine) recordVolunteer(d *donationModel.Donation, v *donationTypes.VolunteerPayload, response string) {
	name := v.Name
	id := v.VolunteerID
	d.AssignedVolunteer = &name
	d.VolunteerID = &id
	d.VolunteerResponse = &response
}

// requireStatus enforces the linear transition order in strict mode.
func (e *Engine) requireStatus(d *donationModel.Donation, want, target donationModel.DonationStatus) error {
	if !e.strict {
		return nil
	}
	if d.Status != want {
		return fmt.Errorf("%w: cannot move %s from %q to %q", ErrIllegalTransition, d.DonationCode, d.Status, target)
	}
	return nil
}

// withDonation runs fn on a donation loaded under its per-id lock and
// persists the result. The donation is re-read after acquiring the lock so a
// concurrent mutation is always observed.
func (e *Engine) withDonation(key string, fn func(d *donationModel.Donation) error) (*donationModel.Donation, error) {
	d, err := e.repo.FindByKey(key)
	if err != nil {
		return nil, err
	}

	lock := e.lockFor(d.ID)
	lock.Lock()
	defer lock.Unlock()

	d, err = e.repo.FindByKey(key)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	if err := e.repo.Save(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (e *Engine) lockFor(id uint) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	return lock
}

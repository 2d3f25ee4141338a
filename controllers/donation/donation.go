package donation

import (
	"errors"
	"fmt"

	"care-connect/logger"
	donationModel "care-connect/models/donation"
	"care-connect/repository"
	"care-connect/services/lifecycle"
	"care-connect/types"
	donationTypes "care-connect/types/donation"
	"care-connect/utils"

	"github.com/gofiber/fiber/v2"
)

// DonationController handles donation-related HTTP requests
type DonationController struct {
	Repo   repository.DonationRepository
	Engine *lifecycle.Engine
	Logger *logger.AsyncLogger
}

// NewDonationController creates a new donation controller
func NewDonationController(repo repository.DonationRepository, engine *lifecycle.Engine, asyncLogger *logger.AsyncLogger) *DonationController {
	return &DonationController{
		Repo:   repo,
		Engine: engine,
		Logger: asyncLogger,
	}
}

// sendResponseWithLog writes the response and queues an audit entry.
func (dc *DonationController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	if dc.Logger != nil {
		dc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	}
	return result
}

// Index returns every donation, newest-created first
func (dc *DonationController) Index(c *fiber.Ctx) error {
	list, err := dc.Repo.All()
	if err != nil {
		logger.Error("Failed to list donations", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Internal server error",
		})
	}
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    list,
	})
}

// Pending returns donations still waiting for pickup
func (dc *DonationController) Pending(c *fiber.Ctx) error {
	list, err := dc.Repo.Pending()
	if err != nil {
		logger.Error("Failed to list pending donations", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Internal server error",
		})
	}
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    list,
	})
}

// Show resolves a donation by numeric id, UUID, or DON-xxxx code
func (dc *DonationController) Show(c *fiber.Ctx) error {
	d, err := dc.Repo.FindByKey(c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Success: false,
				Message: "Donation not found",
			})
		}
		logger.Error("Failed to find donation", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Internal server error",
		})
	}
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    d,
	})
}

// Store creates a new donation in status Pending
func (dc *DonationController) Store(c *fiber.Ctx) error {
	var req donationTypes.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	d, err := dc.Engine.Create(&req)
	if err != nil {
		logger.Error("Failed to create donation", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Failed to create donation",
		})
	}

	return dc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Success: true,
		Data:    d,
	})
}

// Accept handles the accept transition (volunteer action)
func (dc *DonationController) Accept(c *fiber.Ctx) error {
	var req donationTypes.AcceptDonationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	d, err := dc.Engine.Accept(c.Params("id"), req.VolunteerData)
	if err != nil {
		return dc.transitionError(c, err)
	}
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    d,
	})
}

// Decline handles the decline transition (volunteer action)
func (dc *DonationController) Decline(c *fiber.Ctx) error {
	var req donationTypes.DeclineDonationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	d, err := dc.Engine.Decline(c.Params("id"), req.VolunteerData)
	if err != nil {
		return dc.transitionError(c, err)
	}
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    d,
	})
}

// Pickup handles the pickup transition
func (dc *DonationController) Pickup(c *fiber.Ctx) error {
	var req donationTypes.PickupDonationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	d, err := dc.Engine.Pickup(c.Params("id"), req.VolunteerData, req.PickupData)
	if err != nil {
		return dc.transitionError(c, err)
	}
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    d,
	})
}

// Transit handles the transit transition
func (dc *DonationController) Transit(c *fiber.Ctx) error {
	var req donationTypes.TransitDonationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	d, err := dc.Engine.Transit(c.Params("id"), req.LocationData)
	if err != nil {
		return dc.transitionError(c, err)
	}
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    d,
	})
}

// Deliver handles the deliver transition
func (dc *DonationController) Deliver(c *fiber.Ctx) error {
	var req donationTypes.DeliverDonationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			logger.Error("Failed to parse request body", err)
			return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Success: false,
				Message: "Invalid request body",
			})
		}
	}

	d, err := dc.Engine.Deliver(c.Params("id"), req.DeliveryData)
	if err != nil {
		return dc.transitionError(c, err)
	}
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    d,
	})
}

// UpdateLocation handles the live location sync (no status change)
func (dc *DonationController) UpdateLocation(c *fiber.Ctx) error {
	var req donationTypes.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	d, err := dc.Engine.SyncLocation(c.Params("id"), &donationTypes.LocationPayload{
		Address:           req.Address,
		Coordinates:       req.Coordinates,
		DistanceCovered:   req.DistanceCovered,
		EstimatedDelivery: req.EstimatedDelivery,
		Status:            req.Status,
		Note:              req.Note,
	})
	if err != nil {
		return dc.transitionError(c, err)
	}
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    d,
	})
}

// OverrideStatus handles the administrative status override (fallback path)
func (dc *DonationController) OverrideStatus(c *fiber.Ctx) error {
	var req donationTypes.OverrideStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	d, err := dc.Engine.OverrideStatus(c.Params("id"), donationModel.DonationStatus(req.Status), req.VolunteerData)
	if err != nil {
		return dc.transitionError(c, err)
	}
	logger.Warning(fmt.Sprintf("Status of donation %s overridden to %q", d.DonationCode, d.Status))
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    d,
	})
}

// Clear removes every donation (administrative bulk clear)
func (dc *DonationController) Clear(c *fiber.Ctx) error {
	if err := dc.Repo.DeleteAll(); err != nil {
		logger.Error("Failed to clear donations", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Internal server error",
		})
	}
	logger.Warning("All donations cleared")
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Message: "All donations cleared",
	})
}

// transitionError maps lifecycle errors to HTTP statuses.
func (dc *DonationController) transitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return dc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
			Success: false,
			Message: "Donation not found",
		})
	case errors.Is(err, lifecycle.ErrIllegalTransition):
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	default:
		logger.Error("Donation transition failed", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Internal server error",
		})
	}
}

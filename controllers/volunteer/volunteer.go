package volunteer

import (
	"errors"
	"fmt"
	"time"

	"care-connect/logger"
	beneficiaryModel "care-connect/models/beneficiary"
	"care-connect/repository"
	otpService "care-connect/services/otp"
	"care-connect/types"
	beneficiaryTypes "care-connect/types/beneficiary"
	otpTypes "care-connect/types/otp"
	"care-connect/utils"

	"github.com/gofiber/fiber/v2"
)

// VolunteerController serves the beneficiary directory and the OTP hand-off
// verification endpoints used by volunteers in the field.
type VolunteerController struct {
	Beneficiaries repository.BeneficiaryRepository
	Verified      repository.VerifiedDonationRepository
	OTP           *otpService.Service
	Logger        *logger.AsyncLogger
}

// NewVolunteerController creates a new volunteer controller
func NewVolunteerController(beneficiaries repository.BeneficiaryRepository, verified repository.VerifiedDonationRepository, otp *otpService.Service, asyncLogger *logger.AsyncLogger) *VolunteerController {
	return &VolunteerController{
		Beneficiaries: beneficiaries,
		Verified:      verified,
		OTP:           otp,
		Logger:        asyncLogger,
	}
}

func (vc *VolunteerController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	if vc.Logger != nil {
		vc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	}
	return result
}

// Index returns the beneficiary directory
func (vc *VolunteerController) Index(c *fiber.Ctx) error {
	list, err := vc.Beneficiaries.All()
	if err != nil {
		logger.Error("Failed to list beneficiaries", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Internal server error",
		})
	}
	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    list,
	})
}

// Show returns one beneficiary by needy-person id
func (vc *VolunteerController) Show(c *fiber.Ctx) error {
	b, err := vc.Beneficiaries.FindByNeedyID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Success: false,
				Message: "Beneficiary not found",
			})
		}
		logger.Error("Failed to find beneficiary", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Internal server error",
		})
	}
	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    b,
	})
}

// Store adds a beneficiary to the directory (administrative)
func (vc *VolunteerController) Store(c *fiber.Ctx) error {
	var req beneficiaryTypes.CreateBeneficiaryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	b := &beneficiaryModel.Beneficiary{
		NeedyID:  req.NeedyID,
		Name:     req.Name,
		Area:     req.Area,
		Category: req.Category,
	}
	if req.Phone != "" {
		b.Phone = &req.Phone
	}
	if err := vc.Beneficiaries.Create(b); err != nil {
		logger.Error("Failed to create beneficiary", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Failed to create beneficiary",
		})
	}

	logger.Success(fmt.Sprintf("Beneficiary added: %s (%s)", b.Name, b.NeedyID))
	return vc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Success: true,
		Data:    b,
	})
}

// SendOTP issues a verification code for a (phone, beneficiary) pair
func (vc *VolunteerController) SendOTP(c *fiber.Ctx) error {
	var req otpTypes.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	result, err := vc.OTP.Send(req.PhoneNumber, req.NeedyPersonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Success: false,
				Message: "Beneficiary not found",
			})
		}
		logger.Error("Failed to issue OTP", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Failed to send OTP",
		})
	}

	message := "OTP sent successfully"
	if !result.SMSSent {
		message = "OTP generated (SMS delivery unavailable)"
	}
	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data: otpTypes.SendOTPResponse{
			Message:   message,
			SMSSent:   result.SMSSent,
			ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
			DemoOTP:   result.DemoOTP,
		},
	})
}

// VerifyOTP consumes a code and records the verified hand-off
func (vc *VolunteerController) VerifyOTP(c *fiber.Ctx) error {
	var req otpTypes.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	v, err := vc.OTP.Verify(req.PhoneNumber, req.NeedyPersonID, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, otpService.ErrSessionNotFound),
			errors.Is(err, otpService.ErrExpired),
			errors.Is(err, otpService.ErrMismatch):
			return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Success: false,
				Message: err.Error(),
			})
		case errors.Is(err, repository.ErrNotFound):
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Success: false,
				Message: "Beneficiary not found",
			})
		default:
			logger.Error("Failed to verify OTP", err)
			return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Success: false,
				Message: "Internal server error",
			})
		}
	}

	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Message: "Donation verified successfully",
		Data:    v,
	})
}

// VerifiedAll returns every recorded hand-off verification, newest first
func (vc *VolunteerController) VerifiedAll(c *fiber.Ctx) error {
	list, err := vc.Verified.All()
	if err != nil {
		logger.Error("Failed to list verified donations", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Success: false,
			Message: "Internal server error",
		})
	}
	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Success: true,
		Data:    list,
	})
}

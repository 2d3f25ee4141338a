package otp

import (
	"fmt"

	"care-connect/utils"
)

// SendOTPRequest represents the request payload for issuing an OTP
type SendOTPRequest struct {
	PhoneNumber   string `json:"phoneNumber" validate:"required,min=10,max=20"`
	NeedyPersonID string `json:"needyPersonId" validate:"required"`
}

func (r *SendOTPRequest) Validate() error {
	if r.PhoneNumber == "" {
		return fmt.Errorf("phoneNumber is required")
	}
	if !utils.ValidatePhoneNumber(r.PhoneNumber) {
		return fmt.Errorf("invalid phone number")
	}
	if r.NeedyPersonID == "" {
		return fmt.Errorf("needyPersonId is required")
	}
	return nil
}

// VerifyOTPRequest represents the request payload for consuming an OTP
type VerifyOTPRequest struct {
	PhoneNumber   string `json:"phoneNumber" validate:"required,min=10,max=20"`
	NeedyPersonID string `json:"needyPersonId" validate:"required"`
	OTP           string `json:"otp" validate:"required,len=6"`
}

func (r *VerifyOTPRequest) Validate() error {
	if r.PhoneNumber == "" {
		return fmt.Errorf("phoneNumber is required")
	}
	if r.NeedyPersonID == "" {
		return fmt.Errorf("needyPersonId is required")
	}
	if r.OTP == "" {
		return fmt.Errorf("otp is required")
	}
	if len(r.OTP) != 6 {
		return fmt.Errorf("otp must be exactly 6 characters")
	}
	return nil
}

// SendOTPResponse represents the response for the send operation
type SendOTPResponse struct {
	Message   string `json:"message"`
	SMSSent   bool   `json:"smsSent"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	// DemoOTP is only populated outside production when the SMS gateway is
	// disabled, so the caller can display the code for manual entry.
	DemoOTP string `json:"demoOTP,omitempty"`
}

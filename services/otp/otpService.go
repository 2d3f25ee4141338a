// Package otp implements the out-of-band verification subsystem: short-lived
// in-memory OTP sessions proving that a donation reached a genuine
// beneficiary, and the immutable verified-donation records they produce.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	smsService "care-connect/httpServices/sms"
	"care-connect/logger"
	verificationModel "care-connect/models/verification"
	"care-connect/repository"
)

// SessionTTL is the validity window of an issued OTP.
const SessionTTL = 5 * time.Minute

var (
	// ErrSessionNotFound is returned when no OTP was issued for the key.
	ErrSessionNotFound = errors.New("OTP not found or expired")
	// ErrExpired is returned when the OTP's validity window has passed.
	ErrExpired = errors.New("OTP expired")
	// ErrMismatch is returned when the submitted code differs from the issued one.
	ErrMismatch = errors.New("invalid OTP")
)

// session is one issued OTP. Sessions live only in process memory and are
// deleted on successful verification or on an expiry check.
type session struct {
	code      string
	expiresAt time.Time
}

// SendResult describes the outcome of issuing an OTP.
type SendResult struct {
	SMSSent   bool
	ExpiresAt time.Time
	// DemoOTP carries the code back to the caller when real SMS delivery is
	// unavailable and demo mode is permitted.
	DemoOTP string
}

// Service issues and verifies OTP sessions keyed by (phone, beneficiary).
type Service struct {
	mu       sync.Mutex
	sessions map[string]session

	beneficiaries repository.BeneficiaryRepository
	verified      repository.VerifiedDonationRepository
	sms           *smsService.SMSClient

	// demoMode returns the code in the API response when SMS is disabled.
	// Must be off in production deployments.
	demoMode bool

	now func() time.Time
}

// NewService creates an OTP service. sms may be disabled; demoMode controls
// whether codes are surfaced to callers when SMS delivery is unavailable.
func NewService(beneficiaries repository.BeneficiaryRepository, verified repository.VerifiedDonationRepository, sms *smsService.SMSClient, demoMode bool) *Service {
	return &Service{
		sessions:      make(map[string]session),
		beneficiaries: beneficiaries,
		verified:      verified,
		sms:           sms,
		demoMode:      demoMode,
		now:           time.Now,
	}
}

// GenerateOTP generates a uniformly random 6-digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Send issues a fresh OTP for the (phone, beneficiary) pair, overwriting any
// previous session for the same key. SMS delivery failure is non-fatal.
func (s *Service) Send(phoneNumber, needyPersonID string) (*SendResult, error) {
	if _, err := s.beneficiaries.FindByNeedyID(needyPersonID); err != nil {
		return nil, err
	}

	code, err := GenerateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}
	expiresAt := s.now().Add(SessionTTL)

	s.mu.Lock()
	s.sessions[sessionKey(phoneNumber, needyPersonID)] = session{code: code, expiresAt: expiresAt}
	s.mu.Unlock()

	result := &SendResult{ExpiresAt: expiresAt}

	message := fmt.Sprintf("Your Care Connect OTP is: %s. Valid for 5 minutes. Do not share this code with anyone.", code)
	sent, err := s.sms.Send(phoneNumber, message)
	if err != nil {
		// Delivery trouble never invalidates the issued session.
		logger.Error("Failed to send OTP SMS to "+phoneNumber, err)
	}
	result.SMSSent = sent

	if !sent && s.demoMode {
		result.DemoOTP = code
	}
	return result, nil
}

// Verify consumes the session for the pair if the code matches and is within
// its validity window, then records one immutable verified donation. The
// expiry check and consumption happen atomically, so a code is accepted at
// most once.
func (s *Service) Verify(phoneNumber, needyPersonID, code string) (*verificationModel.VerifiedDonation, error) {
	key := sessionKey(phoneNumber, needyPersonID)

	s.mu.Lock()
	sess, ok := s.sessions[key]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, key)
		s.mu.Unlock()
		return nil, ErrExpired
	}
	if sess.code != code {
		s.mu.Unlock()
		return nil, ErrMismatch
	}
	delete(s.sessions, key)
	s.mu.Unlock()

	b, err := s.beneficiaries.FindByNeedyID(needyPersonID)
	if err != nil {
		return nil, err
	}

	v := &verificationModel.VerifiedDonation{
		NeedyPersonID:       b.NeedyID,
		NeedyPersonName:     b.Name,
		NeedyPersonArea:     b.Area,
		NeedyPersonCategory: b.Category,
		PhoneNumber:         phoneNumber,
		VerifiedAt:          s.now(),
		VerifiedBy:          "Volunteer",
		Status:              verificationModel.StatusDeliveredSuccessfully,
		DonationType:        b.Category,
	}
	if err := s.verified.Create(v); err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Hand-off verified for beneficiary %s (%s)", b.NeedyID, v.VerificationCode))
	return v, nil
}

func sessionKey(phoneNumber, needyPersonID string) string {
	return phoneNumber + "-" + needyPersonID
}

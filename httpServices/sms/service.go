package httpServices

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"
)

// SMSClient talks to the external SMS gateway. When the gateway is disabled
// the client reports sends as skipped instead of failing, so OTP issuance can
// fall back to demo mode.
type SMSClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sender     string
	enabled    bool
}

type smsRequest struct {
	To     string `json:"to"`
	From   string `json:"from,omitempty"`
	Body   string `json:"body"`
	APIKey string `json:"api_key,omitempty"`
}

type smsResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewSMSClient builds a client from ENABLE_SMS, SMS_GATEWAY_URL, SMS_API_KEY
// and SMS_SENDER_ID.
func NewSMSClient() *SMSClient {
	enabled := os.Getenv("ENABLE_SMS") == "true" && os.Getenv("SMS_GATEWAY_URL") != ""
	return &SMSClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: os.Getenv("SMS_GATEWAY_URL"),
		apiKey:  os.Getenv("SMS_API_KEY"),
		sender:  os.Getenv("SMS_SENDER_ID"),
		enabled: enabled,
	}
}

// Enabled reports whether real SMS delivery is configured.
func (c *SMSClient) Enabled() bool {
	return c.enabled
}

// Send delivers a message to the given phone number. It returns false with a
// nil error when the gateway is disabled (demo mode).
func (c *SMSClient) Send(phone, message string) (bool, error) {
	if !c.enabled {
		return false, nil
	}

	body, err := json.Marshal(smsRequest{
		To:     phone,
		From:   c.sender,
		Body:   message,
		APIKey: c.apiKey,
	})
	if err != nil {
		return false, err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/messages", bytes.NewBuffer(body))
	if err != nil {
		return false, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return false, errors.New("SMS gateway returned non-OK status: " + resp.Status)
	}

	var apiResp smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return false, err
	}
	if apiResp.Status != "" && apiResp.Status != "success" && apiResp.Status != "sent" {
		return false, errors.New("SMS gateway rejected message: " + apiResp.Message)
	}

	return true, nil
}

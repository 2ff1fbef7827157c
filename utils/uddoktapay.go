package utils

import (
	"coursebay/config"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// CheckoutMetadata is echoed back by the gateway on the webhook so the
// reconciliation step can cross-check what was paid for.
type CheckoutMetadata struct {
	StudentID      string  `json:"student_id"`
	CourseID       string  `json:"course_id"`
	EnrollmentID   string  `json:"enrollment_id"`
	TransactionID  string  `json:"transaction_id"`
	CouponUsed     string  `json:"coupon_used,omitempty"`
	DiscountAmount float64 `json:"discount_amount"`
}

// CheckoutRequest is the UddoktaPay checkout-session creation payload.
type CheckoutRequest struct {
	FullName    string           `json:"full_name"`
	Email       string           `json:"email"`
	Amount      float64          `json:"amount"`
	Metadata    CheckoutMetadata `json:"metadata"`
	RedirectURL string           `json:"redirect_url"`
	CancelURL   string           `json:"cancel_url"`
	WebhookURL  string           `json:"webhook_url"`
}

// CheckoutResponse is the gateway's answer to a checkout creation call.
type CheckoutResponse struct {
	Status     bool   `json:"status"`
	Message    string `json:"message"`
	PaymentURL string `json:"payment_url"`
}

// SignCheckout computes the deterministic request signature the gateway
// verifies: MD5 over apiKey + amount + email + transaction id.
func SignCheckout(apiKey string, amount float64, email, transactionID string) string {
	payload := apiKey + strconv.FormatFloat(amount, 'f', -1, 64) + email + transactionID
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// CreateCheckout asks UddoktaPay for a hosted checkout session and returns
// the payment URL the payer should be redirected to.
func CreateCheckout(reqData *CheckoutRequest) (*CheckoutResponse, error) {
	signature := SignCheckout(
		config.AppConfig.UddoktaPayApiKey,
		reqData.Amount,
		reqData.Email,
		reqData.Metadata.TransactionID,
	)

	client := resty.New().SetTimeout(30 * time.Second)
	resp, err := client.R().
		SetHeader("RT-UDDOKTAPAY-API-KEY", config.AppConfig.UddoktaPayApiKey).
		SetHeader("RT-UDDOKTAPAY-SIGNATURE", signature).
		SetHeader("accept", "application/json").
		SetHeader("content-type", "application/json").
		SetBody(reqData).
		Post(config.AppConfig.UddoktaPayBaseURL + "/checkout-v2")
	if err != nil {
		return nil, fmt.Errorf("uddoktapay checkout request: %w", err)
	}

	var result CheckoutResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("uddoktapay checkout response: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 || !result.Status {
		msg := result.Message
		if msg == "" {
			msg = fmt.Sprintf("gateway returned status %d", resp.StatusCode())
		}
		return &result, fmt.Errorf("uddoktapay checkout rejected: %s", msg)
	}

	return &result, nil
}

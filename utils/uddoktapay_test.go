package utils

import (
	"coursebay/config"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignCheckout(t *testing.T) {
	sum := md5.Sum([]byte("api-key" + "800" + "student@example.com" + "TXN_1_abc"))
	expected := hex.EncodeToString(sum[:])

	assert.Equal(t, expected, SignCheckout("api-key", 800, "student@example.com", "TXN_1_abc"))
}

func TestSignCheckoutFractionalAmount(t *testing.T) {
	sum := md5.Sum([]byte("api-key" + "449.5" + "student@example.com" + "TXN_1_abc"))
	expected := hex.EncodeToString(sum[:])

	assert.Equal(t, expected, SignCheckout("api-key", 449.5, "student@example.com", "TXN_1_abc"))
}

func TestCreateCheckout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout-v2", r.URL.Path)
		assert.Equal(t, "api-key", r.Header.Get("RT-UDDOKTAPAY-API-KEY"))
		assert.Equal(t, SignCheckout("api-key", 800, "student@example.com", "TXN_1_abc"),
			r.Header.Get("RT-UDDOKTAPAY-SIGNATURE"))

		var body CheckoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 800.0, body.Amount)
		assert.Equal(t, "TXN_1_abc", body.Metadata.TransactionID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CheckoutResponse{
			Status:     true,
			Message:    "ok",
			PaymentURL: "https://pay.example.com/session/1",
		})
	}))
	defer server.Close()

	config.AppConfig = &config.Config{
		UddoktaPayApiKey:  "api-key",
		UddoktaPayBaseURL: server.URL,
	}

	result, err := CreateCheckout(&CheckoutRequest{
		FullName: "Test Student",
		Email:    "student@example.com",
		Amount:   800,
		Metadata: CheckoutMetadata{TransactionID: "TXN_1_abc"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/session/1", result.PaymentURL)
}

func TestCreateCheckoutGatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(CheckoutResponse{Status: false, Message: "invalid api key"})
	}))
	defer server.Close()

	config.AppConfig = &config.Config{
		UddoktaPayApiKey:  "wrong-key",
		UddoktaPayBaseURL: server.URL,
	}

	result, err := CreateCheckout(&CheckoutRequest{
		Email:    "student@example.com",
		Amount:   800,
		Metadata: CheckoutMetadata{TransactionID: "TXN_1_abc"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
	require.NotNil(t, result)
	assert.False(t, result.Status)
}

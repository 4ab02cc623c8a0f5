// Package ifood implements the client for the iFood merchant API: credential
// exchange with cached token refresh, event polling, event acknowledgment and
// order action calls.
package ifood

import (
	"encoding/json"
	"time"
)

// Token is a bearer credential obtained from the remote oauth endpoint.
// Tokens are replaced on refresh, never mutated.
type Token struct {
	AccessToken string
	Type        string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// ValidFor reports whether the token is still usable at the given instant,
// keeping the safety margin before the remote-reported expiry.
func (t *Token) ValidFor(now time.Time, margin time.Duration) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return now.Before(t.ExpiresAt.Add(-margin))
}

// tokenResponse is the remote oauth grant response body.
type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	Type        string `json:"type"`
	ExpiresIn   int    `json:"expiresIn"`
}

// AuthStatus is a point-in-time snapshot of the credential state, exposed on
// the dashboard auth endpoint.
type AuthStatus struct {
	HasCredentials bool       `json:"has_credentials"`
	HasToken       bool       `json:"has_token"`
	TokenValid     bool       `json:"token_valid"`
	TokenExpiresAt *time.Time `json:"token_expires_at"`
}

// RemoteEvent is one entry from the remote event queue. The id is unique per
// delivery attempt and may repeat across polls until acknowledged.
type RemoteEvent struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	Code       string    `json:"code"`
	FullCode   string    `json:"fullCode"`
	MerchantID string    `json:"merchantId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// eventAck is one entry of the acknowledgment request body.
type eventAck struct {
	ID string `json:"id"`
}

// cancellationRequest is the body of a requestCancellation call.
type cancellationRequest struct {
	Reason           string `json:"reason"`
	CancellationCode string `json:"cancellationCode"`
}

// OrderDetails is the remote order document. Only the attributes the engine
// needs are typed; the full payload is kept for the audit trail.
type OrderDetails struct {
	ID        string          `json:"id"`
	DisplayID string          `json:"displayId"`
	OrderType string          `json:"orderType"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
	Customer  OrderCustomer   `json:"customer"`
	Total     OrderTotal      `json:"total"`
	Raw       json.RawMessage `json:"-"`
}

// OrderCustomer is the customer block of the remote order document.
type OrderCustomer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OrderTotal is the totals block of the remote order document.
type OrderTotal struct {
	SubTotal    float64 `json:"subTotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	OrderAmount float64 `json:"orderAmount"`
}

// MerchantStatus is the remote merchant availability payload, passed through
// to the dashboard.
type MerchantStatus struct {
	State     string          `json:"state"`
	Available bool            `json:"available"`
	Raw       json.RawMessage `json:"-"`
}

// Package payment defines the contract this system consumes from the
// hosted checkout gateway. The gateway itself is opaque; only its
// callback surface is modelled here.
package payment

import (
	"context"
	"time"
)

// FailureCode is the closed classification of payment failures. The
// pipeline branches on these values only, never on raw gateway error
// strings; adapters translate SDK codes into this enum.
type FailureCode string

const (
	FailureBadRequest FailureCode = "bad_request"
	FailureGateway    FailureCode = "gateway"
	FailureNetwork    FailureCode = "network"
	FailureServer     FailureCode = "server"
	FailureUnknown    FailureCode = "unknown"
)

// Message returns the user-facing wording for a failure class.
func (c FailureCode) Message() string {
	switch c {
	case FailureBadRequest:
		return "Invalid payment details. Please check your information and try again."
	case FailureGateway:
		return "Payment gateway error. Please try again in a few minutes."
	case FailureNetwork:
		return "Network connection issue. Please check your internet and try again."
	case FailureServer:
		return "Server error occurred. Please try again later."
	default:
		return "Payment was unsuccessful. Please try again."
	}
}

// Ref identifies a successful charge at the gateway.
type Ref struct {
	PaymentID string
	OrderID   string
	Signature string
}

// FailureInfo describes a failed charge.
type FailureInfo struct {
	Code        FailureCode
	Description string
}

// Prefill seeds the checkout form with the student's contact details.
type Prefill struct {
	Name    string
	Email   string
	Contact string
}

// CheckoutConfig is the themed configuration handed to the gateway when
// opening a checkout session. Amounts are in paise.
type CheckoutConfig struct {
	KeyID       string
	AmountPaise int64
	Currency    string
	Name        string
	Description string
	ImagePath   string
	OrderID     string
	Prefill     Prefill
	Notes       map[string]string
	ThemeColor  string
	Timeout     time.Duration
	MaxRetries  int
}

// Callbacks receive the single verdict of a checkout session. Exactly
// one of the three fires per Open; anything arriving after that must be
// ignored by the caller.
type Callbacks struct {
	OnSuccess func(Ref)
	OnFailure func(FailureInfo)
	OnDismiss func()
}

// Gateway opens a hosted checkout session. Open returns once the
// session has been handed to the gateway; the verdict arrives later via
// the callbacks. Concurrent sessions are not permitted.
type Gateway interface {
	Open(ctx context.Context, cfg CheckoutConfig, cb Callbacks) error
}

// Package apperrors defines the sentinel errors services return and
// their mapping to HTTP statuses at the request boundary. The sentinel
// text is the user-visible message; wrapped detail (IDs, transport
// errors) is for logs only and must never reach a response body.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// Validation errors (400).
	ErrEmptyCart      = errors.New("Cart items required")
	ErrInvalidProduct = errors.New("Invalid product")
	ErrNegativeQty    = errors.New("Quantity must not be negative")
	ErrMissingFields  = errors.New("Missing fields")
	ErrMissingIDToken = errors.New("Missing idToken")
	ErrTokenNoEmail   = errors.New("Google token missing email")
	ErrStatusRequired = errors.New("Status is required")
	ErrNoOrderEmail   = errors.New("No email address provided")

	// Authentication errors (401).
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrGoogleVerification = errors.New("Google verification failed")

	// Authorization errors (403).
	ErrAdminUndeletable = errors.New("Cannot delete admin user")

	// Not-found errors (404).
	ErrNotFound      = errors.New("Not found")
	ErrUserNotFound  = errors.New("User not found")
	ErrOrderNotFound = errors.New("Order not found")

	// Conflict errors (409).
	ErrEmailTaken = errors.New("Email already registered")

	// Delivery errors (500, one message per transport failure category).
	ErrMailUnconfigured = errors.New("Email service not configured. Please contact administrator to set up email credentials.")
	ErrMailAuth         = errors.New("Email authentication failed. Please check email credentials.")
	ErrMailConnection   = errors.New("Could not connect to email server. Please try again later.")
	ErrMailRecipient    = errors.New("Invalid email address. Please check the recipient email.")
	ErrMailDelivery     = errors.New("Error sending invoice")

	// Internal errors (500).
	ErrInvoiceRender = errors.New("Error generating invoice")
)

var statusByErr = map[error]int{
	ErrEmptyCart:      http.StatusBadRequest,
	ErrInvalidProduct: http.StatusBadRequest,
	ErrNegativeQty:    http.StatusBadRequest,
	ErrMissingFields:  http.StatusBadRequest,
	ErrMissingIDToken: http.StatusBadRequest,
	ErrTokenNoEmail:   http.StatusBadRequest,
	ErrStatusRequired: http.StatusBadRequest,
	ErrNoOrderEmail:   http.StatusBadRequest,

	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrGoogleVerification: http.StatusUnauthorized,

	ErrAdminUndeletable: http.StatusForbidden,

	ErrNotFound:      http.StatusNotFound,
	ErrUserNotFound:  http.StatusNotFound,
	ErrOrderNotFound: http.StatusNotFound,

	ErrEmailTaken: http.StatusConflict,

	ErrMailUnconfigured: http.StatusInternalServerError,
	ErrMailAuth:         http.StatusInternalServerError,
	ErrMailConnection:   http.StatusInternalServerError,
	ErrMailRecipient:    http.StatusInternalServerError,
	ErrMailDelivery:     http.StatusInternalServerError,

	ErrInvoiceRender: http.StatusInternalServerError,
}

// Classify resolves err to the HTTP status and user-visible message of
// the sentinel it wraps. Unrecognized errors are reported as opaque
// internal failures.
func Classify(err error) (int, string) {
	for sentinel, status := range statusByErr {
		if errors.Is(err, sentinel) {
			return status, sentinel.Error()
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

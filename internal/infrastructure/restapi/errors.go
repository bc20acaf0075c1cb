package restapi

import (
	"errors"
	"net/http"

	"quantora_agent/internal/domain/entity"
)

// ErrorCategory groups errors by who is at fault.
type ErrorCategory string

const (
	// CategoryUserInput represents user input errors (4xx)
	CategoryUserInput ErrorCategory = "user_input"
	// CategorySystem represents system errors (5xx)
	CategorySystem ErrorCategory = "system"
)

// APIError is the JSON body of every failed response.
type APIError struct {
	Error string `json:"error"`
}

// categorize maps a service error to its category, HTTP status and client-facing message.
func categorize(err error) (ErrorCategory, int, string) {
	switch {
	case errors.Is(err, entity.ErrWalletRequired):
		return CategoryUserInput, http.StatusBadRequest, "Wallet required"
	case errors.Is(err, entity.ErrAddressRequired):
		return CategoryUserInput, http.StatusBadRequest, "Missing wallet address"
	case errors.Is(err, entity.ErrUpstreamRejectedAddress):
		return CategoryUserInput, http.StatusBadRequest, "Invalid response from Toncenter"
	case errors.Is(err, entity.ErrUnknownChain):
		return CategoryUserInput, http.StatusBadRequest, err.Error()
	default:
		return CategorySystem, http.StatusInternalServerError, err.Error()
	}
}

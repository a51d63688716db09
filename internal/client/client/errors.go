package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks transport-level failures: the request never
	// produced an HTTP response.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks 401/403 responses; the session token is missing,
	// expired or rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCredentialsRejected marks a login 4xx whose message matches the
	// backend's auth-failure pattern.
	ErrCredentialsRejected = errors.New("invalid credentials")

	// ErrDuplicateRecord matches any *DuplicateError via errors.Is.
	ErrDuplicateRecord = errors.New("record already exists")
)

// Backend message markers. The REST API reports failures as localized
// Portuguese strings; these substrings are the stable part of the contract.
const (
	credentialsMarker = "credenciais"
	duplicateMarker   = "duplicate key error"
	noProductsMarker  = "Não existem produtos"

	duplicateEmailIndex = "email_1"
	duplicateCPFIndex   = "cpf_1"
)

// DuplicateError is a registration uniqueness violation, classified by which
// unique index collided.
type DuplicateError struct {
	Field   string // "email", "cpf" or "" when the index is unrecognised
	Message string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "record already exists"
	}
	return fmt.Sprintf("%s already registered", e.Field)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateRecord
}

// APIError is any other non-2xx response, carrying the backend's status and
// message for display.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

package service

import (
	"errors"

	"github.com/mcmarket/mcmarket-client/internal/adapter"
)

// mapLoginError translates the adapter's transport error into the
// user-displayable error the login form shows.
func mapLoginError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, adapter.ErrUnauthorized) {
		return ErrInvalidCredentials
	}
	return ErrServerUnavailable
}

// mapRegisterError translates the adapter's transport error into the
// user-displayable error the register form shows.
func mapRegisterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrConflict):
		return ErrEmailAlreadyRegistered
	case errors.Is(err, adapter.ErrBadRequest):
		return ErrInvalidRegistrationData
	default:
		return ErrServerUnavailable
	}
}

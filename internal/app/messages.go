// Package app contains shared application-layer constants used across the
// marketplace client services and TUI.
//
// All Msg* constants are human-readable message strings shown to the user
// when an operation fails. Keeping them in one place ensures consistent
// wording across forms and screens.
package app

const (
	// MsgInvalidCredentials is shown when the login form submits an
	// email/password pair the server rejects.
	MsgInvalidCredentials = "invalid email or password"

	// MsgEmailAlreadyRegistered is shown when registration fails because
	// an account with the given email already exists.
	MsgEmailAlreadyRegistered = "an account with this email already exists"

	// MsgInvalidRegistrationData is shown when the server rejects the
	// registration payload (missing fields, malformed email, weak
	// password).
	MsgInvalidRegistrationData = "registration data is invalid, check the form and try again"

	// MsgServerUnavailable is shown when the remote API cannot be reached
	// or answers with a server-side failure.
	MsgServerUnavailable = "the marketplace is temporarily unavailable, try again in a moment"

	// MsgVerificationUnavailable is shown when an identity-verification
	// session cannot be opened. The user stays on the prompt view and may
	// retry.
	MsgVerificationUnavailable = "could not start identity verification, try again"

	// MsgSupportUnavailable is shown when a support thread or message
	// cannot be delivered.
	MsgSupportUnavailable = "could not reach support, try again"

	// MsgLegalNotAccepted is shown inline when the user tries to continue
	// without accepting the marketplace terms.
	MsgLegalNotAccepted = "you must read and accept the terms to continue"

	// MsgPasswordMismatch is shown inline when the two password fields of
	// the register form differ.
	MsgPasswordMismatch = "passwords do not match"
)

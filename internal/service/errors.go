package service

import (
	"errors"

	"github.com/mcmarket/mcmarket-client/internal/app"
)

// User-displayable errors. Their Error() text is shown verbatim by the form
// that triggered the operation, so the messages live in the app package
// alongside the other UI strings.
var (
	ErrInvalidCredentials      = errors.New(app.MsgInvalidCredentials)
	ErrEmailAlreadyRegistered  = errors.New(app.MsgEmailAlreadyRegistered)
	ErrInvalidRegistrationData = errors.New(app.MsgInvalidRegistrationData)
	ErrServerUnavailable       = errors.New(app.MsgServerUnavailable)
	ErrVerificationUnavailable = errors.New(app.MsgVerificationUnavailable)
	ErrSupportUnavailable      = errors.New(app.MsgSupportUnavailable)
)

var (
	// ErrNotAuthenticated is returned by operations that need a live
	// identity when none is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSuperseded is returned when an operation's remote response
	// arrived after a newer session mutation had already advanced the
	// state; the response was discarded.
	ErrSuperseded = errors.New("superseded by a newer session change")
)

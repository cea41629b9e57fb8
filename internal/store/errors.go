package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrSessionNotFound is returned when the session table holds no row,
	// either because nobody has signed in on this device yet or because
	// the session was cleared on logout.
	ErrSessionNotFound = errors.New("no saved session found")

	// ErrOnboardingNotFound is returned when an identity has no onboarding
	// record yet.
	ErrOnboardingNotFound = errors.New("no onboarding state found")
)

// Low-level database operation errors, wrapped by repository methods when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)

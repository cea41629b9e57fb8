// Package guard evaluates navigation against the session state. Every
// navigable path carries a declarative [RouteRequirement]; the gates turn a
// requirement plus a session snapshot into a [Decision] that the screen
// router executes. Guards never mutate session state.
package guard

// DecisionKind enumerates the possible outcomes of a gate evaluation.
type DecisionKind int

const (
	// DecisionAllow renders the requested screen.
	DecisionAllow DecisionKind = iota

	// DecisionLoading blocks with the loading placeholder: the bootstrap
	// has not resolved yet, so neither content nor a redirect may render.
	DecisionLoading

	// DecisionRedirect navigates to Decision.RedirectTo instead.
	DecisionRedirect

	// DecisionAuthRequired substitutes an informational view with login
	// and register links carrying the return address. Unlike
	// DecisionRedirect the requested path stays in the address line.
	DecisionAuthRequired

	// DecisionVerifyPrompt substitutes the verification prompt view in
	// the variant given by Decision.Prompt.
	DecisionVerifyPrompt
)

// VerifyPromptKind selects which verification prompt variant to show.
type VerifyPromptKind int

const (
	// PromptStart shows the generic start-verification call to action.
	PromptStart VerifyPromptKind = iota

	// PromptWait tells the user the submitted verification is still being
	// processed.
	PromptWait

	// PromptRetry offers a try-again action because the flow needs more
	// input from the user.
	PromptRetry
)

// Decision is the outcome of evaluating one navigation.
type Decision struct {
	Kind DecisionKind

	// RedirectTo is the target path, set only for DecisionRedirect.
	RedirectTo string

	// Prompt selects the prompt variant, set only for DecisionVerifyPrompt.
	Prompt VerifyPromptKind

	// ReturnTo is the address the login/register links of the
	// auth-required view carry, set only for DecisionAuthRequired.
	ReturnTo string
}

func allow() Decision {
	return Decision{Kind: DecisionAllow}
}

func loading() Decision {
	return Decision{Kind: DecisionLoading}
}

func redirect(to string) Decision {
	return Decision{Kind: DecisionRedirect, RedirectTo: to}
}

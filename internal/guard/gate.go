package guard

import (
	"net/url"
	"strings"

	"github.com/mcmarket/mcmarket-client/models"
)

// Decide evaluates one navigation: the role gate first, then the
// verification gate when the route demands it. The session snapshot is read
// only; concurrent session mutations are the session service's problem.
func Decide(session models.SessionSnapshot, req RouteRequirement, requestedPath string) Decision {
	decision := decideRole(session, req, requestedPath)
	if decision.Kind != DecisionAllow {
		return decision
	}

	if req.Verified {
		return decideVerification(session)
	}

	return decision
}

// decideRole implements the role authorization gate. Loading always blocks:
// rendering either the guarded content or a redirect before the bootstrap
// resolves would flash the wrong thing. Unauthenticated visitors to a
// verification-gated path get the informational auth-required view instead
// of the login redirect, so the explanation of why the path is closed is
// never lost behind a form.
func decideRole(session models.SessionSnapshot, req RouteRequirement, requestedPath string) Decision {
	if !req.Authenticated && !req.Verified {
		return allow()
	}

	if session.Loading {
		return loading()
	}

	if !session.Authenticated() {
		if req.Verified {
			return Decision{Kind: DecisionAuthRequired, ReturnTo: requestedPath}
		}
		return redirect(LoginRedirect(requestedPath))
	}

	if !req.permits(session.Identity.Role) {
		return redirect(HomeFor(session.Identity.Role))
	}

	return allow()
}

// decideVerification implements the verification gate for identities the
// role gate already admitted: admins bypass it entirely regardless of their
// own status.
func decideVerification(session models.SessionSnapshot) Decision {
	identity := session.Identity
	if identity.IsAdmin() || identity.IsVerified() {
		return allow()
	}

	return Decision{Kind: DecisionVerifyPrompt, Prompt: promptFor(identity.VerificationStatus)}
}

func promptFor(status models.VerificationStatus) VerifyPromptKind {
	switch status {
	case models.VerificationProcessing:
		return PromptWait
	case models.VerificationRequiresInput:
		return PromptRetry
	default:
		return PromptStart
	}
}

// LoginRedirect builds the login path carrying the requested path so a
// successful login can resume the original navigation.
func LoginRedirect(requestedPath string) string {
	return "/login?redirect=" + url.QueryEscape(requestedPath)
}

// RedirectTarget extracts the redirect query parameter from a login path
// built by [LoginRedirect]. Only root-relative targets are honoured;
// anything else (absolute URLs, protocol-relative "//host" forms, garbage)
// yields ok=false and the caller falls back to the role's home path.
func RedirectTarget(loginPath string) (target string, ok bool) {
	parsed, err := url.Parse(loginPath)
	if err != nil {
		return "", false
	}

	target = parsed.Query().Get("redirect")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "", false
	}

	return target, true
}

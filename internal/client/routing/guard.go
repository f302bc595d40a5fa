package routing

import "github.com/givehub/givehub/internal/client/session"

// Decision is the outcome of a page guard check.
type Decision int

const (
	// Allow renders the page body.
	Allow Decision = iota
	// RedirectLogin sends an unauthenticated visitor to the login page.
	RedirectLogin
	// Deny shows an access-denied view to an authenticated user whose
	// role does not match.
	Deny
)

// Guard decides whether a page requiring a role may render for the given
// session snapshot. It is pure and cheap; callers must re-run it on every
// state change so a logout elsewhere immediately revokes the page,
// instead of trusting a check made once at mount.
func Guard(required Role, snap session.Snapshot) Decision {
	if !snap.Authenticated {
		return RedirectLogin
	}
	if !CanAccess(required, snap.User) {
		return Deny
	}
	return Allow
}

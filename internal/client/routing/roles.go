// Package routing centralizes every role-to-behavior mapping in the client.
// No other package compares role strings directly: views ask this package
// which dashboard a user belongs on and whether a page may be rendered.
package routing

import (
	"github.com/givehub/givehub/internal/client/models"
)

// Role classifies a user. The set is closed; anything the API reports
// outside of it parses to RoleUnknown and routes to the generic dashboard.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDonor   Role = "donor"
	RoleCharity Role = "charity"
	RoleUnknown Role = ""
)

// ParseRole maps an API role string to the closed Role set.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleDonor, RoleCharity:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// Dashboard paths.
const (
	PathAdminDashboard   = "/admin-dashboard"
	PathDonorDashboard   = "/donor-dashboard"
	PathCharityDashboard = "/charity-dashboard"
	PathGenericDashboard = "/dashboard"
	PathLogin            = "/login"
)

// DashboardPath returns the dashboard a user lands on. A donor who also
// owns an approved charity is routed to the charity dashboard.
func DashboardPath(user *models.User, ownsApprovedCharity bool) string {
	if user == nil {
		return PathLogin
	}
	switch ParseRole(user.Role) {
	case RoleAdmin:
		return PathAdminDashboard
	case RoleDonor:
		if ownsApprovedCharity {
			return PathCharityDashboard
		}
		return PathDonorDashboard
	case RoleCharity:
		return PathCharityDashboard
	default:
		return PathGenericDashboard
	}
}

// CanAccess reports whether user may view content gated behind required.
// A page with no required role is open to anyone; otherwise the user must
// exist and carry exactly that role.
func CanAccess(required Role, user *models.User) bool {
	if required == RoleUnknown {
		return true
	}
	if user == nil {
		return false
	}
	return ParseRole(user.Role) == required
}

// Package gateway is the single chokepoint for remote API calls. It attaches
// the stored bearer token to outgoing requests, normalizes transport and HTTP
// failures into sentinel errors, and exposes one method per remote operation.
package gateway

import (
	"context"

	"github.com/givehub/givehub/internal/client/models"
)

// TokenSource supplies the current session immediately before each
// authenticated request. Satisfied by credstore.Store.
type TokenSource interface {
	Load(ctx context.Context) (models.Session, bool)
}

// Client is the remote API surface the rest of the client programs against.
//
// Every method returns either its payload or an error whose message is safe
// to show the user; errors.Is against the package sentinels distinguishes
// transport failures and auth rejections from ordinary API errors. A 401
// comes back as ErrUnauthorized — the gateway never clears the credential
// store itself.
type Client interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error)
	GetProfile(ctx context.Context) (*models.User, error)

	GetCharities(ctx context.Context) ([]models.Charity, error)
	GetCharity(ctx context.Context, id string) (*models.Charity, error)
	ApplyCharity(ctx context.Context, app models.CharityApplication) (*models.Charity, error)
	CreateDonation(ctx context.Context, req models.DonationRequest) (*models.Donation, error)
	GetDonationHistory(ctx context.Context) ([]models.Donation, error)
	GetStories(ctx context.Context) ([]models.Story, error)
	GetAdminDashboard(ctx context.Context) (*models.DashboardStats, error)

	Health(ctx context.Context) error
}

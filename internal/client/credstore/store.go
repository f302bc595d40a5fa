// Package credstore persists the active session (bearer token, role cache,
// serialized user) in a local SQLite database. It is the sole durable owner
// of session state; the session controller holds the in-memory copy.
package credstore

import (
	"context"

	"github.com/givehub/givehub/internal/client/models"
)

// Store is the durable key/value home of the active session.
//
// Contract:
//   - Save writes token and user together; a reader never observes a token
//     without its user or vice versa.
//   - SaveUser refreshes the user record under the already-stored token
//     (profile refresh, local profile edits).
//   - Load reports ok=false when no token is stored. A stored user record
//     that fails to parse is returned as a nil User, never as an error;
//     deciding what to do about the corruption is the caller's job.
//   - Clear removes all three keys so no partial session can be
//     reconstructed afterwards.
type Store interface {
	Save(ctx context.Context, token string, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
	Load(ctx context.Context) (models.Session, bool)
	Clear(ctx context.Context) error
}

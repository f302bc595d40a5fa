// Package session owns the client's belief about who is signed in. The
// Controller hydrates that belief from the credential store at startup,
// runs login/register/logout transactions against the API gateway, and
// publishes state snapshots to the rest of the application.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/givehub/givehub/internal/client/credstore"
	"github.com/givehub/givehub/internal/client/gateway"
	"github.com/givehub/givehub/internal/client/models"
	"github.com/givehub/givehub/internal/logging"
)

// Snapshot is an immutable view of the session state at one instant.
// Authenticated is true exactly when a token is held; User may lag the
// backend until the next successful profile fetch.
type Snapshot struct {
	User          *models.User
	Authenticated bool
	Loading       bool
}

// Controller is the stateful session core. All exported methods are safe
// for concurrent use; async completions carry a sequence number and are
// discarded when a later transaction has superseded them.
type Controller struct {
	store  credstore.Store
	api    gateway.Client
	logger logging.Logger

	mu            sync.Mutex
	user          *models.User
	authenticated bool
	loading       bool
	seq           uint64
	subs          map[int]chan Snapshot
	nextSub       int

	hydrateOnce sync.Once
}

func NewController(store credstore.Store, api gateway.Client, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Controller{
		store:  store,
		api:    api,
		logger: logger,
		subs:   make(map[int]chan Snapshot),
	}
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{User: c.user, Authenticated: c.authenticated, Loading: c.loading}
}

// Subscribe registers a listener for state changes. The returned cancel
// function must be called when the listener goes away; a full or abandoned
// channel is skipped during publishing, never treated as an error.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan Snapshot, 8)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// publishLocked fans the current snapshot out to subscribers. Sends are
// non-blocking: a subscriber that stopped draining just misses updates.
func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Hydrate reconstructs session state from the credential store. It runs at
// most once per controller. The synchronous part settles immediately: an
// empty store yields an anonymous session, a populated one yields an
// optimistically authenticated session using the last-known identity. A
// background profile fetch then reconciles the user record with the
// backend; any failure there is non-destructive, so an unreachable server
// never logs anyone out. A stored token whose user record is corrupted is
// treated as no session and wiped.
func (c *Controller) Hydrate(ctx context.Context) {
	c.hydrateOnce.Do(func() {
		sess, ok := c.store.Load(ctx)
		if ok && sess.User == nil {
			// Token present but the user record did not survive storage;
			// drop the remains so nothing half-alive is reconstructed later.
			if err := c.store.Clear(ctx); err != nil {
				c.logger.Warn(ctx, "failed to clear corrupted session", "err", err)
			}
			ok = false
		}

		c.mu.Lock()
		if !ok {
			c.user = nil
			c.authenticated = false
			c.loading = false
			c.publishLocked()
			c.mu.Unlock()
			return
		}

		c.user = sess.User
		c.authenticated = true
		c.loading = true
		c.seq++
		seq := c.seq
		c.publishLocked()
		c.mu.Unlock()

		c.logger.Info(ctx, "session hydrated from store", "email", sess.User.Email, "role", sess.User.Role)
		go c.refreshProfile(ctx, seq)
	})
}

// refreshProfile fetches the canonical user record and, if this refresh is
// still the latest issued transaction, replaces the cached one. Failures
// leave the session exactly as it was.
func (c *Controller) refreshProfile(ctx context.Context, seq uint64) {
	user, err := c.api.GetProfile(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug(ctx, "dropping stale profile refresh", "seq", seq)
		return
	}

	if err != nil {
		c.logger.Warn(ctx, "profile refresh failed, keeping stored identity", "err", err)
		c.loading = false
		c.publishLocked()
		return
	}

	c.user = user
	c.loading = false
	c.publishLocked()

	if err := c.store.SaveUser(ctx, user); err != nil {
		c.logger.Warn(ctx, "failed to persist refreshed user", "err", err)
	}
}

// Login authenticates against the API and, on success, persists the new
// session atomically and switches the in-memory state to it. On failure
// the controller stays unauthenticated and the error carries the reason
// for display. loading is cleared on every exit path.
func (c *Controller) Login(ctx context.Context, email, password string) (*models.User, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	token, user, err := c.api.Login(ctx, email, password)
	if err != nil {
		c.logger.Info(ctx, "login failed", "email", email, "err", err)
		return nil, err
	}

	return c.adopt(ctx, token, user)
}

// Register creates an account; a successful registration is an implicit
// login, so the returned token and user are adopted immediately.
func (c *Controller) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	token, user, err := c.api.Register(ctx, req)
	if err != nil {
		c.logger.Info(ctx, "registration failed", "email", req.Email, "err", err)
		return nil, err
	}

	return c.adopt(ctx, token, user)
}

// adopt persists and installs a freshly issued session. The store write
// happens first: if it fails, the in-memory state is left untouched and
// the transaction is reported as failed.
func (c *Controller) adopt(ctx context.Context, token string, user *models.User) (*models.User, error) {
	if err := c.store.Save(ctx, token, user); err != nil {
		c.logger.Error(ctx, "failed to persist session", "err", err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.user = user
	c.authenticated = true
	c.publishLocked()
	return user, nil
}

// Logout destroys the session. It has no failure mode from the caller's
// point of view: even if the store cannot be cleared, the in-memory state
// is dropped, so the UI never claims an authentication it cannot prove.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn(ctx, "failed to clear credential store on logout", "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.user = nil
	c.authenticated = false
	c.loading = false
	c.publishLocked()
	c.logger.Info(ctx, "logged out")
}

// UpdateUser replaces the in-memory user record and re-persists it under
// the existing token, for local profile edits without a new login.
func (c *Controller) UpdateUser(ctx context.Context, user *models.User) error {
	c.mu.Lock()
	c.user = user
	c.publishLocked()
	c.mu.Unlock()

	if err := c.store.SaveUser(ctx, user); err != nil {
		return err
	}
	return nil
}

// StartProfileRefresh re-verifies the stored identity on a fixed interval,
// with the same non-destructive failure policy as hydration. Blocks until
// ctx is done; run it in its own goroutine.
func (c *Controller) StartProfileRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if !c.authenticated {
				c.mu.Unlock()
				continue
			}
			c.seq++
			seq := c.seq
			c.mu.Unlock()

			c.refreshProfile(ctx, seq)

		case <-ctx.Done():
			return
		}
	}
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
	c.publishLocked()
}

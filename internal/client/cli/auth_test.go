package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/givehub/givehub/internal/client/models"
	"github.com/givehub/givehub/internal/client/session"
	"github.com/givehub/givehub/internal/logging"
)

// ---- input stubs ----

func stubInputs(t *testing.T, lines []string, password string) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(lines) {
			return "", io.EOF
		}
		line := lines[i]
		i++
		return line, nil
	}
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

// ---- fakes ----

// memStore is an in-memory credstore.Store.
type memStore struct {
	mu   sync.Mutex
	sess models.Session
	ok   bool
}

func (m *memStore) Save(ctx context.Context, token string, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = models.Session{Token: token, User: user}
	m.ok = true
	return nil
}

func (m *memStore) SaveUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess.User = user
	return nil
}

func (m *memStore) Load(ctx context.Context) (models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess, m.ok
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = models.Session{}
	m.ok = false
	return nil
}

// fakeAPI implements gateway.Client for CLI tests.
type fakeAPI struct {
	LoginToken string
	LoginUser  *models.User
	LoginErr   error

	RegisterErr error
	LastReq     models.RegisterRequest

	Charities []models.Charity
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	return f.LoginToken, f.LoginUser, f.LoginErr
}

func (f *fakeAPI) Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error) {
	f.LastReq = req
	if f.RegisterErr != nil {
		return "", nil, f.RegisterErr
	}
	role := "donor"
	name := req.FirstName + " " + req.LastName
	if req.CharityName != "" {
		role = "charity"
		name = req.CharityName
	}
	return "tok-reg", &models.User{ID: "u-new", Name: name, Email: req.Email, Role: role}, nil
}

func (f *fakeAPI) GetProfile(ctx context.Context) (*models.User, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) GetCharities(ctx context.Context) ([]models.Charity, error) {
	return f.Charities, nil
}
func (f *fakeAPI) GetCharity(ctx context.Context, id string) (*models.Charity, error) {
	return nil, errors.New("not used")
}
func (f *fakeAPI) ApplyCharity(ctx context.Context, app models.CharityApplication) (*models.Charity, error) {
	return nil, nil
}
func (f *fakeAPI) CreateDonation(ctx context.Context, req models.DonationRequest) (*models.Donation, error) {
	return &models.Donation{ID: "d-1", CharityID: req.CharityID, Amount: req.Amount}, nil
}
func (f *fakeAPI) GetDonationHistory(ctx context.Context) ([]models.Donation, error) {
	return nil, nil
}
func (f *fakeAPI) GetStories(ctx context.Context) ([]models.Story, error) { return nil, nil }
func (f *fakeAPI) GetAdminDashboard(ctx context.Context) (*models.DashboardStats, error) {
	return &models.DashboardStats{TotalUsers: 3}, nil
}
func (f *fakeAPI) Health(ctx context.Context) error { return nil }

func newTestApp(api *fakeAPI) (*App, *memStore) {
	store := &memStore{}
	ctrl := session.NewController(store, api, logging.Nop())
	return &App{
		session: ctrl,
		api:     api,
		logger:  logging.Nop(),
		Mode:    ModeOffline,
	}, store
}

// ---- TESTS ----

func TestLogin_Success_SignsIn(t *testing.T) {
	api := &fakeAPI{
		LoginToken: "tok-1",
		LoginUser:  &models.User{ID: "u-1", Name: "Jane", Email: "jane@example.com", Role: "donor"},
	}
	app, store := newTestApp(api)

	restore := stubInputs(t, []string{"jane@example.com"}, "secret")
	defer restore()

	require.NoError(t, app.Login(context.Background()))

	snap := app.session.Snapshot()
	require.True(t, snap.Authenticated)
	require.Equal(t, "Jane", snap.User.Name)

	sess, ok := store.Load(context.Background())
	require.True(t, ok)
	require.Equal(t, "tok-1", sess.Token)
}

func TestLogin_Failure_StaysAnonymous(t *testing.T) {
	api := &fakeAPI{LoginErr: errors.New("Invalid credentials")}
	app, _ := newTestApp(api)

	restore := stubInputs(t, []string{"jane@example.com"}, "wrong")
	defer restore()

	require.NoError(t, app.Login(context.Background()), "a rejected login is reported, not an input error")
	require.False(t, app.session.Snapshot().Authenticated)
}

func TestRegister_CharityName_RegistersCharityAccount(t *testing.T) {
	api := &fakeAPI{}
	app, _ := newTestApp(api)

	restore := stubInputs(t, []string{"Hope Shelter", "hope@example.com"}, "pw")
	defer restore()

	require.NoError(t, app.Register(context.Background()))
	require.Equal(t, "Hope Shelter", api.LastReq.CharityName)

	snap := app.session.Snapshot()
	require.True(t, snap.Authenticated, "registration is an implicit login")
	require.Equal(t, "charity", snap.User.Role)
}

func TestRegister_EmptyCharityName_RegistersDonor(t *testing.T) {
	api := &fakeAPI{}
	app, _ := newTestApp(api)

	restore := stubInputs(t, []string{"", "Jane", "Doe", "jane@example.com"}, "pw")
	defer restore()

	require.NoError(t, app.Register(context.Background()))
	require.Empty(t, api.LastReq.CharityName)
	require.Equal(t, "Jane", api.LastReq.FirstName)
	require.Equal(t, "donor", app.session.Snapshot().User.Role)
}

func TestLogout_ClearsSession(t *testing.T) {
	api := &fakeAPI{
		LoginToken: "tok-1",
		LoginUser:  &models.User{ID: "u-1", Role: "donor"},
	}
	app, store := newTestApp(api)

	restore := stubInputs(t, []string{"jane@example.com"}, "secret")
	defer restore()
	require.NoError(t, app.Login(context.Background()))

	app.Logout(context.Background())

	require.False(t, app.session.Snapshot().Authenticated)
	_, ok := store.Load(context.Background())
	require.False(t, ok)
}

func TestDashboard_Anonymous_DoesNotRender(t *testing.T) {
	app, _ := newTestApp(&fakeAPI{})
	require.NoError(t, app.Dashboard(context.Background()), "anonymous users get a login hint, not an error")
}

func TestOwnsApprovedCharity(t *testing.T) {
	api := &fakeAPI{
		LoginToken: "tok-1",
		LoginUser:  &models.User{ID: "u-1", Role: "donor"},
		Charities: []models.Charity{
			{ID: "c-1", OwnerID: "u-1", Approved: false},
			{ID: "c-2", OwnerID: "other", Approved: true},
		},
	}
	app, _ := newTestApp(api)

	restore := stubInputs(t, []string{"jane@example.com"}, "secret")
	defer restore()
	require.NoError(t, app.Login(context.Background()))

	require.False(t, app.ownsApprovedCharity(context.Background()), "unapproved or foreign charities do not count")

	api.Charities = append(api.Charities, models.Charity{ID: "c-3", OwnerID: "u-1", Approved: true})
	require.True(t, app.ownsApprovedCharity(context.Background()))
}

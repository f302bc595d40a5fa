package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givehub/givehub/internal/client/models"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	store := NewStore()
	srv := httptest.NewServer(NewRouter(store, testSecret, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, payload any, token string) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func getJSON(t *testing.T, url, token string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	resp, body := postJSON(t, srv.URL+"/api/v1/auth/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLogin_Success(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/v1/auth/login",
		map[string]string{"email": "admin@givehub.local", "password": "admin"}, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin", user["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/v1/auth/login",
		map[string]string{"email": "admin@givehub.local", "password": "nope"}, "")

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestRegister_DonorAndCharityRoles(t *testing.T) {
	srv, _ := newTestServer(t)

	_, body := postJSON(t, srv.URL+"/api/v1/auth/register", map[string]string{
		"firstName": "Ann", "lastName": "Lee",
		"email": "ann@example.com", "password": "pw",
	}, "")
	user := body["user"].(map[string]any)
	assert.Equal(t, "donor", user["role"])
	assert.Equal(t, "Ann Lee", user["name"])

	_, body = postJSON(t, srv.URL+"/api/v1/auth/register", map[string]string{
		"charityName": "Food Bank",
		"email":       "bank@example.com", "password": "pw",
	}, "")
	user = body["user"].(map[string]any)
	assert.Equal(t, "charity", user["role"])
	assert.Equal(t, "Food Bank", user["name"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := map[string]string{"firstName": "A", "lastName": "B", "email": "dup@example.com", "password": "pw"}
	resp, _ := postJSON(t, srv.URL+"/api/v1/auth/register", payload, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := postJSON(t, srv.URL+"/api/v1/auth/register", payload, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestProfile_RequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := getJSON(t, srv.URL+"/api/v1/auth/profile", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = getJSON(t, srv.URL+"/api/v1/auth/profile", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProfile_ReturnsUser(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "admin@givehub.local", "admin")

	resp, body := getJSON(t, srv.URL+"/api/v1/auth/profile", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user := body["user"].(map[string]any)
	assert.Equal(t, "admin@givehub.local", user["email"])
}

func TestCharities_OnlyApprovedListed(t *testing.T) {
	srv, store := newTestServer(t)
	token := login(t, srv, "admin@givehub.local", "admin")

	store.ApplyCharity("someone", models.CharityApplication{Name: "Pending Cause"})

	resp, body := getJSON(t, srv.URL+"/api/v1/charities", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	charities := body["charities"].([]any)
	require.Len(t, charities, 1)
	assert.Equal(t, "Hope Shelter", charities[0].(map[string]any)["name"])
}

func TestDonation_CreateAndHistory(t *testing.T) {
	srv, store := newTestServer(t)
	token := login(t, srv, "admin@givehub.local", "admin")
	charityID := store.Charities()[0].ID

	resp, body := postJSON(t, srv.URL+"/api/v1/donations",
		map[string]any{"charity_id": charityID, "amount": 25.0}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	donation := body["donation"].(map[string]any)
	assert.Equal(t, 25.0, donation["amount"])

	resp, body = getJSON(t, srv.URL+"/api/v1/donations/history", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["donations"].([]any), 1)
}

func TestDonation_UnknownCharity(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "admin@givehub.local", "admin")

	resp, _ := postJSON(t, srv.URL+"/api/v1/donations",
		map[string]any{"charity_id": "missing", "amount": 5.0}, token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminDashboard_RoleGate(t *testing.T) {
	srv, _ := newTestServer(t)

	charityToken := login(t, srv, "hope@givehub.local", "hope")
	resp, _ := getJSON(t, srv.URL+"/api/v1/admin/dashboard", charityToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := login(t, srv, "admin@givehub.local", "admin")
	resp, body := getJSON(t, srv.URL+"/api/v1/admin/dashboard", adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := body["stats"].(map[string]any)
	assert.Equal(t, 2.0, stats["total_users"])
}

func TestApplyCharity_OwnedByApplicant(t *testing.T) {
	srv, store := newTestServer(t)
	token := login(t, srv, "hope@givehub.local", "hope")

	resp, body := postJSON(t, srv.URL+"/api/v1/charities/apply",
		map[string]string{"name": "Second Cause", "description": "More help."}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	charity := body["charity"].(map[string]any)
	assert.Equal(t, false, charity["approved"])

	owner, err := store.UserByID(charity["owner_id"].(string))
	require.NoError(t, err)
	assert.Equal(t, "hope@givehub.local", owner.Email)
}

func TestHealth_NoAuthRequired(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := getJSON(t, srv.URL+"/api/v1/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

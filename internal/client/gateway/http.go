package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/givehub/givehub/internal/client/models"
	"github.com/givehub/givehub/internal/logging"
)

// HTTPClient implements Client over the platform's HTTP/JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     logging.Logger
}

// Options configures the HTTP gateway. BaseURL and Tokens are required.
type Options struct {
	BaseURL        string
	Tokens         TokenSource
	HTTPClient     *http.Client
	Logger         logging.Logger
	RequestTimeout time.Duration
}

func NewHTTPClient(opts Options) *HTTPClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     opts.Tokens,
		logger:     logger,
	}
}

// envelope is the common part of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (e envelope) message(fallback string) string {
	if e.Error != "" {
		return e.Error
	}
	return fallback
}

// doJSON performs one request/response cycle. The token is read from the
// TokenSource on every authed call, never cached, so a logout elsewhere in
// the app is reflected on the very next request. out must be a pointer to
// the operation's response struct (which embeds the success envelope).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload, out any, authed bool) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		if sess, ok := c.tokens.Load(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", ErrUnavailable)
	}

	var env envelope
	_ = json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", env.message("authentication required"), ErrUnauthorized)
	case resp.StatusCode >= 300:
		return errors.New(env.message(fmt.Sprintf("request failed with status %d", resp.StatusCode)))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", ErrBadResponse)
	}
	if !env.Success {
		return errors.New(env.message("request failed"))
	}
	return nil
}

type authResponse struct {
	envelope
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	payload := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", payload, &resp, false); err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, fmt.Errorf("login: %w", ErrBadResponse)
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error) {
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &resp, false); err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, fmt.Errorf("register: %w", ErrBadResponse)
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.User, error) {
	var resp struct {
		envelope
		User *models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/auth/profile", nil, &resp, true); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("profile: %w", ErrBadResponse)
	}
	return resp.User, nil
}

func (c *HTTPClient) GetCharities(ctx context.Context) ([]models.Charity, error) {
	var resp struct {
		envelope
		Charities []models.Charity `json:"charities"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/charities", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Charities, nil
}

func (c *HTTPClient) GetCharity(ctx context.Context, id string) (*models.Charity, error) {
	var resp struct {
		envelope
		Charity *models.Charity `json:"charity"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/charities/"+id, nil, &resp, true); err != nil {
		return nil, err
	}
	if resp.Charity == nil {
		return nil, fmt.Errorf("charity %s: %w", id, ErrBadResponse)
	}
	return resp.Charity, nil
}

func (c *HTTPClient) ApplyCharity(ctx context.Context, app models.CharityApplication) (*models.Charity, error) {
	var resp struct {
		envelope
		Charity *models.Charity `json:"charity"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/charities/apply", app, &resp, true); err != nil {
		return nil, err
	}
	return resp.Charity, nil
}

func (c *HTTPClient) CreateDonation(ctx context.Context, req models.DonationRequest) (*models.Donation, error) {
	var resp struct {
		envelope
		Donation *models.Donation `json:"donation"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/donations", req, &resp, true); err != nil {
		return nil, err
	}
	if resp.Donation == nil {
		return nil, fmt.Errorf("donation: %w", ErrBadResponse)
	}
	return resp.Donation, nil
}

func (c *HTTPClient) GetDonationHistory(ctx context.Context) ([]models.Donation, error) {
	var resp struct {
		envelope
		Donations []models.Donation `json:"donations"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/donations/history", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Donations, nil
}

func (c *HTTPClient) GetStories(ctx context.Context) ([]models.Story, error) {
	var resp struct {
		envelope
		Stories []models.Story `json:"stories"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/stories", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Stories, nil
}

func (c *HTTPClient) GetAdminDashboard(ctx context.Context) (*models.DashboardStats, error) {
	var resp struct {
		envelope
		Stats *models.DashboardStats `json:"stats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/dashboard", nil, &resp, true); err != nil {
		return nil, err
	}
	if resp.Stats == nil {
		return nil, fmt.Errorf("dashboard: %w", ErrBadResponse)
	}
	return resp.Stats, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	var resp envelope
	return c.doJSON(ctx, http.MethodGet, "/health", nil, &resp, false)
}

package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/givehub/givehub/internal/client/models"
)

// tokenTTL keeps dev tokens valid long enough that an interactive
// session never expires mid-demo.
const tokenTTL = 24 * time.Hour

type Handlers struct {
	store  *Store
	secret []byte
}

func NewHandlers(store *Store, secret []byte) *Handlers {
	return &Handlers{store: store, secret: secret}
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	body["success"] = status < 300
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.Authenticate(creds.Email, creds.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, errInvalidCreds.Error())
		return
	}

	h.issue(w, user)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.Register(req)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.issue(w, user)
}

// issue signs a token for the user and writes the auth envelope.
func (h *Handlers) issue(w http.ResponseWriter, user *models.User) {
	token, err := GenerateToken(user.ID, user.Role, h.secret, tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	user, err := h.store.UserByID(claims.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handlers) ListCharities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"charities": h.store.Charities()})
}

func (h *Handlers) GetCharity(w http.ResponseWriter, r *http.Request) {
	charity, err := h.store.CharityByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "charity not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"charity": charity})
}

func (h *Handlers) ApplyCharity(w http.ResponseWriter, r *http.Request) {
	var app models.CharityApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if app.Name == "" {
		writeError(w, http.StatusBadRequest, "charity name is required")
		return
	}

	claims := claimsFromContext(r.Context())
	charity := h.store.ApplyCharity(claims.UserID, app)
	writeJSON(w, http.StatusOK, map[string]any{"charity": charity})
}

func (h *Handlers) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req models.DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	donation, err := h.store.AddDonation(req)
	if err != nil {
		writeError(w, http.StatusNotFound, "charity not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"donation": donation})
}

func (h *Handlers) DonationHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"donations": h.store.Donations()})
}

func (h *Handlers) ListStories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"stories": h.store.Stories()})
}

func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats := h.store.Stats()
	writeJSON(w, http.StatusOK, map[string]any{"stats": &stats})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

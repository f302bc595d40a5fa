// Package devserver is a local stand-in for the GiveHub platform API,
// used to exercise the client without a deployed backend. State lives in
// memory and resets on restart; tokens are real HS256 JWTs so the client's
// bearer handling is tested end to end.
package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/givehub/givehub/internal/client/models"
)

var (
	errEmailTaken   = errors.New("User with that email already exists")
	errInvalidCreds = errors.New("Invalid credentials")
	errNotFound     = errors.New("not found")
)

type account struct {
	user     models.User
	password string
}

// Store is the in-memory backing state of the dev server.
type Store struct {
	mu        sync.Mutex
	accounts  map[string]*account // keyed by email
	charities []models.Charity
	donations []models.Donation
	stories   []models.Story
}

// NewStore seeds an administrator, one approved charity, and a story so
// a freshly started server has something to render.
func NewStore() *Store {
	s := &Store{accounts: make(map[string]*account)}

	admin := models.User{ID: uuid.NewString(), Name: "Administrator", Email: "admin@givehub.local", Role: "admin"}
	s.accounts[admin.Email] = &account{user: admin, password: "admin"}

	owner := models.User{ID: uuid.NewString(), Name: "Hope Shelter", Email: "hope@givehub.local", Role: "charity"}
	s.accounts[owner.Email] = &account{user: owner, password: "hope"}

	s.charities = append(s.charities, models.Charity{
		ID:          uuid.NewString(),
		Name:        "Hope Shelter",
		Description: "Emergency housing and meals.",
		Approved:    true,
		OwnerID:     owner.ID,
	})
	s.stories = append(s.stories, models.Story{
		ID:        uuid.NewString(),
		CharityID: s.charities[0].ID,
		Title:     "A warm winter",
		Body:      "Eighty families housed through the cold season.",
		CreatedAt: time.Now(),
	})
	return s
}

func (s *Store) Authenticate(email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[email]
	if !ok || acc.password != password {
		return nil, errInvalidCreds
	}
	u := acc.user
	return &u, nil
}

func (s *Store) Register(req models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		return nil, errEmailTaken
	}

	now := time.Now()
	user := models.User{ID: uuid.NewString(), Email: req.Email, CreatedAt: &now}
	if req.CharityName != "" {
		user.Role = "charity"
		user.Name = req.CharityName
	} else {
		user.Role = "donor"
		user.Name = req.FirstName + " " + req.LastName
	}

	s.accounts[req.Email] = &account{user: user, password: req.Password}
	return &user, nil
}

func (s *Store) UserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			u := acc.user
			return &u, nil
		}
	}
	return nil, errNotFound
}

func (s *Store) Charities() []models.Charity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Charity, 0, len(s.charities))
	for _, c := range s.charities {
		if c.Approved {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) CharityByID(id string) (*models.Charity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.charities {
		if c.ID == id {
			charity := c
			return &charity, nil
		}
	}
	return nil, errNotFound
}

// ApplyCharity records an unapproved charity owned by the applicant.
func (s *Store) ApplyCharity(ownerID string, app models.CharityApplication) models.Charity {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := models.Charity{
		ID:          uuid.NewString(),
		Name:        app.Name,
		Description: app.Description,
		Approved:    false,
		OwnerID:     ownerID,
	}
	s.charities = append(s.charities, c)
	return c
}

func (s *Store) AddDonation(req models.DonationRequest) (models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, c := range s.charities {
		if c.ID == req.CharityID {
			found = true
			break
		}
	}
	if !found {
		return models.Donation{}, errNotFound
	}

	d := models.Donation{
		ID:        uuid.NewString(),
		CharityID: req.CharityID,
		Amount:    req.Amount,
		Anonymous: req.Anonymous,
		CreatedAt: time.Now(),
	}
	s.donations = append(s.donations, d)
	return d, nil
}

func (s *Store) Donations() []models.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Donation(nil), s.donations...)
}

func (s *Store) Stories() []models.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Story(nil), s.stories...)
}

func (s *Store) Stats() models.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, d := range s.donations {
		total += d.Amount
	}
	return models.DashboardStats{
		TotalUsers:      len(s.accounts),
		TotalCharities:  len(s.charities),
		TotalDonations:  len(s.donations),
		DonationsAmount: total,
	}
}

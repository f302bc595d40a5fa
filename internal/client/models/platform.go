package models

import "time"

// Charity is a cause that can receive donations. Only approved charities
// are listed publicly; OwnerID links back to the charity-role user that
// manages it.
type Charity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Approved    bool   `json:"approved"`
	OwnerID     string `json:"owner_id"`
}

// CharityApplication is submitted by a user asking to register a charity.
type CharityApplication struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Email       string `json:"email"`
}

// Donation is a completed contribution to a charity.
type Donation struct {
	ID        string    `json:"id"`
	CharityID string    `json:"charity_id"`
	Amount    float64   `json:"amount"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
}

// DonationRequest is the client's payload for creating a donation.
// Reference is a client-generated idempotency key.
type DonationRequest struct {
	CharityID string  `json:"charity_id"`
	Amount    float64 `json:"amount"`
	Anonymous bool    `json:"anonymous"`
	Reference string  `json:"reference"`
}

// Story is a beneficiary story published by a charity.
type Story struct {
	ID        string    `json:"id"`
	CharityID string    `json:"charity_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStats is the aggregate view returned to administrators.
type DashboardStats struct {
	TotalUsers      int     `json:"total_users"`
	TotalCharities  int     `json:"total_charities"`
	TotalDonations  int     `json:"total_donations"`
	DonationsAmount float64 `json:"donations_amount"`
}

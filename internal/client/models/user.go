// Package models defines the client-side data types exchanged with the
// GiveHub API: the authenticated user, the persisted session, and the
// platform records the views render (charities, donations, stories).
package models

import "time"

// User is an authenticated principal as reported by the identity API.
// Role is one of the values defined in the routing package; the client
// never mutates individual fields, it replaces the whole record.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Session is the client's belief about the current principal: an opaque
// bearer token and the user record it authenticates. User may be stale
// relative to the backend but is never present without a token.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// RegisterRequest is the registration payload. A non-empty CharityName
// registers a charity account; otherwise FirstName/LastName register a
// donor. Field names follow the API's camelCase convention.
type RegisterRequest struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	CharityName string `json:"charityName,omitempty"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

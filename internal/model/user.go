package model

import "time"

// Roles assignable to a user account. New accounts always start as
// RoleUser; promotion to admin happens out-of-band (seed or SQL), there is
// no API route for it.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a storefront account as stored in the `users` table.
// The password hash never leaves the server: it carries `json:"-"` so no
// response can include it by accident.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is the owner block embedded in order listings. It exposes
// only the fields a back-office operator needs to identify the buyer.
type UserSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

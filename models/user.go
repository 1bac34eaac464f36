package models

import "time"

// User roles.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User represents a platform account. Profile fields (role, lang) live on
// the same document and are written together with the account at
// registration time.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	FirstName    string    `bson:"first_name" json:"firstName,omitempty"`
	LastName     string    `bson:"last_name" json:"lastName,omitempty"`
	Role         string    `bson:"role" json:"role"`
	Lang         string    `bson:"lang" json:"lang"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Role            string `json:"role"`
	InviteCode      string `json:"inviteCode"`
}

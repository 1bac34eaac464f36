package user

import "urbania/models"

// AuthResponse carries the registered or authenticated user together with
// its token pair.
type AuthResponse struct {
	User    models.User `json:"user"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

// UserService defines account operations.
type UserService interface {
	Register(req models.RegisterRequest, ip string) (*AuthResponse, error)
	Login(username, password, ip string) (*AuthResponse, error)
	Refresh(refreshToken string) (*AuthResponse, error)
	ListUsers(role string) ([]models.User, error)
}

package user

import (
	"fmt"

	"urbania/models"
	"urbania/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies credentials, issues a fresh token pair, and records the
// login in the activity log.
func (s *DefaultUserService) Login(username, password, ip string) (*AuthResponse, error) {
	if username == "" || password == "" {
		return nil, &ValidationError{Field: "username", Message: "Identifiant et mot de passe requis."}
	}

	usr, err := s.Repo.GetByUsername(username)
	if err != nil {
		utils.GetLogger().Error("Failed to look up user", zap.Error(err))
		return nil, fmt.Errorf("login failed, please try again")
	}
	if usr == nil {
		// The login field accepts the email address as well.
		usr, err = s.Repo.GetByEmail(username)
		if err != nil {
			utils.GetLogger().Error("Failed to look up user", zap.Error(err))
			return nil, fmt.Errorf("login failed, please try again")
		}
	}
	if usr == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(usr)
	if err != nil {
		return nil, err
	}

	s.logActivity(usr, models.ActivityAdminLogin,
		fmt.Sprintf("Connexion réussie: %s", usr.Username), ip)

	return &AuthResponse{User: *usr, Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token and rotates the token pair. The stored
// access token hash is replaced, revoking the previous access token.
func (s *DefaultUserService) Refresh(refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, &ValidationError{Field: "refresh", Message: "Jeton de rafraîchissement requis."}
	}

	userID, err := utils.ExtractIDFromToken(refreshToken, "refresh")
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to look up user for refresh", zap.Error(err))
		return nil, fmt.Errorf("token refresh failed, please try again")
	}
	if usr == nil {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(usr)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: *usr, Access: access, Refresh: refresh}, nil
}

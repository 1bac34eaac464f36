package user

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"urbania/config"
	activityRepo "urbania/database/repository/activity"
	notificationRepo "urbania/database/repository/notification"
	userRepo "urbania/database/repository/user"
	"urbania/models"
	"urbania/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultUserService implements UserService on the Mongo repositories.
type DefaultUserService struct {
	Repo          userRepo.UserRepository
	Activity      activityRepo.ActivityRepository
	Notifications notificationRepo.NotificationRepository
	// AuthCache is optional; a nil client skips cache maintenance.
	AuthCache *redis.Client
}

// Register creates a user with its profile fields in one insert, issues a
// token pair, and records the registration side effects.
func (s *DefaultUserService) Register(req models.RegisterRequest, ip string) (*AuthResponse, error) {
	if req.Email == "" {
		return nil, &ValidationError{Field: "email", Message: "L'adresse email est requise."}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password", Message: "Le mot de passe est requis."}
	}
	if req.Password != req.ConfirmPassword {
		return nil, &ValidationError{Field: "confirmPassword", Message: "Les mots de passe ne correspondent pas."}
	}

	// Username defaults to the email address.
	username := req.Username
	if username == "" {
		username = req.Email
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	if role != models.RoleClient && role != models.RoleAdmin {
		return nil, &ValidationError{Field: "role", Message: "Rôle invalide."}
	}
	if role == models.RoleAdmin {
		if err := checkInviteCode(req.InviteCode); err != nil {
			return nil, err
		}
	}

	if existing, err := s.Repo.GetByEmail(req.Email); err != nil {
		utils.GetLogger().Error("Failed to check for existing email", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	} else if existing != nil {
		return nil, &ValidationError{Field: "email", Message: "Cette adresse email est déjà associée à un compte."}
	}
	if existing, err := s.Repo.GetByUsername(username); err != nil {
		utils.GetLogger().Error("Failed to check for existing username", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	} else if existing != nil {
		return nil, &ValidationError{Field: "username", Message: "Ce nom d'utilisateur est déjà utilisé."}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	usr := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Lang:         "fr",
	}

	if err := s.Repo.Create(&usr); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	access, refresh, err := s.issueTokens(&usr)
	if err != nil {
		return nil, err
	}

	s.logActivity(&usr, models.ActivitySessionCreated,
		fmt.Sprintf("Nouvel utilisateur inscrit: %s", usr.Email), ip)
	s.notifyRegistration(&usr)

	return &AuthResponse{User: usr, Access: access, Refresh: refresh}, nil
}

// checkInviteCode validates the admin invite code against the configured
// secret using a constant-time comparison. An empty configured code disables
// admin self-registration entirely.
func checkInviteCode(code string) error {
	configured := config.AppConfig.AdminInviteCode
	if configured == "" {
		return &ValidationError{Field: "inviteCode", Message: "L'inscription administrateur est désactivée."}
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(configured)) != 1 {
		return &ValidationError{Field: "inviteCode", Message: "Code d'invitation administrateur invalide."}
	}
	return nil
}

// issueTokens generates a token pair and stores the access token hash on the
// user record, refreshing the auth cache entry.
func (s *DefaultUserService) issueTokens(usr *models.User) (string, string, error) {
	access, refresh, err := utils.GenerateTokenPair(usr.ID, usr.Email)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth tokens", zap.Error(err))
		return "", "", fmt.Errorf("authentication failed, please try again")
	}

	hash := utils.HashToken(access)
	if err := s.Repo.UpdateTokenHash(usr.ID, hash); err != nil {
		utils.GetLogger().Error("Failed to store token hash", zap.Error(err))
		return "", "", fmt.Errorf("authentication failed, please try again")
	}

	if s.AuthCache != nil {
		cacheKey := utils.AuthCachePrefix + usr.ID
		if err := s.AuthCache.Set(context.Background(), cacheKey, hash, time.Hour).Err(); err != nil {
			utils.GetLogger().Warn("Failed to refresh auth cache", zap.Error(err))
		}
	}
	return access, refresh, nil
}

func (s *DefaultUserService) logActivity(usr *models.User, activityType, details, ip string) {
	if s.Activity == nil {
		return
	}
	entry := &models.ActivityLog{
		ID:           uuid.New().String(),
		UserID:       usr.ID,
		Username:     usr.Username,
		Email:        usr.Email,
		ActivityType: activityType,
		Details:      details,
		IPAddress:    ip,
	}
	if err := s.Activity.Insert(entry); err != nil {
		utils.GetLogger().Warn("Failed to record activity", zap.Error(err))
	}
}

func (s *DefaultUserService) notifyRegistration(usr *models.User) {
	if s.Notifications == nil {
		return
	}
	var n models.AdminNotification
	switch usr.Role {
	case models.RoleAdmin:
		n = models.AdminNotification{
			ID:               uuid.New().String(),
			Title:            "Nouvel Administrateur",
			Message:          fmt.Sprintf("L'administrateur %s a été ajouté au système.", usr.Email),
			NotificationType: models.NotificationNewAdmin,
		}
	default:
		n = models.AdminNotification{
			ID:               uuid.New().String(),
			Title:            "Nouveau Client",
			Message:          fmt.Sprintf("L'utilisateur %s vient de s'inscrire.", usr.Email),
			NotificationType: models.NotificationNewUser,
		}
	}
	if err := s.Notifications.Insert(&n); err != nil {
		utils.GetLogger().Warn("Failed to record admin notification", zap.Error(err))
	}
}

// ListUsers returns users for the admin dashboard, optionally filtered by role.
func (s *DefaultUserService) ListUsers(role string) ([]models.User, error) {
	users, err := s.Repo.ListByRole(role)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

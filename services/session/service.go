package session

import (
	"fmt"

	activityRepo "urbania/database/repository/activity"
	notificationRepo "urbania/database/repository/notification"
	sessionRepo "urbania/database/repository/session"
	userRepo "urbania/database/repository/user"
	"urbania/models"
	"urbania/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService manages the per-user autosaved draft session.
type SessionService interface {
	// Get returns the user's draft, creating an empty one on first access.
	Get(userID string) (*models.DraftSession, error)
	// Save applies an autosave update; absent fields keep stored values.
	Save(userID string, update models.SessionUpdate) (*models.DraftSession, error)
	// ListAll returns every session for the admin dashboard.
	ListAll() ([]models.DraftSession, error)
}

type DefaultSessionService struct {
	Sessions      sessionRepo.SessionRepository
	Users         userRepo.UserRepository
	Activity      activityRepo.ActivityRepository
	Notifications notificationRepo.NotificationRepository
}

func (s *DefaultSessionService) Get(userID string) (*models.DraftSession, error) {
	usr, err := s.lookupUser(userID)
	if err != nil {
		return nil, err
	}

	sess, created, err := s.Sessions.GetOrCreate(usr.ID, usr.Username, usr.Email)
	if err != nil {
		return nil, err
	}
	if created {
		s.recordCreation(usr)
	}
	return sess, nil
}

func (s *DefaultSessionService) Save(userID string, update models.SessionUpdate) (*models.DraftSession, error) {
	usr, err := s.lookupUser(userID)
	if err != nil {
		return nil, err
	}

	sess, created, err := s.Sessions.Save(usr.ID, usr.Username, usr.Email, update)
	if err != nil {
		return nil, err
	}
	if created {
		s.recordCreation(usr)
	}
	return sess, nil
}

func (s *DefaultSessionService) ListAll() ([]models.DraftSession, error) {
	return s.Sessions.ListAll()
}

func (s *DefaultSessionService) lookupUser(userID string) (*models.User, error) {
	usr, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if usr == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return usr, nil
}

// recordCreation logs the start of a declaration; the repository reports at
// most one insert per user, so the feed sees one entry per session.
func (s *DefaultSessionService) recordCreation(usr *models.User) {
	if s.Activity != nil {
		entry := &models.ActivityLog{
			ID:           uuid.New().String(),
			UserID:       usr.ID,
			Username:     usr.Username,
			Email:        usr.Email,
			ActivityType: models.ActivitySessionCreated,
			Details:      fmt.Sprintf("Nouvelle session de déclaration pour %s", usr.Email),
		}
		if err := s.Activity.Insert(entry); err != nil {
			utils.GetLogger().Warn("Failed to record session activity", zap.Error(err))
		}
	}
	if s.Notifications != nil {
		n := &models.AdminNotification{
			ID:               uuid.New().String(),
			Title:            "Nouvelle Session",
			Message:          fmt.Sprintf("L'utilisateur %s a démarré une déclaration.", usr.Email),
			NotificationType: models.NotificationNewSession,
		}
		if err := s.Notifications.Insert(n); err != nil {
			utils.GetLogger().Warn("Failed to record admin notification", zap.Error(err))
		}
	}
}

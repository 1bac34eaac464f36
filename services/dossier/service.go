package dossier

import (
	"context"
	"errors"
	"fmt"
	"io"

	activityRepo "urbania/database/repository/activity"
	dossierRepo "urbania/database/repository/dossier"
	notificationRepo "urbania/database/repository/notification"
	userRepo "urbania/database/repository/user"
	"urbania/models"
	"urbania/services/storage"
	"urbania/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUploadsDisabled is returned when no storage backend is configured.
var ErrUploadsDisabled = errors.New("document uploads are not configured")

// DossierService manages finalized declaration packages.
type DossierService interface {
	// Create freezes the form data into a dossier and resets the owner's
	// draft session atomically.
	Create(userID string, data models.FormData, status string) (*models.Dossier, error)
	Get(userID, id string) (*models.Dossier, error)
	ListByUser(userID string) ([]models.Dossier, error)
	ListAll() ([]models.Dossier, error)
	// AttachPDF uploads the generated CERFA document and stores its URL on
	// the dossier.
	AttachPDF(ctx context.Context, userID, id string, file io.Reader) (string, error)
}

type DefaultDossierService struct {
	Dossiers      dossierRepo.DossierRepository
	Users         userRepo.UserRepository
	Activity      activityRepo.ActivityRepository
	Notifications notificationRepo.NotificationRepository
	// Storage is optional; nil disables PDF uploads.
	Storage storage.StorageService
}

func (s *DefaultDossierService) Create(userID string, data models.FormData, status string) (*models.Dossier, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("dossier data is required")
	}
	if status == "" {
		status = models.DossierStatusCompleted
	}
	switch status {
	case models.DossierStatusDraft, models.DossierStatusCompleted, models.DossierStatusAbandoned:
	default:
		return nil, fmt.Errorf("invalid dossier status %q", status)
	}

	d := &models.Dossier{
		ID:     uuid.New().String(),
		UserID: userID,
		Data:   data,
		Status: status,
	}
	if err := s.Dossiers.CreateAndClearDraft(d); err != nil {
		return nil, err
	}

	s.recordCreation(d)
	return d, nil
}

func (s *DefaultDossierService) Get(userID, id string) (*models.Dossier, error) {
	return s.Dossiers.GetByID(userID, id)
}

func (s *DefaultDossierService) ListByUser(userID string) ([]models.Dossier, error) {
	return s.Dossiers.ListByUser(userID)
}

func (s *DefaultDossierService) ListAll() ([]models.Dossier, error) {
	return s.Dossiers.ListAll()
}

func (s *DefaultDossierService) AttachPDF(ctx context.Context, userID, id string, file io.Reader) (string, error) {
	if s.Storage == nil {
		return "", ErrUploadsDisabled
	}

	d, err := s.Dossiers.GetByID(userID, id)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", nil
	}

	url, err := s.Storage.Upload(ctx, file, "dossiers", d.ID)
	if err != nil {
		return "", err
	}
	if err := s.Dossiers.SetPDFURL(userID, id, url); err != nil {
		return "", err
	}

	if s.Notifications != nil {
		n := &models.AdminNotification{
			ID:               uuid.New().String(),
			Title:            "PDF Généré",
			Message:          fmt.Sprintf("Le document CERFA du dossier %s a été généré.", d.ID),
			NotificationType: models.NotificationPDFGenerated,
		}
		if err := s.Notifications.Insert(n); err != nil {
			utils.GetLogger().Warn("Failed to record admin notification", zap.Error(err))
		}
	}
	return url, nil
}

func (s *DefaultDossierService) recordCreation(d *models.Dossier) {
	usr, err := s.Users.GetByID(d.UserID)
	if err != nil || usr == nil {
		utils.GetLogger().Warn("Failed to load dossier owner for audit trail",
			zap.String("user_id", d.UserID), zap.Error(err))
		return
	}

	if s.Activity != nil {
		entry := &models.ActivityLog{
			ID:           uuid.New().String(),
			UserID:       usr.ID,
			Username:     usr.Username,
			Email:        usr.Email,
			ActivityType: models.ActivitySessionCompleted,
			Details:      fmt.Sprintf("Dossier %s créé par %s", d.ID, usr.Email),
		}
		if err := s.Activity.Insert(entry); err != nil {
			utils.GetLogger().Warn("Failed to record dossier activity", zap.Error(err))
		}
	}
}

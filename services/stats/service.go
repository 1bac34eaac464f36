package stats

import (
	"fmt"
	"time"

	dossierRepo "urbania/database/repository/dossier"
	sessionRepo "urbania/database/repository/session"
	"urbania/models"
)

// StatsService exposes the admin dashboard aggregation.
type StatsService interface {
	GetStats() (*models.AdminStats, error)
}

type DefaultStatsService struct {
	Dossiers dossierRepo.DossierRepository
	Sessions sessionRepo.SessionRepository
}

func (s *DefaultStatsService) GetStats() (*models.AdminStats, error) {
	dossiers, err := s.Dossiers.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list dossiers: %w", err)
	}
	drafts, err := s.Sessions.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	return Compute(dossiers, drafts, time.Now()), nil
}

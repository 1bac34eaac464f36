package dossierRepo

import "urbania/models"

// DossierRepository defines persistence operations for submitted dossiers.
// Dossier documents are never edited in place by normal flow; only status
// and pdf_url may be updated after creation.
type DossierRepository interface {
	// CreateAndClearDraft inserts the dossier and resets the owner's
	// draft session in a single transaction.
	CreateAndClearDraft(d *models.Dossier) error
	GetByID(userID, id string) (*models.Dossier, error)
	ListByUser(userID string) ([]models.Dossier, error)
	ListAll() ([]models.Dossier, error)
	SetPDFURL(userID, id, pdfURL string) error
}

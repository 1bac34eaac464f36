package models

import "time"

// Dossier statuses.
const (
	DossierStatusDraft     = "draft"
	DossierStatusCompleted = "completed"
	DossierStatusAbandoned = "abandoned"
)

// Dossier is a finalized, submitted declaration package. The form document
// is frozen at submission time; only status and pdf_url may change later.
type Dossier struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"-"`
	Data      FormData  `bson:"data" json:"data"`
	Status    string    `bson:"status" json:"status"`
	PDFURL    string    `bson:"pdf_url,omitempty" json:"pdfUrl,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

package sessionRepo

import "urbania/models"

// SessionRepository defines persistence operations for draft sessions.
// The store enforces the one-session-per-user invariant with a unique index,
// so concurrent first-time accesses converge on a single row.
type SessionRepository interface {
	// GetOrCreate returns the user's session, creating an empty one on
	// first access. The flag reports whether a row was actually inserted.
	GetOrCreate(userID, username, email string) (*models.DraftSession, bool, error)
	// Save upserts the user's session with an autosave update; absent
	// fields keep stored values. The flag reports an insert.
	Save(userID, username, email string, update models.SessionUpdate) (*models.DraftSession, bool, error)
	// ListAll returns every session, newest-updated first.
	ListAll() ([]models.DraftSession, error)
	// ListActive returns sessions whose data document is non-empty.
	ListActive() ([]models.DraftSession, error)
}

package activityRepo

import "urbania/models"

// ActivityRepository defines persistence operations for the append-only
// activity log. Entries are never mutated or deleted.
type ActivityRepository interface {
	Insert(entry *models.ActivityLog) error
	ListRecent(limit int) ([]models.ActivityLog, error)
}

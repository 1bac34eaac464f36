package notificationRepo

import "urbania/models"

// NotificationRepository defines persistence operations for the admin
// notification feed.
type NotificationRepository interface {
	Insert(n *models.AdminNotification) error
	ListRecent(limit int) ([]models.AdminNotification, error)
	// MarkAllRead flags every unread notification as read and returns the
	// number of notifications updated.
	MarkAllRead() (int64, error)
}

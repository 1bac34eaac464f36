package models

import "time"

// Notification types.
const (
	NotificationNewUser      = "new_user"
	NotificationNewAdmin     = "new_admin"
	NotificationNewSession   = "new_session"
	NotificationPDFGenerated = "pdf_generated"
)

// AdminNotification is a system-created entry in the admin feed. Entries are
// append-only; the only mutation is the bulk mark-as-read flag.
type AdminNotification struct {
	ID               string    `bson:"id" json:"id"`
	Title            string    `bson:"title" json:"title"`
	Message          string    `bson:"message" json:"message"`
	NotificationType string    `bson:"notification_type" json:"notificationType"`
	IsRead           bool      `bson:"is_read" json:"isRead"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}

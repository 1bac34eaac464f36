package models

import "time"

// Activity types recorded by the platform.
const (
	ActivitySessionCreated   = "session_created"
	ActivitySessionCompleted = "session_completed"
	ActivityAdminLogin       = "admin_login"
)

// ActivityLog is an append-only record of a significant user or admin
// action. Entries are never mutated or deleted and are read newest-first.
type ActivityLog struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id,omitempty" json:"-"`
	Username     string    `bson:"username,omitempty" json:"username,omitempty"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	ActivityType string    `bson:"activity_type" json:"activityType"`
	Details      string    `bson:"details,omitempty" json:"details,omitempty"`
	IPAddress    string    `bson:"ip_address,omitempty" json:"ipAddress,omitempty"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
}

package models

import "time"

// FormData is the open-ended key/value document assembled by the multi-step
// CERFA form. Field names are owned by the form (typeDeclarant,
// natureTravaux, ...), the backend stores them as-is.
type FormData map[string]interface{}

// DraftSession is a user's in-progress, autosaved form state. There is at
// most one per user; the store enforces this with a unique index on user_id.
type DraftSession struct {
	UserID      string    `bson:"user_id" json:"-"`
	Username    string    `bson:"username" json:"username,omitempty"`
	UserEmail   string    `bson:"user_email" json:"userEmail,omitempty"`
	Data        FormData  `bson:"data" json:"data"`
	CurrentStep int       `bson:"current_step" json:"currentStep"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// SessionUpdate is the autosave payload. Pointer fields distinguish "absent"
// from zero values so a partial update keeps the stored state.
type SessionUpdate struct {
	Data        *FormData `json:"data"`
	CurrentStep *int      `json:"currentStep"`
}

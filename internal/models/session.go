package models

import "time"

// Session is the server-side state behind a session cookie.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Role      Role      `json:"role" gorm:"size:50;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{}, &Department{}, &Doctor{}, &Patient{},
		&Appointment{}, &Treatment{}, &Availability{}, &Session{},
	}
}

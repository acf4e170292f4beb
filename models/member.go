package models

import (
	"time"
)

// Member represents a community member. Membership onboarding owns these rows;
// the wallet only ever reads them.
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session maps an opaque session token to a member. Rows are written by the
// authentication subsystem; the wallet resolves tokens against them.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	MemberID  uint      `gorm:"not null" json:"member_id"`
	Member    Member    `json:"-" gorm:"foreignKey:MemberID"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

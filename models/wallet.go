package models

import (
	"time"
)

// Wallet holds a member's point balance. One row per member, created lazily on
// first access and never deleted. The balance is only ever changed through
// conditional updates so it cannot go negative.
type Wallet struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MemberID      uint      `json:"member_id" gorm:"uniqueIndex;not null"`
	PointsBalance int       `json:"points_balance" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Redemption records a finalized point spend. Append-only: rows are never
// updated or deleted, and the (member, item) unique index is the idempotency
// guard for duplicate redemption attempts.
type Redemption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `json:"member_id" gorm:"not null;uniqueIndex:idx_redemption_member_item,priority:1"`
	ItemID      string    `json:"item_id" gorm:"not null;uniqueIndex:idx_redemption_member_item,priority:2"`
	PointsSpent int       `json:"points_spent" gorm:"not null"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}

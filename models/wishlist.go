package models

import (
	"time"
)

// WishlistEntry is a soft reservation: while the row exists, the item's cost
// is held against the member's balance. The (member, item) unique index keeps
// a double-tap from escrowing the same item twice.
type WishlistEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MemberID  uint      `json:"member_id" gorm:"not null;uniqueIndex:idx_wishlist_member_item,priority:1"`
	ItemID    string    `json:"item_id" gorm:"not null;uniqueIndex:idx_wishlist_member_item,priority:2"`
	CreatedAt time.Time `json:"created_at"`
}

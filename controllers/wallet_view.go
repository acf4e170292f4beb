package controllers

import (
	"time"

	"github.com/tee-elite/circle-wallet/models"
	"gorm.io/gorm"
)

// ItemView merges catalog data with the member's own wallet state so the
// client can render the marketplace in one round trip.
type ItemView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	// Older clients read description instead of tagline
	Description  string  `json:"description"`
	Points       int     `json:"points"`
	Cap          *int    `json:"cap"`
	AvailableNow bool    `json:"available_now"`
	URL          *string `json:"url"`

	RedeemedCount int  `json:"redeemed_count"`
	SlotsLeft     *int `json:"slots_left"`

	IsWishlisted bool       `json:"is_wishlisted"`
	IsRedeemed   bool       `json:"is_redeemed"`
	RedeemedAt   *time.Time `json:"redeemed_at"`

	Available bool `json:"available"`
}

// memberWalletState is everything the views need about one member.
type memberWalletState struct {
	wishlist   []string
	redeemedAt map[string]time.Time
	capacity   map[string]int
}

func loadMemberWalletState(db *gorm.DB, memberID uint) (*memberWalletState, error) {
	state := &memberWalletState{
		wishlist:   []string{},
		redeemedAt: map[string]time.Time{},
		capacity:   map[string]int{},
	}

	var entries []models.WishlistEntry
	if err := db.Where("member_id = ?", memberID).Find(&entries).Error; err != nil {
		return nil, err
	}
	for _, entry := range entries {
		state.wishlist = append(state.wishlist, entry.ItemID)
	}

	var redemptions []models.Redemption
	if err := db.Where("member_id = ?", memberID).Find(&redemptions).Error; err != nil {
		return nil, err
	}
	for _, redemption := range redemptions {
		state.redeemedAt[redemption.ItemID] = redemption.RedeemedAt
	}

	// System-wide redemption counts drive the capacity display for everyone.
	var counts []struct {
		ItemID   string
		Redeemed int
	}
	err := db.Model(&models.Redemption{}).
		Select("item_id, COUNT(*) as redeemed").
		Group("item_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, row := range counts {
		state.capacity[row.ItemID] = row.Redeemed
	}

	return state, nil
}

func (state *memberWalletState) isWishlisted(itemID string) bool {
	for _, id := range state.wishlist {
		if id == itemID {
			return true
		}
	}
	return false
}

// buildItemView computes the per-member view of one catalog item. An item is
// unavailable only when its cap is exhausted; the member's own balance never
// affects availability.
func buildItemView(item models.WalletItem, state *memberWalletState) ItemView {
	redeemedCount := state.capacity[item.ID]

	var slotsLeft *int
	if item.Cap != nil {
		left := *item.Cap - redeemedCount
		if left < 0 {
			left = 0
		}
		slotsLeft = &left
	}

	var redeemedAt *time.Time
	if at, ok := state.redeemedAt[item.ID]; ok {
		redeemedAt = &at
	}

	return ItemView{
		ID:            item.ID,
		Name:          item.Name,
		Tagline:       item.Tagline,
		Description:   item.Tagline,
		Points:        item.Points,
		Cap:           item.Cap,
		AvailableNow:  item.AvailableNow,
		URL:           item.DriveURL,
		RedeemedCount: redeemedCount,
		SlotsLeft:     slotsLeft,
		IsWishlisted:  state.isWishlisted(item.ID),
		IsRedeemed:    redeemedAt != nil,
		RedeemedAt:    redeemedAt,
		Available:     item.Cap == nil || redeemedCount < *item.Cap,
	}
}

func buildItemViews(items []models.WalletItem, state *memberWalletState) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, buildItemView(item, state))
	}
	return views
}

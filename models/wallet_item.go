package models

import (
	"time"
)

// WalletItem is a redeemable reward in the catalog. The database table is the
// single source of truth; DefaultWalletItems is seed data only.
type WalletItem struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Tagline      string    `json:"tagline"`
	Points       int       `gorm:"not null" json:"points"`
	Cap          *int      `json:"cap"`
	AvailableNow bool      `gorm:"default:false" json:"available_now"`
	DriveURL     *string   `json:"drive_url"`
	Active       bool      `gorm:"default:true" json:"active"`
	SortOrder    int       `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func intPtr(v int) *int { return &v }

// DefaultWalletItems seeds the catalog on first boot. Taglines and caps match
// the launch lineup; drive URLs are filled in by admins once content is ready.
var DefaultWalletItems = []WalletItem{
	{
		ID:           "playlist",
		Name:         "Curated Confidence Playlist",
		Tagline:      "Pre-tee confidence playlist, a private audio message from Dr. TMac, and the Pre-Tee Ritual guide.",
		Points:       10,
		AvailableNow: true,
		SortOrder:    1,
	},
	{
		ID:           "priority",
		Name:         "Priority Access to Future Events",
		Tagline:      "Early access window, private registration tier, and advance notice before public release.",
		Points:       20,
		AvailableNow: true,
		SortOrder:    2,
	},
	{
		ID:           "vault",
		Name:         "Influence on the Course Mini Vault",
		Tagline:      "The 9-Hole Networking Flow, Fairway Follow-Up Scripts, Wealth While You Golf Blueprint, Sponsorship Pitch Template, and the Bogey Bounce-Back System.",
		Points:       25,
		AvailableNow: true,
		SortOrder:    3,
	},
	{
		ID:        "ray",
		Name:      "Tee Elite Performance Clinic with Ray",
		Tagline:   "A 90-minute in-person performance session designed to improve scoring, confidence, and course strategy. Recording available if you cannot attend.",
		Points:    30,
		Cap:       intPtr(12),
		SortOrder: 4,
	},
	{
		ID:        "roundtable",
		Name:      "Executive Roundtable",
		Tagline:   "Small group, 90-minute strategic session led by Dr. TMac. Sunday, May 3 - 6:00-7:30pm.",
		Points:    60,
		Cap:       intPtr(12),
		SortOrder: 5,
	},
	{
		ID:        "sprint",
		Name:      "Strategy Sprint with Dr. TMac",
		Tagline:   "One focused 45-minute session. You choose: business clarity, visibility, confidence reset, income activation, or personal brand alignment.",
		Points:    75,
		Cap:       intPtr(8),
		SortOrder: 6,
	},
}

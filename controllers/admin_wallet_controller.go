package controllers

import (
	"time"

	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/models"
	"github.com/tee-elite/circle-wallet/utils"
	"github.com/gin-gonic/gin"
)

// ItemEngagement is one catalog item with its demand and redemption stats.
type ItemEngagement struct {
	ItemView
	WishlistCount        int        `json:"wishlist_count"`
	WishlistMembers      []string   `json:"wishlist_members"`
	TotalPointsCollected int        `json:"total_points_collected"`
	FirstRedemption      *time.Time `json:"first_redemption"`
	LastRedemption       *time.Time `json:"last_redemption"`
	Redeemers            []string   `json:"redeemers"`
}

// MemberTiming is one member's redemption activity for the engagement report.
type MemberTiming struct {
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	ItemsRedeemed    int        `json:"items_redeemed"`
	PointsSpent      int        `json:"points_spent"`
	FirstRedemption  *time.Time `json:"first_redemption"`
	RemainingBalance int        `json:"remaining_balance"`
}

// GetWalletReport is the admin engagement dashboard: wishlist demand signals,
// redemption stats per item, member-level timing, and program-wide totals.
func GetWalletReport(c *gin.Context) {
	db := config.DB

	items, err := utils.GetActiveItems(db)
	if err != nil {
		utils.LogError("Failed to load items for wallet report: %v", err)
		utils.InternalServerError(c, "Failed to build report", nil)
		return
	}

	// Wishlist demand per item, with the members signalling it.
	var wishlistRows []struct {
		ItemID string
		Name   string
	}
	err = db.Model(&models.WishlistEntry{}).
		Select("wishlist_entries.item_id, members.name").
		Joins("JOIN members ON members.id = wishlist_entries.member_id").
		Order("wishlist_entries.item_id, members.name").
		Scan(&wishlistRows).Error
	if err != nil {
		utils.LogError("Failed to load wishlist demand: %v", err)
		utils.InternalServerError(c, "Failed to build report", nil)
		return
	}
	wishlistByItem := map[string][]string{}
	for _, row := range wishlistRows {
		wishlistByItem[row.ItemID] = append(wishlistByItem[row.ItemID], row.Name)
	}

	// Redemption detail per item.
	var redemptionRows []struct {
		ItemID      string
		Name        string
		Email       string
		PointsSpent int
		RedeemedAt  time.Time
	}
	err = db.Model(&models.Redemption{}).
		Select("redemptions.item_id, members.name, members.email, redemptions.points_spent, redemptions.redeemed_at").
		Joins("JOIN members ON members.id = redemptions.member_id").
		Order("redemptions.item_id, redemptions.redeemed_at").
		Scan(&redemptionRows).Error
	if err != nil {
		utils.LogError("Failed to load redemptions: %v", err)
		utils.InternalServerError(c, "Failed to build report", nil)
		return
	}

	type redemptionStats struct {
		count     int
		points    int
		first     time.Time
		last      time.Time
		redeemers []string
	}
	statsByItem := map[string]*redemptionStats{}
	for _, row := range redemptionRows {
		stats := statsByItem[row.ItemID]
		if stats == nil {
			stats = &redemptionStats{first: row.RedeemedAt, last: row.RedeemedAt}
			statsByItem[row.ItemID] = stats
		}
		stats.count++
		stats.points += row.PointsSpent
		if row.RedeemedAt.Before(stats.first) {
			stats.first = row.RedeemedAt
		}
		if row.RedeemedAt.After(stats.last) {
			stats.last = row.RedeemedAt
		}
		stats.redeemers = append(stats.redeemers, row.Name+" ("+row.Email+")")
	}

	capacity := map[string]int{}
	for itemID, stats := range statsByItem {
		capacity[itemID] = stats.count
	}
	emptyState := &memberWalletState{capacity: capacity, redeemedAt: map[string]time.Time{}}

	itemReport := make([]ItemEngagement, 0, len(items))
	for _, item := range items {
		engagement := ItemEngagement{
			ItemView:        buildItemView(item, emptyState),
			WishlistCount:   len(wishlistByItem[item.ID]),
			WishlistMembers: wishlistByItem[item.ID],
			Redeemers:       []string{},
		}
		if engagement.WishlistMembers == nil {
			engagement.WishlistMembers = []string{}
		}
		if stats := statsByItem[item.ID]; stats != nil {
			engagement.TotalPointsCollected = stats.points
			first, last := stats.first, stats.last
			engagement.FirstRedemption = &first
			engagement.LastRedemption = &last
			engagement.Redeemers = stats.redeemers
		}
		itemReport = append(itemReport, engagement)
	}

	memberTiming, err := loadMemberTiming(c)
	if err != nil {
		return
	}

	var totalWallets, totalRedemptions, zeroRedemptions int64
	var totalPointsSpent int
	if err := db.Model(&models.Wallet{}).Count(&totalWallets).Error; err != nil {
		utils.LogError("Failed to count wallets: %v", err)
		utils.InternalServerError(c, "Failed to build report", nil)
		return
	}
	if err := db.Model(&models.Redemption{}).Count(&totalRedemptions).Error; err != nil {
		utils.LogError("Failed to count redemptions: %v", err)
		utils.InternalServerError(c, "Failed to build report", nil)
		return
	}
	var spent struct{ Total int }
	err = db.Model(&models.Wallet{}).
		Select("COALESCE(SUM(? - points_balance), 0) as total", config.App.StartingPoints).
		Scan(&spent).Error
	if err != nil {
		utils.LogError("Failed to sum points spent: %v", err)
		utils.InternalServerError(c, "Failed to build report", nil)
		return
	}
	totalPointsSpent = spent.Total
	err = db.Model(&models.Wallet{}).
		Where("member_id NOT IN (?)", db.Model(&models.Redemption{}).Select("DISTINCT member_id")).
		Count(&zeroRedemptions).Error
	if err != nil {
		utils.LogError("Failed to count zero-redemption wallets: %v", err)
		utils.InternalServerError(c, "Failed to build report", nil)
		return
	}

	redemptionRate := 0
	if totalWallets > 0 {
		redemptionRate = int(float64(totalWallets-zeroRedemptions) / float64(totalWallets) * 100)
	}

	utils.Success(c, "Wallet report generated successfully", gin.H{
		"summary": gin.H{
			"total_wallets":      totalWallets,
			"total_redemptions":  totalRedemptions,
			"total_points_spent": totalPointsSpent,
			"zero_redemptions":   zeroRedemptions,
			"redemption_rate":    redemptionRate,
		},
		"items":         itemReport,
		"member_timing": memberTiming,
	})
}

func loadMemberTiming(c *gin.Context) ([]MemberTiming, error) {
	var rows []struct {
		Name        string
		Email       string
		Balance     int
		PointsSpent *int
		RedeemedAt  *time.Time
	}
	err := config.DB.Model(&models.Wallet{}).
		Select("members.name, members.email, wallets.points_balance as balance, redemptions.points_spent, redemptions.redeemed_at").
		Joins("JOIN members ON members.id = wallets.member_id").
		Joins("LEFT JOIN redemptions ON redemptions.member_id = wallets.member_id").
		Order("members.name").
		Scan(&rows).Error
	if err != nil {
		utils.LogError("Failed to load member timing: %v", err)
		utils.InternalServerError(c, "Failed to build report", nil)
		return nil, err
	}

	byEmail := map[string]*MemberTiming{}
	order := []string{}
	for _, row := range rows {
		timing := byEmail[row.Email]
		if timing == nil {
			timing = &MemberTiming{
				Name:             row.Name,
				Email:            row.Email,
				RemainingBalance: row.Balance,
			}
			byEmail[row.Email] = timing
			order = append(order, row.Email)
		}
		if row.RedeemedAt != nil {
			timing.ItemsRedeemed++
			if row.PointsSpent != nil {
				timing.PointsSpent += *row.PointsSpent
			}
			if timing.FirstRedemption == nil || row.RedeemedAt.Before(*timing.FirstRedemption) {
				at := *row.RedeemedAt
				timing.FirstRedemption = &at
			}
		}
	}

	result := make([]MemberTiming, 0, len(order))
	for _, email := range order {
		result = append(result, *byEmail[email])
	}
	return result, nil
}

package controllers

import (
	"time"

	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/middleware"
	"github.com/tee-elite/circle-wallet/utils"
	"github.com/gin-gonic/gin"
)

// GetWallet returns the member's full wallet state: balance, activation
// window, wishlist holds, and the catalog with per-member view data.
func GetWallet(c *gin.Context) {
	member, ok := middleware.MemberFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	wallet, err := utils.GetOrCreateWallet(config.DB, member.ID, config.App.StartingPoints)
	if err != nil {
		utils.LogError("Failed to get wallet for member %d: %v", member.ID, err)
		utils.InternalServerError(c, "Failed to load wallet", nil)
		return
	}

	state, err := loadMemberWalletState(config.DB, member.ID)
	if err != nil {
		utils.LogError("Failed to load wallet state for member %d: %v", member.ID, err)
		utils.InternalServerError(c, "Failed to load wallet", nil)
		return
	}

	items, err := utils.GetActiveItems(config.DB)
	if err != nil {
		utils.LogError("Failed to load wallet items: %v", err)
		utils.InternalServerError(c, "Failed to load wallet", nil)
		return
	}

	now := time.Now()
	policy := utils.Activation
	isActive := policy.Open(now)

	response := gin.H{
		"points_balance":  wallet.PointsBalance,
		"starting_points": config.App.StartingPoints,
		"is_active":       isActive,
		"activation_date": policy.ActivationDate.Format(time.RFC3339),
		"expires_at":      nil,
		"days_left":       nil,
		"wishlist":        state.wishlist,
		"items":           buildItemViews(items, state),
	}
	if isActive {
		response["expires_at"] = policy.ExpiresAt().Format(time.RFC3339)
		response["days_left"] = policy.DaysLeft(now)
	}

	utils.Success(c, "Wallet retrieved successfully", response)
}

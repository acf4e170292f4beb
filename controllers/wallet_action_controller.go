package controllers

import (
	"time"

	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/middleware"
	"github.com/tee-elite/circle-wallet/utils"
	"github.com/gin-gonic/gin"
)

// WalletActionRequest is the POST body for both wallet actions.
type WalletActionRequest struct {
	Action string `json:"action" binding:"required"`
	ItemID string `json:"item_id" binding:"required"`
}

// WalletAction dispatches wishlist toggles and redemptions. Business-rule
// failures come back as 400s with stable codes; the session middleware has
// already rejected unauthenticated callers.
func WalletAction(c *gin.Context) {
	member, ok := middleware.MemberFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	var req WalletActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing action or item_id", nil)
		return
	}

	switch req.Action {
	case "wishlist":
		toggleWishlist(c, member.ID, req.ItemID)
	case "redeem":
		redeemItem(c, member.ID, req.ItemID)
	default:
		utils.ActionFailed(c, utils.ErrUnknownAction)
	}
}

// toggleWishlist flips the hold and returns the fully refreshed wallet view
// so the client can re-render without a second request.
func toggleWishlist(c *gin.Context, memberID uint, itemID string) {
	balance, _, err := utils.ToggleWishlist(config.DB, memberID, itemID, config.App.StartingPoints)
	if err != nil {
		if utils.IsWalletActionError(err) {
			utils.ActionFailed(c, err)
			return
		}
		utils.LogError("Wishlist toggle failed for member %d item %s: %v", memberID, itemID, err)
		utils.InternalServerError(c, "Failed to update wishlist", nil)
		return
	}

	state, err := loadMemberWalletState(config.DB, memberID)
	if err != nil {
		utils.LogError("Failed to reload wallet state for member %d: %v", memberID, err)
		utils.InternalServerError(c, "Failed to update wishlist", nil)
		return
	}
	items, err := utils.GetActiveItems(config.DB)
	if err != nil {
		utils.LogError("Failed to load wallet items: %v", err)
		utils.InternalServerError(c, "Failed to update wishlist", nil)
		return
	}

	utils.LogInfo("Wishlist updated successfully for member %d item %s", memberID, itemID)
	utils.Success(c, "Wishlist updated successfully", gin.H{
		"points_balance": balance,
		"wishlist":       state.wishlist,
		"items":          buildItemViews(items, state),
	})
}

// redeemItem finalizes a claim. Redemption is permanent; there is no
// un-redeem path anywhere in the API.
func redeemItem(c *gin.Context, memberID uint, itemID string) {
	newBalance, err := utils.RedeemItem(
		config.DB,
		utils.Activation,
		time.Now(),
		memberID,
		itemID,
		config.App.StartingPoints,
	)
	if err != nil {
		if utils.IsWalletActionError(err) {
			utils.ActionFailed(c, err)
			return
		}
		utils.LogError("Redemption failed for member %d item %s: %v", memberID, itemID, err)
		utils.InternalServerError(c, "Failed to redeem item", nil)
		return
	}

	utils.LogInfo("Item redeemed successfully by member %d item %s", memberID, itemID)
	utils.Success(c, "Item redeemed successfully", gin.H{
		"success":     true,
		"new_balance": newBalance,
	})
}

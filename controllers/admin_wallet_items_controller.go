package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/models"
	"github.com/tee-elite/circle-wallet/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var itemSlugPattern = regexp.MustCompile(`[^a-z0-9_-]`)

// ListWalletItemsAdmin returns the full catalog, inactive rows included.
func ListWalletItemsAdmin(c *gin.Context) {
	var items []models.WalletItem
	err := config.DB.Order("sort_order ASC, created_at ASC").Find(&items).Error
	if err != nil {
		utils.LogError("Failed to list wallet items: %v", err)
		utils.InternalServerError(c, "Failed to list wallet items", nil)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateWalletItemRequest is the admin payload for a new reward.
type CreateWalletItemRequest struct {
	ID           string  `json:"id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Tagline      string  `json:"tagline"`
	Points       *int    `json:"points" binding:"required"`
	Cap          *int    `json:"cap"`
	AvailableNow bool    `json:"available_now"`
	DriveURL     *string `json:"drive_url"`
	SortOrder    *int    `json:"sort_order"`
}

// CreateWalletItem adds a reward to the catalog. The id is normalised to a
// url-safe slug because it ends up in client routes and redemption rows.
func CreateWalletItem(c *gin.Context) {
	var req CreateWalletItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "id, name, and points are required", nil)
		return
	}
	if *req.Points <= 0 {
		utils.BadRequest(c, "points must be a positive integer", nil)
		return
	}
	if req.Cap != nil && *req.Cap <= 0 {
		utils.BadRequest(c, "cap must be a positive integer when set", nil)
		return
	}

	safeID := itemSlugPattern.ReplaceAllString(strings.ToLower(req.ID), "_")

	sortOrder := 99
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	item := models.WalletItem{
		ID:           safeID,
		Name:         req.Name,
		Tagline:      req.Tagline,
		Points:       *req.Points,
		Cap:          req.Cap,
		AvailableNow: req.AvailableNow,
		DriveURL:     req.DriveURL,
		Active:       true,
		SortOrder:    sortOrder,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		utils.LogError("Failed to create wallet item %s: %v", safeID, err)
		utils.InternalServerError(c, "Failed to create wallet item", nil)
		return
	}

	utils.Created(c, "Wallet item created successfully", gin.H{"id": safeID})
}

// UpdateWalletItemRequest carries partial updates; nil fields are untouched.
type UpdateWalletItemRequest struct {
	ID           string  `json:"id" binding:"required"`
	Name         *string `json:"name"`
	Tagline      *string `json:"tagline"`
	Points       *int    `json:"points"`
	Cap          *int    `json:"cap"`
	AvailableNow *bool   `json:"available_now"`
	DriveURL     *string `json:"drive_url"`
	Active       *bool   `json:"active"`
	SortOrder    *int    `json:"sort_order"`
}

// UpdateWalletItem applies a partial update to one catalog row.
func UpdateWalletItem(c *gin.Context) {
	var req UpdateWalletItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "id is required", nil)
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Tagline != nil {
		updates["tagline"] = *req.Tagline
	}
	if req.Points != nil {
		if *req.Points <= 0 {
			utils.BadRequest(c, "points must be a positive integer", nil)
			return
		}
		updates["points"] = *req.Points
	}
	if req.Cap != nil {
		if *req.Cap <= 0 {
			utils.BadRequest(c, "cap must be a positive integer when set", nil)
			return
		}
		updates["cap"] = *req.Cap
	}
	if req.AvailableNow != nil {
		updates["available_now"] = *req.AvailableNow
	}
	if req.DriveURL != nil {
		updates["drive_url"] = *req.DriveURL
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	result := config.DB.Model(&models.WalletItem{}).Where("id = ?", req.ID).Updates(updates)
	if result.Error != nil {
		utils.LogError("Failed to update wallet item %s: %v", req.ID, result.Error)
		utils.InternalServerError(c, "Failed to update wallet item", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Wallet item not found")
		return
	}

	utils.Success(c, "Wallet item updated successfully", nil)
}

// DeleteWalletItem removes a catalog row. Redemption history survives; only
// the storefront entry goes away.
func DeleteWalletItem(c *gin.Context) {
	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "id is required", nil)
		return
	}

	var item models.WalletItem
	if err := config.DB.First(&item, "id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Wallet item not found")
			return
		}
		utils.LogError("Failed to load wallet item %s: %v", req.ID, err)
		utils.InternalServerError(c, "Failed to delete wallet item", nil)
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		utils.LogError("Failed to delete wallet item %s: %v", req.ID, err)
		utils.InternalServerError(c, "Failed to delete wallet item", nil)
		return
	}

	utils.Success(c, "Wallet item deleted successfully", nil)
}

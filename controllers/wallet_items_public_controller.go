package controllers

import (
	"net/http"

	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/utils"
	"github.com/gin-gonic/gin"
)

// ListWalletItems is the public marketplace view of the catalog. No session
// required; no per-member state.
func ListWalletItems(c *gin.Context) {
	items, err := utils.GetActiveItems(config.DB)
	if err != nil {
		utils.LogError("Failed to load marketplace items: %v", err)
		utils.InternalServerError(c, "Failed to load marketplace items", nil)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, items)
}

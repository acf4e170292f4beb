package routes

import (
	"github.com/tee-elite/circle-wallet/controllers"
	"github.com/tee-elite/circle-wallet/middleware"
	"github.com/gin-gonic/gin"
)

// initWalletRoutes initializes the member-facing wallet routes
func initWalletRoutes(router *gin.RouterGroup) {
	// Public marketplace view, no session required
	router.GET("/wallet-items", controllers.ListWalletItems)

	wallet := router.Group("/wallet")
	wallet.Use(middleware.SessionMiddleware())
	{
		wallet.GET("", controllers.GetWallet)
		wallet.POST("", controllers.WalletAction)
		wallet.GET("/receipt/:itemId", controllers.DownloadRedemptionReceipt)
	}
}

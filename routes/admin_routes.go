package routes

import (
	"github.com/tee-elite/circle-wallet/controllers"
	"github.com/tee-elite/circle-wallet/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AdminSecretMiddleware())
	{
		// Engagement reporting
		admin.GET("/wallet", controllers.GetWalletReport)
		admin.GET("/wallet/export", controllers.DownloadWalletReportExcel)

		// Catalog management
		admin.GET("/wallet-items", controllers.ListWalletItemsAdmin)
		admin.POST("/wallet-items", controllers.CreateWalletItem)
		admin.PUT("/wallet-items", controllers.UpdateWalletItem)
		admin.DELETE("/wallet-items", controllers.DeleteWalletItem)
	}
}

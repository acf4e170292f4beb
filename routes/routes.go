package routes

import (
	"github.com/tee-elite/circle-wallet/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	// Global middleware must be registered before any route group
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		utils.MethodNotAllowed(c, "Method not allowed")
	})

	// API version group
	api := router.Group("/" + utils.APIVersion)
	{
		initWalletRoutes(api)
		initAdminRoutes(api)
	}

	return router
}

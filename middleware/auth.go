package middleware

import (
	"errors"
	"time"

	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/models"
	"github.com/tee-elite/circle-wallet/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionMiddleware resolves the opaque session credential to a member and
// stores it in the request context. Every member-facing wallet route sits
// behind this; unauthenticated requests never reach the ledger.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.SessionTokenFromRequest(c)
		if token == "" || !utils.IsValidTokenFormat(token) {
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		var session models.Session
		err := config.DB.Where("token = ? AND expires_at > ?", token, time.Now()).
			First(&session).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.LogError("Session lookup failed: %v", err)
			}
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		var member models.Member
		if err := config.DB.First(&member, session.MemberID).Error; err != nil {
			utils.LogError("Member %d not found for valid session: %v", session.MemberID, err)
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		c.Set("member", member)
		c.Next()
	}
}

// AdminSecretMiddleware guards admin tooling with the shared secret, passed
// as a header or a query parameter for curl convenience.
func AdminSecretMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(utils.AdminSecretHeader)
		if secret == "" {
			secret = c.Query("secret")
		}
		if config.App == nil || config.App.AdminSecret == "" || secret != config.App.AdminSecret {
			utils.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

// MemberFromContext returns the authenticated member set by SessionMiddleware.
func MemberFromContext(c *gin.Context) (models.Member, bool) {
	value, exists := c.Get("member")
	if !exists {
		return models.Member{}, false
	}
	member, ok := value.(models.Member)
	return member, ok
}

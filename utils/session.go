package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/gin-gonic/gin"
)

// Session tokens are 32 random bytes, hex encoded. The auth subsystem mints
// them; the wallet only needs to read and validate the shape.
const sessionTokenLength = 64

// GenerateSessionToken mints a new opaque session token.
func GenerateSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// IsValidTokenFormat rejects obviously malformed tokens before touching the
// sessions table.
func IsValidTokenFormat(token string) bool {
	if len(token) != sessionTokenLength {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

// SessionTokenFromRequest extracts the session credential: the tec_session
// cookie, falling back to a bearer token.
func SessionTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

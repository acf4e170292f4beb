package utils

// Application constants
const (
	// Application name
	AppName = "TeeEliteCircle"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Session cookie set by the auth subsystem
	SessionCookieName = "tec_session"

	// Admin credential header
	AdminSecretHeader = "X-Admin-Secret"
)

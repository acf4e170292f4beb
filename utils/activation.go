package utils

import (
	"time"
)

// ActivationPolicy gates redemption behind the global program launch date.
// Methods take an explicit now so callers and tests never depend on the wall
// clock inside the wallet core.
type ActivationPolicy struct {
	ActivationDate time.Time
	ExpiryDays     int
}

// Activation is the policy in effect for the running server, set from config
// at startup. Wishlisting ignores it; redemption does not.
var Activation ActivationPolicy

// InitActivation wires the global policy from loaded configuration.
func InitActivation(activationDate time.Time, expiryDays int) {
	Activation = ActivationPolicy{ActivationDate: activationDate, ExpiryDays: expiryDays}
}

// Open reports whether the redemption window has opened.
func (p ActivationPolicy) Open(now time.Time) bool {
	return !now.Before(p.ActivationDate)
}

// ExpiresAt returns the end of the redemption window.
func (p ActivationPolicy) ExpiresAt() time.Time {
	return p.ActivationDate.AddDate(0, 0, p.ExpiryDays)
}

// DaysLeft returns whole days until expiry, rounded up and floored at zero.
// Only meaningful once the window is open.
func (p ActivationPolicy) DaysLeft(now time.Time) int {
	remaining := p.ExpiresAt().Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}

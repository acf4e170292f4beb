package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivationPolicyOpen(t *testing.T) {
	activation := time.Date(2026, 4, 18, 23, 59, 0, 0, time.UTC)
	policy := ActivationPolicy{ActivationDate: activation, ExpiryDays: 30}

	assert.False(t, policy.Open(activation.Add(-time.Minute)))
	assert.True(t, policy.Open(activation))
	assert.True(t, policy.Open(activation.Add(time.Minute)))
}

func TestActivationPolicyExpiresAt(t *testing.T) {
	activation := time.Date(2026, 4, 18, 23, 59, 0, 0, time.UTC)
	policy := ActivationPolicy{ActivationDate: activation, ExpiryDays: 30}

	assert.Equal(t, activation.AddDate(0, 0, 30), policy.ExpiresAt())
}

func TestActivationPolicyDaysLeft(t *testing.T) {
	activation := time.Date(2026, 4, 18, 23, 59, 0, 0, time.UTC)
	policy := ActivationPolicy{ActivationDate: activation, ExpiryDays: 30}

	// Partial days round up.
	assert.Equal(t, 30, policy.DaysLeft(activation))
	assert.Equal(t, 30, policy.DaysLeft(activation.Add(time.Hour)))
	assert.Equal(t, 29, policy.DaysLeft(activation.Add(25*time.Hour)))
	assert.Equal(t, 1, policy.DaysLeft(policy.ExpiresAt().Add(-time.Hour)))
	assert.Equal(t, 0, policy.DaysLeft(policy.ExpiresAt()))
	assert.Equal(t, 0, policy.DaysLeft(policy.ExpiresAt().Add(time.Hour)))
}

func TestInitActivationSetsGlobalPolicy(t *testing.T) {
	previous := Activation
	defer func() { Activation = previous }()

	activation := time.Date(2026, 4, 18, 23, 59, 0, 0, time.UTC)
	InitActivation(activation, 30)

	assert.Equal(t, activation, Activation.ActivationDate)
	assert.Equal(t, 30, Activation.ExpiryDays)
}

// Package user models the subscribed chat user and the lazy
// daily-notification-quota reset invariant.
package user

import (
	"errors"
	"time"
)

// Tier is a closed enumeration of subscription tiers.
type Tier string

const (
	TierTrial   Tier = "trial"
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
	TierAdmin   Tier = "admin"
)

func (t Tier) Valid() bool {
	switch t {
	case TierTrial, TierBasic, TierPremium, TierAdmin:
		return true
	default:
		return false
	}
}

var ErrInvalidTier = errors.New("invalid subscription tier")

// User is the chat-identity-bearing subscriber that owns filters.
type User struct {
	ID         string
	ExternalID string // identity in the external chat system
	Tier       Tier

	MonitoringEnabled bool

	NotificationsSentToday int
	LastNotificationReset  time.Time

	SubscriptionExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New constructs a trial-tier user with monitoring enabled by default.
func New(externalID string) (*User, error) {
	if externalID == "" {
		return nil, errors.New("external id cannot be empty")
	}
	now := time.Now()
	return &User{
		ExternalID:             externalID,
		Tier:                   TierTrial,
		MonitoringEnabled:      true,
		LastNotificationReset:  now,
		CreatedAt:              now,
		UpdatedAt:              now,
	}, nil
}

// ResetIfWindowElapsed applies the lazy-reset invariant: notifications_sent_
// today resets to 0 when now − last_notification_reset ≥ 24h, evaluated on
// read. Returns true if a reset happened.
func (u *User) ResetIfWindowElapsed(now time.Time) bool {
	if now.Sub(u.LastNotificationReset) >= 24*time.Hour {
		u.NotificationsSentToday = 0
		u.LastNotificationReset = now
		return true
	}
	return false
}

// IsSubscriptionActive reports whether the user's subscription has not
// lapsed. Only SubscriptionExpiresAt is consulted, not the tier: a user with
// no expiry set is always active.
func (u *User) IsSubscriptionActive(now time.Time) bool {
	if u.SubscriptionExpiresAt == nil {
		return true
	}
	return now.Before(*u.SubscriptionExpiresAt)
}

// Disable flips monitoring_enabled off — the Monitoring Loop's policy
// reaction to a `user_blocked` delivery outcome from the Notification Sender.
func (u *User) Disable() {
	u.MonitoringEnabled = false
	u.UpdatedAt = time.Now()
}

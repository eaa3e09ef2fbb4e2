package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Outcome is the closed error taxonomy the Notification Sender translates
// every chat-collaborator failure into — the Monitoring Loop branches
// on this, never on the collaborator's own error type.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeUserBlocked Outcome = "user_blocked"
	OutcomeBadRecipient Outcome = "bad_recipient"
	OutcomeTransient   Outcome = "transient"
	OutcomeRateLimited Outcome = "rate_limited"
)

// Collaborator is the chat-delivery boundary: one concrete adapter per
// supported chat vendor implements this. The Sender only ever sees the
// taxonomy above, never the vendor's native error types.
type Collaborator interface {
	// Send delivers message to recipient. retryAfter is only meaningful
	// when outcome is OutcomeRateLimited — the vendor's requested backoff.
	Send(ctx context.Context, recipient, message string) (outcome Outcome, retryAfter time.Duration, externalMessageID string, err error)
}

const (
	senderMaxTransientRetries = 3
	senderBaseBackoff         = 2 * time.Second
	senderMaxRateLimitRetries = 3
)

// Sender is the Notification Sender (C6): delivers one notification through
// the chat collaborator, retrying transient and rate_limited outcomes. It
// never mutates notifications_sent_today — that counter is the Store's
// alone.
type Sender struct {
	collaborator Collaborator
	log          *zap.SugaredLogger
}

func NewSender(collaborator Collaborator, log *zap.SugaredLogger) *Sender {
	if collaborator == nil {
		collaborator = noopCollaborator{}
	}
	return &Sender{collaborator: collaborator, log: log}
}

// noopCollaborator stands in when no chat vendor is configured. Every
// delivery reports transient so the Monitoring Loop's backpressure logic
// engages instead of silently pretending messages went out.
type noopCollaborator struct{}

func (noopCollaborator) Send(ctx context.Context, recipient, message string) (Outcome, time.Duration, string, error) {
	return OutcomeTransient, 0, "", fmt.Errorf("no chat collaborator configured")
}

// Deliver sends message to recipient, retrying transient failures up to 3
// times with exponential backoff (base 2s) and rate_limited responses by
// respecting the vendor's requested delay, up to 3 retries.
// user_blocked and bad_recipient are terminal — returned immediately with no
// retry, since retrying them cannot succeed.
func (s *Sender) Deliver(ctx context.Context, recipient, message string) (Outcome, string, error) {
	backoff := senderBaseBackoff
	var lastOutcome Outcome
	var lastErr error

	for attempt := 0; attempt <= senderMaxTransientRetries; attempt++ {
		outcome, retryAfter, externalMessageID, err := s.collaborator.Send(ctx, recipient, message)
		lastOutcome, lastErr = outcome, err

		switch outcome {
		case OutcomeOK:
			return OutcomeOK, externalMessageID, nil
		case OutcomeUserBlocked, OutcomeBadRecipient:
			return outcome, "", err
		case OutcomeRateLimited:
			if attempt >= senderMaxRateLimitRetries {
				return OutcomeRateLimited, "", err
			}
			s.log.Warnw("chat vendor rate limited delivery, waiting", "recipient", recipient, "retry_after", retryAfter)
			if !sleepOrDone(ctx, retryAfter) {
				return OutcomeRateLimited, "", ctx.Err()
			}
			continue
		case OutcomeTransient:
			if attempt == senderMaxTransientRetries {
				return OutcomeTransient, "", err
			}
			s.log.Warnw("transient delivery failure, retrying", "recipient", recipient, "attempt", attempt+1, "error", err)
			if !sleepOrDone(ctx, backoff) {
				return OutcomeTransient, "", ctx.Err()
			}
			backoff *= 2
		default:
			return OutcomeTransient, "", err
		}
	}
	return lastOutcome, "", lastErr
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}

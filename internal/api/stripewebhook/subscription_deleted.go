package stripewebhooks

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"

	"tinytoken-dashboard/internal/infra/stripebilling"
)

// handleSubscriptionDeleted revokes every key owned by the user whose
// subscription ended. The remote key service flags them inactive; nothing is
// deleted.
func (h *Handler) handleSubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) error {
	userID := ""
	if sub.Metadata != nil {
		userID = sub.Metadata["userId"]
	}
	if userID == "" {
		logrus.WithField("subscription_id", sub.ID).Warn("Subscription missing userId metadata")
		return nil
	}

	if err := h.keys.DeactivateAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to deactivate user API keys: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"subscription_id": sub.ID,
		"user_email":      userID,
		"status":          stripebilling.NormalizeStatus(string(sub.Status)),
	}).Info("All API keys deactivated after subscription ended")
	return nil
}

package stripewebhooks

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
)

// handleCheckoutCompleted issues an API key for the user who just completed
// checkout. Completion of checkout is itself proof of entitlement, so no
// separate subscription check runs here.
func (h *Handler) handleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	userID := ""
	if session.Metadata != nil {
		userID = session.Metadata["userId"]
	}
	if userID == "" {
		logrus.WithField("session_id", session.ID).Warn("Checkout session missing userId metadata")
		return nil
	}

	if _, err := h.keys.CreateKey(ctx, userID, "Created after subscription"); err != nil {
		return fmt.Errorf("failed to create API key after checkout: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"user_email": userID,
	}).Info("API key issued after checkout")
	return nil
}

package stripewebhooks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"

	"tinytoken-dashboard/internal/domain/keys"
)

// KeyService is the slice of the TinyToken key service the webhook handler
// drives in reaction to billing lifecycle events.
type KeyService interface {
	CreateKey(ctx context.Context, email, description string) (*keys.CreatedKey, error)
	DeactivateAll(ctx context.Context, email string) error
}

type Handler struct {
	keys   KeyService
	secret string
	seen   *replayGuard
}

func NewHandler(keys KeyService, secret string) *Handler {
	return &Handler{
		keys:   keys,
		secret: secret,
		seen:   newReplayGuard(),
	}
}

// HandleWebhook consumes Stripe lifecycle notifications. Signature
// verification is the sole integrity check on this path: an invalid signature
// is rejected with 400 and produces no side effects. Errors while processing
// a recognized event return 500 so Stripe redelivers; unknown event types are
// acknowledged so Stripe stops retrying.
func (h *Handler) HandleWebhook(c *gin.Context) {
	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		logrus.WithError(err).Warn("Stripe signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	// Stripe redelivers events until acknowledged; an already-processed event
	// is acknowledged again without repeating its side effects.
	if h.seen.processed(event.ID) {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if err := h.handleCheckoutCompleted(c.Request.Context(), &session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		if err := h.handleSubscriptionDeleted(c.Request.Context(), &sub); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	default:
		// Acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	h.seen.mark(event.ID)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}

package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"

	"tinytoken-dashboard/config"
)

// CreateCheckoutSession starts a hosted subscription checkout for the given
// email. The user identifier rides along in session and subscription metadata
// so the webhook handler can associate completion and cancellation events back
// to the user.
func CreateCheckoutSession(c *gin.Context) {
	var body struct {
		UserEmail string `json:"user_email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.UserEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_email is required"})
		return
	}

	cus, err := ensureCustomer(body.UserEmail)
	if err != nil {
		logrus.WithError(err).WithField("user_email", body.UserEmail).Error("Failed to resolve Stripe customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.BASE_URL + "/dashboard?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(config.BASE_URL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(cus.ID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(config.STRIPE_PRICE_ID), Quantity: stripe.Int64(1)},
		},

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"userId": body.UserEmail,
			},
		},
	}
	params.AddMetadata("userId", body.UserEmail)

	s, err := checkoutsession.New(params)
	if err != nil {
		logrus.WithError(err).WithField("user_email", body.UserEmail).Error("Failed to create checkout session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

// ensureCustomer reuses the Stripe customer matching email, creating one when
// none exists. Only the first match is considered.
func ensureCustomer(email string) (*stripe.Customer, error) {
	listParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	listParams.Limit = stripe.Int64(1)

	it := customer.List(listParams)
	if it.Next() {
		return it.Customer(), nil
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	return customer.New(&stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"userId": email,
		},
	})
}

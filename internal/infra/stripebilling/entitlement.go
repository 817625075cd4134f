package stripebilling

import (
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/customer"
	"github.com/stripe/stripe-go/v75/subscription"
)

// Checker answers entitlement questions against Stripe. It holds no state;
// Stripe is the source of truth and is re-queried on every call.
type Checker struct{}

// HasActiveSubscription reports whether email belongs to a Stripe customer
// with at least one active subscription. Fail-closed: any provider error
// means no entitlement. When several customers share the email only the
// first returned is considered.
func (Checker) HasActiveSubscription(email string) bool {
	custParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	custParams.Limit = stripe.Int64(1)

	customers := customer.List(custParams)
	if !customers.Next() {
		if err := customers.Err(); err != nil {
			logrus.WithError(err).WithField("email", email).Error("Stripe customer lookup failed")
		}
		return false
	}
	cus := customers.Customer()

	subParams := &stripe.SubscriptionListParams{
		Customer: stripe.String(cus.ID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	subParams.Limit = stripe.Int64(1)

	subs := subscription.List(subParams)
	if subs.Next() {
		return true
	}
	if err := subs.Err(); err != nil {
		logrus.WithError(err).WithField("email", email).Error("Stripe subscription lookup failed")
	}
	return false
}

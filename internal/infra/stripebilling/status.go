package stripebilling

import "strings"

// Stripe-ish normalization used ONLY for subscription status values carried
// in webhook events and log lines.
func NormalizeStatus(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	switch strings.TrimSpace(s) {
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}

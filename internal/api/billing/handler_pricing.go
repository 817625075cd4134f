package billing

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"

	"tinytoken-dashboard/config"
)

var defaultFeatures = []string{
	"Unlimited API calls",
	"30-day API key validity",
	"Usage analytics",
}

// GetPricing returns the current plan as configured in Stripe. The feature
// list comes from the product's metadata when present and parseable,
// otherwise the fixed default list is served.
func GetPricing(c *gin.Context) {
	params := &stripe.PriceParams{}
	params.AddExpand("product")

	p, err := price.Get(config.STRIPE_PRICE_ID, params)
	if err != nil {
		logrus.WithError(err).WithField("price_id", config.STRIPE_PRICE_ID).Error("Failed to fetch Stripe price")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pricing data"})
		return
	}
	if p.Product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	product := p.Product

	name := product.Name
	if name == "" {
		name = "TinyToken API Access"
	}
	description := product.Description
	if description == "" {
		description = "Access to the TinyToken API"
	}
	interval := "month"
	if p.Recurring != nil && p.Recurring.Interval != "" {
		interval = string(p.Recurring.Interval)
	}

	c.JSON(http.StatusOK, gin.H{
		"name":        name,
		"description": description,
		"price":       float64(p.UnitAmount) / 100,
		"interval":    interval,
		"features":    featuresFromMetadata(product.Metadata),
	})
}

func featuresFromMetadata(metadata map[string]string) []string {
	raw, ok := metadata["features"]
	if !ok || raw == "" {
		return defaultFeatures
	}

	var features []string
	if err := json.Unmarshal([]byte(raw), &features); err != nil || len(features) == 0 {
		logrus.WithError(err).Warn("Failed to parse features from product metadata, using defaults")
		return defaultFeatures
	}
	return features
}

package routes

import (
	"tinytoken-dashboard/config"
	"tinytoken-dashboard/internal/api/apikeys"
	"tinytoken-dashboard/internal/api/billing"
	stripewebhooks "tinytoken-dashboard/internal/api/stripewebhook"
	"tinytoken-dashboard/internal/app/http/middleware"
	"tinytoken-dashboard/internal/infra/stripebilling"
	"tinytoken-dashboard/internal/infra/tinytoken"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	keyService := tinytoken.New(config.TINYTOKEN_API_URL, config.TINYTOKEN_ADMIN_KEY)
	apiKeys := apikeys.NewHandler(keyService, stripebilling.Checker{})
	hooks := stripewebhooks.NewHandler(keyService, config.STRIPE_WEBHOOK_SECRET)

	// Webhook gets the raw body; no sanitization may touch it or the
	// signature check breaks.
	r.POST("/webhook", hooks.HandleWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.GET("/api-keys", apiKeys.ListKeys)
	public.POST("/api-keys", apiKeys.CreateKey)
	public.POST("/create-checkout-session", billing.CreateCheckoutSession)
	public.GET("/get-pricing", billing.GetPricing)

	// Key deactivation requires the shared admin credential
	admin := r.Group("/")
	admin.Use(middleware.RequireAdminKey(config.TINYTOKEN_ADMIN_KEY))
	admin.POST("/api-keys/deactivate/:key", apiKeys.DeactivateKey)
}

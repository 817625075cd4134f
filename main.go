package main

import (
	"time"

	"tinytoken-dashboard/config"
	routes "tinytoken-dashboard/internal/app/http"
	"tinytoken-dashboard/internal/app/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	stripe.Key = config.STRIPE_SECRET_KEY

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "x-admin-key"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())

	routes.RegisterRoutes(r)

	logrus.WithField("port", config.PORT).Info("TinyToken dashboard backend listening")
	r.Run(":" + config.PORT)
}

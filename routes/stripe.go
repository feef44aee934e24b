package routes

import (
	"telegroups-backend/handlers/stripe"

	"github.com/gin-gonic/gin"
)

func StripeRoutes(r *gin.Engine) {
	r.POST("/stripe/webhook", stripe.StripeWebhookHandler)
}

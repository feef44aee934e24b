package routes

import (
	"telegroups-backend/handlers/promotions"
	"telegroups-backend/middleware"

	"github.com/gin-gonic/gin"
)

func PromotionsRoutes(r *gin.Engine) {
	r.GET("/promotions/plans", promotions.GetPlans)

	promotionsRoutes := r.Group("/promotions")
	promotionsRoutes.Use(middleware.JWTAuth())
	{
		promotionsRoutes.POST("/checkout/:groupId", promotions.CreatePromotionCheckout)
		promotionsRoutes.GET("", promotions.GetMyPromotions)
	}
}

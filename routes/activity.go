package routes

import (
	"telegroups-backend/handlers/activity"
	"telegroups-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ActivityRoutes(r *gin.Engine) {
	activityRoutes := r.Group("/activity")
	activityRoutes.Use(middleware.JWTAuth())
	activityRoutes.GET("", activity.GetUserActivity)
}

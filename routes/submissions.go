package routes

import (
	"telegroups-backend/handlers/submissions"
	"telegroups-backend/middleware"

	"github.com/gin-gonic/gin"
)

func SubmissionsRoutes(r *gin.Engine) {
	// Routes du propriétaire
	submissionsRoutes := r.Group("/submissions")
	submissionsRoutes.Use(middleware.JWTAuth())
	{
		submissionsRoutes.POST("", submissions.Create)
		submissionsRoutes.GET("", submissions.GetMySubmissions)
		submissionsRoutes.DELETE("/:id", submissions.Delete)
		submissionsRoutes.POST("/:id/resubmit", submissions.Resubmit)
	}

	// Routes de modération (admin seulement)
	moderationRoutes := r.Group("/submissions")
	moderationRoutes.Use(middleware.JWTAuth())
	moderationRoutes.Use(middleware.AdminAuth())
	{
		moderationRoutes.GET("/all", submissions.GetAllSubmissions)
		moderationRoutes.GET("/stats", submissions.GetSubmissionStats)
		moderationRoutes.PUT("/:id/approve", submissions.Approve)
		moderationRoutes.PUT("/:id/reject", submissions.Reject)
	}
}

package routes

import (
	"telegroups-backend/handlers/groups"
	"telegroups-backend/middleware"

	"github.com/gin-gonic/gin"
)

func GroupsRoutes(r *gin.Engine) {
	// Le catalogue est public
	r.GET("/groups", groups.GetAllGroups)

	groupsRoutes := r.Group("/groups")
	groupsRoutes.GET("/reports", middleware.JWTAuth(), middleware.AdminAuth(), groups.GetGroupReports)
	groupsRoutes.GET("/:id", groups.GetGroupByID)
	groupsRoutes.POST("/:id/report", middleware.JWTAuth(), groups.ReportGroup)
}

package routes

import (
	"telegroups-backend/handlers/users"
	"telegroups-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	usersRoutes := r.Group("/users")
	usersRoutes.Use(middleware.JWTAuth())
	{
		usersRoutes.GET("/me", users.GetOwnProfile)
		usersRoutes.PUT("/me", users.UpdateOwnProfile)
		usersRoutes.POST("/me/picture", users.UploadProfilePicture)
		usersRoutes.GET("", middleware.AdminAuth(), users.GetAllUsers)
	}
}

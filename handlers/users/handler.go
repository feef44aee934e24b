package users

import (
	"net/http"

	"telegroups-backend/db"
	"telegroups-backend/models"
	"telegroups-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Get the current user's profile
// @Description Retrieves the profile of the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [get]
func GetOwnProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Update the current user's profile
// @Description Updates the full name and/or email of the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdate true "Profile fields"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 409 {object} map[string]string "error: Email already used"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/me [put]
func UpdateOwnProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Email != "" && input.Email != user.Email {
		if !utils.ValidateEmail(input.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}
		var existing models.User
		if err := db.DB.Where("email = ? AND id != ?", input.Email, userID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "This email is already used"})
			return
		}
		user.Email = input.Email
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}

	if err := db.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Profile updated successfully in UpdateOwnProfile")
	c.JSON(http.StatusOK, user)
}

// @Summary Upload a profile picture
// @Description Uploads the authenticated user's profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Profile picture (JPG, PNG, GIF, WEBP)"
// @Security BearerAuth
// @Success 200 {object} map[string]string "profilePicture: URL of the uploaded image"
// @Failure 400 {object} map[string]string "error: Invalid file"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/me/picture [post]
func UploadProfilePicture(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	file, err := c.FormFile("file")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile picture file is required"})
		return
	}

	pictureURL, err := utils.UploadProfilePicture(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading picture: " + err.Error()})
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).Update("profile_picture", pictureURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogSuccessWithUser(userID, "Profile picture uploaded successfully in UploadProfilePicture")
	c.JSON(http.StatusOK, gin.H{"profilePicture": pictureURL})
}

// @Summary Get all users (Admin)
// @Description Retrieves a list of all users (Admin access only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Forbidden - Admin access required"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users [get]
func GetAllUsers(c *gin.Context) {
	var users []models.User
	result := db.DB.Order("created_at DESC").Find(&users)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

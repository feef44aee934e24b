package activity

import (
	"net/http"
	"time"

	"telegroups-backend/db"
	"telegroups-backend/models"
	"telegroups-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Record appends an activity entry for a user and prunes the history
// beyond the cap. Purely advisory: errors are logged, never returned,
// so a failed write can never block the operation being recorded.
func Record(userID string, activityType models.ActivityType, entity, entityID, message string) {
	entry := models.Activity{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      activityType,
		Entity:    entity,
		EntityID:  entityID,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Could not record activity in Record")
		return
	}

	// Garde uniquement les N entrées les plus récentes par utilisateur
	pruneErr := db.DB.Where(
		"user_id = ? AND id NOT IN (?)",
		userID,
		db.DB.Model(&models.Activity{}).
			Select("id").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(models.MaxActivitiesPerUser),
	).Delete(&models.Activity{}).Error
	if pruneErr != nil {
		utils.LogErrorWithUser(userID, pruneErr, "Could not prune activity history in Record")
	}
}

// @Summary Get the current user's activity feed
// @Description Retrieves the most recent activity entries of the authenticated user (newest first)
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Activity
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /activity [get]
func GetUserActivity(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var activities []models.Activity
	result := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(models.MaxActivitiesPerUser).
		Find(&activities)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	c.JSON(http.StatusOK, activities)
}

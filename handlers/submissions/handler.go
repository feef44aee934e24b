package submissions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"telegroups-backend/db"
	"telegroups-backend/handlers/activity"
	"telegroups-backend/models"
	"telegroups-backend/utils"
	mailsmodels "telegroups-backend/utils/mails-models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Submit a group to the directory
// @Description Fetches the group metadata from Telegram and creates a submission. Admin submissions are approved and listed immediately.
// @Tags submissions
// @Accept json
// @Produce json
// @Param submission body models.SubmissionCreate true "Group submission"
// @Security BearerAuth
// @Success 201 {object} models.Submission
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Group not found on Telegram"
// @Failure 409 {object} map[string]string "error: Group already submitted"
// @Failure 502 {object} map[string]string "error: Metadata fetch failed"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /submissions [post]
func Create(c *gin.Context) {
	var input models.SubmissionCreate

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input: " + err.Error(),
		})
		return
	}

	userID := c.MustGet("user_id").(string)
	role := c.MustGet("role")

	if input.Category == models.CategoryAll || !models.IsValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category",
		})
		return
	}

	handle := utils.NormalizeGroupHandle(input.GroupUsername)

	// Un groupe déjà soumis (hors rejets) ou déjà listé ne peut pas être resoumis
	var existing models.Submission
	if err := db.DB.Where("group_username = ? AND status != ?", handle, models.SubmissionStatusRejected).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "This group has already been submitted",
		})
		return
	}

	var existingGroup models.Group
	if err := db.DB.Where("group_username = ?", handle).First(&existingGroup).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "This group is already listed in the directory",
		})
		return
	}

	meta, err := utils.FetchGroupMetadata(handle)
	if err != nil {
		if errors.Is(err, utils.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Group not found on Telegram",
			})
			return
		}
		utils.LogErrorWithUser(userID, err, "Error fetching group metadata in Create")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Error fetching group metadata: " + err.Error(),
		})
		return
	}

	isAdmin := role == string(models.AdminRole)

	status := models.SubmissionStatusPending
	if isAdmin {
		status = models.SubmissionStatusApproved
	}

	submission := models.Submission{
		UserID:           userID,
		GroupName:        meta.Name,
		GroupDescription: meta.Description,
		GroupUsername:    handle,
		GroupImage:       meta.Image,
		Category:         input.Category,
		Tags:             models.MergeTags(meta.Tags, input.Tags),
		Members:          meta.Members,
		Link:             meta.Link,
		Verified:         meta.Verified,
		Status:           status,
		SubmittedAt:      time.Now(),
	}

	// Pour un admin la soumission et l'entrée du catalogue forment une
	// unité atomique: pas de soumission approuvée sans entrée listée
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		if isAdmin {
			group := models.GroupFromSubmission(submission)
			if err := tx.Create(&group).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error persisting submission in Create")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	activity.Record(userID, models.ActivityCreate, "group", submission.ID,
		"Group "+submission.GroupName+" submitted ("+string(status)+")")

	utils.LogSuccessWithUser(userID, "Group submitted successfully in Create")
	c.JSON(http.StatusCreated, submission)
}

// @Summary Get the current user's submissions
// @Description Retrieves the submissions of the authenticated user, newest first
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Submission
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /submissions [get]
func GetMySubmissions(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var submissions []models.Submission
	result := db.DB.Where("user_id = ?", userID).
		Order("submitted_at DESC, id DESC").
		Find(&submissions)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// @Summary Get all submissions (Admin)
// @Description Retrieves all submissions, optionally filtered by status, newest first (Admin access only)
// @Tags submissions
// @Produce json
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Security BearerAuth
// @Success 200 {array} models.Submission
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Forbidden - Admin access required"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /submissions/all [get]
func GetAllSubmissions(c *gin.Context) {
	query := db.DB.Order("submitted_at DESC, id DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToUpper(status))
	}

	var submissions []models.Submission
	if result := query.Find(&submissions); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// @Summary Get submission counts by status (Admin)
// @Description Returns pending/approved/rejected counts, derived from the records on demand
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64 "pending, approved, rejected, total"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Forbidden - Admin access required"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /submissions/stats [get]
func GetSubmissionStats(c *gin.Context) {
	counts := map[models.SubmissionStatusType]int64{}
	for _, status := range []models.SubmissionStatusType{
		models.SubmissionStatusPending,
		models.SubmissionStatusApproved,
		models.SubmissionStatusRejected,
	} {
		var n int64
		if err := db.DB.Model(&models.Submission{}).Where("status = ?", status).Count(&n).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		counts[status] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"pending":  counts[models.SubmissionStatusPending],
		"approved": counts[models.SubmissionStatusApproved],
		"rejected": counts[models.SubmissionStatusRejected],
		"total":    counts[models.SubmissionStatusPending] + counts[models.SubmissionStatusApproved] + counts[models.SubmissionStatusRejected],
	})
}

// @Summary Approve a submission (Admin)
// @Description Approves a pending submission and creates its public catalog entry (Admin access only)
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Security BearerAuth
// @Success 200 {object} models.Group
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Forbidden - Admin access required"
// @Failure 404 {object} map[string]string "error: Submission not found"
// @Failure 409 {object} map[string]string "error: Submission is not pending"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /submissions/{id}/approve [put]
func Approve(c *gin.Context) {
	id := c.Param("id")
	adminID := c.MustGet("user_id").(string)

	var submission models.Submission
	if err := db.DB.First(&submission, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	now := time.Now()
	var group models.Group

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Le même handle peut avoir été listé entre temps via une autre
		// soumission: refuser avant de toucher l'index unique du catalogue
		var listed models.Group
		if err := tx.Where("group_username = ?", submission.GroupUsername).First(&listed).Error; err == nil {
			return errAlreadyListed
		}

		// La précondition PENDING est revérifiée au moment de l'écriture
		// pour éviter une double approbation concurrente
		result := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", id, models.SubmissionStatusPending).
			Updates(map[string]interface{}{
				"status":      models.SubmissionStatusApproved,
				"reviewed_at": now,
				"reviewed_by": adminID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNotPending
		}

		submission.Status = models.SubmissionStatusApproved
		submission.ReviewedAt = &now
		submission.ReviewedBy = adminID

		group = models.GroupFromSubmission(submission)
		return tx.Create(&group).Error
	})
	if err != nil {
		if errors.Is(err, errNotPending) {
			c.JSON(http.StatusConflict, gin.H{"error": "Submission is not pending"})
			return
		}
		if errors.Is(err, errAlreadyListed) {
			c.JSON(http.StatusConflict, gin.H{"error": "This group is already listed in the directory"})
			return
		}
		utils.LogErrorWithUser(adminID, err, "Error approving submission in Approve")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	notifyOwner(submission, "")
	activity.Record(submission.UserID, models.ActivityApprove, "submission", submission.ID,
		"Group "+submission.GroupName+" approved")

	utils.LogSuccessWithUser(adminID, "Submission approved successfully in Approve")
	c.JSON(http.StatusOK, group)
}

// @Summary Reject a submission (Admin)
// @Description Rejects a pending submission with a reason (Admin access only)
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param rejection body models.SubmissionReject true "Rejection reason"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Submission rejected"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Forbidden - Admin access required"
// @Failure 404 {object} map[string]string "error: Submission not found"
// @Failure 409 {object} map[string]string "error: Submission is not pending"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /submissions/{id}/reject [put]
func Reject(c *gin.Context) {
	id := c.Param("id")
	adminID := c.MustGet("user_id").(string)

	var input models.SubmissionReject
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if strings.TrimSpace(input.Reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason cannot be blank"})
		return
	}

	var submission models.Submission
	if err := db.DB.First(&submission, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	now := time.Now()
	result := db.DB.Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, models.SubmissionStatusPending).
		Updates(map[string]interface{}{
			"status":           models.SubmissionStatusRejected,
			"reviewed_at":      now,
			"reviewed_by":      adminID,
			"rejection_reason": input.Reason,
		})
	if result.Error != nil {
		utils.LogErrorWithUser(adminID, result.Error, "Error rejecting submission in Reject")
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Submission is not pending"})
		return
	}

	submission.Status = models.SubmissionStatusRejected
	notifyOwner(submission, input.Reason)
	activity.Record(submission.UserID, models.ActivityReject, "submission", submission.ID,
		"Group "+submission.GroupName+" rejected: "+input.Reason)

	utils.LogSuccessWithUser(adminID, "Submission rejected successfully in Reject")
	c.JSON(http.StatusOK, gin.H{"message": "Submission rejected"})
}

// @Summary Resubmit a rejected submission
// @Description Puts a rejected submission back in the moderation queue. Only the owner can resubmit.
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Security BearerAuth
// @Success 200 {object} models.Submission
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Only the owner can resubmit"
// @Failure 404 {object} map[string]string "error: Submission not found"
// @Failure 409 {object} map[string]string "error: Submission is not rejected"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /submissions/{id}/resubmit [post]
func Resubmit(c *gin.Context) {
	id := c.Param("id")
	userID := c.MustGet("user_id").(string)

	var submission models.Submission
	if err := db.DB.First(&submission, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if submission.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can resubmit a submission"})
		return
	}

	// Le handle peut avoir été resoumis ou approuvé ailleurs depuis le
	// rejet: mêmes contrôles de doublon qu'à la création
	var conflicting models.Submission
	if err := db.DB.Where("group_username = ? AND id != ? AND status != ?",
		submission.GroupUsername, submission.ID, models.SubmissionStatusRejected).
		First(&conflicting).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This group has already been submitted"})
		return
	}

	var listed models.Group
	if err := db.DB.Where("group_username = ?", submission.GroupUsername).First(&listed).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This group is already listed in the directory"})
		return
	}

	now := time.Now()
	result := db.DB.Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, models.SubmissionStatusRejected).
		Updates(map[string]interface{}{
			"status":           models.SubmissionStatusPending,
			"submitted_at":     now,
			"reviewed_at":      nil,
			"reviewed_by":      "",
			"rejection_reason": "",
		})
	if result.Error != nil {
		utils.LogErrorWithUser(userID, result.Error, "Error resubmitting submission in Resubmit")
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Submission is not rejected"})
		return
	}

	submission.Status = models.SubmissionStatusPending
	submission.SubmittedAt = now
	submission.ReviewedAt = nil
	submission.ReviewedBy = ""
	submission.RejectionReason = ""

	activity.Record(userID, models.ActivityResubmit, "submission", submission.ID,
		"Group "+submission.GroupName+" resubmitted")

	utils.LogSuccessWithUser(userID, "Submission resubmitted successfully in Resubmit")
	c.JSON(http.StatusOK, submission)
}

// @Summary Delete a pending submission
// @Description Deletes a submission that has not been reviewed yet. Only the owner can delete it.
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Submission deleted"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Only the owner can delete"
// @Failure 404 {object} map[string]string "error: Submission not found"
// @Failure 409 {object} map[string]string "error: Submission is not pending"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /submissions/{id} [delete]
func Delete(c *gin.Context) {
	id := c.Param("id")
	userID := c.MustGet("user_id").(string)

	var submission models.Submission
	if err := db.DB.First(&submission, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if submission.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete a submission"})
		return
	}

	result := db.DB.Where("id = ? AND status = ?", id, models.SubmissionStatusPending).
		Delete(&models.Submission{})
	if result.Error != nil {
		utils.LogErrorWithUser(userID, result.Error, "Error deleting submission in Delete")
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending submissions can be deleted"})
		return
	}

	activity.Record(userID, models.ActivityDelete, "submission", submission.ID,
		"Group "+submission.GroupName+" submission deleted")

	utils.LogSuccessWithUser(userID, "Submission deleted successfully in Delete")
	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted"})
}

var (
	errNotPending    = errors.New("submission is not pending")
	errAlreadyListed = errors.New("group already listed in the directory")
)

// notifyOwner envoie l'email de décision de modération au propriétaire.
// Best effort: une erreur de lookup est loguée, jamais propagée.
func notifyOwner(submission models.Submission, reason string) {
	var owner models.User
	if err := db.DB.First(&owner, "id = ?", submission.UserID).Error; err != nil {
		utils.LogErrorWithUser(submission.UserID, err, "Could not load owner for notification in notifyOwner")
		return
	}

	mailsmodels.SubmissionStatusUpdate(mailsmodels.SubmissionStatusUpdateData{
		FullName:        owner.FullName,
		Email:           owner.Email,
		GroupName:       submission.GroupName,
		Status:          submission.Status,
		RejectionReason: reason,
	})
}

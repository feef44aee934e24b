package groups

import (
	"net/http"
	"sort"
	"time"

	"telegroups-backend/db"
	"telegroups-backend/handlers/activity"
	"telegroups-backend/models"
	"telegroups-backend/utils"

	"github.com/gin-gonic/gin"
)

// featuredGroupIDs returns the set of groups with an active, unexpired
// promotion. The stored promotion status may lag expiry, so the end
// date is always checked against now.
func featuredGroupIDs(now time.Time) (map[string]bool, error) {
	var groupIDs []string
	err := db.DB.Model(&models.Promotion{}).
		Where("status = ? AND end_date >= ?", models.PromotionActive, now).
		Distinct().
		Pluck("group_id", &groupIDs).Error
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		set[id] = true
	}
	return set, nil
}

// IsFeatured reports whether a group has an active, unexpired promotion.
func IsFeatured(groupID string, now time.Time) (bool, error) {
	var n int64
	err := db.DB.Model(&models.Promotion{}).
		Where("group_id = ? AND status = ? AND end_date >= ?", groupID, models.PromotionActive, now).
		Count(&n).Error
	return n > 0, err
}

// @Summary List the public group catalog
// @Description Retrieves the approved groups, featured entries first. Category "All" or none returns every category.
// @Tags groups
// @Produce json
// @Param category query string false "Filter by category"
// @Param featured query bool false "Only featured groups"
// @Success 200 {array} models.Group
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /groups [get]
func GetAllGroups(c *gin.Context) {
	query := db.DB.Order("created_at DESC")

	if category := c.Query("category"); category != "" && category != models.CategoryAll {
		query = query.Where("category = ?", category)
	}

	var groups []models.Group
	if result := query.Find(&groups); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	featured, err := featuredGroupIDs(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i := range groups {
		groups[i].Featured = featured[groups[i].ID]
	}

	// Les groupes mis en avant passent devant, l'ordre par date est conservé
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Featured && !groups[j].Featured
	})

	if c.Query("featured") == "true" {
		onlyFeatured := groups[:0]
		for _, g := range groups {
			if g.Featured {
				onlyFeatured = append(onlyFeatured, g)
			}
		}
		groups = onlyFeatured
	}

	c.JSON(http.StatusOK, groups)
}

// @Summary Get a group by id
// @Description Retrieves a single catalog entry with its computed featured flag
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} models.Group
// @Failure 404 {object} map[string]string "error: Group not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /groups/{id} [get]
func GetGroupByID(c *gin.Context) {
	id := c.Param("id")

	var group models.Group
	if err := db.DB.First(&group, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	isFeatured, err := IsFeatured(group.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	group.Featured = isFeatured

	c.JSON(http.StatusOK, group)
}

// @Summary Report a listed group
// @Description Creates a report against a catalog entry
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param report body models.GroupReportCreate true "Report reason"
// @Security BearerAuth
// @Success 201 {object} map[string]string "message: Report submitted"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Group not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /groups/{id}/report [post]
func ReportGroup(c *gin.Context) {
	id := c.Param("id")
	userID := c.MustGet("user_id").(string)

	var input models.GroupReportCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var group models.Group
	if err := db.DB.First(&group, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	report := models.GroupReport{
		GroupID:    group.ID,
		ReportedBy: userID,
		Reason:     input.Reason,
		Status:     models.ReportPending,
	}

	if err := db.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	activity.Record(userID, models.ActivityReport, "group", group.ID,
		"Group "+group.GroupName+" reported")

	utils.LogSuccessWithUser(userID, "Group reported successfully in ReportGroup")
	c.JSON(http.StatusCreated, gin.H{"message": "Report submitted"})
}

// @Summary Get open group reports (Admin)
// @Description Retrieves the pending reports, newest first (Admin access only)
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.GroupReport
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Forbidden - Admin access required"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /groups/reports [get]
func GetGroupReports(c *gin.Context) {
	var reports []models.GroupReport
	result := db.DB.Where("status = ?", models.ReportPending).
		Order("created_at DESC").
		Find(&reports)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	c.JSON(http.StatusOK, reports)
}

package controllers

import (
	"context"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/models"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/notify"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/utils"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/vote"
)

type ActivityController struct {
	DB     *gorm.DB
	Fanout *notify.Fanout
}

type CreateActivityRequest struct {
	PlaceName   string   `json:"placeName" binding:"required"`
	Description string   `json:"description" binding:"required"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Zip         string   `json:"zip"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags"`
	ImageKeys   []string `json:"imageKeys"`
}

type UpdateActivityRequest struct {
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
	Tags        []string `json:"tags"`
}

// fanoutDeadline bounds the whole post-creation notification dispatch;
// individual sends get a shorter per-message timeout inside the fan-out.
const fanoutDeadline = 30 * time.Second

func NewActivityController(db *gorm.DB, fanout *notify.Fanout) *ActivityController {
	return &ActivityController{DB: db, Fanout: fanout}
}

// validRating allows 0-5 in half-point steps. Advisory only, but garbage
// is rejected at the boundary.
func validRating(r float64) bool {
	if r < 0 || r > 5 {
		return false
	}
	return math.Mod(r*2, 1) == 0
}

func validZip(zip string) bool {
	if len(zip) != 5 {
		return false
	}
	for _, ch := range zip {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// CreateActivity godoc
// @Summary Create a new activity
// @Description Creates an activity and notifies users subscribed to its ZIP code
// @Tags activities
// @Accept json
// @Produce json
// @Param activity body CreateActivityRequest true "Activity creation request"
// @Success 201 {object} models.Activity
// @Router /activities [post]
func (ac *ActivityController) CreateActivity(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validRating(req.Rating) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5 in 0.5 increments"})
		return
	}

	if req.Zip != "" && !validZip(req.Zip) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Zip must be a 5-digit postal code"})
		return
	}

	if len(req.ImageKeys) > models.MaxImagesPerActivity {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Too many images",
			"limit": models.MaxImagesPerActivity,
		})
		return
	}

	// Every attached image must be a confirmed upload owned by the actor.
	var images []models.ActivityImage
	if len(req.ImageKeys) > 0 {
		if err := ac.DB.Where("object_key IN ? AND user_id = ? AND activity_id IS NULL", req.ImageKeys, user.UserID).
			Find(&images).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify images"})
			return
		}
		if len(images) != len(req.ImageKeys) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "One or more images are not confirmed uploads owned by you"})
			return
		}
	}

	imageURLs := make([]string, 0, len(images))
	for _, img := range images {
		imageURLs = append(imageURLs, img.URL)
	}

	activity := models.Activity{
		PlaceName:   req.PlaceName,
		Description: req.Description,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Rating:      req.Rating,
		Tags:        req.Tags,
		ImageURLs:   imageURLs,
		UserID:      user.UserID,
		UserName:    user.Username,
		CreatedAt:   time.Now(),
	}

	tx := ac.DB.Begin()

	if err := tx.Create(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	for i := range images {
		if err := tx.Model(&images[i]).Update("activity_id", activity.ID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach images"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	// Notification fan-out runs after the insert commits, detached from
	// the request with its own deadline.
	if ac.Fanout != nil {
		go func(zip, placeName string) {
			ctx, cancel := context.WithTimeout(context.Background(), fanoutDeadline)
			defer cancel()
			if _, err := ac.Fanout.Dispatch(ctx, zip, placeName); err != nil {
				log.Printf("activity %d notification fan-out failed: %v", activity.ID, err)
			}
		}(activity.Zip, activity.PlaceName)
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    activity,
		Message: "Activity created successfully",
	})
}

// GetActivities godoc
// @Summary Browse activities
// @Description Lists activities with text/tag/location filters and sorting
// @Tags activities
// @Produce json
// @Param q query string false "Free-text match on place name or description"
// @Param tag query string false "Filter by tag"
// @Param city query string false "Filter by city"
// @Param state query string false "Filter by state"
// @Param sortBy query string false "newest | rating | top"
// @Success 200 {object} StandardResponse
// @Router /activities [get]
func (ac *ActivityController) GetActivities(c *gin.Context) {
	user := utils.GetUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	db := ac.DB.Model(&models.Activity{})

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		pattern := "%" + q + "%"
		db = db.Where("place_name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		db = db.Where("? = ANY(tags)", tag)
	}
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		db = db.Where("city ILIKE ?", city)
	}
	if state := strings.TrimSpace(c.Query("state")); state != "" {
		db = db.Where("state ILIKE ?", state)
	}

	switch c.DefaultQuery("sortBy", "newest") {
	case "rating":
		db = db.Order("rating DESC, created_at DESC")
	case "top":
		db = db.Order("(upvotes - downvotes) DESC, created_at DESC")
	default:
		db = db.Order("created_at DESC")
	}

	var total int64
	db.Count(&total)

	var activities []models.Activity
	if err := db.Offset(offset).Limit(pageSize).Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	voteStates := ac.voteStatesFor(user.UserID, activities)

	items := make([]gin.H, 0, len(activities))
	for _, activity := range activities {
		items = append(items, activityListItem(activity, voteStates[activity.ID]))
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    items,
		Pagination: &PaginationMeta{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// GetActivityDetail godoc
// @Summary Get one activity with its comments
// @Tags activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} StandardResponse
// @Router /activities/{id} [get]
func (ac *ActivityController) GetActivityDetail(c *gin.Context) {
	user := utils.GetUser(c)
	activityID := c.Param("id")

	var activity models.Activity
	if err := ac.DB.First(&activity, activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	var comments []models.Comment
	ac.DB.Where("activity_id = ?", activity.ID).Order("created_at ASC").Find(&comments)

	state := ac.voteStateFor(user.UserID, activity.ID)

	detail := activityListItem(activity, state)
	detail["comments"] = comments

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: detail})
}

// GetUserActivities lists one user's activities, newest first.
func (ac *ActivityController) GetUserActivities(c *gin.Context) {
	user := utils.GetUser(c)
	targetID := c.Param("userId")

	var activities []models.Activity
	if err := ac.DB.Where("user_id = ?", targetID).Order("created_at DESC").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	voteStates := ac.voteStatesFor(user.UserID, activities)

	items := make([]gin.H, 0, len(activities))
	for _, activity := range activities {
		items = append(items, activityListItem(activity, voteStates[activity.ID]))
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: items})
}

// UpdateActivity lets the owner change the mutable fields. Vote counters
// are never touched here.
func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	user := utils.GetUser(c)
	activityID := c.Param("id")

	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var activity models.Activity
	if err := ac.DB.First(&activity, activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	if activity.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own activities"})
		return
	}

	updates := map[string]interface{}{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Rating != nil {
		if !validRating(*req.Rating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5 in 0.5 increments"})
			return
		}
		updates["rating"] = *req.Rating
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := ac.DB.Model(&activity).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: activity, Message: "Activity updated successfully"})
}

// DeleteActivity removes an activity and everything hanging off it
// (comments, votes, image rows) in one transaction.
func (ac *ActivityController) DeleteActivity(c *gin.Context) {
	user := utils.GetUser(c)
	activityID := c.Param("id")

	var activity models.Activity
	if err := ac.DB.First(&activity, activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	if activity.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own activities"})
		return
	}

	tx := ac.DB.Begin()

	if err := tx.Where("activity_id = ?", activity.ID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}
	if err := tx.Where("activity_id = ?", activity.ID).Delete(&models.Vote{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}
	if err := tx.Where("activity_id = ?", activity.ID).Delete(&models.ActivityImage{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}
	if err := tx.Delete(&activity).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Activity deleted successfully"})
}

// ---- helpers ---------------------------------------------------------------

// voteStatesFor loads the actor's standing votes for a page of activities
// so every list item carries authoritative hasUpvoted/hasDownvoted flags.
func (ac *ActivityController) voteStatesFor(userID uint, activities []models.Activity) map[uint]vote.State {
	states := make(map[uint]vote.State, len(activities))
	if len(activities) == 0 {
		return states
	}

	ids := make([]uint, 0, len(activities))
	for _, activity := range activities {
		ids = append(ids, activity.ID)
	}

	var votes []models.Vote
	ac.DB.Where("user_id = ? AND activity_id IN ?", userID, ids).Find(&votes)

	for _, v := range votes {
		if v.Value == models.VoteValueUp {
			states[v.ActivityID] = vote.Upvoted
		} else {
			states[v.ActivityID] = vote.Downvoted
		}
	}
	return states
}

func (ac *ActivityController) voteStateFor(userID, activityID uint) vote.State {
	var v models.Vote
	if err := ac.DB.Where("user_id = ? AND activity_id = ?", userID, activityID).First(&v).Error; err != nil {
		return vote.Neutral
	}
	if v.Value == models.VoteValueUp {
		return vote.Upvoted
	}
	return vote.Downvoted
}

func activityListItem(activity models.Activity, state vote.State) gin.H {
	return gin.H{
		"id":           activity.ID,
		"placeName":    activity.PlaceName,
		"description":  activity.Description,
		"city":         activity.City,
		"state":        activity.State,
		"zip":          activity.Zip,
		"latitude":     activity.Latitude,
		"longitude":    activity.Longitude,
		"rating":       activity.Rating,
		"tags":         activity.Tags,
		"imageUrls":    activity.ImageURLs,
		"upvotes":      activity.Upvotes,
		"downvotes":    activity.Downvotes,
		"userId":       activity.UserID,
		"userName":     activity.UserName,
		"createdAt":    activity.CreatedAt,
		"hasUpvoted":   state == vote.Upvoted,
		"hasDownvoted": state == vote.Downvoted,
	}
}

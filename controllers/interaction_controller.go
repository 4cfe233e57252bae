package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/models"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/utils"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/vote"
)

type InteractionController struct {
	DB *gorm.DB
}

func NewInteractionController(db *gorm.DB) *InteractionController {
	return &InteractionController{DB: db}
}

type VoteRequest struct {
	Action string `json:"action" binding:"required,oneof=upvote downvote"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// VoteActivity godoc
// @Summary Vote on an activity
// @Description Toggles or switches the caller's upvote/downvote; counters and the vote row change in one transaction
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param vote body VoteRequest true "upvote or downvote"
// @Success 200 {object} StandardResponse
// @Router /activities/{id}/vote [post]
func (ic *InteractionController) VoteActivity(c *gin.Context) {
	user := utils.GetUser(c)

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := vote.ParseAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activityID := c.Param("id")
	var activity models.Activity
	if err := ic.DB.First(&activity, activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	var existing models.Vote
	hasVote := ic.DB.Where("activity_id = ? AND user_id = ?", activity.ID, user.UserID).
		First(&existing).Error == nil

	current, err := vote.StateOf(
		hasVote && existing.Value == models.VoteValueUp,
		hasVote && existing.Value == models.VoteValueDown,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt vote state"})
		return
	}

	result, err := vote.Apply(current, action)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute vote"})
		return
	}

	// Counter deltas and the vote row change together or not at all.
	tx := ic.DB.Begin()

	if result.UpvoteDelta != 0 || result.DownvoteDelta != 0 {
		err := tx.Model(&models.Activity{}).Where("id = ?", activity.ID).Updates(map[string]interface{}{
			"upvotes":   gorm.Expr("upvotes + ?", result.UpvoteDelta),
			"downvotes": gorm.Expr("downvotes + ?", result.DownvoteDelta),
		}).Error
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
			return
		}
	}

	switch result.NewState {
	case vote.Neutral:
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
			return
		}
	case vote.Upvoted, vote.Downvoted:
		value := models.VoteValueUp
		if result.NewState == vote.Downvoted {
			value = models.VoteValueDown
		}
		if hasVote {
			if err := tx.Model(&existing).Update("value", value).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
				return
			}
		} else {
			newVote := models.Vote{
				ActivityID: activity.ID,
				UserID:     user.UserID,
				Value:      value,
				CreatedAt:  time.Now(),
			}
			if err := tx.Create(&newVote).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		return
	}

	// Re-read so the response carries the authoritative counters.
	var updated models.Activity
	if err := ic.DB.First(&updated, activity.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated counts"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"upvotes":      updated.Upvotes,
			"downvotes":    updated.Downvotes,
			"hasUpvoted":   result.NewState == vote.Upvoted,
			"hasDownvoted": result.NewState == vote.Downvoted,
		},
	})
}

// CreateComment godoc
// @Summary Comment on an activity
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Success 201 {object} models.Comment
// @Router /activities/{id}/comments [post]
func (ic *InteractionController) CreateComment(c *gin.Context) {
	user := utils.GetUser(c)

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activityID := c.Param("id")
	var activity models.Activity
	if err := ic.DB.First(&activity, activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	comment := models.Comment{
		Text:       req.Text,
		UserID:     user.UserID,
		UserName:   user.Username,
		ActivityID: activity.ID,
		CreatedAt:  time.Now(),
	}

	if err := ic.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: comment})
}

// GetComments returns an activity's comments oldest first.
func (ic *InteractionController) GetComments(c *gin.Context) {
	activityID := c.Param("id")

	var activity models.Activity
	if err := ic.DB.First(&activity, activityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	var comments []models.Comment
	if err := ic.DB.Where("activity_id = ?", activity.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: comments})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/models"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoUrl"`
}

type NotificationSettingsRequest struct {
	Allow bool   `json:"allow"`
	Zip   string `json:"zip"`
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var dbUser models.User
	if err := uc.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var activityCount int64
	uc.DB.Model(&models.Activity{}).Where("user_id = ?", dbUser.ID).Count(&activityCount)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":          dbUser.ID,
			"username":    dbUser.Username,
			"email":       dbUser.Email,
			"displayName": dbUser.DisplayName,
			"photoUrl":    dbUser.PhotoURL,
			"provider":    dbUser.Provider,
			"createdAt":   dbUser.CreatedAt,
			"notiSettings": gin.H{
				"allow": dbUser.NotifyByEmail,
				"zip":   dbUser.NotifyZip,
			},
			"activityCount": activityCount,
		},
	})
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.User
	if err := uc.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.DisplayName != nil {
		updates["display_name"] = *input.DisplayName
	}
	if input.PhotoURL != nil {
		updates["photo_url"] = *input.PhotoURL
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := uc.DB.Model(&dbUser).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":          dbUser.ID,
			"username":    dbUser.Username,
			"displayName": dbUser.DisplayName,
			"photoUrl":    dbUser.PhotoURL,
		},
	})
}

// UpdateNotificationSettings godoc
// @Summary Update email notification preference
// @Description Enabling notifications requires a valid 5-digit ZIP; the fan-out trusts rows written here
// @Tags users
// @Accept json
// @Produce json
// @Param settings body NotificationSettingsRequest true "Notification settings"
// @Success 200 {object} map[string]interface{}
// @Router /profile/notifications [put]
func (uc *UserController) UpdateNotificationSettings(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input NotificationSettingsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// allow=true with no confirmed ZIP would make the fan-out query
	// meaningless, so it never reaches the database.
	if input.Allow && !validZip(input.Zip) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "A 5-digit ZIP code is required to enable notifications"})
		return
	}
	if !input.Allow {
		input.Zip = ""
	}

	updates := map[string]interface{}{
		"notify_by_email": input.Allow,
		"notify_zip":      input.Zip,
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", user.UserID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"notiSettings": gin.H{
			"allow": input.Allow,
			"zip":   input.Zip,
		},
	})
}

// GetUserPublicProfile returns the slice of a profile other users can see.
func (uc *UserController) GetUserPublicProfile(c *gin.Context) {
	userID := c.Param("userId")

	var targetUser models.User
	if err := uc.DB.First(&targetUser, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var activityCount int64
	uc.DB.Model(&models.Activity{}).Where("user_id = ?", targetUser.ID).Count(&activityCount)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":            targetUser.ID,
			"username":      targetUser.Username,
			"displayName":   targetUser.DisplayName,
			"photoUrl":      targetUser.PhotoURL,
			"createdAt":     targetUser.CreatedAt,
			"activityCount": activityCount,
		},
	})
}

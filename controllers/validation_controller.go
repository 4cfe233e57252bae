package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/models"
)

type ValidationController struct {
	DB *gorm.DB
}

func NewValidationController(db *gorm.DB) *ValidationController {
	return &ValidationController{DB: db}
}

// ValidateUsername reports whether a username is already taken; the
// signup form polls this before submitting.
func (vc *ValidationController) ValidateUsername(c *gin.Context) {
	username := c.Param("username")

	if err := validateUsernamePattern(username); err != nil {
		c.JSON(http.StatusOK, gin.H{"exists": false, "valid": false, "error": err.Error()})
		return
	}

	var user models.User
	result := vc.DB.Where("username = ?", username).First(&user)

	if result.Error == nil {
		c.JSON(http.StatusOK, gin.H{"exists": true, "valid": true})
	} else if result.Error == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{"exists": false, "valid": true})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
	}
}

func (vc *ValidationController) ValidateEmail(c *gin.Context) {
	email := c.Param("email")

	var user models.User
	result := vc.DB.Where("email = ?", email).First(&user)

	if result.Error == nil {
		c.JSON(http.StatusOK, gin.H{"exists": true})
	} else if result.Error == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{"exists": false})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
	}
}

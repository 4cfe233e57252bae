package controllers

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/config"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/models"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/utils"
)

type AuthController struct {
	DB               *gorm.DB
	GoogleConfig     *config.GoogleConfig
	UploadController *UploadController
}

func NewAuthController(db *gorm.DB, uploadController *UploadController) *AuthController {
	return &AuthController{
		DB:               db,
		GoogleConfig:     config.NewGoogleConfig(),
		UploadController: uploadController,
	}
}

var usernameStart = regexp.MustCompile(`^[a-zA-Z]`)
var usernameChars = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// reserved usernames that would collide with routes or confuse support
var reservedUsernames = []string{"admin", "root", "api", "www", "mail", "ftp", "test", "demo", "user", "guest", "null", "undefined"}

func validateUsernamePattern(username string) error {
	trimmedUsername := strings.TrimSpace(username)

	if len(trimmedUsername) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(trimmedUsername) > 20 {
		return fmt.Errorf("username must be no more than 20 characters long")
	}
	if !usernameStart.MatchString(trimmedUsername) {
		return fmt.Errorf("username must start with a letter")
	}
	if !usernameChars.MatchString(trimmedUsername) {
		return fmt.Errorf("username can only contain letters, numbers, and underscores")
	}
	for _, reservedWord := range reservedUsernames {
		if strings.ToLower(trimmedUsername) == reservedWord {
			return fmt.Errorf("this username is reserved and cannot be used")
		}
	}
	return nil
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username      string `json:"username" binding:"required"`
		Email         string `json:"email" binding:"required,email"`
		Password      string `json:"password" binding:"required,min=6"`
		DisplayName   string `json:"displayName"`
		AvatarTempKey string `json:"avatarTempKey"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if err := validateUsernamePattern(input.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}

	hashedPasswordStr := string(hashedPassword)

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user := models.User{
		Username:    input.Username,
		Email:       input.Email,
		Password:    &hashedPasswordStr,
		DisplayName: displayName,
		GoogleID:    nil,
		Provider:    "email",
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists", "success": false})
		return
	}

	var finalAvatarURL string
	if input.AvatarTempKey != "" {
		finalAvatarURL = ac.confirmAvatarUpload(input.AvatarTempKey, user.ID)
		if finalAvatarURL != "" {
			user.PhotoURL = finalAvatarURL
			ac.DB.Save(&user)
		}
	}

	response := gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"username":    user.Username,
			"displayName": user.DisplayName,
		},
	}

	if finalAvatarURL != "" {
		response["user"].(gin.H)["photoUrl"] = finalAvatarURL
	}

	c.JSON(http.StatusCreated, response)
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Password == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ac.issueTokens(c, &user)
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var refreshToken models.RefreshToken
	if err := ac.DB.Where("token = ? AND revoked = ?", input.RefreshToken, false).First(&refreshToken).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "success": false})
		return
	}

	if time.Now().After(refreshToken.ExpirationDate) {
		ac.DB.Delete(&refreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired", "success": false})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, refreshToken.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "success": false})
		return
	}

	accessToken, newRefreshToken, err := utils.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	refreshToken.Token = newRefreshToken
	refreshToken.ExpirationDate = time.Now().Add(utils.RefreshTokenTTL)
	ac.DB.Save(&refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "username": user.Username, "photoUrl": user.PhotoURL},
		"success":       true,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	// Unknown tokens still log out cleanly
	var refreshToken models.RefreshToken
	result := ac.DB.Where("token = ?", input.RefreshToken).Delete(&refreshToken)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully", "success": true})
}

func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var input struct {
		IDToken     string `json:"id_token"`
		AccessToken string `json:"access_token"`
		Code        string `json:"code"`
		RedirectURI string `json:"redirect_uri"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var userInfo *config.GoogleUserInfo
	var err error

	if input.Code != "" && input.RedirectURI != "" {
		token, exchangeErr := ac.GoogleConfig.ExchangeCode(c.Request.Context(), input.Code)
		if exchangeErr != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange code for token", "success": false})
			return
		}
		userInfo, err = ac.GoogleConfig.GetUserInfo(token.AccessToken)
	} else if input.IDToken != "" {
		userInfo, err = ac.GoogleConfig.VerifyIDToken(input.IDToken)
	} else if input.AccessToken != "" {
		userInfo, err = ac.GoogleConfig.GetUserInfo(input.AccessToken)
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either code with redirect_uri, id_token, or access_token is required", "success": false})
		return
	}

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token", "success": false})
		return
	}

	var user models.User
	userExists := ac.DB.Where("google_id = ? OR email = ?", userInfo.ID, userInfo.Email).First(&user).Error == nil

	if userExists {
		if user.GoogleID == nil || *user.GoogleID == "" {
			user.GoogleID = &userInfo.ID
			user.Provider = "google"
			if user.PhotoURL == "" && userInfo.Picture != "" {
				user.PhotoURL = userInfo.Picture
			}
			ac.DB.Save(&user)
		}
	} else {
		// Derive a unique username from the email address
		username := strings.Split(userInfo.Email, "@")[0]
		counter := 1
		for {
			var existingUser models.User
			if ac.DB.Where("username = ?", username).First(&existingUser).Error != nil {
				break
			}
			username = strings.Split(userInfo.Email, "@")[0] + strconv.Itoa(counter)
			counter++
		}

		user = models.User{
			Username:    username,
			Email:       userInfo.Email,
			DisplayName: userInfo.Name,
			PhotoURL:    userInfo.Picture,
			GoogleID:    &userInfo.ID,
			Provider:    "google",
		}

		if err := ac.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "success": false})
			return
		}
	}

	ac.issueTokens(c, &user)
}

// issueTokens mints a token pair, persists the refresh token, and writes
// the standard login response.
func (ac *AuthController) issueTokens(c *gin.Context, user *models.User) {
	accessToken, refreshToken, err := utils.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: time.Now().Add(utils.RefreshTokenTTL),
	})

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          gin.H{"id": user.ID, "email": user.Email, "username": user.Username, "photoUrl": user.PhotoURL},
		"success":       true,
	})
}

func (ac *AuthController) confirmAvatarUpload(tempKey string, userID uint) string {
	if ac.UploadController == nil {
		return ""
	}

	permanentKey := ac.UploadController.generateAvatarKey(userID, tempKey)

	err := ac.UploadController.moveFile(tempKey, permanentKey)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%s/%s", ac.UploadController.R2Config.PublicURL, permanentKey)
}

package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/config"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/models"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/utils"
)

type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type AvatarConfirmRequest struct {
	TempKey string `json:"tempKey" binding:"required"`
	UserID  uint   `json:"userId" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type UploadCompleteRequest struct {
	Key string `json:"key" binding:"required"`
}

const maxImageBytes = 10 * 1024 * 1024 // 10MB per photo

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// GetPresignedURL godoc
// @Summary Get a presigned photo upload URL
// @Description Validates type/size and the caller's image quota, then returns a presigned PUT URL
// @Tags uploads
// @Accept json
// @Produce json
// @Param upload body PresignedURLRequest true "Upload request"
// @Success 200 {object} PresignedURLResponse
// @Router /uploads/presign [post]
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)
	var req PresignedURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}

	if req.FileSize > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	// The quota lives here, not in the client: count confirmed uploads.
	var count int64
	if err := uc.DB.Model(&models.ActivityImage{}).Where("user_id = ?", user.UserID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check image quota"})
		return
	}
	if count >= models.MaxImagesPerUser {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Image limit reached",
			"limit": models.MaxImagesPerUser,
		})
		return
	}

	key := uc.generateImageKey(user.UserID, req.FileName)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		},
		Message: "Presigned URL generated successfully",
	})
}

// ConfirmUpload verifies the object landed in the bucket and records it;
// the recorded row is what the quota and activity attachment checks read.
func (uc *UploadController) ConfirmUpload(c *gin.Context) {
	user := utils.GetUser(c)
	var req UploadCompleteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !uc.verifyFileOwnership(req.Key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	fileInfo, err := uc.getFileInfo(req.Key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found in storage"})
		return
	}

	image := models.ActivityImage{
		UserID:    user.UserID,
		ObjectKey: req.Key,
		URL:       fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, req.Key),
		SizeBytes: fileInfo.ContentLength,
	}

	if err := uc.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record upload"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"key":      image.ObjectKey,
			"fileUrl":  image.URL,
			"fileSize": image.SizeBytes,
		},
		Message: "Upload confirmed successfully",
	})
}

func (uc *UploadController) DeleteFile(c *gin.Context) {
	user := utils.GetUser(c)
	key := c.Param("key")

	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required"})
		return
	}

	if !uc.verifyFileOwnership(key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := uc.deleteFile(key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	uc.DB.Where("object_key = ?", key).Delete(&models.ActivityImage{})

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

func (uc *UploadController) GetAvatarTempURL(c *gin.Context) {
	var req PresignedURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) || req.FileSize > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid avatar file type or size"})
		return
	}

	key := uc.generateTempAvatarKey(req.FileName)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 1800,
		},
		Message: "Temporary avatar upload URL generated successfully",
	})
}

func (uc *UploadController) ConfirmAvatarUpload(c *gin.Context) {
	var req AvatarConfirmRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := uc.verifyFileExists(req.TempKey)
	if err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Temporary avatar file not found"})
		return
	}

	permanentKey := uc.generateAvatarKey(req.UserID, req.TempKey)

	if err := uc.moveFile(req.TempKey, permanentKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm avatar upload"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"key":     permanentKey,
			"fileUrl": fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, permanentKey),
			"userId":  req.UserID,
		},
		Message: "Avatar upload confirmed successfully",
	})
}

func (uc *UploadController) CleanupTempAvatar(c *gin.Context) {
	tempKey := c.Param("tempKey")

	if tempKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Temp key is required"})
		return
	}

	if !strings.HasPrefix(tempKey, "temp/avatars/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid temp key format"})
		return
	}

	if err := uc.deleteFile(tempKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cleanup temporary file"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Temporary avatar cleaned up successfully",
	})
}

// ---- helpers ---------------------------------------------------------------

func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
	}
	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}

func (uc *UploadController) generateImageKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	id := uuid.New().String()
	timestamp := time.Now().Unix()

	return fmt.Sprintf("uploads/activities/%d/%d_%s%s", userID, timestamp, id, ext)
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (uc *UploadController) verifyFileExists(key string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := uc.R2Client.HeadObject(context.TODO(), input)
	if err != nil {
		return false, nil
	}

	return true, nil
}

func (uc *UploadController) getFileInfo(key string) (*s3.HeadObjectOutput, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}

	return uc.R2Client.HeadObject(context.TODO(), input)
}

func (uc *UploadController) deleteFile(key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := uc.R2Client.DeleteObject(context.TODO(), input)
	return err
}

// verifyFileOwnership extracts the user ID from the key format
// uploads/activities/{userID}/{timestamp}_{uuid}.{ext}
func (uc *UploadController) verifyFileOwnership(key string, userID uint) bool {
	parts := strings.Split(key, "/")
	if len(parts) < 3 {
		return false
	}

	keyUserID := parts[2]
	return fmt.Sprintf("%d", userID) == keyUserID
}

func (uc *UploadController) generateTempAvatarKey(fileName string) string {
	ext := filepath.Ext(fileName)
	id := uuid.New().String()
	timestamp := time.Now().Unix()

	return fmt.Sprintf("temp/avatars/%d_%s%s", timestamp, id, ext)
}

func (uc *UploadController) generateAvatarKey(userID uint, tempKey string) string {
	ext := filepath.Ext(tempKey)
	timestamp := time.Now().Unix()

	return fmt.Sprintf("users/%d/avatar/%d_avatar%s", userID, timestamp, ext)
}

func (uc *UploadController) moveFile(sourceKey, destKey string) error {
	copyInput := &s3.CopyObjectInput{
		Bucket:     aws.String(uc.R2Config.BucketName),
		CopySource: aws.String(fmt.Sprintf("%s/%s", uc.R2Config.BucketName, sourceKey)),
		Key:        aws.String(destKey),
	}

	_, err := uc.R2Client.CopyObject(context.TODO(), copyInput)
	if err != nil {
		return err
	}

	return uc.deleteFile(sourceKey)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/uploads")
	{
		upload.POST("/presign", uploadController.GetPresignedURL)
		upload.POST("/confirm", uploadController.ConfirmUpload)
		upload.DELETE("/file/:key", uploadController.DeleteFile)

		// Avatar flow: temp upload before signup, confirm after
		upload.POST("/avatar/temp", uploadController.GetAvatarTempURL)
		upload.POST("/avatar/confirm", uploadController.ConfirmAvatarUpload)
		upload.DELETE("/avatar/temp/:tempKey", uploadController.CleanupTempAvatar)
	}
}

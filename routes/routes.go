package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/controllers"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/middleware"
	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/notify"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, redisClient *redis.Client, fanout *notify.Fanout) {
	// Initialize controllers
	uploadController := controllers.NewUploadController(db)
	authController := controllers.NewAuthController(db, uploadController)
	activityController := controllers.NewActivityController(db, fanout)
	placeController := controllers.NewPlaceController(redisClient)
	interactionController := controllers.NewInteractionController(db)
	userController := controllers.NewUserController(db)
	validationController := controllers.NewValidationController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)

		// Profile routes
		protected.GET("/profile", userController.GetProfile)
		protected.PUT("/profile", userController.UpdateProfile)
		protected.PUT("/profile/notifications", userController.UpdateNotificationSettings)

		// Setup other routes within the protected group
		SetupActivityRoutes(protected, activityController)
		SetupPlaceRoutes(protected, placeController)
		SetupInteractionRoutes(protected, interactionController)
		SetupUploadRoutes(protected, uploadController)
		SetupUserRoutes(protected, userController)
		SetupValidationRoutes(protected, validationController)
	}
}

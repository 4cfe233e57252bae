package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/controllers"
)

func SetupActivityRoutes(protected *gin.RouterGroup, activityController *controllers.ActivityController) {
	activities := protected.Group("/activities")
	{
		activities.POST("", activityController.CreateActivity)
		activities.GET("", activityController.GetActivities)
		activities.GET("/:id", activityController.GetActivityDetail)
		activities.PUT("/:id", activityController.UpdateActivity)
		activities.DELETE("/:id", activityController.DeleteActivity)
	}

	users := protected.Group("/users")
	{
		users.GET("/:userId/activities", activityController.GetUserActivities)
	}
}

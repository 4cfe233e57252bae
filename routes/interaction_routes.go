package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/controllers"
)

func SetupInteractionRoutes(protected *gin.RouterGroup, interactionController *controllers.InteractionController) {
	activities := protected.Group("/activities")
	{
		activities.POST("/:id/vote", interactionController.VoteActivity)
		activities.POST("/:id/comments", interactionController.CreateComment)
		activities.GET("/:id/comments", interactionController.GetComments)
	}
}

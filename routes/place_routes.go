package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/controllers"
)

func SetupPlaceRoutes(protected *gin.RouterGroup, placeController *controllers.PlaceController) {
	places := protected.Group("/places")
	{
		places.GET("/search", placeController.SearchPlaces)
	}
}

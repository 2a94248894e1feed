package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/listings", handler.GetListings)
		api.GET("/listings/:id", handler.GetListing)
		api.GET("/latest", handler.GetLatestListings)
		api.GET("/categories", handler.GetCategories)
		api.GET("/places", handler.GetPlaces)
		api.POST("/orders", handler.CreateOrder)
		api.POST("/login", handler.Login)

		admin := api.Group("")
		admin.Use(handler.authSvc.Middleware())
		{
			admin.POST("/listings", handler.CreateListing)
			admin.POST("/listings/import", handler.ImportListings)
			admin.PUT("/listings/:id", handler.UpdateListing)
			admin.DELETE("/listings/:id", handler.DeleteListing)
			admin.POST("/categories", handler.CreateCategory)
			admin.PUT("/categories/:id", handler.UpdateCategory)
			admin.DELETE("/categories/:id", handler.DeleteCategory)
			admin.GET("/orders", handler.GetOrders)
			admin.PUT("/orders/:id/status", handler.UpdateOrderStatus)
			admin.DELETE("/orders/:id", handler.DeleteOrder)
			admin.GET("/dashboard", handler.GetDashboardStats)
			admin.POST("/refresh", handler.RefreshCatalog)
		}
	}
}

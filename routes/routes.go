// Package routes wires the HTTP surface onto the gin engine.
package routes

import (
	"github.com/gin-gonic/gin"

	"nursery/controllers"
	"nursery/middleware"
	"nursery/orders"
)

func RegisterRoutes(r *gin.Engine, svc *orders.Service) {
	api := r.Group("/api")

	// Public.
	api.POST("/auth/register", controllers.Register)
	api.POST("/auth/login", controllers.Login)
	api.GET("/plants", controllers.GetPlantsPublic)
	api.GET("/plants/:id", controllers.GetPlantByID)

	// Authenticated users.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/logout", controllers.Logout)

		protected.GET("/cart", controllers.GetCart)
		protected.POST("/cart", controllers.AddToCart)
		protected.PUT("/cart/:productId", controllers.UpdateCart)
		protected.DELETE("/cart/:productId", controllers.RemoveFromCart)
		protected.DELETE("/cart", controllers.ClearCart)

		protected.POST("/orders", controllers.CreateOrder(svc))
		protected.GET("/orders/myorders", controllers.GetMyOrders(svc))
		protected.GET("/orders/:id", controllers.GetOrderByID(svc))
		protected.PUT("/orders/:id/pay", controllers.UpdateOrderToPaid(svc))
		protected.PUT("/orders/:id/cancel", controllers.CancelOrder(svc))

		protected.POST("/recognition", controllers.RecognizePlant)

		protected.POST("/services", controllers.CreateServiceRequest)

		protected.GET("/users/me", controllers.GetCurrentUser)
		protected.PUT("/users/me", controllers.UpdateMyProfile)
		protected.POST("/users/me/profile-image", controllers.UploadProfileImage)
	}

	// Admin only.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/plants", controllers.GetPlantsAdmin)
		admin.GET("/plants/out-of-stock", controllers.GetOutOfStockPlants)
		admin.POST("/plants", controllers.CreatePlant)
		admin.PUT("/plants/:id", controllers.UpdatePlant)
		admin.DELETE("/plants/:id", controllers.DeletePlant)
		admin.POST("/plants/:id/image", controllers.UploadPlantImage)

		admin.GET("/orders", controllers.GetOrders(svc))
		admin.GET("/orders/stats", controllers.GetOrderStats(svc))
		admin.GET("/orders/export", controllers.ExportOrders(svc))
		admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus(svc))
		admin.PUT("/orders/:id/deliver", controllers.UpdateOrderToDelivered(svc))

		admin.POST("/purchases", controllers.CreatePurchase)
		admin.GET("/purchases", controllers.GetPurchases)
		admin.GET("/purchases/report", controllers.MonthlyPurchaseReport)
		admin.GET("/purchases/:id/receipt", controllers.GetPurchaseReceipt)

		admin.POST("/waste", controllers.CreateWaste)
		admin.GET("/waste", controllers.GetWasteRecords)
		admin.GET("/waste/report", controllers.MonthlyWasteReport)
		admin.GET("/waste/:id/receipt", controllers.GetWasteReceipt)

		admin.GET("/notifications", controllers.GetNotifications)
		admin.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
		admin.GET("/notifications/ws", controllers.NotificationSocket)

		admin.GET("/users", controllers.GetAllUsers)
		admin.GET("/users/total", controllers.TotalUsers)
		admin.GET("/users/:id", controllers.GetUserData)
		admin.PUT("/users/:id/role", controllers.UpdateUserRole)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.GET("/services", controllers.GetServiceRequests)
		admin.GET("/services/stats", controllers.GetServiceStatistics)
		admin.GET("/services/:id", controllers.GetServiceRequestByID)
		admin.PUT("/services/:id", controllers.UpdateServiceStatus)
		admin.DELETE("/services/:id", controllers.DeleteServiceRequest)
	}
}

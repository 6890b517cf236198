package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"company-board-api/controllers"
	"company-board-api/middleware"
	"company-board-api/models"
	"company-board-api/services"
)

// SetupRoutes wires the controllers. Services are constructed here and
// injected so handlers never reach for process-wide state.
func SetupRoutes(router *gin.Engine, db *gorm.DB, storage services.FileStorage) {
	notifications := services.NewNotificationService(db)
	search := services.NewSearchService(db)

	auth := controllers.NewAuthController(db)
	userMgmt := controllers.NewUserManagementController(db)
	announcements := controllers.NewAnnouncementController(db, notifications, storage)
	responses := controllers.NewResponseController(db, storage)
	notifCtrl := controllers.NewNotificationController(notifications)
	searchCtrl := controllers.NewSearchController(search)
	files := controllers.NewFileController(storage)

	authRequired := middleware.AuthMiddleware(db)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", auth.Login)
			authGroup.POST("/register", auth.Register)

			authGroup.GET("/me", authRequired, auth.Me)
			authGroup.POST("/send-email", authRequired, auth.SendEmail)

			users := authGroup.Group("/users", authRequired, adminOnly)
			{
				users.GET("", userMgmt.List)
				users.PATCH("/:id/role", userMgmt.UpdateRole)
				users.PATCH("/:id/status", userMgmt.UpdateStatus)
				users.PATCH("/:id", userMgmt.Update)
				users.DELETE("/:id", userMgmt.Delete)
			}
		}

		announcementGroup := api.Group("/announcements")
		{
			announcementGroup.POST("", authRequired, announcements.Create)
			announcementGroup.GET("", announcements.List)
			announcementGroup.GET("/:id", announcements.Get)
			announcementGroup.DELETE("/:id", authRequired, adminOnly, announcements.Delete)
		}

		responseGroup := api.Group("/responses")
		{
			// Response creation has no auth check: anyone on the floor can
			// reply to a posted announcement.
			responseGroup.POST("", responses.Create)
			responseGroup.GET("/announcement/:id", responses.ListByAnnouncement)
			responseGroup.GET("/colleague/:name", responses.ListByColleague)
			responseGroup.GET("", authRequired, adminOnly, responses.ListAll)
		}

		notificationGroup := api.Group("/notifications", authRequired)
		{
			notificationGroup.GET("", notifCtrl.List)
			notificationGroup.GET("/unread-count", notifCtrl.UnreadCount)
			notificationGroup.POST("/:id/read", notifCtrl.MarkRead)
			notificationGroup.POST("/read-all", notifCtrl.MarkAllRead)
			notificationGroup.DELETE("/:id", notifCtrl.Delete)
		}

		searchGroup := api.Group("/search", authRequired)
		{
			searchGroup.GET("/announcements", searchCtrl.Announcements)
			searchGroup.GET("/responses", searchCtrl.Responses)
			searchGroup.GET("/all", searchCtrl.All)
		}

		fileGroup := api.Group("/file")
		{
			fileGroup.GET("/download", files.DownloadURL)
			fileGroup.GET("/preview", files.PreviewURL)
			fileGroup.GET("/local/*path", files.DownloadLocal)
		}
	}
}

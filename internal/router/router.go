package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/solace-app/backend/internal/auth"
	"github.com/solace-app/backend/internal/feed"
	"github.com/solace-app/backend/internal/handlers"
	"github.com/solace-app/backend/internal/middleware"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/repositories"
	"github.com/solace-app/backend/internal/store"
	"github.com/solace-app/backend/pkg/objectstore"
)

// SetupMiddleware attaches the global middleware chain.
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
}

// SetupRoutes wires every repository, handler and guard onto the echo
// instance.
func SetupRoutes(e *echo.Echo, s store.Store, credentials *auth.Credentials, objects objectstore.ObjectStore) {
	users := repositories.NewUserRepository(s)
	groups := repositories.NewGroupRepository(s)
	posts := repositories.NewPostRepository(s)
	comments := repositories.NewCommentRepository(s)
	reactions := repositories.NewReactionRepository(s)
	reports := repositories.NewReportRepository(s)
	notifications := repositories.NewNotificationRepository(s, users)
	messages := repositories.NewMessageRepository(s)
	feeds := feed.NewService(posts, comments)

	authHandler := handlers.NewAuthHandler(users, notifications, credentials, objects)
	userHandler := handlers.NewUserHandler(users, posts, feeds, objects)
	profileHandler := handlers.NewProfileHandler(users, posts, notifications, feeds)
	groupHandler := handlers.NewGroupHandler(groups, users, posts, reports, feeds, objects)
	postHandler := handlers.NewPostHandler(posts, comments, users, reactions, reports, notifications, feeds, objects)
	notificationHandler := handlers.NewNotificationHandler(notifications)
	messageHandler := handlers.NewMessageHandler(messages, users, notifications)

	e.GET("/health", handlers.Health)
	authHandler.RegisterAuthRoutes(e.Group("/auth"))

	authed := e.Group("", middleware.JWTAuth(credentials))
	admin := middleware.RequireLevel(users, models.RoleAdmin)

	authed.GET("/user", userHandler.Me)
	authed.GET("/myposts", userHandler.MyPosts)
	authed.GET("/myanonymousposts", userHandler.MyAnonymousPosts)
	authed.GET("/mybookmarks", userHandler.MyBookmarks)
	authed.GET("/users", userHandler.ListUsers)
	authed.PATCH("/bio", userHandler.UpdateBio)
	authed.PATCH("/profileimage", userHandler.UpdateProfileImage)
	authed.PATCH("/privacy", userHandler.UpdatePrivacy)
	authed.DELETE("/account", userHandler.DeleteAccount)

	authed.GET("/verify", userHandler.Unverified, admin)
	authed.POST("/verify/:id", userHandler.Verify, admin)
	authed.POST("/promote/:id", userHandler.Promote, admin)
	authed.POST("/downgrade/:id", userHandler.Downgrade, admin)

	authed.GET("/feed", groupHandler.Feed)
	authed.GET("/groups", groupHandler.ListGroups)
	authed.POST("/group/create", groupHandler.Create)
	authed.POST("/group/join/:id", groupHandler.Join)
	authed.POST("/group/leave/:id", groupHandler.Leave)
	authed.DELETE("/group/delete/:id", groupHandler.Delete)

	authed.GET("/group/:groupid/post", postHandler.GroupPosts)
	authed.POST("/group/post", postHandler.Create)
	authed.POST("/post/edit/:id", postHandler.Edit)
	authed.POST("/post/:id/comment", postHandler.Comment)
	authed.POST("/post/:postid/:id/comment", postHandler.Reply)
	authed.DELETE("/post/:postid", postHandler.Remove)
	authed.DELETE("/post/:postid/:id", postHandler.Remove)
	authed.POST("/react/:postid", postHandler.React)
	authed.POST("/react/:postid/:id", postHandler.React)
	authed.POST("/bookmark/:postid", postHandler.Bookmark)
	authed.POST("/report/:postid", postHandler.Report)
	authed.POST("/report/:postid/:id", postHandler.Report)
	authed.GET("/report", postHandler.ListReports, admin)

	profileHandler.RegisterProfileRoutes(authed.Group("/profile"))
	notificationHandler.RegisterNotificationRoutes(authed.Group("/notifications"))
	messageHandler.RegisterMessageRoutes(authed.Group("/messages"))
}

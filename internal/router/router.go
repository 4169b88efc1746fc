package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gobook-app/backend/internal/handlers"
	"github.com/gobook-app/backend/internal/models"
	"github.com/gobook-app/backend/internal/realtime"
	"github.com/gobook-app/backend/internal/repositories"
	"github.com/gobook-app/backend/internal/services"
)

// SetupMiddleware configures the global middleware stack
func SetupMiddleware(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
}

// SetupRoutes wires repositories, services and handlers and registers every
// route on the echo instance
func SetupRoutes(e *echo.Echo, pg *gorm.DB, mongoDB *mongo.Database, hub *realtime.Hub, log *zap.Logger) error {
	if err := pg.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	userRepo := repositories.NewPostgresUserRepository(pg)
	relationshipRepo := repositories.NewMongoRelationshipRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	notificationRepo := repositories.NewMongoNotificationRepository(mongoDB)

	fanout := services.NewFanout(notificationRepo, userRepo, hub, log)
	relationshipService := services.NewRelationshipService(relationshipRepo, userRepo, fanout, hub)
	postService := services.NewPostService(postRepo, userRepo, fanout, hub)
	commentService := services.NewCommentService(postRepo, userRepo, fanout, hub)

	friendshipHandler := handlers.NewFriendshipHandler(relationshipService)
	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	realtimeHandler := handlers.NewRealtimeHandler(hub, log)

	e.GET("/health", handlers.HealthCheck)
	realtimeHandler.RegisterRealtimeRoutes(e)

	api := e.Group("/api")
	friendshipHandler.RegisterFriendshipRoutes(api)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)

	return nil
}

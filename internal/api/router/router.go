package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"short_video_service/internal/api/handlers"
	"short_video_service/pkg/config"
	"short_video_service/pkg/middlewares"
)

// Handlers 所有 HTTP handler
type Handlers struct {
	Member      *handlers.MemberHandler
	Video       *handlers.VideoHandler
	Interaction *handlers.InteractionHandler
	Relation    *handlers.RelationHandler
}

// RegisterRoutes 註冊所有路由
// @title Short Video Service API
// @version 1.0
// @description API documentation for Short Video Service
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func RegisterRoutes(app *fiber.App, h Handlers, sessions middlewares.SessionChecker, rateLimit config.RateLimit) {
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	api := app.Group("/api", middlewares.OptionalIdentity(sessions))
	if rateLimit.Max > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:        rateLimit.Max,
			Expiration: rateLimit.Expiration * time.Second,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(handlers.ErrorResponse{Error: "Too many requests"})
			},
		}))
	}
	auth := middlewares.RequireIdentity()

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Member.Register)
	authRoutes.Post("/login", h.Member.Login)
	authRoutes.Post("/logout", auth, h.Member.Logout)

	userRoutes := api.Group("/users")
	userRoutes.Get("/:id", h.Member.GetProfile)
	userRoutes.Patch("/:id", auth, h.Member.UpdateProfile)
	userRoutes.Post("/:id/follow", auth, h.Relation.Follow)
	userRoutes.Delete("/:id/follow", auth, h.Relation.Unfollow)

	videoRoutes := api.Group("/videos")
	videoRoutes.Get("/", h.Video.ListFeed)
	videoRoutes.Post("/", auth, h.Video.CreateVideo)
	videoRoutes.Get("/:id", h.Video.GetVideo)
	videoRoutes.Patch("/:id", auth, h.Video.UpdateVideo)
	videoRoutes.Delete("/:id", auth, h.Video.DeleteVideo)
	videoRoutes.Post("/:id/like", auth, h.Interaction.Like)
	videoRoutes.Delete("/:id/like", auth, h.Interaction.Unlike)
	videoRoutes.Get("/:id/comments", h.Interaction.ListComments)
	videoRoutes.Post("/:id/comments", auth, h.Interaction.CreateComment)

	api.Delete("/comments/:id", auth, h.Interaction.DeleteComment)
	api.Post("/upload/video", auth, h.Video.UploadVideo)
}

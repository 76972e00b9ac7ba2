package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/controllers"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/middleware"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
)

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	Auth       *controllers.AuthController
	Profile    *controllers.ProfileController
	Dashboard  *controllers.DashboardController
	Connection *controllers.ConnectionController
	Mentorship *controllers.MentorshipController
	Task       *controllers.TaskController
	Event      *controllers.EventController
	Message    *controllers.MessageController
	Blog       *controllers.BlogController
	WebSocket  *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
	}

	// Blog reads are open to anonymous visitors; a token only adds drafts and likedByMe
	blogPublic := v1.Group("/blog/posts")
	blogPublic.Use(authMiddleware.OptionalJWTAuth())
	{
		blogPublic.GET("", c.Blog.List)
		blogPublic.GET("/:id", c.Blog.Get)
		blogPublic.GET("/:id/comments", c.Blog.Comments)
		blogPublic.GET("/:id/stats", c.Blog.Stats)
		blogPublic.POST("/:id/view", c.Blog.View)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// The socket only needs a valid token; the hub never writes on behalf of the user
	authenticated.GET("/ws", c.WebSocket.HandleConnection)

	// Deactivated profiles keep their tokens but lose access to everything below
	active := authenticated.Group("")
	active.Use(authMiddleware.ActiveProfileRequired())
	{
		profiles := active.Group("/profiles")
		{
			profiles.GET("/me", c.Profile.GetMe)
			profiles.PUT("/me", c.Profile.UpdateMe)
			profiles.GET("", c.Profile.List)
			profiles.GET("/:id", c.Profile.GetByID)
			// Admin only, checked against the stored role
			profiles.PATCH("/:id/role", c.Profile.ChangeRole)
			profiles.PATCH("/:id/active", c.Profile.SetActive)
		}

		active.GET("/dashboard", c.Dashboard.Get)

		connections := active.Group("/connections")
		{
			connections.POST("", c.Connection.Create)
			connections.GET("", c.Connection.List)
			connections.GET("/visible", c.Connection.Visible)
			connections.GET("/available", c.Connection.Available)
			connections.PATCH("/:id", c.Connection.Respond)
		}

		requests := active.Group("/mentorship-requests")
		{
			requests.POST("", c.Mentorship.Create)
			requests.GET("/pending", c.Mentorship.Pending)
			requests.GET("/sent", c.Mentorship.Sent)
			requests.PATCH("/:id", c.Mentorship.Respond)
		}

		mentorship := active.Group("/mentorship")
		{
			mentorship.GET("/mentees", c.Mentorship.Mentees)
			mentorship.GET("/mentors", c.Mentorship.Mentors)
		}

		tasks := active.Group("/tasks")
		{
			tasks.POST("", c.Task.Create)
			tasks.GET("/assigned", c.Task.Assigned)
			tasks.GET("/created", c.Task.Created)
			tasks.PATCH("/:id/status", c.Task.UpdateStatus)
		}

		events := active.Group("/events")
		{
			events.POST("", c.Event.Create)
			events.GET("/upcoming", c.Event.Upcoming)
			events.GET("/mine", c.Event.Mine)
			events.PUT("/:id", c.Event.Update)
			events.DELETE("/:id", c.Event.Delete)
			events.POST("/:id/participants", c.Event.Join)
			events.GET("/:id/participants", c.Event.Participants)
		}

		messages := active.Group("/messages")
		{
			messages.POST("", c.Message.Send)
			messages.GET("/conversations", c.Message.Conversations)
			messages.GET("/with/:userId", c.Message.Thread)
		}

		blog := active.Group("/blog/posts")
		{
			blog.POST("", c.Blog.Create)
			blog.PUT("/:id", c.Blog.Update)
			blog.DELETE("/:id", c.Blog.Delete)
			blog.POST("/:id/like", c.Blog.Like)
			blog.POST("/:id/recommend", c.Blog.Recommend)
			blog.POST("/:id/comments", c.Blog.Comment)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}

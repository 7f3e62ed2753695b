package http

import (
	"github.com/badgerly/badgerly-backend/internal/delivery/http/handler"
	"github.com/badgerly/badgerly-backend/internal/delivery/http/middleware"
	"github.com/badgerly/badgerly-backend/internal/delivery/ws"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler      *handler.AuthHandler
	badgerHandler    *handler.BadgerHandler
	challengeHandler *handler.ChallengeHandler
	paymentHandler   *handler.PaymentHandler
	wsHandler        *ws.Handler
	authMiddleware   *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	badgerHandler *handler.BadgerHandler,
	challengeHandler *handler.ChallengeHandler,
	paymentHandler *handler.PaymentHandler,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:      authHandler,
		badgerHandler:    badgerHandler,
		challengeHandler: challengeHandler,
		paymentHandler:   paymentHandler,
		wsHandler:        wsHandler,
		authMiddleware:   authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Realtime challenge chat
	router.GET("/ws", r.wsHandler.HandleWS)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Honey badger routes
			badgers := protected.Group("/honey-badgers")
			{
				badgers.GET("", r.badgerHandler.List)
				badgers.POST("", r.badgerHandler.Create)
				badgers.GET("/:id", r.badgerHandler.Get)
				badgers.PUT("/:id", r.badgerHandler.Update)
				badgers.DELETE("/:id", r.badgerHandler.Retire)
			}

			// Challenge routes
			challenges := protected.Group("/challenges")
			{
				challenges.GET("", r.challengeHandler.List)
				challenges.POST("", r.challengeHandler.Create)
				challenges.GET("/:id", r.challengeHandler.Get)
				challenges.POST("/:id/accept", r.challengeHandler.Accept)
				challenges.POST("/:id/progress", r.challengeHandler.SubmitProgress)
				challenges.POST("/:id/cancel", r.challengeHandler.Cancel)
			}

			// Payment routes
			payments := protected.Group("/payments")
			{
				payments.POST("/create-payment-intent", r.paymentHandler.CreateIntent)
				payments.POST("/confirm/:challengeId", r.paymentHandler.Confirm)
				payments.GET("/history", r.paymentHandler.History)
			}
		}

		// Personality catalog (public)
		v1.GET("/personalities", r.badgerHandler.PersonalityTypes)
	}

	return router
}

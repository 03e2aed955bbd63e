package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"glow-contrib.backend/internal/interfaces/http/handlers"
	"glow-contrib.backend/internal/interfaces/http/middleware"
	"glow-contrib.backend/internal/interfaces/ws"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	contributionHandler *handlers.ContributionHandler
	profileHandler      *handlers.ProfileHandler
	kycHandler          *handlers.KYCHandler
	chainHandler        *handlers.ChainHandler
	marketplaceHandler  *handlers.MarketplaceHandler
	hub                 *ws.Hub
	authMiddleware      gin.HandlerFunc
	uploadDir           string
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", d.hub.Handle)

	v1 := r.Group("/api/v1")
	{
		// Stored uploads (contribution attachments, avatars, KYC documents)
		v1.Static("/uploads", d.uploadDir)

		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Contribution routes
		contributions := v1.Group("/contributions")
		{
			contributions.GET("", d.contributionHandler.List)
			contributions.GET("/:id", d.contributionHandler.Get)
			contributions.POST("", d.authMiddleware, d.contributionHandler.Create)
			contributions.POST("/:id/review", d.authMiddleware, middleware.RequireAdmin(), d.contributionHandler.Review)
			contributions.POST("/:id/claim-reward", d.authMiddleware, d.contributionHandler.ClaimReward)
		}

		// Direct IPFS pinning
		ipfs := v1.Group("/ipfs")
		{
			ipfs.GET("/status", d.contributionHandler.PinStatus)
			ipfs.POST("/upload", d.authMiddleware, d.contributionHandler.UploadAndAnchor)
		}

		// Profile routes
		v1.GET("/users/:id", d.profileHandler.Get)
		profile := v1.Group("/profile")
		profile.Use(d.authMiddleware)
		{
			profile.PUT("", d.profileHandler.Update)
			profile.POST("/avatar", d.profileHandler.UploadAvatar)
			profile.POST("/kyc/start", d.profileHandler.StartKYC)
			profile.POST("/kyc/verify", d.profileHandler.VerifyKYC)
		}

		// KYC document routes
		kyc := v1.Group("/kyc")
		kyc.Use(d.authMiddleware)
		{
			kyc.POST("/upload", d.kycHandler.UploadDocument)
			kyc.GET("/status", d.kycHandler.Status)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/kyc", d.kycHandler.AdminList)
			admin.POST("/kyc/:id/approve", d.kycHandler.AdminApprove)
			admin.POST("/kyc/:id/reject", d.kycHandler.AdminReject)
		}

		// Blockchain status routes (public)
		blockchain := v1.Group("/blockchain")
		{
			blockchain.GET("/status", d.chainHandler.Status)
			blockchain.GET("/contract-info", d.chainHandler.ContractInfo)
		}

		// Mock marketplace
		marketplace := v1.Group("/marketplace")
		{
			marketplace.GET("", d.marketplaceHandler.List)
			marketplace.POST("/:id/purchase", d.authMiddleware, d.marketplaceHandler.Purchase)
		}
	}
}

package server

import (
	"harvest-market/internal/models"
	handler "harvest-market/services/market/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(marketHandler *handler.MarketHandler) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	accounts := router.Group("/accounts")
	{
		accounts.POST("/producers", marketHandler.RegisterProducerHandler)
		accounts.POST("/purchasers", marketHandler.RegisterPurchaserHandler)
	}

	sessions := router.Group("/sessions")
	{
		sessions.POST("", marketHandler.LoginHandler)
		sessions.GET("/me", marketHandler.RequireSession, marketHandler.WhoAmIHandler)
		sessions.DELETE("", marketHandler.RequireSession, marketHandler.LogoutHandler)
	}

	producerOnly := marketHandler.RequireRole(models.RoleProducer)
	purchaserOnly := marketHandler.RequireRole(models.RolePurchaser)

	listings := router.Group("/listings")
	{
		listings.GET("", marketHandler.ListListingsHandler)
		listings.GET("/mine", marketHandler.RequireSession, producerOnly, marketHandler.MyListingsHandler)
		listings.POST("", marketHandler.RequireSession, producerOnly, marketHandler.OpenAuctionHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.GET("", marketHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", marketHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", marketHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/winning", marketHandler.GetWinningBidHandler)
		auctions.POST("/:auction_id/bids", marketHandler.RequireSession, purchaserOnly, marketHandler.PlaceBidHandler)
		auctions.POST("/:auction_id/end", marketHandler.RequireSession, producerOnly, marketHandler.EndAuctionHandler)
	}

	return router
}

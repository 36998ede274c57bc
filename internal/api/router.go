package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transitpass/concession-backend-go/internal/config"
	"github.com/transitpass/concession-backend-go/internal/handler"
	"github.com/transitpass/concession-backend-go/internal/middleware"
)

// SetupRouter builds the HTTP routing table
func SetupRouter(cfg config.Config, statements *handler.StatementHandler, analysis *handler.AnalysisHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Concession Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit.Limit, cfg.RateLimit.Window))
	{
		// statement and coverage routes carry per-user data
		stmts := api.Group("/statements")
		stmts.Use(middleware.Auth(cfg.Auth.JWTSecret))
		{
			stmts.POST("", statements.Upload)
			stmts.GET("", statements.List)
			stmts.GET("/coverage", statements.Coverage)
		}

		// fare calculation and pass comparison are stateless
		api.POST("/fares/calculate", analysis.CalculateFares)

		passes := api.Group("/passes")
		{
			passes.GET("", analysis.ListPasses)
			passes.POST("/compare", analysis.ComparePasses)
		}
	}

	return r
}

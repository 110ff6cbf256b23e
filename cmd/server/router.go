package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricofy/uroman-gateway/internal/logging"
	"github.com/pricofy/uroman-gateway/internal/platform"
)

func newRouter(browser *platform.Browser, log logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/romanize", func(c *gin.Context) {
			write(c, browser.HandleHTTP(c.Request.Context(), c.Request))
		})
		api.POST("/mcp", func(c *gin.Context) {
			write(c, browser.HandleProtocol(c.Request.Context(), c.Request))
		})
		api.GET("/info", func(c *gin.Context) {
			write(c, browser.HandleInfo(c.Request.Context(), c.Request))
		})

		preflight := func(c *gin.Context) { write(c, browser.Preflight()) }
		api.OPTIONS("/romanize", preflight)
		api.OPTIONS("/mcp", preflight)
		api.OPTIONS("/info", preflight)
	}

	return router
}

func write(c *gin.Context, resp *platform.BrowserResponse) {
	if err := resp.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func requestLogger(log logging.Logger) gin.HandlerFunc {
	log = log.WithName("http")
	return func(c *gin.Context) {
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
		)
	}
}

package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// NewRouter mounts the API under /api and serves stored photos from
// uploadDir under /uploads.
func NewRouter(h *Handler, uploadDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors())
	r.MaxMultipartMemory = MaxPhotoBytes

	api := r.Group("/api")
	{
		api.GET("/siblings", h.ListSiblings)
		api.POST("/siblings", h.AddSibling)
		api.PUT("/siblings/:id", h.SignIn)
		api.POST("/siblings/:id/balance", h.AdjustBalance)

		api.GET("/turn/current", h.CurrentTurn)
		api.POST("/turn/replacement", h.RequestReplacement)
		api.GET("/turn/events", h.TurnEvents)

		api.POST("/walk", h.SubmitWalk)
		api.GET("/walks", h.ListWalks)
		api.POST("/walks/:id/rejections", h.RejectWalk)
	}
	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "API route not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})
	return r
}

// cors allows the web client to call the API from any origin.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept-Language, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

package api

import (
	"github.com/bornholm/imagefetcher/pkg/fetcher"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, f *fetcher.Fetcher) {
	h := &handlers{fetcher: f}

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/images", h.image)
		api.GET("/resolve", h.resolve)
	}
}

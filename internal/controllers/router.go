package controllers

import (
	"github.com/fsdevblog/shortlinks/internal/config"
	"github.com/fsdevblog/shortlinks/internal/controllers/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterParams struct {
	LinkService ShortLinkStore
	PingService ConnectionChecker
	AppConf     config.Config
	Logger      *logrus.Logger
}

func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(middlewares.CORSMiddleware())

	shortLinkController := NewShortLinkController(params.LinkService, params.AppConf.BaseURL)

	r.POST("/shorten", shortLinkController.CreateShortLink)
	r.GET("/:shortCode", shortLinkController.Redirect)

	urls := r.Group("/urls")
	urls.GET("/all", shortLinkController.ListAll)
	urls.GET("/:shortCode/stats", shortLinkController.Stats)

	if params.PingService != nil {
		pingController := NewPingController(params.PingService)
		r.GET("/ping", pingController.Ping)
	}

	return r
}

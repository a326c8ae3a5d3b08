// Package server wires the report operations into a Gin JSON API.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	ReportHandler *ReportHandler
	CORSOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		}))
	}

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/reports", cfg.ReportHandler.ListReports)
		api.POST("/reports", cfg.ReportHandler.SaveReport)
		api.GET("/reports/:id", cfg.ReportHandler.GetReport)
		api.DELETE("/reports/:id", cfg.ReportHandler.DeleteReport)
		api.GET("/workloads/:id/versions", cfg.ReportHandler.WorkloadVersions)
		api.GET("/compare", cfg.ReportHandler.CompareReports)
	}

	return router
}

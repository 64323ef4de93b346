// Package routers 路由注册
package routers

import (
	"github.com/prompthub/prompt-hub-service/global"
	"github.com/prompthub/prompt-hub-service/internal/middleware"
	"github.com/prompthub/prompt-hub-service/internal/routers/api_router"
	"github.com/prompthub/prompt-hub-service/internal/service"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// NewRouter 装配全部 API 路由
func NewRouter(hub *service.Hub, uni *ut.UniversalTranslator) *gin.Engine {
	gin.SetMode(global.Config.Server.RunMode)

	r := gin.New()

	base := api_router.NewHandler(hub)
	promptHandler := api_router.NewPromptHandler(base)
	categoryHandler := api_router.NewCategoryHandler(base)
	tagHandler := api_router.NewTagHandler(base)
	adminHandler := api_router.NewAdminHandler(base)
	healthHandler := api_router.NewHealthHandler(base)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", api_router.MetricsHandler())

	api := r.Group("/api")
	{
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.Recovery())
		api.Use(middleware.AdminSecret())
		api.Use(api_router.MetricsCollector())

		api.GET("/prompts", promptHandler.List)
		api.POST("/prompts", promptHandler.Create)
		api.GET("/prompts/export", promptHandler.Export)
		api.GET("/prompts/:id", promptHandler.Get)
		api.PUT("/prompts/:id", promptHandler.Update)
		api.DELETE("/prompts/:id", promptHandler.Delete)
		api.POST("/prompts/:id/use", promptHandler.Use)
		api.GET("/prompts/:id/versions", promptHandler.Versions)
		api.POST("/prompts/:id/rollback", promptHandler.Rollback)

		api.GET("/categories", categoryHandler.List)
		api.GET("/categories/tree", categoryHandler.Tree)
		api.POST("/categories", categoryHandler.Create)
		api.PUT("/categories/:id", categoryHandler.Update)
		api.DELETE("/categories/:id", categoryHandler.Delete)

		api.GET("/tags", tagHandler.List)
		api.POST("/tags", tagHandler.Create)
		api.PUT("/tags/:id", tagHandler.Update)
		api.DELETE("/tags/:id", tagHandler.Delete)

		api.GET("/stats", adminHandler.Stats)

		admin := api.Group("/admin")
		{
			admin.GET("/verify", adminHandler.Verify)
			admin.GET("/backups", adminHandler.BackupList)
			admin.POST("/backups", adminHandler.BackupCreate)
			admin.POST("/clear", adminHandler.Clear)
			admin.POST("/load-test-data", adminHandler.LoadTestData)
		}
	}

	return r
}

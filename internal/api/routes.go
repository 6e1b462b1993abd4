package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/xiaohu31/ai-resume-architect/internal/ai"
	"github.com/xiaohu31/ai-resume-architect/internal/config"
	"github.com/xiaohu31/ai-resume-architect/internal/database"
	"github.com/xiaohu31/ai-resume-architect/internal/editor"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	ed *editor.Store,
	store *database.Store,
	aiService *ai.Service,
	cfg *config.Config,
	logger *slog.Logger,
) {
	docHandler := NewDocumentHandler(ed)
	versionHandler := NewVersionHandler(ed, store)
	aiHandler := NewAIHandler(ed, aiService)
	exportHandler := NewExportHandler(ed, cfg.Export)
	wsHandler := NewWsHandler(ed, logger)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		doc := v1.Group("/document")
		{
			doc.GET("", docHandler.GetDocument)
			doc.PUT("/title", docHandler.SetTitle)
			doc.PATCH("/settings", docHandler.UpdateSettings)
			doc.POST("/replace", docHandler.ReplaceDocument)
		}

		blocks := v1.Group("/blocks")
		{
			blocks.POST("", docHandler.AddBlock)
			blocks.POST("/reorder", docHandler.ReorderBlocks)
			blocks.DELETE("/:id", docHandler.RemoveBlock)
			blocks.PUT("/:id/title", docHandler.RenameBlock)
			blocks.POST("/:id/visibility", docHandler.ToggleBlockVisible)
			blocks.POST("/:id/items", docHandler.AddItem)
			blocks.POST("/:id/items/reorder", docHandler.ReorderItems)
			blocks.DELETE("/:id/items/:itemId", docHandler.RemoveItem)
			blocks.PUT("/:id/items/:itemId/fields", docHandler.SetItemField)
			blocks.POST("/:id/items/:itemId/expanded", docHandler.ToggleItemExpanded)
		}

		history := v1.Group("/history")
		{
			history.GET("", docHandler.GetHistory)
			history.POST("/undo", docHandler.Undo)
			history.POST("/redo", docHandler.Redo)
		}

		selection := v1.Group("/selection")
		{
			selection.GET("", docHandler.GetSelection)
			selection.PUT("", docHandler.SetSelection)
		}

		versions := v1.Group("/versions")
		{
			versions.GET("", versionHandler.ListVersions)
			versions.POST("", versionHandler.SaveVersion)
			versions.DELETE("/:id", versionHandler.DeleteVersion)
			versions.POST("/:id/restore", versionHandler.RestoreVersion)
		}

		aiGroup := v1.Group("/ai")
		{
			aiGroup.POST("/rewrite", aiHandler.Rewrite)
			aiGroup.POST("/diagnose", aiHandler.Diagnose)
			aiGroup.POST("/apply", aiHandler.ApplySuggestion)
		}

		v1.GET("/export", exportHandler.ExportPDF)
	}
}

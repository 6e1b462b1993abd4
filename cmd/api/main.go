package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/xiaohu31/ai-resume-architect/internal/ai"
	"github.com/xiaohu31/ai-resume-architect/internal/api"
	"github.com/xiaohu31/ai-resume-architect/internal/config"
	"github.com/xiaohu31/ai-resume-architect/internal/database"
	"github.com/xiaohu31/ai-resume-architect/internal/editor"
)

func main() {
	cfg := config.MustLoad()
	log.Printf("api bootstrapped with db path=%s history depth=%d",
		cfg.Database.Path,
		cfg.Editor.HistoryDepth,
	)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Printf("database ready")

	store := database.NewStore(db)

	ctx := context.Background()
	doc, activeBlockID, err := store.LoadLive(ctx)
	if err != nil {
		log.Fatalf("load live document: %v", err)
	}
	log.Printf("live document loaded: id=%s blocks=%d", doc.ID, len(doc.Blocks))

	ed := editor.NewStore(doc, cfg.Editor.HistoryDepth)
	if activeBlockID != "" {
		ed.SetActiveBlock(activeBlockID)
	}

	// 首次启动时把默认文档立即落盘，之后由 AutoSave 跟随变更。
	if err := store.SaveLive(ctx, doc, ed.ActiveBlockID()); err != nil {
		log.Printf("initial save failed: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	go database.AutoSave(ctx, store, ed, logger)

	aiService := ai.NewService(ai.NewProviderFactory(cfg.AI))

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, ed, store, aiService, cfg, logger)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

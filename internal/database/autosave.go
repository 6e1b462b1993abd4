package database

import (
	"context"
	"log/slog"

	"github.com/xiaohu31/ai-resume-architect/internal/editor"
)

// AutoSave 订阅编辑器的变更流并把每个新状态落盘，直到 ctx 取消。
// 写入相对内存状态是 fire-and-forget：落盘失败只记日志，
// 不向编辑路径传播，也绝不回写内存。
func AutoSave(ctx context.Context, store *Store, ed *editor.Store, logger *slog.Logger) {
	ch, cancel := ed.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case doc, ok := <-ch:
			if !ok {
				return
			}
			if err := store.SaveLive(ctx, doc, ed.ActiveBlockID()); err != nil {
				logger.Error("auto-save failed", slog.Any("error", err))
			}
		}
	}
}

package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/xiaohu31/ai-resume-architect/internal/editor"
)

const wsWriteTimeout = 10 * time.Second

// WsHandler 向预览面板推送文档变更：连接建立后先发一次当前文档，
// 之后每次真实变更推送最新快照。慢连接只会错过中间快照，
// 不会阻塞编辑路径。
type WsHandler struct {
	editor   *editor.Store
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewWsHandler 构造 WebSocket 处理器，仅接受同源连接。
func NewWsHandler(ed *editor.Store, logger *slog.Logger) *WsHandler {
	return &WsHandler{
		editor: ed,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

// HandleConnection 升级连接并进入推送循环。
func (h *WsHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	log := h.logger.With(slog.String("client_ip", c.ClientIP()))

	updates, cancel := h.editor.Subscribe()
	defer cancel()

	// 丢弃客户端消息，同时借读循环感知连接关闭。
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.writeDocument(conn, h.editor.Document()); err != nil {
		log.Warn("write initial document failed", slog.Any("error", err))
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case doc, ok := <-updates:
			if !ok {
				return
			}
			if err := h.writeDocument(conn, doc); err != nil {
				log.Warn("push document update failed", slog.Any("error", err))
				return
			}
		}
	}
}

func (h *WsHandler) writeDocument(conn *websocket.Conn, doc any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(gin.H{"type": "document", "data": doc})
}

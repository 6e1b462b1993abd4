package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiaohu31/ai-resume-architect/internal/api/middleware"
	"github.com/xiaohu31/ai-resume-architect/internal/config"
	"github.com/xiaohu31/ai-resume-architect/internal/editor"
	"github.com/xiaohu31/ai-resume-architect/internal/pdf"
)

// ExportHandler 把当前文档打印为 PDF 并直接返回字节流。
type ExportHandler struct {
	editor *editor.Store
	cfg    config.ExportConfig
}

// NewExportHandler 构造 ExportHandler。
func NewExportHandler(ed *editor.Store, cfg config.ExportConfig) *ExportHandler {
	return &ExportHandler{editor: ed, cfg: cfg}
}

// ExportPDF 渲染并导出当前文档。可选的 title 参数覆盖文件名与页面标题。
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	doc := h.editor.Document()
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		title = doc.Title
	}

	html, err := pdf.RenderHTML(doc, title)
	if err != nil {
		Internal(c, "failed to render resume")
		return
	}

	timeout := time.Duration(h.cfg.TimeoutSeconds) * time.Second
	data, err := pdf.Generate(html, timeout)
	if err != nil {
		log := middleware.LoggerFromContext(c)
		log.Error("pdf generation failed", "error", err)
		Internal(c, "failed to generate pdf")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s.pdf", url.PathEscape(title)))
	c.Data(http.StatusOK, "application/pdf", data)
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiaohu31/ai-resume-architect/internal/ai"
	"github.com/xiaohu31/ai-resume-architect/internal/editor"
	"github.com/xiaohu31/ai-resume-architect/internal/errcode"
	"github.com/xiaohu31/ai-resume-architect/internal/metrics"
	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

// AIHandler 是 AI 协作方的 HTTP 入口。改写与诊断都不直接改文档，
// 结果作为建议返回；用户确认后 UI 通过 ApplySuggestion 写入。
type AIHandler struct {
	editor  *editor.Store
	service *ai.Service
}

// NewAIHandler 构造 AIHandler。
func NewAIHandler(ed *editor.Store, service *ai.Service) *AIHandler {
	return &AIHandler{editor: ed, service: service}
}

type rewriteRequest struct {
	Text    string `json:"text" binding:"required"`
	Mode    string `json:"mode" binding:"required"`
	Context string `json:"context"`
}

type applyRequest struct {
	BlockID string `json:"block_id" binding:"required"`
	ItemID  string `json:"item_id" binding:"required"`
	Field   string `json:"field" binding:"required"`
	Value   string `json:"value"`
}

// Rewrite 按指定模式改写一段文本，返回建议文本。
func (h *AIHandler) Rewrite(c *gin.Context) {
	var req rewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	mode := ai.RewriteMode(req.Mode)
	if !ai.ValidMode(mode) {
		BadRequest(c, "unsupported rewrite mode")
		return
	}

	settings := h.editor.Document().Settings
	done := metrics.ObserveAICall("rewrite")
	result, err := h.service.Rewrite(c.Request.Context(), settings, req.Text, mode, req.Context)
	done(err)
	if err != nil {
		h.respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": result})
}

// Diagnose 对当前在编辑的文档做整体诊断。
// 每个问题附带能否在当前文档中自动定位的标记。
func (h *AIHandler) Diagnose(c *gin.Context) {
	doc := h.editor.Document()
	done := metrics.ObserveAICall("diagnose")
	report, err := h.service.Diagnose(c.Request.Context(), doc)
	done(err)
	if err != nil {
		h.respondAIError(c, err)
		return
	}

	// 诊断期间文档可能已被编辑，定位结果以返回时的文档为准。
	current := h.editor.Document()
	locatable := make([]bool, len(report.Issues))
	for i, issue := range report.Issues {
		_, locatable[i] = ai.ResolveIssueTarget(current, issue)
	}

	c.JSON(http.StatusOK, gin.H{
		"report":    report,
		"locatable": locatable,
	})
}

// ApplySuggestion 把诊断建议写入指定字段。三元组解析失败时
// 返回 409，UI 降级为"无法自动定位，请手动修改"。
func (h *AIHandler) ApplySuggestion(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	doc := h.editor.Document()
	issue := resume.DiagnosisIssue{
		BlockID: req.BlockID,
		ItemID:  req.ItemID,
		Field:   req.Field,
	}
	target, ok := ai.ResolveIssueTarget(doc, issue)
	if !ok {
		Conflict(c, "cannot locate suggestion target")
		return
	}

	c.JSON(http.StatusOK, h.editor.SetItemField(target.BlockID, target.ItemID, target.Field, req.Value))
}

func (h *AIHandler) respondAIError(c *gin.Context, err error) {
	if errors.Is(err, ai.ErrNotConfigured) {
		c.JSON(http.StatusPreconditionFailed, gin.H{
			"error": "请先配置 API Key",
			"code":  errcode.ConfigMissing,
		})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{
		"error": err.Error(),
		"code":  errcode.SystemError,
	})
}

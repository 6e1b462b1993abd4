package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiaohu31/ai-resume-architect/internal/editor"
	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

// DocumentHandler 把编辑器状态容器的变更操作暴露为 HTTP 接口。
// 所有结构化操作都是全函数：引用不存在的 ID 不报错，
// 原样返回当前文档（镜像前端拖拽竞态下的防御行为）。
type DocumentHandler struct {
	editor *editor.Store
}

// NewDocumentHandler 构造 DocumentHandler。
func NewDocumentHandler(ed *editor.Store) *DocumentHandler {
	return &DocumentHandler{editor: ed}
}

type titleRequest struct {
	Title string `json:"title" binding:"required"`
}

type reorderRequest struct {
	ActiveID string `json:"active_id" binding:"required"`
	OverID   string `json:"over_id" binding:"required"`
}

type fieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type selectionRequest struct {
	BlockID string `json:"block_id"`
}

func (h *DocumentHandler) respondDocument(c *gin.Context, doc *resume.Document) {
	c.JSON(http.StatusOK, doc)
}

// GetDocument 返回当前在编辑的文档。
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	h.respondDocument(c, h.editor.Document())
}

// SetTitle 替换简历标题。
func (h *DocumentHandler) SetTitle(c *gin.Context) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respondDocument(c, h.editor.SetTitle(req.Title))
}

// UpdateSettings 浅合并展示/AI 配置。
func (h *DocumentHandler) UpdateSettings(c *gin.Context) {
	var patch resume.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respondDocument(c, h.editor.UpdateSettings(patch))
}

// ReplaceDocument 整体替换文档，替换前做形状校验。
func (h *DocumentHandler) ReplaceDocument(c *gin.Context) {
	var doc resume.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := doc.Validate(); err != nil {
		Unprocessable(c, err.Error())
		return
	}
	h.respondDocument(c, h.editor.ReplaceDocument(&doc))
}

// AddBlock 追加一个自定义模块。
func (h *DocumentHandler) AddBlock(c *gin.Context) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respondDocument(c, h.editor.AddBlock(req.Title))
}

// RemoveBlock 删除模块。personal 模块与未知 ID 静默无效。
func (h *DocumentHandler) RemoveBlock(c *gin.Context) {
	h.respondDocument(c, h.editor.RemoveBlock(c.Param("id")))
}

// RenameBlock 修改模块标题。
func (h *DocumentHandler) RenameBlock(c *gin.Context) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respondDocument(c, h.editor.RenameBlock(c.Param("id"), req.Title))
}

// ToggleBlockVisible 切换模块可见性。
func (h *DocumentHandler) ToggleBlockVisible(c *gin.Context) {
	h.respondDocument(c, h.editor.ToggleBlockVisible(c.Param("id")))
}

// ReorderBlocks 移动模块到目标模块当前的位置。
func (h *DocumentHandler) ReorderBlocks(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respondDocument(c, h.editor.ReorderBlocks(req.ActiveID, req.OverID))
}

// AddItem 向模块追加空条目。
func (h *DocumentHandler) AddItem(c *gin.Context) {
	h.respondDocument(c, h.editor.AddItem(c.Param("id")))
}

// RemoveItem 删除条目。
func (h *DocumentHandler) RemoveItem(c *gin.Context) {
	h.respondDocument(c, h.editor.RemoveItem(c.Param("id"), c.Param("itemId")))
}

// SetItemField 设置条目的单个字段。
func (h *DocumentHandler) SetItemField(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respondDocument(c, h.editor.SetItemField(c.Param("id"), c.Param("itemId"), req.Field, req.Value))
}

// ToggleItemExpanded 翻转条目展开状态。
func (h *DocumentHandler) ToggleItemExpanded(c *gin.Context) {
	h.respondDocument(c, h.editor.ToggleItemExpanded(c.Param("id"), c.Param("itemId")))
}

// ReorderItems 在模块内移动条目。
func (h *DocumentHandler) ReorderItems(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respondDocument(c, h.editor.ReorderItems(c.Param("id"), req.ActiveID, req.OverID))
}

// GetHistory 返回撤销/重做栈深度，供工具栏置灰按钮。
func (h *DocumentHandler) GetHistory(c *gin.Context) {
	past, future := h.editor.HistoryState()
	c.JSON(http.StatusOK, gin.H{
		"can_undo": past > 0,
		"can_redo": future > 0,
		"past":     past,
		"future":   future,
	})
}

// Undo 回退一步。
func (h *DocumentHandler) Undo(c *gin.Context) {
	h.respondDocument(c, h.editor.Undo())
}

// Redo 前进一步。
func (h *DocumentHandler) Redo(c *gin.Context) {
	h.respondDocument(c, h.editor.Redo())
}

// GetSelection 返回当前选中的模块 ID。
func (h *DocumentHandler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"block_id": h.editor.ActiveBlockID()})
}

// SetSelection 设置当前选中模块，空 block_id 表示取消选中。
func (h *DocumentHandler) SetSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.editor.SetActiveBlock(req.BlockID)
	c.JSON(http.StatusOK, gin.H{"block_id": h.editor.ActiveBlockID()})
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiaohu31/ai-resume-architect/internal/database"
	"github.com/xiaohu31/ai-resume-architect/internal/editor"
)

// VersionHandler 负责命名版本快照的保存、列举、删除与恢复。
type VersionHandler struct {
	editor *editor.Store
	store  *database.Store
}

// NewVersionHandler 构造 VersionHandler。
func NewVersionHandler(ed *editor.Store, store *database.Store) *VersionHandler {
	return &VersionHandler{editor: ed, store: store}
}

type saveVersionRequest struct {
	Name string `json:"name" binding:"required"`
}

// SaveVersion 把当前在编辑的文档深拷贝存为命名版本。
func (h *VersionHandler) SaveVersion(c *gin.Context) {
	var req saveVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	version, err := h.store.SaveVersion(c.Request.Context(), req.Name, h.editor.Document())
	if err != nil {
		Internal(c, "failed to save version")
		return
	}
	c.JSON(http.StatusCreated, version)
}

// ListVersions 按创建时间倒序列出当前简历的版本。
func (h *VersionHandler) ListVersions(c *gin.Context) {
	versions, err := h.store.ListVersions(c.Request.Context(), h.editor.Document().ID)
	if err != nil {
		Internal(c, "failed to list versions")
		return
	}
	c.JSON(http.StatusOK, versions)
}

// DeleteVersion 删除版本。删除从不影响在编辑的文档。
func (h *VersionHandler) DeleteVersion(c *gin.Context) {
	if err := h.store.DeleteVersion(c.Request.Context(), c.Param("id")); err != nil {
		Internal(c, "failed to delete version")
		return
	}
	c.Status(http.StatusNoContent)
}

// RestoreVersion 取出快照并整体替换在编辑文档。
// 快照损坏时恢复失败，在编辑文档保持不变。
func (h *VersionHandler) RestoreVersion(c *gin.Context) {
	doc, err := h.store.RestoreVersion(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, database.ErrVersionNotFound):
			NotFound(c, "version not found")
		case errors.Is(err, database.ErrVersionCorrupt):
			Unprocessable(c, "version data corrupt")
		default:
			Internal(c, "failed to restore version")
		}
		return
	}
	c.JSON(http.StatusOK, h.editor.ReplaceDocument(doc))
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/xiaohu31/ai-resume-architect/internal/ai"
	"github.com/xiaohu31/ai-resume-architect/internal/config"
	"github.com/xiaohu31/ai-resume-architect/internal/database"
	"github.com/xiaohu31/ai-resume-architect/internal/editor"
	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

type fakeProvider struct {
	reply string
	err   error
}

func (p *fakeProvider) GenerateText(_ context.Context, _ string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type fakeProviderSource struct {
	provider ai.Provider
	err      error
}

func (s *fakeProviderSource) For(_ resume.Settings) (ai.Provider, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.provider, nil
}

type testEnv struct {
	router *gin.Engine
	editor *editor.Store
	store  *database.Store
}

func newTestEnv(t *testing.T, source ai.ProviderSource) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.InitDatabase(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	store := database.NewStore(db)
	ed := editor.NewStore(resume.DefaultDocument(), 0)

	if source == nil {
		source = &fakeProviderSource{err: ai.ErrNotConfigured}
	}

	cfg := &config.Config{
		Export: config.ExportConfig{TimeoutSeconds: 5},
	}
	logger := slog.Default()

	router := gin.New()
	RegisterRoutes(router, ed, store, ai.NewService(source), cfg, logger)

	return &testEnv{router: router, editor: ed, store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeDocument(t *testing.T, w *httptest.ResponseRecorder) *resume.Document {
	t.Helper()
	var doc resume.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode document: %v (body %s)", err, w.Body.String())
	}
	return &doc
}

func TestGetDocument(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/v1/document", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	doc := decodeDocument(t, w)
	if len(doc.Blocks) != 5 {
		t.Fatalf("expected default document, got %d blocks", len(doc.Blocks))
	}
}

func TestSetTitleEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodPut, "/v1/document/title", gin.H{"title": "面试专用"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if doc := decodeDocument(t, w); doc.Title != "面试专用" {
		t.Fatalf("title = %q", doc.Title)
	}

	w = env.do(t, http.MethodPut, "/v1/document/title", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing title should 400, got %d", w.Code)
	}
}

func TestBlockLifecycleEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/v1/blocks", gin.H{"title": "获奖经历"})
	if w.Code != http.StatusOK {
		t.Fatalf("add block: %d %s", w.Code, w.Body.String())
	}
	doc := decodeDocument(t, w)
	if len(doc.Blocks) != 6 {
		t.Fatalf("expected 6 blocks, got %d", len(doc.Blocks))
	}
	newBlock := doc.Blocks[5]
	if newBlock.Type != resume.BlockCustom || newBlock.Title != "获奖经历" {
		t.Fatalf("unexpected new block: %+v", newBlock)
	}

	w = env.do(t, http.MethodPut, "/v1/blocks/"+newBlock.ID+"/title", gin.H{"title": "荣誉"})
	if doc = decodeDocument(t, w); doc.Blocks[5].Title != "荣誉" {
		t.Fatalf("rename failed: %+v", doc.Blocks[5])
	}

	w = env.do(t, http.MethodDelete, "/v1/blocks/"+newBlock.ID, nil)
	if doc = decodeDocument(t, w); len(doc.Blocks) != 5 {
		t.Fatalf("remove failed, %d blocks", len(doc.Blocks))
	}

	// personal 模块不可删除，请求成功但文档不变。
	w = env.do(t, http.MethodDelete, "/v1/blocks/"+resume.PersonalBlockID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if doc = decodeDocument(t, w); len(doc.Blocks) != 5 {
		t.Fatalf("personal block was removed")
	}
}

func TestFieldAndUndoEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)
	doc := env.editor.Document()
	itemID := doc.Blocks[0].Items[0].ID

	path := fmt.Sprintf("/v1/blocks/%s/items/%s/fields", resume.PersonalBlockID, itemID)
	w := env.do(t, http.MethodPut, path, gin.H{"field": "name", "value": "Alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("set field: %d %s", w.Code, w.Body.String())
	}
	updated := decodeDocument(t, w)
	if updated.Blocks[0].Items[0].Fields["name"] != "Alice" {
		t.Fatalf("field not set")
	}

	w = env.do(t, http.MethodPost, "/v1/history/undo", nil)
	reverted := decodeDocument(t, w)
	if reverted.Blocks[0].Items[0].Fields["name"] != "" {
		t.Fatalf("undo did not revert the field edit")
	}

	w = env.do(t, http.MethodPost, "/v1/history/redo", nil)
	redone := decodeDocument(t, w)
	if redone.Blocks[0].Items[0].Fields["name"] != "Alice" {
		t.Fatalf("redo did not reapply the field edit")
	}
}

func TestHistoryStateEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/v1/history", nil)
	var state struct {
		CanUndo bool `json:"can_undo"`
		CanRedo bool `json:"can_redo"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode history state: %v", err)
	}
	if state.CanUndo || state.CanRedo {
		t.Fatalf("fresh store should have empty history")
	}

	env.do(t, http.MethodPut, "/v1/document/title", gin.H{"title": "x"})
	w = env.do(t, http.MethodGet, "/v1/history", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode history state: %v", err)
	}
	if !state.CanUndo {
		t.Fatalf("mutation should enable undo")
	}
}

func TestSelectionEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPut, "/v1/selection", gin.H{"block_id": resume.PersonalBlockID})
	if w.Code != http.StatusOK {
		t.Fatalf("set selection: %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/v1/selection", nil)
	var sel struct {
		BlockID string `json:"block_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &sel); err != nil {
		t.Fatalf("decode selection: %v", err)
	}
	if sel.BlockID != resume.PersonalBlockID {
		t.Fatalf("selection = %q", sel.BlockID)
	}
}

func TestVersionEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/v1/versions", gin.H{"name": "投递版"})
	if w.Code != http.StatusCreated {
		t.Fatalf("save version: %d %s", w.Code, w.Body.String())
	}
	var version resume.Version
	if err := json.Unmarshal(w.Body.Bytes(), &version); err != nil {
		t.Fatalf("decode version: %v", err)
	}

	// 保存版本后继续编辑，再恢复应回到保存时的内容。
	env.do(t, http.MethodPut, "/v1/document/title", gin.H{"title": "乱改之后"})

	w = env.do(t, http.MethodPost, "/v1/versions/"+version.ID+"/restore", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("restore: %d %s", w.Code, w.Body.String())
	}
	restored := decodeDocument(t, w)
	if restored.Title != version.Data.Title {
		t.Fatalf("restore yielded %q, want %q", restored.Title, version.Data.Title)
	}

	w = env.do(t, http.MethodGet, "/v1/versions", nil)
	var versions []resume.Version
	if err := json.Unmarshal(w.Body.Bytes(), &versions); err != nil {
		t.Fatalf("decode versions: %v", err)
	}
	if len(versions) != 1 || versions[0].ID != version.ID {
		t.Fatalf("unexpected version list: %+v", versions)
	}

	w = env.do(t, http.MethodDelete, "/v1/versions/"+version.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete version: %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/v1/versions/"+version.ID+"/restore", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("restoring a deleted version should 404, got %d", w.Code)
	}
}

func TestReplaceDocumentValidates(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/v1/document/replace", gin.H{
		"id":     "doc",
		"blocks": []any{},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid document should 422, got %d %s", w.Code, w.Body.String())
	}

	replacement := resume.DefaultDocument()
	replacement.Title = "整体替换"
	w = env.do(t, http.MethodPost, "/v1/document/replace", replacement)
	if w.Code != http.StatusOK {
		t.Fatalf("replace: %d %s", w.Code, w.Body.String())
	}
	if doc := decodeDocument(t, w); doc.Title != "整体替换" {
		t.Fatalf("replace not applied")
	}
}

func TestRewriteEndpoint(t *testing.T) {
	env := newTestEnv(t, &fakeProviderSource{provider: &fakeProvider{reply: "更专业的表述"}})

	w := env.do(t, http.MethodPost, "/v1/ai/rewrite", gin.H{
		"text":    "我会写代码",
		"mode":    "polish",
		"context": "专业技能",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("rewrite: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Text != "更专业的表述" {
		t.Fatalf("text = %q", resp.Text)
	}

	w = env.do(t, http.MethodPost, "/v1/ai/rewrite", gin.H{"text": "x", "mode": "translate"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unsupported mode should 400, got %d", w.Code)
	}
}

func TestRewriteNotConfigured(t *testing.T) {
	env := newTestEnv(t, nil) // 默认 source 返回 ErrNotConfigured

	w := env.do(t, http.MethodPost, "/v1/ai/rewrite", gin.H{"text": "x", "mode": "polish"})
	if w.Code != http.StatusPreconditionFailed {
		t.Fatalf("missing key should 412, got %d %s", w.Code, w.Body.String())
	}
}

func TestRewriteTransportError(t *testing.T) {
	env := newTestEnv(t, &fakeProviderSource{provider: &fakeProvider{err: errors.New("upstream down")}})

	w := env.do(t, http.MethodPost, "/v1/ai/rewrite", gin.H{"text": "x", "mode": "polish"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("transport failure should 502, got %d", w.Code)
	}

	// 失败的异步调用不触碰文档状态。
	if env.editor.Document().Title != "我的简历 2025" {
		t.Fatalf("ai failure corrupted document state")
	}
}

func TestApplySuggestionEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	doc := env.editor.Document()
	itemID := doc.Blocks[0].Items[0].ID

	w := env.do(t, http.MethodPost, "/v1/ai/apply", gin.H{
		"block_id": resume.PersonalBlockID,
		"item_id":  itemID,
		"field":    "name",
		"value":    "张三",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("apply: %d %s", w.Code, w.Body.String())
	}
	if applied := decodeDocument(t, w); applied.Blocks[0].Items[0].Fields["name"] != "张三" {
		t.Fatalf("suggestion not applied")
	}

	// 目标已不存在时降级为 409，不崩溃、不改文档。
	w = env.do(t, http.MethodPost, "/v1/ai/apply", gin.H{
		"block_id": "ghost",
		"item_id":  itemID,
		"field":    "name",
		"value":    "李四",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("stale target should 409, got %d", w.Code)
	}
}

func TestDiagnoseEndpoint(t *testing.T) {
	provider := &fakeProvider{}
	env := newTestEnv(t, &fakeProviderSource{provider: provider})
	itemID := env.editor.Document().Blocks[0].Items[0].ID

	provider.reply = fmt.Sprintf(`{"scores":{"completeness":80,"starCompliance":70,"quantification":60,"expression":75},`+
		`"totalScore":71,"level":"good","issues":[`+
		`{"module":"个人信息","blockId":"personal-block","itemId":%q,"field":"name","severity":"warning","issue":"缺少姓名","suggestion":"补充姓名"},`+
		`{"module":"幻觉模块","blockId":"ghost","itemId":"x","field":"y","severity":"info","issue":"无","suggestion":"无"}]}`, itemID)

	w := env.do(t, http.MethodPost, "/v1/ai/diagnose", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("diagnose: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Report    resume.DiagnosisReport `json:"report"`
		Locatable []bool                 `json:"locatable"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Report.TotalScore != 71 {
		t.Fatalf("unexpected report: %+v", resp.Report)
	}
	if len(resp.Locatable) != 2 {
		t.Fatalf("expected locatable flags per issue, got %v", resp.Locatable)
	}
	if !resp.Locatable[0] {
		t.Fatalf("real target should be locatable: %v", resp.Locatable)
	}
	if resp.Locatable[1] {
		t.Fatalf("hallucinated target must not be locatable: %v", resp.Locatable)
	}
}

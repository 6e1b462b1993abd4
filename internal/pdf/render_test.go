package pdf

import (
	"strings"
	"testing"

	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

func renderFixture() *resume.Document {
	doc := resume.DefaultDocument()
	doc.Blocks[0].Items[0].Fields["name"] = "张三"
	doc.Blocks[1].Items = append(doc.Blocks[1].Items, resume.Item{
		ID:     "work-1",
		Fields: map[string]string{"company": "某科技公司", "position": "后端工程师"},
	})
	return doc
}

func TestRenderHTMLContainsVisibleContent(t *testing.T) {
	doc := renderFixture()

	html, err := RenderHTML(doc, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{doc.Title, "个人信息", "张三", "某科技公司", "后端工程师"} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered html missing %q", want)
		}
	}
	if !strings.Contains(html, "font-size: 14px") {
		t.Fatalf("font size from settings not applied")
	}
	if !strings.Contains(html, "padding: 40px") {
		t.Fatalf("page padding from settings not applied")
	}
}

func TestRenderHTMLSkipsHiddenBlocks(t *testing.T) {
	doc := renderFixture()
	doc.Blocks[1].Visible = false

	html, err := RenderHTML(doc, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "工作经历") {
		t.Fatalf("hidden block should not be rendered")
	}
	if strings.Contains(html, "某科技公司") {
		t.Fatalf("hidden block items should not be rendered")
	}
}

func TestRenderHTMLExportTitleOverride(t *testing.T) {
	doc := renderFixture()

	html, err := RenderHTML(doc, "张三-后端-3年")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<h1>张三-后端-3年</h1>") {
		t.Fatalf("export title not applied")
	}
	// 覆盖只作用于渲染，不回写文档。
	if doc.Title == "张三-后端-3年" {
		t.Fatalf("export title leaked into the document")
	}
}

func TestRenderHTMLEscapesFieldValues(t *testing.T) {
	doc := renderFixture()
	doc.Blocks[0].Items[0].Fields["name"] = `<script>alert(1)</script>`

	html, err := RenderHTML(doc, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatalf("field value was not escaped")
	}
}

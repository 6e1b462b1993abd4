package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

// printTemplate 是打印用的简历 HTML。它不追求还原前端模板的
// 视觉细节，只保证模块/条目按文档顺序完整出现，
// 隐藏的模块不渲染。字体与页边距取自文档 Settings。
const printTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4; margin: 0; }
  body {
    margin: 0;
    padding: {{.Settings.PagePadding}}px;
    font-size: {{.Settings.FontSize}}px;
    line-height: {{.Settings.LineHeight}};
    font-family: "Helvetica Neue", "PingFang SC", "Microsoft YaHei", sans-serif;
    color: #222;
  }
  h1 { font-size: 1.6em; margin: 0 0 12px; }
  h2 {
    font-size: 1.1em;
    margin: 16px 0 8px;
    padding-bottom: 4px;
    border-bottom: 1px solid #ddd;
  }
  .item { margin-bottom: 10px; }
  .field { margin: 2px 0; white-space: pre-wrap; }
  .field-key { color: #888; margin-right: 6px; }
</style>
</head>
<body>
  <h1>{{.Title}}</h1>
  {{range .Blocks}}{{if .Visible}}
  <section>
    <h2>{{.Title}}</h2>
    {{range .Items}}
    <div class="item">
      {{range $key, $value := .Fields}}{{if $value}}
      <div class="field"><span class="field-key">{{$key}}</span>{{$value}}</div>
      {{end}}{{end}}
    </div>
    {{end}}
  </section>
  {{end}}{{end}}
</body>
</html>`

var printTmpl = template.Must(template.New("print").Parse(printTemplate))

// RenderHTML 把文档渲染为打印用 HTML。exportTitle 非空时覆盖文档标题。
func RenderHTML(doc *resume.Document, exportTitle string) (string, error) {
	view := *doc
	if exportTitle != "" {
		view.Title = exportTitle
	}

	var buf bytes.Buffer
	if err := printTmpl.Execute(&buf, &view); err != nil {
		return "", fmt.Errorf("render resume html: %w", err)
	}
	return buf.String(), nil
}

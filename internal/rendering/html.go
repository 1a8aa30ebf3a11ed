package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"
)

//go:embed preview.html.tmpl
var templateFiles embed.FS

var (
	previewTmpl     *template.Template
	previewTmplOnce sync.Once
	previewTmplErr  error
)

// previewData is what the preview template executes against.
type previewData struct {
	Tree  *Tree
	Style Style
}

// HTML realizes a render tree as a standalone print-ready HTML page.
func HTML(tree *Tree) (string, error) {
	tmpl, err := loadPreviewTemplate()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	data := previewData{Tree: tree, Style: StyleFor(tree.Template)}
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", &TemplateError{Message: "failed to execute preview template", Cause: err}
	}
	return sb.String(), nil
}

func loadPreviewTemplate() (*template.Template, error) {
	previewTmplOnce.Do(func() {
		content, err := templateFiles.ReadFile("preview.html.tmpl")
		if err != nil {
			previewTmplErr = &TemplateError{Message: "embedded preview template missing", Cause: err}
			return
		}
		previewTmpl, err = template.New("preview").Parse(string(content))
		if err != nil {
			previewTmplErr = &TemplateError{Message: "failed to parse preview template", Cause: err}
		}
	})
	return previewTmpl, previewTmplErr
}

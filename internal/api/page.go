package api

import (
	"embed"
	"html/template"

	"country-stats/internal/stats"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageView：HTML 页面状态，同时实现 widget.Presenter
// 约束：错误区与结果区是两个独立开关，由触发流程保证只显示其一
type pageView struct {
	InputValue   string
	Recent       []string
	ErrorMsg     string
	ErrorVisible bool
	StatsVisible bool
	Result       stats.Result
}

func (v *pageView) Render(res stats.Result) {
	v.Result = res
	v.StatsVisible = true
}

func (v *pageView) ShowError(msg string) {
	v.ErrorMsg = msg
	v.ErrorVisible = true
}

func (v *pageView) ClearError() {
	v.ErrorMsg = ""
	v.ErrorVisible = false
}

func (v *pageView) HideResults() { v.StatsVisible = false }

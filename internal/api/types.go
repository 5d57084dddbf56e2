package api

import "country-stats/internal/stats"

// jsonView：JSON 接口返回结构，同时实现 widget.Presenter
// 约束：ok=true 时 stats 非空；失败时仅有 error
type jsonView struct {
	OK    bool          `json:"ok"`
	Error string        `json:"error,omitempty"`
	Stats *stats.Result `json:"stats,omitempty"`
}

func (v *jsonView) Render(res stats.Result) {
	v.OK = true
	v.Stats = &res
}

func (v *jsonView) ShowError(msg string) {
	v.OK = false
	v.Error = msg
}

func (v *jsonView) ClearError() { v.Error = "" }

func (v *jsonView) HideResults() {
	v.OK = false
	v.Stats = nil
}

// 包 widget：两个触发动作（按名称搜索、获取全部）驱动注入的展示层
// 约束：每次触发只发起一次请求；不取消、不去重、不排序，重叠请求以最后完成者的渲染为准
package widget

import (
	"context"
	"errors"
	"strings"

	"country-stats/internal/countries"
	"country-stats/internal/logger"
	"country-stats/internal/metrics"
	"country-stats/internal/stats"
)

const (
	TriggerSearch = "search"
	TriggerAll    = "all"

	EmptyQueryMessage = "Please enter a country name (or part of it)."
)

var ErrEmptyQuery = errors.New(EmptyQueryMessage)

// Source：国家数据来源
type Source interface {
	FetchAll(ctx context.Context) ([]countries.Record, error)
	SearchByName(ctx context.Context, q string) ([]countries.Record, error)
}

// Presenter：展示层契约（页面、JSON、终端各自实现）
type Presenter interface {
	Render(res stats.Result)
	ShowError(msg string)
	ClearError()
	HideResults()
}

// Outcome：一次触发完成后的摘要，供使用量统计与最近搜索记录
type Outcome struct {
	Trigger string
	Query   string
	OK      bool
	Count   int
	Err     error
}

// Observer：触发完成回调；实现方自行处理错误，不影响展示
type Observer interface {
	Observe(ctx context.Context, o Outcome)
}

type Widget struct {
	Source    Source
	Observers []Observer
}

func New(src Source, obs ...Observer) *Widget {
	return &Widget{Source: src, Observers: obs}
}

// Search：按名称搜索；空白查询不发请求，直接提示
func (w *Widget) Search(ctx context.Context, query string, p Presenter) error {
	p.ClearError()
	p.HideResults()
	q := strings.TrimSpace(query)
	if q == "" {
		p.ShowError(EmptyQueryMessage)
		w.finish(ctx, Outcome{Trigger: TriggerSearch, Err: ErrEmptyQuery})
		return ErrEmptyQuery
	}
	recs, err := w.Source.SearchByName(ctx, q)
	if err != nil {
		p.ShowError("Search failed: " + err.Error())
		w.finish(ctx, Outcome{Trigger: TriggerSearch, Query: q, Err: err})
		return err
	}
	res := stats.Aggregate(recs)
	p.Render(res)
	w.finish(ctx, Outcome{Trigger: TriggerSearch, Query: q, OK: true, Count: res.Count})
	return nil
}

// FetchAll：获取全部国家
func (w *Widget) FetchAll(ctx context.Context, p Presenter) error {
	p.ClearError()
	p.HideResults()
	recs, err := w.Source.FetchAll(ctx)
	if err != nil {
		p.ShowError("ALL failed: " + err.Error())
		w.finish(ctx, Outcome{Trigger: TriggerAll, Err: err})
		return err
	}
	res := stats.Aggregate(recs)
	p.Render(res)
	w.finish(ctx, Outcome{Trigger: TriggerAll, OK: true, Count: res.Count})
	return nil
}

func (w *Widget) finish(ctx context.Context, o Outcome) {
	outcome := "ok"
	switch {
	case errors.Is(o.Err, ErrEmptyQuery):
		outcome = "invalid"
	case o.Err != nil:
		outcome = "error"
	default:
		metrics.RecordsAggregated.Observe(float64(o.Count))
	}
	metrics.TriggersTotal.WithLabelValues(o.Trigger, outcome).Inc()
	logger.L().Debug("widget_trigger_done", "trigger", o.Trigger, "outcome", outcome, "count", o.Count)
	logger.Annotate(ctx, "trigger", o.Trigger, "outcome", outcome, "records", o.Count)
	for _, ob := range w.Observers {
		if ob != nil {
			ob.Observe(ctx, o)
		}
	}
}

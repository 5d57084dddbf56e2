// 包 api：集中注册页面与 JSON 路由，主入口只负责装配依赖
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"country-stats/internal/geo"
	"country-stats/internal/history"
	"country-stats/internal/logger"
	"country-stats/internal/metrics"
	"country-stats/internal/store"
	"country-stats/internal/widget"
)

// Server：路由依赖；Store/History/Geo 均可为 nil
type Server struct {
	Widget  *widget.Widget
	Store   *store.Store
	History *history.History
	Geo     *geo.Hinter
	APIBase string
}

// Handler：完整路由（页面、{APIBase}/...、健康检查）
func (s *Server) Handler() http.Handler {
	base := s.APIBase
	if base == "" {
		base = "/api"
	}
	base = "/" + strings.Trim(base, "/")
	mux := http.NewServeMux()
	mux.Handle(base+"/", http.StripPrefix(base, routeTagged(s.BuildRoutes())))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /{$}", s.handlePage)
	return mux
}

// BuildRoutes：JSON 接口，挂载于 APIBase 之下
func (s *Server) BuildRoutes() *http.ServeMux {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /countries/all", func(w http.ResponseWriter, r *http.Request) {
		var v jsonView
		err := s.Widget.FetchAll(r.Context(), &v)
		writeJSON(w, statusFor(err), v)
	})
	apiMux.HandleFunc("GET /countries/search", func(w http.ResponseWriter, r *http.Request) {
		var v jsonView
		err := s.Widget.Search(r.Context(), r.URL.Query().Get("q"), &v)
		writeJSON(w, statusFor(err), v)
	})
	apiMux.HandleFunc("GET /usage", func(w http.ResponseWriter, r *http.Request) {
		if s.Store == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "usage store disabled"})
			return
		}
		t, err := s.Store.GetTotals(r.Context())
		if err != nil {
			logger.L().Error("usage_totals_error", "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "usage unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, t)
	})
	apiMux.HandleFunc("GET /recent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"recent": s.recent(r.Context())})
	})
	apiMux.Handle("GET /metrics", metrics.Handler())
	return apiMux
}

// handlePage：q 存在（含空值）触发搜索，all 存在触发获取全部，否则只渲染空表单
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := &pageView{}
	switch {
	case q.Has("all"):
		_ = s.Widget.FetchAll(r.Context(), v)
	case q.Has("q"):
		v.InputValue = q.Get("q")
		_ = s.Widget.Search(r.Context(), v.InputValue, v)
	default:
		v.InputValue = s.Geo.Hint(geo.ClientIP(r))
	}
	v.Recent = s.recent(r.Context())
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, v); err != nil {
		logger.L().Error("page_render_error", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) recent(ctx context.Context) []string {
	out, err := s.History.Recent(ctx)
	if err != nil {
		logger.L().Error("history_read_error", "err", err)
		return nil
	}
	return out
}

// routeTagged：把子路由命中的模式写入访问日志，未命中时保留外层模式
func routeTagged(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			logger.SetRoute(r.Context(), pattern)
		}
		mux.ServeHTTP(w, r)
	})
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, widget.ErrEmptyQuery):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// 包 logger：HTTP 访问日志中间件，按路由与触发动作记录每个请求
package logger

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

type accessKey struct{}

// accessRecord：单个请求的访问日志附加字段，由下游处理器经 context 补充
type accessRecord struct {
	mu    sync.Mutex
	route string
	attrs []slog.Attr
}

// SetRoute：记录命中的路由模式（如 "GET /countries/search"）；未经中间件时为空操作
func SetRoute(ctx context.Context, pattern string) {
	if rec, ok := ctx.Value(accessKey{}).(*accessRecord); ok {
		rec.mu.Lock()
		rec.route = pattern
		rec.mu.Unlock()
	}
}

// Annotate：向当前请求的 http_access 日志追加键值对；未经中间件时为空操作
func Annotate(ctx context.Context, args ...any) {
	rec, ok := ctx.Value(accessKey{}).(*accessRecord)
	if !ok {
		return
	}
	r := slog.Record{}
	r.Add(args...)
	rec.mu.Lock()
	r.Attrs(func(a slog.Attr) bool {
		rec.attrs = append(rec.attrs, a)
		return true
	})
	rec.mu.Unlock()
}

// countingWriter：捕获状态码与写出字节数
type countingWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *countingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *countingWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// AccessMiddleware：每个请求一条 http_access；5xx 记 Warn，其余记 Debug
// 约束：只记录路由与路径，不记录查询串（搜索词不落日志）
func AccessMiddleware(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &accessRecord{}
			r = r.WithContext(context.WithValue(r.Context(), accessKey{}, rec))
			cw := &countingWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(cw, r)

			level := slog.LevelDebug
			if cw.status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			rec.mu.Lock()
			route := rec.route
			if route == "" {
				route = r.Pattern
			}
			if route == "" {
				route = "unmatched"
			}
			attrs := append([]slog.Attr{
				slog.String("method", r.Method),
				slog.String("route", route),
				slog.String("path", r.URL.Path),
				slog.Int("status", cw.status),
				slog.Int("bytes", cw.bytes),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("ip", r.RemoteAddr),
			}, rec.attrs...)
			rec.mu.Unlock()
			l.LogAttrs(r.Context(), level, "http_access", attrs...)
		})
	}
}

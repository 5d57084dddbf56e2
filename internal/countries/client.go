// 包 countries：REST Countries 数据源（记录模型、容错解码与 HTTP 客户端）
package countries

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"country-stats/internal/logger"
	"country-stats/internal/metrics"
)

const (
	DefaultBaseURL = "https://restcountries.com"
	DefaultFields  = "name,population,currencies,region"

	endpointAll  = "all"
	endpointName = "name"
)

// QueryEscape 之后还原 URI 组件中不转义的字符，空格统一为 %20
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent：保留 A-Z a-z 0-9 - _ . ! ~ * ' ( )，其余按 UTF-8 百分号编码
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// HTTPError：上游返回非 2xx 状态
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string { return "HTTP " + strconv.Itoa(e.Status) }

// Client：REST Countries v3.1 客户端
// 约束：不重试、不缓存；超时只由 ctx 与 HTTP 客户端决定
type Client struct {
	BaseURL string
	Fields  string
	HTTP    *http.Client
}

// NewClient：baseURL 为空时使用公网地址；timeout<=0 表示不设客户端超时
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Fields:  DefaultFields,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// AllURL：全部国家查询地址
func (c *Client) AllURL() string {
	return c.base() + "/v3.1/all?fields=" + c.fields()
}

// NameURL：按名称查询地址，q 按 URI 组件规则整体转义
func (c *Client) NameURL(q string) string {
	return c.base() + "/v3.1/name/" + escapeComponent(q) + "?fields=" + c.fields()
}

// FetchAll：拉取全部国家
func (c *Client) FetchAll(ctx context.Context) ([]Record, error) {
	return c.get(ctx, endpointAll, c.AllURL())
}

// SearchByName：按名称（子串）查询国家
func (c *Client) SearchByName(ctx context.Context, q string) ([]Record, error) {
	return c.get(ctx, endpointName, c.NameURL(q))
}

func (c *Client) get(ctx context.Context, endpoint, u string) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	t0 := time.Now()
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint).Inc()
	logger.L().Debug("countries_req", "endpoint", endpoint, "url", u)
	resp, err := hc.Do(req)
	if err != nil {
		logger.L().Error("countries_http_error", "endpoint", endpoint, "err", err)
		metrics.UpstreamFailTotal.WithLabelValues(endpoint, "transport").Inc()
		return nil, err
	}
	defer resp.Body.Close()
	metrics.UpstreamDurationMs.WithLabelValues(endpoint).Observe(float64(time.Since(t0).Milliseconds()))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		logger.L().Info("countries_status_error", "endpoint", endpoint, "status", resp.StatusCode)
		metrics.UpstreamFailTotal.WithLabelValues(endpoint, "status").Inc()
		return nil, &HTTPError{Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamFailTotal.WithLabelValues(endpoint, "read").Inc()
		return nil, fmt.Errorf("read body: %w", err)
	}
	recs, err := ParseRecords(body)
	if err != nil {
		logger.L().Error("countries_decode_error", "endpoint", endpoint, "err", err)
		metrics.UpstreamFailTotal.WithLabelValues(endpoint, "decode").Inc()
		return nil, err
	}
	logger.L().Debug("countries_resp", "endpoint", endpoint, "records", len(recs), "duration_ms", time.Since(t0).Milliseconds())
	return recs, nil
}

func (c *Client) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Client) fields() string {
	if c.Fields == "" {
		return DefaultFields
	}
	return c.Fields
}

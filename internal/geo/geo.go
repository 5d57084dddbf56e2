// 包 geo：访客国家提示（GeoLite2/GeoIP2 Country 库），用于预填搜索框
package geo

import (
	"net"
	"net/http"
	"strings"

	"github.com/oschwald/geoip2-golang"

	"country-stats/internal/logger"
)

// Hinter：未加载库时 Hint 始终返回空串
type Hinter struct {
	r *geoip2.Reader
}

// Open：path 为空时返回禁用的 Hinter
func Open(path string) (*Hinter, error) {
	if path == "" {
		return &Hinter{}, nil
	}
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &Hinter{r: r}, nil
}

func (h *Hinter) Close() error {
	if h == nil || h.r == nil {
		return nil
	}
	return h.r.Close()
}

// Hint：按 IP 返回国家英文名
func (h *Hinter) Hint(ip string) string {
	if h == nil || h.r == nil {
		return ""
	}
	p := net.ParseIP(ip)
	if p == nil {
		return ""
	}
	c, err := h.r.Country(p)
	if err != nil {
		logger.L().Debug("geo_lookup_error", "ip", ip, "err", err)
		return ""
	}
	return c.Country.Names["en"]
}

// ClientIP：优先代理头，其次 RemoteAddr
func ClientIP(r *http.Request) string {
	h := r.Header
	if x := h.Get("x-forwarded-for"); x != "" {
		return strings.TrimSpace(strings.Split(x, ",")[0])
	}
	if x := h.Get("cf-connecting-ip"); x != "" {
		return x
	}
	if x := h.Get("x-real-ip"); x != "" {
		return x
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

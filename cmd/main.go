// 程序入口：读取配置、初始化可选依赖（PostgreSQL、Redis、GeoIP）并启动 HTTP 服务
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"country-stats/internal/api"
	"country-stats/internal/config"
	"country-stats/internal/countries"
	"country-stats/internal/geo"
	"country-stats/internal/history"
	"country-stats/internal/logger"
	"country-stats/internal/utils"
	"country-stats/internal/widget"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logger.L().Error("config_error", "err", err)
		os.Exit(1)
	}
	l := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	l.Debug("log_init_ok")
	l.Debug("config_api_base", "base", cfg.APIBase, "upstream", cfg.CountriesBase)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var observers []widget.Observer

	// 使用量统计：连接失败时降级为不统计
	st, err := utils.OpenStoreFromConfig(ctx, cfg.Postgres)
	switch {
	case err != nil:
		l.Error("db_open_error", "err", err)
		st = nil
	case st == nil:
		l.Info("db_disabled")
	default:
		l.Info("db_open_ok")
		defer st.Close()
		observers = append(observers, st)
	}

	rc := utils.OpenRedis(cfg.Redis)
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		if err := rc.Ping(ctx).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
		defer rc.Close()
	}
	hist := history.New(rc, cfg.HistorySize)
	if rc != nil {
		observers = append(observers, hist)
	}

	hinter, err := geo.Open(cfg.GeoIPPath)
	if err != nil {
		l.Error("geoip_open_error", "path", cfg.GeoIPPath, "err", err)
		hinter = &geo.Hinter{}
	} else if cfg.GeoIPPath != "" {
		l.Info("geoip_ready", "path", cfg.GeoIPPath)
	}
	defer hinter.Close()

	client := countries.NewClient(cfg.CountriesBase, cfg.CountriesTimeout)
	srv := &api.Server{
		Widget:  widget.New(client, observers...),
		Store:   st,
		History: hist,
		Geo:     hinter,
		APIBase: cfg.APIBase,
	}

	handler := logger.AccessMiddleware(l)(srv.Handler())
	s := &http.Server{Addr: cfg.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(sctx)
	}()

	if cfg.TLSEnable {
		if err := utils.EnsureSelfSignedCert(cfg.TLSCertPath, cfg.TLSKeyPath, "country-stats.local"); err != nil {
			l.Error("tls_cert_error", "err", err)
			os.Exit(1)
		}
		l.Info("listening_tls", "addr", cfg.Addr, "cert", cfg.TLSCertPath)
		err = s.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
	} else {
		l.Info("listening", "addr", cfg.Addr)
		err = s.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		l.Error("server_error", "err", err)
		os.Exit(1)
	}
	l.Info("server_stopped")
}

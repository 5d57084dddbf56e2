package utils

import (
	"context"
	"time"

	"country-stats/internal/config"
	"country-stats/internal/logger"
	"country-stats/internal/migrate"
	"country-stats/internal/store"
)

// OpenStoreFromConfig：PG_ENABLE=false 时返回 nil；连通或建表失败时返回错误，由调用方决定是否降级
func OpenStoreFromConfig(ctx context.Context, pg config.Postgres) (*store.Store, error) {
	if !pg.Enable {
		return nil, nil
	}
	st, err := store.Open(pg.DSN(), pg.MaxOpenConns, pg.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := st.DB().PingContext(pctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	logger.L().Info("db_ping_ok", "host", pg.Host, "db", pg.DB)
	if err := migrate.EnsureSchema(pctx, st.DB()); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

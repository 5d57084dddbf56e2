package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"country-stats/internal/logger"
)

// 背景：首次运行自动创建使用量统计表
// 约束：IF NOT EXISTS，可重复执行
var stmts = []string{
	`CREATE TABLE IF NOT EXISTS _cs_usage_total (
        id INT PRIMARY KEY,
        total_triggers BIGINT NOT NULL DEFAULT 0,
        total_failures BIGINT NOT NULL DEFAULT 0
    )`,
	`INSERT INTO _cs_usage_total(id, total_triggers, total_failures)
     VALUES(1, 0, 0)
     ON CONFLICT (id) DO NOTHING`,
	`CREATE TABLE IF NOT EXISTS _cs_usage_daily (
        day DATE NOT NULL,
        trigger TEXT NOT NULL,
        ok BIGINT NOT NULL DEFAULT 0,
        failed BIGINT NOT NULL DEFAULT 0,
        PRIMARY KEY (day, trigger)
    )`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("schema stmt %d: %w", i, err)
		}
	}
	logger.L().Debug("schema_done")
	return nil
}

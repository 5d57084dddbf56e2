// 包 store: PostgreSQL 使用量统计（触发次数、失败次数、按日按触发类型分布）
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"country-stats/internal/logger"
	"country-stats/internal/widget"

	_ "github.com/lib/pq"
)

var ErrNoDB = errors.New("store: no database")

// Store: 数据库访问入口
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// Open: 使用 DSN 打开连接池；不在此处 Ping
func Open(dsn string, maxOpen, maxIdle int) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) DB() *sql.DB { return s.db }

// RecordTrigger: 记录一次触发结果
func (s *Store) RecordTrigger(ctx context.Context, trigger string, ok bool) error {
	if s == nil || s.db == nil {
		return ErrNoDB
	}
	failed := int64(0)
	if !ok {
		failed = 1
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, "UPDATE _cs_usage_total SET total_triggers=total_triggers+1, total_failures=total_failures+$1 WHERE id=1", failed); err != nil {
		return fmt.Errorf("update total: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO _cs_usage_daily(day, trigger, ok, failed) VALUES(current_date, $1, $2, $3)
        ON CONFLICT (day, trigger) DO UPDATE SET ok=_cs_usage_daily.ok+EXCLUDED.ok, failed=_cs_usage_daily.failed+EXCLUDED.failed`,
		trigger, 1-failed, failed); err != nil {
		return fmt.Errorf("upsert daily: %w", err)
	}
	return tx.Commit()
}

// Observe: 作为 widget.Observer 挂载；写库失败仅记日志
func (s *Store) Observe(ctx context.Context, o widget.Outcome) {
	if err := s.RecordTrigger(context.WithoutCancel(ctx), o.Trigger, o.OK); err != nil {
		logger.L().Error("usage_record_error", "trigger", o.Trigger, "err", err)
		return
	}
	logger.L().Debug("usage_recorded", "trigger", o.Trigger, "ok", o.OK)
}

// Totals: 累计与当日统计
type Totals struct {
	Total    int64            `json:"total"`
	Failures int64            `json:"failures"`
	Today    map[string]int64 `json:"today"`
}

// GetTotals: 读取累计次数与当日按触发类型的成功次数
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	if s == nil || s.db == nil {
		return nil, ErrNoDB
	}
	t := Totals{Today: map[string]int64{}}
	row := s.db.QueryRowContext(ctx, "SELECT total_triggers, total_failures FROM _cs_usage_total WHERE id=1")
	if err := row.Scan(&t.Total, &t.Failures); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT trigger, ok FROM _cs_usage_daily WHERE day=current_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var trig string
		var n int64
		if err := rows.Scan(&trig, &n); err != nil {
			return nil, err
		}
		t.Today[trig] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.L().Debug("usage_totals", "total", t.Total, "failures", t.Failures)
	return &t, nil
}

// 包 config：集中读取运行配置；.env 文件由 godotenv 载入，字段由结构体标签映射环境变量
package config

import (
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config：服务与命令行工具共用的配置
type Config struct {
	Addr    string `env:"ADDR"     envDefault:":8080"`
	APIBase string `env:"API_BASE" envDefault:"/api"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	CountriesBase    string        `env:"COUNTRIES_API_BASE" envDefault:"https://restcountries.com"`
	CountriesTimeout time.Duration `env:"COUNTRIES_TIMEOUT"  envDefault:"0s"`

	Postgres Postgres
	Redis    Redis

	HistorySize int    `env:"HISTORY_SIZE"  envDefault:"10"`
	GeoIPPath   string `env:"GEOIP_DB_PATH"`

	TLSEnable   bool   `env:"TLS_ENABLE"    envDefault:"false"`
	TLSCertPath string `env:"TLS_CERT_PATH" envDefault:"data/certs/server.crt"`
	TLSKeyPath  string `env:"TLS_KEY_PATH"  envDefault:"data/certs/server.key"`
}

// Postgres：使用量统计库；PG_ENABLE=false 时不连接
type Postgres struct {
	Enable       bool   `env:"PG_ENABLE"          envDefault:"false"`
	Host         string `env:"PG_HOST"            envDefault:"localhost"`
	Port         string `env:"PG_PORT"            envDefault:"5432"`
	User         string `env:"PG_USER"            envDefault:"postgres"`
	Password     string `env:"PG_PASSWORD"`
	DB           string `env:"PG_DB"              envDefault:"countrystats"`
	SSLMode      string `env:"PG_SSLMODE"         envDefault:"disable"`
	MaxOpenConns int    `env:"PG_MAX_OPEN_CONNS"  envDefault:"10"`
	MaxIdleConns int    `env:"PG_MAX_IDLE_CONNS"  envDefault:"5"`
}

// DSN：lib/pq 的 URL 形式连接串；用户名、密码与库名按 URL 规则转义
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.User(p.User),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.DB,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	if p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	return u.String()
}

// Redis：最近搜索记录；REDIS_ENABLE=false 时不连接
type Redis struct {
	Enable bool   `env:"REDIS_ENABLE" envDefault:"false"`
	Host   string `env:"REDIS_HOST"   envDefault:"127.0.0.1"`
	Port   string `env:"REDIS_PORT"   envDefault:"6379"`
	Pass   string `env:"REDIS_PASS"`
	DB     int    `env:"REDIS_DB"     envDefault:"0"`
}

func (r Redis) Addr() string { return r.Host + ":" + r.Port }

// LoadEnvFiles：先载入显式指定的文件，再载入 ./.env 与 data/env/.env
// 约束：godotenv.Load 不覆盖已有变量，故优先级为 进程环境 > 显式文件（靠前者优先）> 默认文件；文件缺失静默跳过
func LoadEnvFiles(extra ...string) {
	files := append(append([]string{}, extra...), ".env", filepath.Join("data", "env", ".env"))
	for _, f := range files {
		if f == "" {
			continue
		}
		_ = godotenv.Load(f)
	}
}

// Load：解析环境变量为 Config
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 10
	}
	if cfg.APIBase == "" || cfg.APIBase == "/" {
		cfg.APIBase = "/api"
	}
	return cfg, nil
}

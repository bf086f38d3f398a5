// config реализует конфигурацию koans-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/pribylovaa/go-zen-koans/internal/threads"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	GRPC     GRPCConfig    `yaml:"grpc"`
	DB       DBConfig      `yaml:"db"`
	Threads  ThreadsConfig `yaml:"threads"`
	Cache    CacheConfig   `yaml:"cache"`
	Breaker  BreakerConfig `yaml:"breaker"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// CacheConfig — кэш собранных веток в Redis.
type CacheConfig struct {
	// RedisURL — адрес Redis (redis://host:port/db). Пусто — кэш выключен.
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
	// TTL — время жизни записи кэша.
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"30s"`
}

// Enabled сообщает, включён ли кэш.
func (c CacheConfig) Enabled() bool {
	return strings.TrimSpace(c.RedisURL) != ""
}

// BreakerConfig — circuit breaker вокруг чтений из хранилища.
type BreakerConfig struct {
	// MinRequests — минимум запросов в окне, после которого оценивается доля отказов.
	MinRequests uint32 `yaml:"min_requests" env:"BREAKER_MIN_REQUESTS" env-default:"5"`
	// FailureRatio — доля отказов (0..1], при которой цепь размыкается.
	FailureRatio float64 `yaml:"failure_ratio" env:"BREAKER_FAILURE_RATIO" env-default:"0.6"`
	// Interval — окно сброса счётчиков в замкнутом состоянии.
	Interval time.Duration `yaml:"interval" env:"BREAKER_INTERVAL" env-default:"60s"`
	// OpenTimeout — сколько цепь остаётся разомкнутой до пробных запросов.
	OpenTimeout time.Duration `yaml:"open_timeout" env:"BREAKER_OPEN_TIMEOUT" env-default:"30s"`
	// HalfOpenRequests — число пробных запросов в полуоткрытом состоянии.
	HalfOpenRequests uint32 `yaml:"half_open_requests" env:"BREAKER_HALF_OPEN_REQUESTS" env-default:"1"`
}

// TimeoutConfig — сервисные таймауты.
type TimeoutConfig struct {
	// Service — общий дедлайн обработки запроса.
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"5s"`
	// Shutdown — время на graceful shutdown серверов.
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN" env-default:"10s"`
}

// HTTPConfig — REST API и служебные эндпойнты (/livez, /healthz, /metrics).
type HTTPConfig struct {
	Host     string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:"/api"`
}

// GRPCConfig — gRPC-сервер (health-check и reflection).
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50055"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// DBConfig — настройки подключения к хранилищу.
type DBConfig struct {
	// Driver — postgres | mongo.
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	URL    string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
	// SkipMigrate — не применять миграции схемы при старте (только postgres).
	SkipMigrate bool `yaml:"skip_migrate" env:"DB_SKIP_MIGRATE"`
	// ConnectTimeout — дедлайн на подключение и ping при старте.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT" env-default:"10s"`
}

// ThreadsConfig — построение веток комментариев.
type ThreadsConfig struct {
	// OrphanPolicy — surface (поднять наверх) | drop (отбросить) для сирот и циклов.
	OrphanPolicy string `yaml:"orphan_policy" env:"ORPHAN_POLICY" env-default:"surface"`
	// Fanout — максимум параллельных запросов комментариев к хранилищу.
	Fanout int `yaml:"fanout" env:"FANOUT" env-default:"8"`
}

// Policy возвращает разобранную политику (после validate ошибки быть не может).
func (t ThreadsConfig) Policy() threads.Policy {
	p, err := threads.ParsePolicy(t.OrphanPolicy)
	if err != nil {
		return threads.PolicySurface
	}

	return p
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла ENV-переменные накладываются поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	var (
		c   *Config
		err error
	)

	switch envPath := os.Getenv("CONFIG_PATH"); {
	case path != "":
		c, err = readFile(path)
	case envPath != "":
		c, err = readFile(envPath)
	default:
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			c, err = readFile("local.yaml")
			break
		}

		if err = cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}

	if err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))

	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.DB.Driver != DriverPostgres && c.DB.Driver != DriverMongo {
		return fmt.Errorf("db.driver must be %q or %q", DriverPostgres, DriverMongo)
	}

	if c.DB.ConnectTimeout <= 0 {
		return fmt.Errorf("db.connect_timeout must be > 0")
	}

	if _, err := threads.ParsePolicy(c.Threads.OrphanPolicy); err != nil {
		return fmt.Errorf("threads.orphan_policy: %w", err)
	}

	if c.Threads.Fanout <= 0 {
		return fmt.Errorf("threads.fanout must be > 0")
	}

	if c.Threads.Fanout > 64 {
		return fmt.Errorf("threads.fanout is too large (<= 64)")
	}

	if c.Cache.Enabled() && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0")
	}

	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker.failure_ratio must be in (0, 1]")
	}

	if c.Breaker.OpenTimeout <= 0 {
		return fmt.Errorf("breaker.open_timeout must be > 0")
	}

	if c.Timeouts.Shutdown <= 0 {
		return fmt.Errorf("timeouts.shutdown must be > 0")
	}

	if c.HTTP.BasePath != "" && !strings.HasPrefix(c.HTTP.BasePath, "/") {
		return fmt.Errorf("http.base_path must start with /")
	}

	return nil
}

package buildCFG

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
)

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type RabbitConfig struct {
	Url            string
	Exchange       string
	Queue          string
	ReconcileDelay time.Duration
}

type RedisConfig struct {
	Url      string
	PoolSize int
	StatsTTL time.Duration
}

type UploadsConfig struct {
	Dir string
}

func stringOr(cfg *config.Config, key, def string) string {
	if v := cfg.GetString(key); v != "" {
		return v
	}
	return def
}

func intOr(cfg *config.Config, key string, def int) int {
	if v := cfg.GetInt(key); v != 0 {
		return v
	}
	return def
}

func durationOr(cfg *config.Config, key string, def time.Duration) time.Duration {
	if v := cfg.GetDuration(key); v != 0 {
		return v
	}
	return def
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	sc := ServerConfig{
		Port:            stringOr(cfg, "server.port", "8080"),
		ShutdownTimeout: durationOr(cfg, "server.shutdown_timeout", 10*time.Second),
	}
	log.Info().Str("port", sc.Port).Msg("server config loaded")
	return sc
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("db.master_dsn")
	if masterDSN == "" {
		return "", nil, nil, errors.New("db.master_dsn is required")
	}
	slaveDSNs := cfg.GetStringSlice("db.slave_dsns")

	opts := &dbpg.Options{
		MaxOpenConns:    intOr(cfg, "db.max_open_conns", 20),
		MaxIdleConns:    intOr(cfg, "db.max_idle_conns", 5),
		ConnMaxLifetime: durationOr(cfg, "db.conn_max_lifetime", 30*time.Minute),
	}
	log.Info().
		Int("slaves", len(slaveDSNs)).
		Int("max_open_conns", opts.MaxOpenConns).
		Msg("db config loaded")
	return masterDSN, slaveDSNs, opts, nil
}

// BuildRabbitConfig returns a zero config when rabbit.url is unset; the
// counter reconciler is then disabled.
func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	rc := RabbitConfig{
		Url:            cfg.GetString("rabbit.url"),
		Exchange:       stringOr(cfg, "rabbit.exchange", "enrollment.delayed"),
		Queue:          stringOr(cfg, "rabbit.queue", "enrollment.reconcile"),
		ReconcileDelay: cfg.GetDuration("rabbit.reconcile_delay"),
	}
	if rc.Url == "" {
		log.Warn().Msg("rabbit.url not set, counter reconciler disabled")
		return rc, nil
	}
	if rc.ReconcileDelay < 0 {
		return RabbitConfig{}, errors.New("rabbit.reconcile_delay must not be negative")
	}
	return rc, nil
}

func BuildRedisConfig(cfg *config.Config, log *zerolog.Logger) RedisConfig {
	rc := RedisConfig{
		Url:      cfg.GetString("redis.url"),
		PoolSize: intOr(cfg, "redis.pool_size", 10),
		StatsTTL: durationOr(cfg, "redis.stats_ttl", 30*time.Second),
	}
	if rc.Url == "" {
		log.Warn().Msg("redis.url not set, stats cache disabled")
	}
	return rc
}

func BuildUploadsConfig(cfg *config.Config) UploadsConfig {
	return UploadsConfig{Dir: stringOr(cfg, "uploads.dir", "./uploads")}
}

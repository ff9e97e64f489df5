package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type DB struct {
	URL             string        `env:"DATABASE_URL,required,notEmpty"`
	MigrationsPath  string        `env:"DB_MIGRATIONS_PATH" envDefault:"file://db/migrations"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"16"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"8"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"15m"`
}

type HTTP struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Kafka is optional; an empty BootstrapServers disables the audit trail.
type Kafka struct {
	BootstrapServers string `env:"KAFKA_BOOTSTRAP_SERVERS"`
	AuditTopic       string `env:"KAFKA_AUDIT_TOPIC" envDefault:"catalog.audit"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"debug"`
}

type Config struct {
	DB    DB
	HTTP  HTTP
	Kafka Kafka
	Log   Log
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Identity configures the out-of-band grant-admin tool. It is loaded
// separately so the server does not require provider credentials.
type Identity struct {
	URL        string        `env:"IDENTITY_URL,required,notEmpty"`
	ServiceKey string        `env:"IDENTITY_SERVICE_KEY,required,notEmpty"`
	Timeout    time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"15s"`
}

func LoadIdentity() (*Identity, error) {
	cfg := &Identity{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"time"
)

// RedisConfig представляет конфигурацию Redis, в котором хранятся отозванные токены.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"LIBRARY_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"LIBRARY_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"LIBRARY_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"LIBRARY_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"LIBRARY_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"LIBRARY_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"LIBRARY_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"LIBRARY_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"LIBRARY_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"LIBRARY_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"LIBRARY_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"LIBRARY_REDIS_DEFAULT_TTL" env-default:"1h"`

	BreakerErrorThreshold   int           `yaml:"breaker_error_threshold" env:"LIBRARY_REDIS_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	BreakerTimeout          time.Duration `yaml:"breaker_timeout" env:"LIBRARY_REDIS_BREAKER_TIMEOUT" env-default:"10s"`
	BreakerSuccessThreshold int           `yaml:"breaker_success_threshold" env:"LIBRARY_REDIS_BREAKER_SUCCESS_THRESHOLD" env-default:"2"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

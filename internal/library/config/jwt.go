package config

import (
	"time"

	"gobooklend/internal/library/domain/services"
)

// JWTConfig содержит настройки для токенов доступа и хеширования паролей.
type JWTConfig struct {
	SecretKey      string        `yaml:"secret_key" env:"LIBRARY_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	Issuer         string        `yaml:"issuer" env:"LIBRARY_JWT_ISSUER" env-default:"gobooklend"`
	Audience       string        `yaml:"audience" env:"LIBRARY_JWT_AUDIENCE" env-default:"gobooklend-api"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"LIBRARY_JWT_ACCESS_TOKEN_TTL" env-default:"1h"`
	BCryptCost     int           `yaml:"bcrypt_cost" env:"LIBRARY_JWT_BCRYPT_COST" env-default:"10"`
}

// TokenConfig возвращает параметры выпуска токенов.
func (c *JWTConfig) TokenConfig() services.TokenConfig {
	return services.TokenConfig{
		SecretKey: []byte(c.SecretKey),
		Issuer:    c.Issuer,
		Audience:  c.Audience,
		AccessTTL: c.AccessTokenTTL,
	}
}

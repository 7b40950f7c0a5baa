package config

import (
	"gobooklend/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LIBRARY_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"LIBRARY_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment получает строку режима в logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// IsProduction сообщает, нужно ли скрывать детали внутренних ошибок от клиентов.
func (l *LoggingConfig) IsProduction() bool {
	return l.GetEnvironment() == logger.Production
}

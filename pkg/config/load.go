// Package config загружает конфигурацию сервисов из файла и переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"gobooklend/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigFileMissing    = "configuration file not found, using environment only"
	msgConfigurationLoaded  = "configuration loaded successfully"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет T из файла path (формат определяется расширением, .env
// поддерживается) с переопределением переменными окружения. Если path пуст
// или файла нет, читаются только переменные окружения.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var cfg T

	useFile := path != ""
	if useFile {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			log.Debug(ctx, msgConfigFileMissing, zap.String(attrPath, path))
			useFile = false
		}
	}

	var err error
	if useFile {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}

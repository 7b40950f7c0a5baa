// Package http содержит HTTP сервер сервиса выдачи книг.
package http

import (
	"github.com/gofiber/fiber/v3"
	jsoniter "github.com/json-iterator/go"

	"gobooklend/internal/library/config"
)

const appName = "gobooklend"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewApp создает Fiber приложение с кодеком json-iterator и обработчиком ошибок problem+json.
func NewApp(cfg *config.HTTPConfig, production bool) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: NewErrorHandler(production),
	})
}
